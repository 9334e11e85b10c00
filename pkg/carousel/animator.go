package carousel

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Animator eases a strip's scroll offset toward a target with a critically
// damped spring. One Step is one display frame.
type Animator struct {
	spring harmonica.Spring
	target float64
	vel    float64
	moving bool
}

// NewAnimator creates an animator tuned for the given frame rate.
func NewAnimator(fps int) *Animator {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Animator{
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDampingRat),
	}
}

// Start begins (or retargets) an animation toward target.
func (a *Animator) Start(target float64) {
	a.target = target
	a.moving = true
}

// Shift translates the target by delta. Used when the strip jumps to a
// mirrored position mid-flight so the motion stays continuous.
func (a *Animator) Shift(delta float64) {
	if a.moving {
		a.target += delta
	}
}

// Stop abandons the animation where it is.
func (a *Animator) Stop() {
	a.moving = false
	a.vel = 0
}

// Moving reports whether an animation is in flight.
func (a *Animator) Moving() bool {
	return a.moving
}

// Target returns the current animation target.
func (a *Animator) Target() float64 {
	return a.target
}

// Step advances pos by one frame. It returns the new position and whether the
// spring has settled, in which case the position is exactly the target.
func (a *Animator) Step(pos float64) (float64, bool) {
	if !a.moving {
		return pos, true
	}
	pos, a.vel = a.spring.Update(pos, a.vel, a.target)
	if math.Abs(pos-a.target) < settleEpsilon && math.Abs(a.vel) < settleEpsilon {
		a.Stop()
		return a.target, true
	}
	return pos, false
}
