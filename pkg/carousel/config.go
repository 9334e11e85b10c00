// Package carousel manages a horizontally scrolling strip of fixed-width
// cards: clone padding for infinite wraparound, index navigation, boundary
// correction jumps and center-focus styling.
//
// All geometry is in virtual pixels. The package never touches a terminal; the
// UI maps pixels to cells.
package carousel

import "time"

const (
	// DefaultCardWidth is the fixed card box width W.
	DefaultCardWidth = 200.0
	// DefaultGap is the inter-card gap G used when layout gives none.
	DefaultGap = 20.0
	// DefaultSettleDelay bounds how long a scroll step holds the animation guard.
	DefaultSettleDelay = 300 * time.Millisecond
	// DefaultJumpLock is the re-entrancy window after a wraparound jump.
	DefaultJumpLock = 50 * time.Millisecond
	// DefaultFPS is the frame rate the scroll spring is tuned for.
	DefaultFPS = 60

	// Focus curve.
	minScale         = 0.85
	minOpacity       = 0.6
	scaleFalloff     = 600.0
	opacityFalloff   = 800.0
	activeScale      = 1.05
	edgeTolerance    = 10.0
	dimmedOpacity    = 0.5
	dragMultiplier   = 2.0
	settleEpsilon    = 0.5
	springFrequency  = 20.0
	springDampingRat = 1.0
)

// Config tunes a Carousel.
type Config struct {
	CardWidth   float64
	Gap         float64
	Wrap        bool
	SettleDelay time.Duration
	JumpLock    time.Duration
	FPS         int
}

// DefaultConfig returns the infinite-loop configuration.
func DefaultConfig() Config {
	return Config{
		CardWidth:   DefaultCardWidth,
		Gap:         DefaultGap,
		Wrap:        true,
		SettleDelay: DefaultSettleDelay,
		JumpLock:    DefaultJumpLock,
		FPS:         DefaultFPS,
	}
}

func (c Config) normalized() Config {
	if c.CardWidth <= 0 {
		c.CardWidth = DefaultCardWidth
	}
	if c.Gap <= 0 {
		c.Gap = DefaultGap
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.JumpLock <= 0 {
		c.JumpLock = DefaultJumpLock
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	return c
}
