package carousel

import (
	"log"
	"math"
	"time"
)

// Carousel drives one strip and its two controls.
//
// In wrap mode the strip is padded as [tailClones][originals][headClones] and
// at rest Offset() == StartScroll() + CurrentIndex()*Pitch(), up to the
// wraparound jumps. In clamped mode there are no clones and StartScroll is 0.
type Carousel struct {
	cfg   Config
	clock Clock
	anim  *Animator

	strip       *Strip
	left, right *Control

	cardCount    int
	visibleCount int
	currentIndex int
	scrollable   bool

	animatingUntil time.Time
	jumpLockUntil  time.Time

	drag dragState
}

type dragState struct {
	active      bool
	startX      float64
	startOffset float64
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithClock replaces the wall clock used for guard deadlines.
func WithClock(clock Clock) Option {
	return func(c *Carousel) {
		c.clock = clock
	}
}

// New creates an unbound carousel. Call Setup to attach a strip.
func New(cfg Config, opts ...Option) *Carousel {
	cfg = cfg.normalized()
	c := &Carousel{
		cfg:   cfg,
		clock: SystemClock{},
		anim:  NewAnimator(cfg.FPS),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Setup binds the carousel to a strip and its controls and lays out the
// clone padding. Calling it again on the same strip is idempotent: previous
// clones are removed first. Missing handles are logged and skipped.
func (c *Carousel) Setup(strip *Strip, left, right *Control) {
	if strip == nil || left == nil || right == nil {
		log.Printf("carousel: setup skipped: container or controls missing")
		return
	}

	c.strip, c.left, c.right = strip, left, right
	c.scrollable = false
	c.currentIndex = 0
	c.animatingUntil = time.Time{}
	c.jumpLockUntil = time.Time{}
	c.drag = dragState{}
	c.anim.Stop()

	strip.removeClones()
	strip.endPad = 0
	if strip.gap <= 0 {
		strip.gap = c.cfg.Gap
	}

	originals := strip.Originals()
	c.cardCount = len(originals)
	if c.cardCount == 0 {
		left.hide()
		right.hide()
		strip.SetOffset(0)
		return
	}

	for _, card := range originals {
		card.Width = c.cfg.CardWidth
	}

	c.visibleCount = int(math.Floor(strip.ClientWidth() / c.Pitch()))
	if c.visibleCount < 1 {
		c.visibleCount = 1
	}

	if c.cardCount <= c.visibleCount {
		left.hide()
		right.hide()
		for _, card := range strip.cards {
			card.Style = Neutral
		}
		strip.SetOffset(0)
		return
	}

	c.scrollable = true
	left.show()
	right.show()

	if c.cfg.Wrap {
		for i := c.cardCount - c.visibleCount; i < c.cardCount; i++ {
			strip.prepend(&Card{Source: originals[i].Source, Clone: true, Width: c.cfg.CardWidth, Style: Neutral})
		}
		// prepend reverses insertion order; restore tail order.
		reverse(strip.cards[:c.visibleCount])
		for i := 0; i < c.visibleCount; i++ {
			strip.append(&Card{Source: originals[i].Source, Clone: true, Width: c.cfg.CardWidth, Style: Neutral})
		}
		// A trailing gap keeps the last resting position short of the pad
		// boundary when the viewport remainder is wider than a card.
		strip.endPad = strip.gap
	}

	strip.SetOffset(c.StartScroll())
	c.OnScroll()
}

func reverse(cards []*Card) {
	for i, j := 0, len(cards)-1; i < j; i, j = i+1, j-1 {
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Pitch is the distance between successive card origins (W+G).
func (c *Carousel) Pitch() float64 {
	gap := c.cfg.Gap
	if c.strip != nil && c.strip.gap > 0 {
		gap = c.strip.gap
	}
	return c.cfg.CardWidth + gap
}

// StartScroll is the offset at which original card 0 is the first visible card.
func (c *Carousel) StartScroll() float64 {
	if !c.cfg.Wrap || !c.scrollable {
		return 0
	}
	return c.Pitch() * float64(c.visibleCount)
}

// ScrollCarousel moves one logical card in direction (-1 or +1). It returns
// false when the move was dropped because a previous step is still animating
// or the strip has nothing to scroll.
func (c *Carousel) ScrollCarousel(direction int) bool {
	if !c.scrollable || c.IsAnimating() {
		return false
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}

	next := c.currentIndex + direction
	if !c.cfg.Wrap {
		next = clampInt(next, 0, c.maxClampedIndex())
		if next == c.currentIndex {
			return false
		}
	}

	c.animatingUntil = c.clock.Now().Add(c.cfg.SettleDelay)
	c.scrollToIndex(next, true)
	return true
}

func (c *Carousel) maxClampedIndex() int {
	if m := c.cardCount - c.visibleCount; m > 0 {
		return m
	}
	return 0
}

// scrollToIndex targets the resting position of index. In wrap mode the index
// wraps first and the target is kept strictly inside the pad boundaries.
func (c *Carousel) scrollToIndex(index int, smooth bool) {
	c.currentIndex = index
	if c.cfg.Wrap {
		c.currentIndex = ((index % c.cardCount) + c.cardCount) % c.cardCount
	}
	target := c.restOffset()
	if smooth {
		c.anim.Start(target)
		return
	}
	c.anim.Stop()
	c.strip.SetOffset(target)
	c.OnScroll()
}

// IsAnimating reports whether the scroll guard is held.
func (c *Carousel) IsAnimating() bool {
	return c.clock.Now().Before(c.animatingUntil)
}

// InMotion reports whether the scroll spring is still moving.
func (c *Carousel) InMotion() bool {
	return c.anim.Moving()
}

// Tick advances the scroll animation by one frame and fires the scroll
// handlers. It returns true while the animation is still moving.
func (c *Carousel) Tick() bool {
	if c.strip == nil || !c.anim.Moving() {
		return false
	}
	next, settled := c.anim.Step(c.strip.Offset())
	c.strip.SetOffset(next)
	clamped := c.strip.Offset() != next
	c.OnScroll()

	if settled {
		c.Settle()
		return false
	}
	if clamped && c.anim.Moving() && !c.canReach(c.anim.Target()) {
		c.anim.Stop()
		c.Settle()
		return false
	}
	return true
}

func (c *Carousel) canReach(target float64) bool {
	return target >= 0 && target <= c.strip.MaxOffset()
}

// restOffset is the offset at which the current card rests. In wrap mode it
// is moved by whole laps until it lies inside (0, MaxOffset), if it can be.
func (c *Carousel) restOffset() float64 {
	rest := c.StartScroll() + float64(c.currentIndex)*c.Pitch()
	if !c.cfg.Wrap || c.cardCount == 0 {
		return rest
	}
	if inside, ok := c.lapInside(rest); ok {
		return inside
	}
	return rest
}

// lapInside shifts x by whole laps into the open range (0, MaxOffset).
func (c *Carousel) lapInside(x float64) (float64, bool) {
	span := float64(c.cardCount) * c.Pitch()
	limit := c.strip.MaxOffset()
	if span <= 0 {
		return x, false
	}
	for x >= limit {
		x -= span
	}
	for x <= 0 {
		x += span
	}
	return x, x < limit
}

// Settle is the transition-complete signal: it releases the scroll guard
// before the settle delay expires and puts a wrapping strip back on the card
// grid at the current index. A rest left on a pad boundary is corrected even
// inside the jump lock.
func (c *Carousel) Settle() {
	c.animatingUntil = time.Time{}
	if c.strip == nil || !c.scrollable || !c.cfg.Wrap || c.anim.Moving() || c.drag.active {
		return
	}
	c.strip.SetOffset(c.restOffset())
	if offset := c.strip.Offset(); offset <= 0 || offset >= c.strip.MaxOffset() {
		c.jumpLockUntil = time.Time{}
		c.HandleInfiniteScroll()
	}
	c.UpdateCardFocus()
}

// OnScroll is the scroll-event handler: boundary correction, then focus.
func (c *Carousel) OnScroll() {
	c.HandleInfiniteScroll()
	c.UpdateCardFocus()
	c.updateButtonStates()
}

// OnResize is the viewport-resize handler. Card and visible counts are not
// re-derived; call Setup again for that.
func (c *Carousel) OnResize(viewport float64) {
	if c.strip == nil {
		return
	}
	c.strip.SetViewport(viewport)
	c.UpdateCardFocus()
	c.updateButtonStates()
}

// HandleInfiniteScroll jumps from either padded boundary to the mirrored
// position inside the padded range. It returns true if a jump happened.
func (c *Carousel) HandleInfiniteScroll() bool {
	if c.strip == nil || !c.scrollable || !c.cfg.Wrap {
		return false
	}
	now := c.clock.Now()
	if now.Before(c.jumpLockUntil) {
		return false
	}

	offset := c.strip.Offset()
	limit := c.strip.MaxOffset()
	span := float64(c.cardCount) * c.Pitch()

	var next float64
	switch {
	case offset <= 0:
		next = offset + span
	case offset >= limit:
		next = offset - span
	default:
		return false
	}
	// Keep the landing point strictly inside so the jump cannot retrigger.
	if next >= limit {
		next = limit - 1
	}
	if next <= 0 {
		next = 1
	}

	c.jumpLockUntil = now.Add(c.cfg.JumpLock)
	c.strip.SetOffset(next)
	c.shift(c.strip.Offset() - offset)
	return true
}

func (c *Carousel) shift(delta float64) {
	c.anim.Shift(delta)
	if c.drag.active {
		c.drag.startOffset += delta
	}
}

func (c *Carousel) updateButtonStates() {
	if c.strip == nil || !c.scrollable || c.cfg.Wrap {
		return
	}
	offset := c.strip.Offset()
	limit := c.strip.MaxOffset()
	setEdge(c.left, offset <= edgeTolerance)
	setEdge(c.right, offset >= limit-edgeTolerance)
}

func setEdge(ctl *Control, atEdge bool) {
	ctl.Disabled = atEdge
	if atEdge {
		ctl.Opacity = dimmedOpacity
	} else {
		ctl.Opacity = 1
	}
}

// Accessors.

func (c *Carousel) Strip() *Strip     { return c.strip }
func (c *Carousel) Left() *Control    { return c.left }
func (c *Carousel) Right() *Control   { return c.right }
func (c *Carousel) CardCount() int    { return c.cardCount }
func (c *Carousel) VisibleCount() int { return c.visibleCount }
func (c *Carousel) CurrentIndex() int { return c.currentIndex }
func (c *Carousel) Scrollable() bool  { return c.scrollable }
func (c *Carousel) Config() Config    { return c.cfg }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
