package carousel

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"
)

func newTestCarousel(t *testing.T, viewport float64, cards int, wrap bool) (*Carousel, *ManualClock, *Control, *Control) {
	t.Helper()
	clock := NewManualClock(time.Unix(1700000000, 0))
	cfg := DefaultConfig()
	cfg.Wrap = wrap
	c := New(cfg, WithClock(clock))
	left, right := &Control{}, &Control{}
	c.Setup(NewStrip(viewport, cards, 0), left, right)
	return c, clock, left, right
}

// settle runs frames until the scroll spring stops.
func settle(t *testing.T, c *Carousel) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !c.Tick() {
			return
		}
	}
	t.Fatalf("animation did not settle after 1000 frames (offset %.1f)", c.Strip().Offset())
}

func gridOffset(c *Carousel) float64 {
	return c.StartScroll() + float64(c.CurrentIndex())*c.Pitch()
}

func TestSetup_840pxViewport(t *testing.T) {
	c, _, left, right := newTestCarousel(t, 840, 10, true)

	if got := c.VisibleCount(); got != 3 {
		t.Fatalf("VisibleCount = %d, want 3", got)
	}
	if got := len(c.Strip().Cards()); got != 16 {
		t.Fatalf("rendered cards = %d, want 16", got)
	}
	if got := c.StartScroll(); got != 660 {
		t.Errorf("StartScroll = %v, want 660", got)
	}
	if got := c.Strip().Offset(); got != 660 {
		t.Errorf("initial offset = %v, want 660", got)
	}
	if !left.Visible || !right.Visible {
		t.Errorf("controls should be visible, got left=%v right=%v", left.Visible, right.Visible)
	}

	cards := c.Strip().Cards()
	wantSources := []int{7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2}
	for i, card := range cards {
		if card.Source != wantSources[i] {
			t.Errorf("card %d source = %d, want %d", i, card.Source, wantSources[i])
		}
		wantClone := i < 3 || i >= 13
		if card.Clone != wantClone {
			t.Errorf("card %d clone = %v, want %v", i, card.Clone, wantClone)
		}
		if card.Width != DefaultCardWidth {
			t.Errorf("card %d width = %v, want %v", i, card.Width, DefaultCardWidth)
		}
	}
}

func TestSetup_ClonesMatchVisibleCount(t *testing.T) {
	tests := []struct {
		viewport float64
		cards    int
		visible  int
	}{
		{viewport: 220, cards: 4, visible: 1},
		{viewport: 100, cards: 3, visible: 1},
		{viewport: 440, cards: 5, visible: 2},
		{viewport: 1320, cards: 20, visible: 6},
	}
	for _, tt := range tests {
		c, _, _, _ := newTestCarousel(t, tt.viewport, tt.cards, true)
		if c.VisibleCount() != tt.visible {
			t.Errorf("viewport %v: VisibleCount = %d, want %d", tt.viewport, c.VisibleCount(), tt.visible)
		}
		if got := c.Strip().Clones(); got != 2*tt.visible {
			t.Errorf("viewport %v: clones = %d, want %d", tt.viewport, got, 2*tt.visible)
		}
		if got := c.Strip().Offset(); got != c.StartScroll() {
			t.Errorf("viewport %v: offset = %v, want %v", tt.viewport, got, c.StartScroll())
		}
	}
}

func TestSetup_FitsOnScreen(t *testing.T) {
	strip := NewStrip(840, 3, 0)
	for _, card := range strip.Cards() {
		card.Style = Style{Scale: 0.9, Opacity: 0.7, Active: true}
	}
	left, right := &Control{Visible: true}, &Control{Visible: true}
	c := New(DefaultConfig())
	c.Setup(strip, left, right)

	if left.Visible || right.Visible {
		t.Errorf("controls should be hidden when all cards fit")
	}
	if c.Scrollable() {
		t.Errorf("Scrollable() = true, want false")
	}
	if strip.Clones() != 0 {
		t.Errorf("clones = %d, want 0", strip.Clones())
	}
	for i, card := range strip.Cards() {
		if card.Style != Neutral {
			t.Errorf("card %d style = %+v, want neutral", i, card.Style)
		}
	}
	if c.ScrollCarousel(1) {
		t.Errorf("ScrollCarousel should be a no-op on a strip that fits")
	}
}

func TestSetup_NoCardsHidesControls(t *testing.T) {
	_, _, left, right := newTestCarousel(t, 840, 0, true)
	if left.Visible || right.Visible {
		t.Errorf("controls should be hidden with no cards")
	}
}

func TestSetup_MissingHandlesIsNoop(t *testing.T) {
	c := New(DefaultConfig())
	c.Setup(nil, &Control{}, &Control{})
	c.Setup(NewStrip(840, 5, 0), nil, &Control{})
	if c.Strip() != nil {
		t.Errorf("Setup with missing handles should not bind a strip")
	}
	if c.ScrollCarousel(1) {
		t.Errorf("unbound carousel should not scroll")
	}
	c.UpdateCardFocus()
	c.OnScroll()
	c.Tick()
}

func TestSetup_Idempotent(t *testing.T) {
	c, _, left, right := newTestCarousel(t, 840, 10, true)
	strip := c.Strip()
	c.Setup(strip, left, right)
	c.Setup(strip, left, right)

	if got := len(strip.Cards()); got != 16 {
		t.Errorf("after re-setup rendered cards = %d, want 16", got)
	}
	if got := strip.Clones(); got != 6 {
		t.Errorf("after re-setup clones = %d, want 6", got)
	}
}

func TestSetup_UsesMeasuredGap(t *testing.T) {
	strip := NewStrip(900, 10, 0)
	strip.SetGap(100)
	c := New(DefaultConfig())
	c.Setup(strip, &Control{}, &Control{})
	if got := c.Pitch(); got != 300 {
		t.Errorf("Pitch = %v, want 300", got)
	}
	if got := c.VisibleCount(); got != 3 {
		t.Errorf("VisibleCount = %d, want 3", got)
	}
}

func TestScrollCarousel_WrapClosure(t *testing.T) {
	c, clock, _, _ := newTestCarousel(t, 840, 10, true)
	start := c.CurrentIndex()

	for i := 0; i < c.CardCount(); i++ {
		if !c.ScrollCarousel(1) {
			t.Fatalf("step %d dropped", i)
		}
		settle(t, c)
		clock.Advance(DefaultSettleDelay)
		if got, want := c.Strip().Offset(), gridOffset(c); math.Abs(got-want) > 1e-9 {
			t.Fatalf("step %d: resting offset = %v, want %v", i, got, want)
		}
	}
	if c.CurrentIndex() != start {
		t.Errorf("after a full lap CurrentIndex = %d, want %d", c.CurrentIndex(), start)
	}
}

func TestScrollCarousel_WrapBackward(t *testing.T) {
	c, clock, _, _ := newTestCarousel(t, 840, 10, true)

	if !c.ScrollCarousel(-1) {
		t.Fatal("ScrollCarousel(-1) dropped")
	}
	if got := c.CurrentIndex(); got != 9 {
		t.Fatalf("CurrentIndex = %d, want 9", got)
	}
	settle(t, c)
	clock.Advance(DefaultSettleDelay)
	if got, want := c.Strip().Offset(), gridOffset(c); got != want {
		t.Errorf("resting offset = %v, want %v", got, want)
	}
}

func TestScrollCarousel_DropsWhileAnimating(t *testing.T) {
	c, clock, _, _ := newTestCarousel(t, 840, 10, true)

	if !c.ScrollCarousel(1) {
		t.Fatal("first step dropped")
	}
	if c.ScrollCarousel(1) {
		t.Error("second step within settle delay should be dropped")
	}
	if got := c.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex = %d, want 1", got)
	}

	clock.Advance(DefaultSettleDelay - time.Millisecond)
	if !c.IsAnimating() {
		t.Error("guard released too early")
	}
	clock.Advance(time.Millisecond)
	if c.IsAnimating() {
		t.Error("guard still held after settle delay")
	}
	if !c.ScrollCarousel(1) {
		t.Error("step after settle delay dropped")
	}
}

func TestSettle_ReleasesGuardOnCompletion(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)

	c.ScrollCarousel(1)
	if !c.IsAnimating() {
		t.Fatal("guard should be held right after a step")
	}
	settle(t, c)
	if c.IsAnimating() {
		t.Error("guard should be released once the spring settles")
	}
	if got := c.Strip().Offset(); got != 880 {
		t.Errorf("offset = %v, want 880", got)
	}
}

func TestUpdateCardFocus_Idempotent(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)

	c.UpdateCardFocus()
	first := c.Styles()
	c.UpdateCardFocus()
	second := c.Styles()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("styles changed between calls:\n%v\n%v", first, second)
	}
}

func TestUpdateCardFocus_ActiveCard(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)

	// Container center 420; card 4 spans 220..420 on screen, center 320.
	if got := c.Active(); got != 4 {
		t.Fatalf("Active = %d, want 4", got)
	}
	styles := c.Styles()
	if styles[4] != (Style{Scale: 1.05, Opacity: 1, Active: true}) {
		t.Errorf("active style = %+v", styles[4])
	}
	// Card 3 center is 100: distance 320.
	if styles[3].Scale != 0.85 || math.Abs(styles[3].Opacity-0.6) > 1e-9 {
		t.Errorf("card 3 style = %+v, want scale 0.85 opacity 0.6", styles[3])
	}
	// Card 5 center is 540: distance 120.
	if styles[5].Scale != 0.85 {
		t.Errorf("card 5 scale = %v, want 0.85", styles[5].Scale)
	}
	if math.Abs(styles[5].Opacity-0.85) > 1e-9 {
		t.Errorf("card 5 opacity = %v, want 0.85", styles[5].Opacity)
	}
	active := 0
	for _, s := range styles {
		if s.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active cards = %d, want 1", active)
	}
	if got := c.ActiveSource(); got != 1 {
		t.Errorf("ActiveSource = %d, want 1", got)
	}
}

func TestFocusStyle(t *testing.T) {
	tests := []struct {
		distance float64
		scale    float64
		opacity  float64
	}{
		{0, 1, 1},
		{60, 0.9, 0.925},
		{90, 0.85, 0.8875},
		{300, 0.85, 0.625},
		{1000, 0.85, 0.6},
	}
	for _, tt := range tests {
		got := FocusStyle(tt.distance)
		if math.Abs(got.Scale-tt.scale) > 1e-9 || math.Abs(got.Opacity-tt.opacity) > 1e-9 {
			t.Errorf("FocusStyle(%v) = %+v, want scale %v opacity %v", tt.distance, got, tt.scale, tt.opacity)
		}
		if got.Active {
			t.Errorf("FocusStyle(%v) should not be active", tt.distance)
		}
	}
}

func TestHandleInfiniteScroll_Boundaries(t *testing.T) {
	c, clock, _, _ := newTestCarousel(t, 840, 10, true)
	strip := c.Strip()
	span := 10 * c.Pitch()

	strip.SetOffset(0)
	if !c.HandleInfiniteScroll() {
		t.Fatal("expected a jump at the leading boundary")
	}
	if got := strip.Offset(); got != span {
		t.Errorf("leading jump landed at %v, want %v", got, span)
	}

	strip.SetOffset(strip.MaxOffset())
	if c.HandleInfiniteScroll() {
		t.Error("jump inside the re-entrancy window should be suppressed")
	}

	clock.Advance(DefaultJumpLock)
	limit := strip.MaxOffset()
	if !c.HandleInfiniteScroll() {
		t.Fatal("expected a jump at the trailing boundary")
	}
	if got := strip.Offset(); got != limit-span {
		t.Errorf("trailing jump landed at %v, want %v", got, limit-span)
	}

	clock.Advance(DefaultJumpLock)
	if c.HandleInfiniteScroll() {
		t.Error("no jump expected inside the padded range")
	}
}

func TestClamped_BoundedNavigation(t *testing.T) {
	c, clock, left, right := newTestCarousel(t, 840, 10, false)
	strip := c.Strip()

	if strip.Clones() != 0 {
		t.Fatalf("clamped mode inserted %d clones", strip.Clones())
	}
	if c.StartScroll() != 0 || strip.Offset() != 0 {
		t.Fatalf("clamped start = %v offset = %v, want 0", c.StartScroll(), strip.Offset())
	}
	if !left.Disabled || left.Opacity != 0.5 {
		t.Errorf("left control at start = %+v, want disabled and dimmed", *left)
	}
	if right.Disabled {
		t.Errorf("right control should be enabled at start")
	}
	if c.ScrollCarousel(-1) {
		t.Error("ScrollCarousel(-1) at the first card should be dropped")
	}

	for i := 0; i < 20; i++ {
		if !c.ScrollCarousel(1) {
			break
		}
		settle(t, c)
		clock.Advance(DefaultSettleDelay)
	}
	if got := c.CurrentIndex(); got != 7 {
		t.Errorf("CurrentIndex = %d, want 7", got)
	}
	if got := strip.Offset(); got != strip.MaxOffset() {
		t.Errorf("offset = %v, want max %v", got, strip.MaxOffset())
	}
	if !right.Disabled {
		t.Errorf("right control should be disabled at the end")
	}
	if left.Disabled {
		t.Errorf("left control should be enabled at the end")
	}
}

func TestDrag_SnapsToNearestCard(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)

	c.DragStart(100)
	c.DragMove(0)
	if got := c.Strip().Offset(); got != 860 {
		t.Fatalf("offset during drag = %v, want 860", got)
	}
	c.DragEnd()
	if c.Dragging() {
		t.Fatal("drag still active after DragEnd")
	}
	if got := c.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex after snap = %d, want 1", got)
	}
	settle(t, c)
	if got := c.Strip().Offset(); got != 880 {
		t.Errorf("snapped offset = %v, want 880", got)
	}
}

func TestDrag_PastLeadingEdgeWraps(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)

	c.DragStart(0)
	c.DragMove(400) // 660 - 800 clamps to 0 and jumps by one lap
	c.DragEnd()
	settle(t, c)

	if got, want := c.Strip().Offset(), gridOffset(c); got != want {
		t.Errorf("resting offset = %v, want %v (index %d)", got, want, c.CurrentIndex())
	}
	if idx := c.CurrentIndex(); idx < 0 || idx >= c.CardCount() {
		t.Errorf("CurrentIndex %d out of range", idx)
	}
}

func TestScrollBy_WheelSnaps(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)

	c.ScrollBy(230)
	if got := c.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex = %d, want 1", got)
	}
	settle(t, c)
	if got := c.Strip().Offset(); got != 880 {
		t.Errorf("offset = %v, want 880", got)
	}

	fit, _, _, _ := newTestCarousel(t, 840, 2, true)
	fit.ScrollBy(500)
	if got := fit.Strip().Offset(); got != 0 {
		t.Errorf("non-scrollable strip moved to %v", got)
	}
}

func TestOnResize_KeepsCounts(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 840, 10, true)
	c.OnResize(500)

	if got := c.VisibleCount(); got != 3 {
		t.Errorf("VisibleCount after resize = %d, want 3", got)
	}
	if got := len(c.Strip().Cards()); got != 16 {
		t.Errorf("cards after resize = %d, want 16", got)
	}
	if c.Active() < 0 {
		t.Errorf("resize should recompute focus")
	}
}

// tickToRest runs frames 16ms apart until the scroll spring stops.
func tickToRest(t *testing.T, c *Carousel, clock *ManualClock) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		clock.Advance(16 * time.Millisecond)
		if !c.Tick() {
			return
		}
	}
	t.Fatalf("animation did not settle after 1000 frames (offset %.1f)", c.Strip().Offset())
}

// assertOnGrid checks that a wrapping strip at rest sits strictly inside the
// pad boundaries, a whole number of laps from the current card's resting
// offset, with the current card as the first visible one.
func assertOnGrid(t *testing.T, c *Carousel, label string) {
	t.Helper()
	strip := c.Strip()
	offset, limit := strip.Offset(), strip.MaxOffset()
	if offset <= 0 || offset >= limit {
		t.Errorf("%s: offset %v outside (0, %v)", label, offset, limit)
	}
	span := float64(c.CardCount()) * c.Pitch()
	d := math.Mod(offset-gridOffset(c), span)
	if d < 0 {
		d += span
	}
	if d > 1e-6 && span-d > 1e-6 {
		t.Errorf("%s: offset %v is %.1f px off the grid for index %d", label, offset, d, c.CurrentIndex())
		return
	}
	first := int(math.Round(offset / c.Pitch()))
	if first < 0 || first >= len(strip.Cards()) {
		t.Errorf("%s: first visible card %d out of range", label, first)
		return
	}
	if got := strip.Cards()[first].Source; got != c.CurrentIndex() {
		t.Errorf("%s: first visible card shows original %d, CurrentIndex %d", label, got, c.CurrentIndex())
	}
}

func TestWrap_RestsInsidePadBoundaries(t *testing.T) {
	tests := []struct {
		viewport float64
		cards    int
	}{
		{viewport: 438, cards: 2},
		{viewport: 866, cards: 9},
		{viewport: 870, cards: 10},
		{viewport: 660, cards: 4},
		{viewport: 440, cards: 9},
		{viewport: 840, cards: 10},
		{viewport: 1090, cards: 6},
	}
	for _, tt := range tests {
		c, clock, _, _ := newTestCarousel(t, tt.viewport, tt.cards, true)
		if !c.Scrollable() {
			t.Fatalf("viewport %v cards %d: not scrollable", tt.viewport, tt.cards)
		}
		limit := c.Strip().MaxOffset()
		for i := 0; i < tt.cards; i++ {
			if rest := c.StartScroll() + float64(i)*c.Pitch(); rest <= 0 || rest >= limit {
				t.Errorf("viewport %v: rest of card %d at %v outside (0, %v)", tt.viewport, i, rest, limit)
			}
		}

		steps := make([]int, 0, 4*tt.cards+2)
		for i := 0; i < 2*tt.cards+1; i++ {
			steps = append(steps, 1)
		}
		for i := 0; i < 2*tt.cards+1; i++ {
			steps = append(steps, -1)
		}
		for i, dir := range steps {
			if !c.ScrollCarousel(dir) {
				t.Fatalf("viewport %v: step %d dropped", tt.viewport, i)
			}
			tickToRest(t, c, clock)
			assertOnGrid(t, c, fmt.Sprintf("viewport %v cards %d step %d", tt.viewport, tt.cards, i))
		}
		if c.CurrentIndex() != 0 {
			t.Errorf("viewport %v: CurrentIndex = %d after a balanced walk, want 0", tt.viewport, c.CurrentIndex())
		}
	}
}

func TestDrag_PastTrailingEdgeRestsOnGrid(t *testing.T) {
	tests := []struct {
		viewport float64
		cards    int
	}{
		{viewport: 660, cards: 4},
		{viewport: 440, cards: 9},
		{viewport: 438, cards: 2},
		{viewport: 866, cards: 9},
	}
	for _, tt := range tests {
		label := fmt.Sprintf("viewport %v cards %d", tt.viewport, tt.cards)

		// Two moves inside the jump lock leave the strip pinned at MaxOffset.
		c, clock, _, _ := newTestCarousel(t, tt.viewport, tt.cards, true)
		c.DragStart(500)
		c.DragMove(-10000)
		c.DragMove(-10001)
		if got, limit := c.Strip().Offset(), c.Strip().MaxOffset(); got != limit {
			t.Fatalf("%s: pinned offset = %v, want %v", label, got, limit)
		}
		c.DragEnd()
		tickToRest(t, c, clock)
		assertOnGrid(t, c, label+" pinned")

		// A long drag across several laps.
		c, clock, _, _ = newTestCarousel(t, tt.viewport, tt.cards, true)
		c.DragStart(0)
		for x := -37.0; x > -3000; x -= 37 {
			clock.Advance(16 * time.Millisecond)
			c.DragMove(x)
		}
		c.DragEnd()
		tickToRest(t, c, clock)
		assertOnGrid(t, c, label+" long drag")
	}
}

func TestDrag_PastLeadingEdgeRestsOnGrid(t *testing.T) {
	c, clock, _, _ := newTestCarousel(t, 866, 9, true)
	c.DragStart(0)
	c.DragMove(10000)
	c.DragMove(10001)
	if got := c.Strip().Offset(); got != 0 {
		t.Fatalf("pinned offset = %v, want 0", got)
	}
	c.DragEnd()
	tickToRest(t, c, clock)
	assertOnGrid(t, c, "leading edge")
}

func TestSettle_SnapsOffGridRest(t *testing.T) {
	c, _, _, _ := newTestCarousel(t, 870, 10, true)
	c.Strip().SetOffset(c.Strip().MaxOffset())
	c.Settle()
	assertOnGrid(t, c, "settle")
	if got := c.Strip().Offset(); got != c.StartScroll() {
		t.Errorf("offset = %v, want %v", got, c.StartScroll())
	}
}

func TestSetup_TrailingPadOnlyWhenWrapping(t *testing.T) {
	wrapped, _, _, _ := newTestCarousel(t, 438, 2, true)
	// 4 cards of 200, 3 gaps and one trailing gap.
	if got := wrapped.Strip().ScrollWidth(); got != 880 {
		t.Errorf("wrapped ScrollWidth = %v, want 880", got)
	}
	clamped, _, _, _ := newTestCarousel(t, 438, 3, false)
	if got := clamped.Strip().ScrollWidth(); got != 640 {
		t.Errorf("clamped ScrollWidth = %v, want 640", got)
	}
}
