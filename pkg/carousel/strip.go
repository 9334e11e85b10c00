package carousel

// Style is the per-card visual state produced by focus tracking.
type Style struct {
	Scale   float64
	Opacity float64
	Active  bool
}

// Neutral is the undecorated card state (scale 1, opacity 1, not active).
var Neutral = Style{Scale: 1, Opacity: 1}

// Card is one rendered card in a strip. Clones are visual duplicates of the
// original at index Source and are never authoritative.
type Card struct {
	Source int
	Clone  bool
	Width  float64
	Style  Style
}

// Control is a left/right scroll button.
type Control struct {
	Visible  bool
	Disabled bool
	Opacity  float64
}

func (c *Control) show() {
	c.Visible = true
	c.Disabled = false
	c.Opacity = 1
}

func (c *Control) hide() {
	c.Visible = false
	c.Disabled = false
	c.Opacity = 1
}

// Strip is a horizontally scrollable container of cards, measured in
// virtual pixels. The offset is clamped to [0, ScrollWidth-ClientWidth] like a
// browser scroll container.
type Strip struct {
	viewport float64
	gap      float64
	endPad   float64
	offset   float64
	cards    []*Card
}

// NewStrip creates a strip with n original cards of the given natural width.
// A non-positive width leaves the cards unmeasured until Setup locks them.
func NewStrip(viewport float64, n int, naturalWidth float64) *Strip {
	s := &Strip{viewport: viewport}
	s.cards = make([]*Card, n)
	for i := range s.cards {
		s.cards[i] = &Card{Source: i, Width: naturalWidth, Style: Neutral}
	}
	return s
}

// SetGap records the gap measured from layout. Zero means "not measured".
func (s *Strip) SetGap(gap float64) {
	s.gap = gap
}

// Gap returns the measured gap, or 0 if none was set.
func (s *Strip) Gap() float64 {
	return s.gap
}

// Cards returns every rendered card, clones included, in display order.
func (s *Strip) Cards() []*Card {
	return s.cards
}

// Originals returns the non-clone cards in display order.
func (s *Strip) Originals() []*Card {
	out := make([]*Card, 0, len(s.cards))
	for _, c := range s.cards {
		if !c.Clone {
			out = append(out, c)
		}
	}
	return out
}

// Clones returns the number of clone cards currently inserted.
func (s *Strip) Clones() int {
	n := 0
	for _, c := range s.cards {
		if c.Clone {
			n++
		}
	}
	return n
}

func (s *Strip) removeClones() {
	kept := s.cards[:0]
	for _, c := range s.cards {
		if !c.Clone {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(s.cards); i++ {
		s.cards[i] = nil
	}
	s.cards = kept
}

func (s *Strip) prepend(c *Card) {
	s.cards = append([]*Card{c}, s.cards...)
}

func (s *Strip) append(c *Card) {
	s.cards = append(s.cards, c)
}

// ClientWidth is the visible viewport width.
func (s *Strip) ClientWidth() float64 {
	return s.viewport
}

// SetViewport changes the viewport width (terminal resize) and re-clamps the
// offset.
func (s *Strip) SetViewport(w float64) {
	s.viewport = w
	s.SetOffset(s.offset)
}

// ScrollWidth is the total content width plus any trailing padding, never
// less than the viewport.
func (s *Strip) ScrollWidth() float64 {
	total := 0.0
	for i, c := range s.cards {
		if i > 0 {
			total += s.gap
		}
		total += c.Width
	}
	if len(s.cards) > 0 {
		total += s.endPad
	}
	if total < s.viewport {
		return s.viewport
	}
	return total
}

// MaxOffset is the largest reachable scroll offset.
func (s *Strip) MaxOffset() float64 {
	return s.ScrollWidth() - s.viewport
}

// Offset is the current horizontal scroll distance.
func (s *Strip) Offset() float64 {
	return s.offset
}

// SetOffset moves the scroll position, clamped to the reachable range.
func (s *Strip) SetOffset(x float64) {
	if limit := s.MaxOffset(); x > limit {
		x = limit
	}
	if x < 0 {
		x = 0
	}
	s.offset = x
}

// CardLeft returns the left edge of card i in content coordinates.
func (s *Strip) CardLeft(i int) float64 {
	left := 0.0
	for j := 0; j < i && j < len(s.cards); j++ {
		left += s.cards[j].Width + s.gap
	}
	return left
}
