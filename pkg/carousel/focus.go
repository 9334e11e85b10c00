package carousel

import "math"

// FocusStyle maps a card-center distance from the container center to its
// scale and opacity.
func FocusStyle(distance float64) Style {
	return Style{
		Scale:   math.Max(minScale, 1-distance/scaleFalloff),
		Opacity: math.Max(minOpacity, 1-distance/opacityFalloff),
	}
}

// UpdateCardFocus restyles every rendered card, clones included, by its
// distance from the container center. The closest card becomes active. It is
// pure over the strip geometry, so repeated calls without scrolling assign the
// same styles.
func (c *Carousel) UpdateCardFocus() {
	if c.strip == nil || !c.scrollable {
		return
	}
	center := c.strip.ClientWidth() / 2
	offset := c.strip.Offset()

	closest := -1
	closestDistance := math.Inf(1)
	left := 0.0
	for i, card := range c.strip.cards {
		if i > 0 {
			left += c.strip.gap
		}
		cardCenter := left - offset + card.Width/2
		distance := math.Abs(center - cardCenter)
		card.Style = FocusStyle(distance)
		if distance < closestDistance {
			closestDistance = distance
			closest = i
		}
		left += card.Width
	}

	if closest >= 0 {
		c.strip.cards[closest].Style = Style{Scale: activeScale, Opacity: 1, Active: true}
	}
}

// Active returns the index (in display order) of the active card, or -1.
func (c *Carousel) Active() int {
	if c.strip == nil {
		return -1
	}
	for i, card := range c.strip.cards {
		if card.Style.Active {
			return i
		}
	}
	return -1
}

// ActiveSource returns the original index behind the active card. When no
// card is active (non-scrollable strips) the current index is returned.
func (c *Carousel) ActiveSource() int {
	if i := c.Active(); i >= 0 {
		return c.strip.cards[i].Source
	}
	if c.cardCount == 0 {
		return -1
	}
	return c.currentIndex
}

// Styles returns a snapshot of every card's style in display order.
func (c *Carousel) Styles() []Style {
	if c.strip == nil {
		return nil
	}
	out := make([]Style, len(c.strip.cards))
	for i, card := range c.strip.cards {
		out[i] = card.Style
	}
	return out
}
