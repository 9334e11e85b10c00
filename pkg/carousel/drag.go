package carousel

import "math"

// DragStart begins a pointer drag at horizontal position x (pixels).
func (c *Carousel) DragStart(x float64) {
	if c.strip == nil || !c.scrollable {
		return
	}
	c.anim.Stop()
	c.drag = dragState{active: true, startX: x, startOffset: c.strip.Offset()}
}

// DragMove scrolls by twice the pointer travel since DragStart.
func (c *Carousel) DragMove(x float64) {
	if !c.drag.active {
		return
	}
	walk := (x - c.drag.startX) * dragMultiplier
	c.strip.SetOffset(c.drag.startOffset - walk)
	c.OnScroll()
}

// Dragging reports whether a drag is in progress.
func (c *Carousel) Dragging() bool {
	return c.drag.active
}

// DragEnd releases the drag and snaps to the nearest card, re-deriving the
// current index from where the strip came to rest.
func (c *Carousel) DragEnd() {
	if !c.drag.active {
		return
	}
	c.drag = dragState{}
	c.snap()
}

// ScrollBy scrolls by dx pixels, as a mouse wheel does, and then settles on
// the nearest card.
func (c *Carousel) ScrollBy(dx float64) {
	if c.strip == nil || !c.scrollable || c.drag.active {
		return
	}
	c.anim.Stop()
	c.strip.SetOffset(c.strip.Offset() + dx)
	c.OnScroll()
	c.snap()
}

func (c *Carousel) snap() {
	pos := int(math.Round((c.strip.Offset() - c.StartScroll()) / c.Pitch()))
	if !c.cfg.Wrap {
		pos = clampInt(pos, 0, c.maxClampedIndex())
	}
	c.scrollToIndex(pos, true)
}
