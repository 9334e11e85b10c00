package ui

// Layout breakpoints for responsive design.
const (
	// BreakpointNarrow is the width below which hero images drop their
	// thumbnails and show captions only.
	BreakpointNarrow = 80

	// BreakpointMedium is the width from which the help overlay uses two
	// columns.
	BreakpointMedium = 100
)

// Page rows.
const (
	headerRows = 3 // title + search, alphabet bar, divider
	footerRows = 1

	// HeroHeight is the hero block height including its borders.
	HeroHeight = 8

	// CardHeight is a neutral card's height including its borders. The
	// active card grows one row above and below.
	CardHeight = 7

	// StripHeight leaves room for the active card's growth.
	StripHeight = CardHeight + 2

	// ControlWidth is the width of a scroll button.
	ControlWidth = 3

	// stripMargin is the blank column outside each control.
	stripMargin = 1
)

// Card shapes by focus scale.
const (
	// Cards scaled below this are drawn inset by one cell on every side.
	insetScale = 0.925
	// Cards at or below this opacity are drawn faint.
	faintOpacity = 0.75
)

// Box and panel dimension constraints.
const (
	// MinBoxWidth is the narrowest bordered box worth drawing.
	MinBoxWidth = 6

	// MinContentHeight is the minimum height for scrollable content areas.
	MinContentHeight = 5
)

// stripViewport is the strip width in cells for a terminal width.
func stripViewport(width int) int {
	vw := width - 2*(stripMargin+ControlWidth)
	if vw < 0 {
		return 0
	}
	return vw
}

// contentHeight is the number of rows between the header and the footer.
func contentHeight(height int) int {
	h := height - headerRows - footerRows
	if h < 0 {
		return 0
	}
	return h
}
