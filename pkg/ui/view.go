package ui

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lumenpedia/lumen/pkg/carousel"
	"github.com/lumenpedia/lumen/pkg/model"
	"github.com/lumenpedia/lumen/pkg/render"
)

type zoneKind int

const (
	zoneSearch zoneKind = iota
	zoneLetter
	zoneHero
	zoneHeroClose
	zoneControl
	zoneCard
	zoneStrip
)

// zone is a clickable rectangle produced while composing a frame.
type zone struct {
	kind       zoneKind
	x, y, w, h int

	letter string
	side   HeroSide
	strip  int
	card   int
	dir    int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x && x < z.x+z.w && y >= z.y && y < z.y+z.h
}

// pageLayout places the scrollable blocks in content rows (row 0 is the
// first row under the header).
type pageLayout struct {
	heroTop   int
	heroRows  int
	noMatch   int // -1 when there is no message
	stripTops []int
	total     int
}

func (m *Model) pageLayout() pageLayout {
	var l pageLayout
	row := 0
	if !heroEmpty(m.browser.Catalog().Hero) {
		l.heroTop = row
		l.heroRows = HeroHeight
		row += HeroHeight + 1
	}
	l.noMatch = -1
	if m.noMatch != "" {
		l.noMatch = row
		row += 2
	}
	for range m.strips {
		l.stripTops = append(l.stripTops, row)
		row += 1 + StripHeight + 1
	}
	l.total = row
	return l
}

func (m *Model) maxScroll() int {
	return max(m.pageLayout().total-contentHeight(m.height), 0)
}

func (m *Model) clampScroll() {
	m.scroll = min(max(m.scroll, 0), m.maxScroll())
}

func (m *Model) scrollPage(delta int) {
	m.scroll += delta
	m.clampScroll()
}

// ensureFocusVisible scrolls so the focused strip's title and cards are on
// screen.
func (m *Model) ensureFocusVisible() {
	l := m.pageLayout()
	if m.focus < 0 || m.focus >= len(l.stripTops) {
		return
	}
	top := l.stripTops[m.focus]
	bottom := top + 1 + StripHeight
	ch := contentHeight(m.height)
	if top < m.scroll {
		m.scroll = top
	} else if bottom > m.scroll+ch {
		m.scroll = bottom - ch
	}
	m.clampScroll()
}

func (m *Model) searchWidth() int {
	return min(32, max(m.width/3, 12))
}

// compose draws the whole frame onto the canvas and returns its hit zones,
// topmost last.
func (m *Model) compose() []zone {
	c := m.canvas
	c.Unclip()
	c.Clear()
	if m.field != nil {
		c.DrawBraille(0, 0, m.braille)
	}

	var zones []zone
	zones = append(zones, m.drawContent(c)...)
	c.Unclip()
	zones = append(zones, m.drawHeader(c)...)
	m.drawFooter(c)
	return zones
}

func (m *Model) drawHeader(c *render.Canvas) []zone {
	t := m.theme
	var zones []zone
	c.Fill(0, 0, m.width, headerRows, ' ', render.Attr{})

	title := m.browser.Catalog().Title
	if title == "" {
		title = "Lumen"
	}
	sw := m.searchWidth()
	c.Text(1, 0, title, render.Attr{FG: t.Hex(t.Primary), Bold: true}, m.width-sw-3)

	sx := m.width - sw - 1
	icon := render.Attr{FG: t.Hex(t.Secondary)}
	if m.searching {
		icon.FG = t.Hex(t.Accent)
	}
	c.Text(sx, 0, "/ ", icon, 2)
	field := sw - 2
	value := m.search.Value()
	switch {
	case value == "" && !m.searching:
		c.Text(sx+2, 0, m.search.Placeholder, render.Attr{FG: t.Hex(t.Muted), Faint: true}, field)
	default:
		if m.searching {
			field--
		}
		for runewidth.StringWidth(value) > field && value != "" {
			_, size := utf8.DecodeRuneInString(value)
			value = value[size:]
		}
		used := c.Text(sx+2, 0, value, render.Attr{FG: t.Hex(t.Text), Underline: true}, field)
		if m.searching {
			c.Set(sx+2+used, 0, ' ', render.Attr{BG: t.Hex(t.Accent)})
		}
	}
	zones = append(zones, zone{kind: zoneSearch, x: sx, y: 0, w: sw, h: 1})

	x := 1
	for _, b := range m.browser.Letters() {
		a := render.Attr{FG: t.Hex(t.Text)}
		switch {
		case b.Disabled:
			a = render.Attr{FG: t.Fade(t.Muted, 0.6), Faint: true}
		case b.Active:
			a = render.Attr{FG: t.Background, BG: t.Hex(t.Primary), Bold: true}
		}
		w := c.Text(x, 1, b.Label, a, m.width-x-1)
		if w == 0 {
			break
		}
		if !b.Disabled {
			zones = append(zones, zone{kind: zoneLetter, x: x, y: 1, w: w, h: 1, letter: b.Letter})
		}
		x += w + 1
	}

	c.Fill(0, 2, m.width, 1, '─', render.Attr{FG: t.Hex(t.Border)})
	return zones
}

func (m *Model) drawFooter(c *render.Canvas) {
	t := m.theme
	y := m.height - 1
	c.Fill(0, y, m.width, 1, ' ', render.Attr{})
	if m.status != "" {
		c.Text(1, y, m.status, render.Attr{FG: t.Hex(t.Info)}, m.width-2)
		return
	}
	x := 1
	for i, kb := range m.keys.ShortHelp() {
		h := kb.Help()
		if i > 0 {
			x += c.Text(x, y, " • ", render.Attr{FG: t.Hex(t.Border)}, m.width-x)
		}
		x += c.Text(x, y, h.Key, render.Attr{FG: t.Hex(t.Subtext)}, m.width-x)
		x += c.Text(x, y, " "+h.Desc, render.Attr{FG: t.Hex(t.Muted)}, m.width-x)
	}
}

// rect is a screen rectangle.
type rect struct{ x, y, w, h int }

func (r rect) intersect(o rect) rect {
	x0, y0 := max(r.x, o.x), max(r.y, o.y)
	x1, y1 := min(r.x+r.w, o.x+o.w), min(r.y+r.h, o.y+o.h)
	if x1 <= x0 || y1 <= y0 {
		return rect{}
	}
	return rect{x0, y0, x1 - x0, y1 - y0}
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (m *Model) contentRect() rect {
	return rect{0, headerRows, m.width, contentHeight(m.height)}
}

// clipTo clips drawing to r; an empty r clips everything.
func clipTo(c *render.Canvas, r rect) {
	c.Clip(r.x, r.y, r.w, r.h)
}

func (m *Model) drawContent(c *render.Canvas) []zone {
	view := m.contentRect()
	if view.empty() {
		return nil
	}
	l := m.pageLayout()
	top := view.y - m.scroll
	var zones []zone

	if l.heroRows > 0 {
		zones = append(zones, m.drawHero(c, view, top+l.heroTop)...)
	}

	if l.noMatch >= 0 {
		clipTo(c, view)
		c.Text(2, top+l.noMatch, m.noMatch, render.Attr{FG: m.theme.Hex(m.theme.Danger)}, m.width-4)
	}

	for i, s := range m.strips {
		zones = append(zones, m.drawStrip(c, view, i, s, top+l.stripTops[i])...)
	}
	return zones
}

func (m *Model) drawHero(c *render.Canvas, view rect, y int) []zone {
	t := m.theme
	hero := m.browser.Catalog().Hero
	var zones []zone

	x, w := 1, m.width-2
	type col struct {
		side HeroSide
		x, w int
	}
	var cols []col
	switch m.hero.Expanded() {
	case HeroNone:
		half := (w - 1) / 2
		cols = []col{{HeroClassic, x, half}, {HeroMain, x + half + 1, w - half - 1}}
	default:
		cols = []col{{m.hero.Expanded(), x, w}}
	}

	for _, cl := range cols {
		if cl.w < MinBoxWidth {
			continue
		}
		state := m.hero.Column(cl.side)
		if state.Hidden {
			continue
		}
		img := heroImage(hero, cl.side)
		box := rect{cl.x, y, cl.w, HeroHeight}

		clipTo(c, view)
		border := render.Attr{FG: t.Hex(t.Border)}
		if state.Expanded {
			border.FG = t.Hex(t.Primary)
		}
		c.Box(box.x, box.y, box.w, box.h, lipgloss.RoundedBorder(), border)
		innerW := cl.w - 4
		c.Text(cl.x+2, y+1, img.Title, render.Attr{FG: t.Hex(t.Text), Bold: true}, innerW)

		textX, textW := cl.x+2, innerW
		rows := HeroHeight - 3
		if m.width >= BreakpointNarrow && m.cfg.UI.Images {
			thumbW := min(innerW/3, 2*rows+4)
			if th := m.thumbs.get(img.Thumb.Path, thumbW, rows); th != nil {
				c.DrawThumbnail(cl.x+2, y+2, th, state.Gray)
				textX += thumbW + 2
				textW -= thumbW + 2
			}
		}
		caption := img.Caption
		if caption == "" {
			caption = img.Thumb.Alt
		}
		if textW > 0 {
			lines := strings.Split(wordwrap.String(caption, textW), "\n")
			for i := 0; i < rows && i < len(lines); i++ {
				c.Text(textX, y+2+i, lines[i], render.Attr{FG: t.Hex(t.Subtext)}, textW)
			}
		}

		if hit := box.intersect(view); !hit.empty() {
			zones = append(zones, zone{kind: zoneHero, x: hit.x, y: hit.y, w: hit.w, h: hit.h, side: cl.side})
		}
		if state.CloseVisible {
			cx := cl.x + cl.w - 4
			c.Text(cx, y, "[x]", render.Attr{FG: t.Hex(t.Danger), Bold: true}, 3)
			if hit := (rect{cx, y, 3, 1}).intersect(view); !hit.empty() {
				zones = append(zones, zone{kind: zoneHeroClose, x: hit.x, y: hit.y, w: hit.w, h: hit.h})
			}
		}
	}
	return zones
}

func (m *Model) drawStrip(c *render.Canvas, view rect, idx int, s *stripView, y int) []zone {
	t := m.theme
	var zones []zone

	clipTo(c, view)
	titleAttr := render.Attr{FG: t.Hex(t.Secondary), Bold: true}
	marker := "  "
	if s.active {
		titleAttr.FG = t.Hex(t.Accent)
	}
	if idx == m.focus {
		marker = "▸ "
		titleAttr.FG = t.Hex(t.Primary)
	}
	x := 1 + c.Text(1, y, marker, titleAttr, 2)
	x += c.Text(x, y, s.title, titleAttr, m.width-x-1)
	if n := len(s.entries); n > 0 {
		c.Text(x+1, y, "("+strconv.Itoa(n)+")", render.Attr{FG: t.Hex(t.Muted)}, m.width-x-2)
	}

	rowTop := y + 1
	vx := stripMargin + ControlWidth
	vw := stripViewport(m.width)
	stripRect := rect{vx, rowTop, vw, StripHeight}
	if hit := stripRect.intersect(view); !hit.empty() {
		zones = append(zones, zone{kind: zoneStrip, x: hit.x, y: hit.y, w: hit.w, h: hit.h, strip: idx})
	}

	zones = append(zones, m.drawControl(c, view, idx, s.left, stripMargin, rowTop, "‹", -1)...)
	zones = append(zones, m.drawControl(c, view, idx, s.right, vx+vw, rowTop, "›", 1)...)

	clip := stripRect.intersect(view)
	if clip.empty() {
		return zones
	}
	clipTo(c, clip)
	ppc := m.ppc()
	offset := s.strip.Offset()
	for i, card := range s.strip.Cards() {
		left := s.strip.CardLeft(i) - offset
		cx := vx + int(math.Round(left/ppc))
		cw := int(math.Round(card.Width / ppc))
		if cx+cw <= vx || cx >= vx+vw {
			continue
		}
		e, ok := s.entryAt(i)
		if !ok {
			continue
		}
		box := m.cardBox(cx, rowTop+1, cw, card.Style)
		m.drawCard(c, box, e, card.Style, idx == m.focus)
		if hit := box.intersect(clip); !hit.empty() {
			zones = append(zones, zone{kind: zoneCard, x: hit.x, y: hit.y, w: hit.w, h: hit.h, strip: idx, card: i})
		}
	}
	return zones
}

// cardBox maps a focus style to the card's cell rectangle: the active card
// grows a row above and below, distant cards shrink by a cell on each side.
func (m *Model) cardBox(x, y, w int, st carousel.Style) rect {
	switch {
	case st.Active:
		return rect{x, y - 1, w, CardHeight + 2}
	case st.Scale < insetScale:
		return rect{x + 1, y + 1, w - 2, CardHeight - 2}
	default:
		return rect{x, y, w, CardHeight}
	}
}

func (m *Model) drawCard(c *render.Canvas, box rect, e model.Entry, st carousel.Style, focused bool) {
	t := m.theme
	if box.w < 3 || box.h < 3 {
		return
	}
	faint := st.Opacity <= faintOpacity
	border := lipgloss.RoundedBorder()
	borderAttr := render.Attr{FG: t.Fade(t.Border, st.Opacity), Faint: faint}
	titleAttr := render.Attr{FG: t.Fade(t.Text, st.Opacity), Bold: true, Faint: faint}
	if st.Active {
		border = lipgloss.ThickBorder()
		borderAttr = render.Attr{FG: t.Hex(t.Secondary)}
		if focused {
			borderAttr = render.Attr{FG: t.Hex(t.Primary), Bold: true}
		}
		titleAttr = render.Attr{FG: t.Hex(t.Text), Bold: true}
	}
	c.Box(box.x, box.y, box.w, box.h, border, borderAttr)

	ix, iw := box.x+1, box.w-2
	rows := box.h - 2
	y := box.y + 1
	c.Text(ix, y, e.Title, titleAttr, iw)
	y++
	rows--

	textAttr := render.Attr{FG: t.Fade(t.Subtext, st.Opacity), Faint: faint}
	if rows >= 3 && m.cfg.UI.Images {
		if th := m.thumbs.get(e.Thumb.Path, iw, rows-1); th != nil {
			c.DrawThumbnail(ix, y, th, false)
			c.Text(ix, y+rows-1, e.Thumb.Alt, textAttr, iw)
			return
		}
	}
	text := e.Summary
	if text == "" {
		text = e.Thumb.Alt
	}
	lines := strings.Split(wordwrap.String(text, iw), "\n")
	for i := 0; i < rows && i < len(lines); i++ {
		c.Text(ix, y+i, lines[i], textAttr, iw)
	}
}

func (m *Model) drawControl(c *render.Canvas, view rect, idx int, ctl *carousel.Control, x, y int, glyph string, dir int) []zone {
	if ctl == nil || !ctl.Visible {
		return nil
	}
	t := m.theme
	clipTo(c, view)
	a := render.Attr{FG: t.Fade(t.Primary, ctl.Opacity), Bold: !ctl.Disabled, Faint: ctl.Disabled}
	mid := y + StripHeight/2
	c.Text(x, mid-1, "╭─╮", a, ControlWidth)
	c.Text(x, mid, "│"+glyph+"│", a, ControlWidth)
	c.Text(x, mid+1, "╰─╯", a, ControlWidth)
	if ctl.Disabled {
		return nil
	}
	hit := (rect{x, mid - 1, ControlWidth, 3}).intersect(view)
	if hit.empty() {
		return nil
	}
	return []zone{{kind: zoneControl, x: hit.x, y: hit.y, w: hit.w, h: hit.h, strip: idx, dir: dir}}
}
