package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// hit returns the topmost zone under (x, y).
func (m *Model) hit(x, y int) (zone, bool) {
	zones := m.compose()
	for i := len(zones) - 1; i >= 0; i-- {
		if zones[i].contains(x, y) {
			return zones[i], true
		}
	}
	return zone{}, false
}

// stripAt returns the index of the strip under (x, y), or -1.
func (m *Model) stripAt(x, y int) int {
	zones := m.compose()
	for i := len(zones) - 1; i >= 0; i-- {
		z := zones[i]
		if !z.contains(x, y) {
			continue
		}
		switch z.kind {
		case zoneStrip, zoneCard, zoneControl:
			return z.strip
		}
	}
	return -1
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.helpOverlay.IsVisible() || m.detail.IsVisible() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.helpOverlay.Hide()
			m.detail.Hide()
		}
		return
	}

	px, py := m.toPixels(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.field != nil {
			m.field.PointerMove(px, py)
		}
		if m.drag.active && m.drag.strip < len(m.strips) {
			if msg.X != m.drag.startX {
				m.drag.moved = true
			}
			m.strips[m.drag.strip].car.DragMove(float64(msg.X) * m.ppc())
		}

	case tea.MouseActionRelease:
		m.endDrag()

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			dir := 1
			if msg.Button == tea.MouseButtonWheelUp {
				dir = -1
			}
			if msg.Shift {
				m.wheelStrip(msg.X, msg.Y, dir)
				return
			}
			m.scrollPage(3 * dir)
		case tea.MouseButtonWheelLeft:
			m.wheelStrip(msg.X, msg.Y, -1)
		case tea.MouseButtonWheelRight:
			m.wheelStrip(msg.X, msg.Y, 1)
		case tea.MouseButtonLeft:
			m.click(msg.X, msg.Y, px, py)
		}
	}
}

// wheelStrip scrolls the strip under the pointer by one card.
func (m *Model) wheelStrip(x, y, dir int) {
	i := m.stripAt(x, y)
	if i < 0 {
		return
	}
	s := m.strips[i]
	m.focus = i
	s.car.ScrollBy(float64(dir) * s.car.Pitch())
}

func (m *Model) click(x, y int, px, py float64) {
	z, ok := m.hit(x, y)
	if !ok {
		if m.searching {
			m.searching = false
			m.search.Blur()
		}
		if m.field != nil {
			m.field.Burst(px, py)
		}
		return
	}

	switch z.kind {
	case zoneSearch:
		m.focusSearch()
	case zoneLetter:
		m.selectLetter(z.letter)
	case zoneHero:
		m.hero.Toggle(z.side)
	case zoneHeroClose:
		m.hero.Close()
	case zoneControl:
		m.focus = z.strip
		m.strips[z.strip].car.ScrollCarousel(z.dir)
	case zoneCard:
		m.focus = z.strip
		m.strips[z.strip].car.DragStart(float64(x) * m.ppc())
		m.drag = dragState{active: true, strip: z.strip, card: z.card, startX: x}
	case zoneStrip:
		m.focus = z.strip
	}
}

// endDrag releases a card drag. A press and release without movement opens
// the card.
func (m *Model) endDrag() {
	if !m.drag.active {
		return
	}
	d := m.drag
	m.drag = dragState{}
	if d.strip >= len(m.strips) {
		return
	}
	s := m.strips[d.strip]
	e, ok := s.entryAt(d.card)
	s.car.DragEnd()
	if !d.moved && ok {
		m.detail.Show(e)
	}
}
