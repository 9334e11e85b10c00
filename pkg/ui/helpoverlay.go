package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel lists every key binding, grouped by section.
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme
	keys    keyMap
}

// NewHelpOverlayModel returns a hidden overlay.
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
		keys:  defaultKeyMap(),
	}
}

func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle opens or closes the overlay.
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible reports whether the overlay is open.
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize records the terminal size for column layout.
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update closes the overlay on any key.
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		m.visible = false
	}

	return m, nil
}

// View renders the bindings in a rounded box.
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(8)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	var blocks []string
	for _, s := range m.keys.sections() {
		var b strings.Builder
		b.WriteString(sectionStyle.Render(s.title) + "\n")
		for _, kb := range s.bindings {
			h := kb.Help()
			b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
		blocks = append(blocks, b.String())
	}

	var body string
	if m.width >= BreakpointMedium {
		half := (len(blocks) + 1) / 2
		left := lipgloss.JoinVertical(lipgloss.Left, blocks[:half]...)
		right := lipgloss.JoinVertical(lipgloss.Left, blocks[half:]...)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		MarginBottom(1)
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)

	content := titleStyle.Render("Lumen Help") + "\n" + body + "\n" +
		hintStyle.Render("[Press any key to close]")

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(content)
}
