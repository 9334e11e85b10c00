package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenpedia/lumen/pkg/model"
)

// DetailModel shows one entry's article rendered from markdown.
type DetailModel struct {
	visible  bool
	entry    model.Entry
	viewport viewport.Model
	width    int
	height   int
	theme    Theme
}

// NewDetailModel creates a hidden detail view.
func NewDetailModel(theme Theme) DetailModel {
	vp := viewport.New(40, 20)
	vp.Style = lipgloss.NewStyle()
	return DetailModel{theme: theme, viewport: vp}
}

// Show opens the article for e.
func (m *DetailModel) Show(e model.Entry) {
	m.entry = e
	m.visible = true
	m.updateContent()
}

// Hide closes the view.
func (m *DetailModel) Hide() {
	m.visible = false
}

// IsVisible returns true if the article is showing.
func (m DetailModel) IsVisible() bool {
	return m.visible
}

// Entry returns the entry being shown.
func (m DetailModel) Entry() model.Entry {
	return m.entry
}

// SetSize sets dimensions and re-wraps the article.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 20)
	m.viewport.Height = max(height-6, MinContentHeight)
	if m.visible {
		m.updateContent()
	}
}

// markdown assembles the article source.
func (m DetailModel) markdown() string {
	var sb strings.Builder
	sb.WriteString("# " + m.entry.Title + "\n\n")
	body := strings.TrimSpace(m.entry.Body)
	if body == "" {
		body = m.entry.Summary
	}
	if body == "" {
		body = "_No article text._"
	}
	sb.WriteString(body + "\n")
	if len(m.entry.Tags) > 0 {
		sb.WriteString("\n**Tags:** " + strings.Join(m.entry.Tags, ", ") + "\n")
	}
	if m.entry.Link != "" {
		sb.WriteString("\n" + m.entry.Link + "\n")
	}
	return sb.String()
}

func (m *DetailModel) updateContent() {
	src := m.markdown()
	content := src
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(m.viewport.Width),
	)
	if err == nil {
		content, err = r.Render(src)
	}
	if err != nil {
		log.Printf("ui: rendering %s: %v", m.entry.ID, err)
		content = src
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// Update scrolls the article; Esc, q and Enter close it.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q", "enter":
			m.visible = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the article box.
func (m DetailModel) View() string {
	if !m.visible {
		return ""
	}
	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	hint := hintStyle.Render("[j/k] Scroll  [y] Copy link  [Esc] Close")

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(0, 1)
	box := boxStyle.Render(m.viewport.View() + "\n" + hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
