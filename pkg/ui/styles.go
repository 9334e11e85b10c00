package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumenpedia/lumen/pkg/render"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired, shared by cards, hero and overlays
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorText      = lipgloss.AdaptiveColor{Light: "#282A36", Dark: "#F8F8F2"}
	ColorSubtext   = lipgloss.AdaptiveColor{Light: "#44475A", Dark: "#BFBFBF"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#8A8FA8", Dark: "#6272A4"}
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#7C4DCC", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#4A5A8C", Dark: "#6272A4"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#FF79C6"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#8BE9FD"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5555"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#44475A"}
)

// Theme carries the renderer and semantic colors every view draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor
	Info      lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	// Background is the page color faded elements blend toward.
	Background string

	Base lipgloss.Style
}

// DefaultTheme builds the stock palette for the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:   r,
		Text:       ColorText,
		Subtext:    ColorSubtext,
		Muted:      ColorMuted,
		Primary:    ColorPrimary,
		Secondary:  ColorSecondary,
		Accent:     ColorAccent,
		Info:       ColorInfo,
		Danger:     ColorDanger,
		Border:     ColorBorder,
		Background: "#0a0a12",
		Base:       r.NewStyle().Foreground(ColorText),
	}
}

// Hex resolves an adaptive color against the terminal background.
func (t Theme) Hex(c lipgloss.AdaptiveColor) string {
	if t.Renderer != nil && !t.Renderer.HasDarkBackground() {
		return c.Light
	}
	return c.Dark
}

// Fade blends c toward the page background; opacity 1 returns c unchanged.
func (t Theme) Fade(c lipgloss.AdaptiveColor, opacity float64) string {
	hex := t.Hex(c)
	if opacity >= 1 {
		return hex
	}
	fg, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(t.Background)
	if err != nil {
		bg = colorful.Color{}
	}
	if opacity < 0 {
		opacity = 0
	}
	return bg.BlendRgb(fg, opacity).Clamped().Hex()
}

// Attr is the canvas attribute for foreground c.
func (t Theme) Attr(c lipgloss.AdaptiveColor) render.Attr {
	return render.Attr{FG: t.Hex(c)}
}
