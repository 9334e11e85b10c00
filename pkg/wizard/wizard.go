// Package wizard runs the interactive form behind `lumen init`.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumenpedia/lumen/pkg/config"
	"github.com/lumenpedia/lumen/pkg/particles"
)

// ErrAborted is returned when the user quits the form.
var ErrAborted = errors.New("setup aborted")

// themeNames label particles.DefaultPalettes in order.
var themeNames = []string{"Cyan", "Magenta", "Green", "Red"}

// Answers holds the form fields.
type Answers struct {
	Paths      string
	Watch      bool
	Wrap       bool
	Particles  bool
	Theme      int
	SearchMode string
	Images     bool
	Background string
}

// AnswersFrom pre-fills the form from cfg.
func AnswersFrom(cfg *config.Config) Answers {
	return Answers{
		Paths:      strings.Join(cfg.Catalog.Paths, ", "),
		Watch:      cfg.Catalog.Watch,
		Wrap:       cfg.Carousel.Wrap,
		Particles:  cfg.Particles.Enabled,
		Theme:      cfg.Particles.Theme,
		SearchMode: cfg.Search.Mode,
		Images:     cfg.UI.Images,
		Background: cfg.UI.Background,
	}
}

// Apply returns a copy of base with the answers written into it.
func (a Answers) Apply(base *config.Config) *config.Config {
	cfg := *base
	cfg.Catalog.Paths = splitPatterns(a.Paths)
	cfg.Catalog.Watch = a.Watch
	cfg.Carousel.Wrap = a.Wrap
	cfg.Particles.Enabled = a.Particles
	cfg.Particles.Theme = a.Theme
	cfg.Search.Mode = a.SearchMode
	cfg.UI.Images = a.Images
	cfg.UI.Background = strings.TrimSpace(a.Background)
	return &cfg
}

// Form builds the huh form bound to a.
func (a *Answers) Form() *huh.Form {
	themes := make([]huh.Option[int], 0, len(particles.DefaultPalettes))
	for i := range particles.DefaultPalettes {
		name := fmt.Sprintf("Theme %d", i+1)
		if i < len(themeNames) {
			name = themeNames[i]
		}
		themes = append(themes, huh.NewOption(name, i))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to lumen").
				Description("Answer a few questions to write your config file."),
			huh.NewInput().
				Title("Catalog files").
				Description("Comma-separated paths or ** globs (.jsonl, .yaml, .db)").
				Value(&a.Paths).
				Validate(ValidatePatterns),
			huh.NewConfirm().
				Title("Reload when catalog files change?").
				Value(&a.Watch),
			huh.NewSelect[string]().
				Title("Search").
				Options(
					huh.NewOption("Substring", config.SearchSubstring),
					huh.NewOption("Fuzzy", config.SearchFuzzy),
				).
				Value(&a.SearchMode),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Wrap carousels around?").
				Value(&a.Wrap),
			huh.NewConfirm().
				Title("Show thumbnails?").
				Value(&a.Images),
			huh.NewConfirm().
				Title("Animate the particle background?").
				Value(&a.Particles),
			huh.NewSelect[int]().
				Title("Particle theme").
				Options(themes...).
				Value(&a.Theme),
			huh.NewInput().
				Title("Background color").
				Placeholder("#0a0a12").
				Value(&a.Background).
				Validate(ValidateColor),
		),
	).WithTheme(huh.ThemeDracula())
}

// ValidatePatterns accepts a non-empty list of well-formed glob patterns.
func ValidatePatterns(s string) error {
	patterns := splitPatterns(s)
	if len(patterns) == 0 {
		return errors.New("at least one catalog path is required")
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("bad pattern %q", p)
		}
	}
	return nil
}

// ValidateColor accepts an empty value or a #rrggbb color.
func ValidateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("%q is not a #rrggbb color", s)
	}
	return nil
}

// splitPatterns splits on commas outside {a,b} alternations.
func splitPatterns(s string) []string {
	var out []string
	depth, start := 0, 0
	flush := func(end int) {
		if p := strings.TrimSpace(s[start:end]); p != "" {
			out = append(out, p)
		}
		start = end + 1
	}
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
			}
		}
	}
	flush(len(s))
	return out
}

// Run shows the form pre-filled from base, then validates and saves the
// result to path.
func Run(path string, base *config.Config, accessible bool) (*config.Config, error) {
	if base == nil {
		base = config.Default()
	}
	answers := AnswersFrom(base)
	form := answers.Form().WithAccessible(accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("running setup form: %w", err)
	}

	cfg := answers.Apply(base)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	return cfg, nil
}
