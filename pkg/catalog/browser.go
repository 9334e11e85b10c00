// Package catalog decides which sections and cards are visible for the
// current letter filter and search query.
package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/lumenpedia/lumen/pkg/model"
)

// AllLabel is the label of the button that clears the letter filter.
const AllLabel = "ALL"

// Mode selects how queries match entries.
type Mode int

const (
	// Substring matches a case-insensitive substring of the title or image alt.
	Substring Mode = iota
	// Fuzzy matches the query characters in order, as sahilm/fuzzy does.
	Fuzzy
)

// ParseMode maps "fuzzy" to Fuzzy and anything else to Substring.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, "fuzzy") {
		return Fuzzy
	}
	return Substring
}

// LetterButton is one entry of the A-Z bar.
type LetterButton struct {
	Label    string
	Letter   string // "" for ALL
	Disabled bool
	Active   bool
}

// SectionView is a visible section and its visible cards.
type SectionView struct {
	Letter  string
	Active  bool
	Entries []model.Entry
}

// View is everything the page shows below the hero.
type View struct {
	PopularVisible bool
	Popular        []model.Entry
	Sections       []SectionView
	NoResults      string
}

// Browser holds the filter state over a catalog. The zero letter and empty
// query show everything.
type Browser struct {
	cat    model.Catalog
	mode   Mode
	query  string
	letter string
}

// NewBrowser starts with everything visible.
func NewBrowser(cat model.Catalog, mode Mode) *Browser {
	return &Browser{cat: cat, mode: mode}
}

// Catalog returns the catalog being browsed.
func (b *Browser) Catalog() model.Catalog {
	return b.cat
}

// SetCatalog swaps the catalog, keeping the query. A selected letter that no
// longer has a section falls back to ALL.
func (b *Browser) SetCatalog(cat model.Catalog) {
	b.cat = cat
	if b.letter != "" {
		if _, ok := cat.Section(b.letter); !ok {
			b.letter = ""
		}
	}
}

// SetMode switches the matcher.
func (b *Browser) SetMode(m Mode) {
	b.mode = m
}

// ShowAll clears the letter filter and the query.
func (b *Browser) ShowAll() {
	b.letter = ""
	b.query = ""
}

// SelectLetter shows only the letter's section and clears the query. It
// reports false, changing nothing, for letters without a section.
func (b *Browser) SelectLetter(letter string) bool {
	letter = strings.ToUpper(letter)
	if _, ok := b.cat.Section(letter); !ok {
		return false
	}
	b.letter = letter
	b.query = ""
	return true
}

// Search sets the raw query and clears the letter filter. A blank query
// shows everything.
func (b *Browser) Search(raw string) {
	b.query = raw
	b.letter = ""
}

// Query returns the raw query.
func (b *Browser) Query() string {
	return b.query
}

// Letter returns the selected letter, or "" for ALL.
func (b *Browser) Letter() string {
	return b.letter
}

// Letters builds the A-Z bar: ALL followed by every letter, disabled when
// the catalog has no section for it.
func (b *Browser) Letters() []LetterButton {
	buttons := []LetterButton{{Label: AllLabel, Active: b.letter == ""}}
	for _, l := range model.Alphabet() {
		_, ok := b.cat.Section(l)
		buttons = append(buttons, LetterButton{
			Label:    l,
			Letter:   l,
			Disabled: !ok,
			Active:   b.letter == l,
		})
	}
	return buttons
}

// View applies the current filter.
func (b *Browser) View() View {
	query := strings.ToLower(strings.TrimSpace(b.query))

	switch {
	case query != "":
		return b.searchView(query)
	case b.letter != "":
		s, _ := b.cat.Section(b.letter)
		return View{Sections: []SectionView{{Letter: s.Letter, Active: true, Entries: s.Entries}}}
	default:
		v := View{PopularVisible: true, Popular: b.cat.Popular()}
		for _, s := range b.cat.Sections {
			v.Sections = append(v.Sections, SectionView{Letter: s.Letter, Entries: s.Entries})
		}
		return v
	}
}

func (b *Browser) searchView(query string) View {
	var v View
	for _, s := range b.cat.Sections {
		matched := b.match(query, s.Entries)
		if len(matched) > 0 {
			v.Sections = append(v.Sections, SectionView{Letter: s.Letter, Entries: matched})
		}
	}
	if len(v.Sections) == 0 {
		v.NoResults = `No results found for "` + b.query + `"`
	}
	return v
}

// match keeps catalog order whatever the matcher ranks first.
func (b *Browser) match(query string, entries []model.Entry) []model.Entry {
	if b.mode == Fuzzy {
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = strings.ToLower(e.Title + " " + e.Thumb.Alt)
		}
		hit := make([]bool, len(entries))
		for _, m := range fuzzy.Find(query, keys) {
			hit[m.Index] = true
		}
		var out []model.Entry
		for i, e := range entries {
			if hit[i] {
				out = append(out, e)
			}
		}
		return out
	}

	var out []model.Entry
	for _, e := range entries {
		if Matches(e, query) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether a lower-cased, trimmed query is a substring of the
// entry's title or image alt text.
func Matches(e model.Entry, query string) bool {
	return strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Thumb.Alt), query)
}
