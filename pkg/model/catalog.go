package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Thumb is a card image.
type Thumb struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Alt  string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// Entry is one encyclopedia article as shown on a card.
type Entry struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Letter  string   `json:"letter,omitempty" yaml:"letter,omitempty"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Body    string   `json:"body,omitempty" yaml:"body,omitempty"`
	Thumb   Thumb    `json:"thumb,omitempty" yaml:"thumb,omitempty"`
	Link    string   `json:"link,omitempty" yaml:"link,omitempty"`
	Popular bool     `json:"popular,omitempty" yaml:"popular,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Clone creates a deep copy of the entry
func (e Entry) Clone() Entry {
	clone := e
	if e.Tags != nil {
		clone.Tags = make([]string, len(e.Tags))
		copy(clone.Tags, e.Tags)
	}
	return clone
}

// SectionLetter is the entry's explicit letter, or the first A-Z letter of its
// title, upper-cased. It returns "" when neither yields one.
func (e Entry) SectionLetter() string {
	if e.Letter != "" {
		return strings.ToUpper(e.Letter)
	}
	for _, r := range e.Title {
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			return string(r)
		}
	}
	return ""
}

// Validate checks if the entry can be placed in a section
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("entry %q: title cannot be empty", e.ID)
	}
	if !IsLetter(e.SectionLetter()) {
		return fmt.Errorf("entry %q: letter %q is not A-Z", e.ID, e.SectionLetter())
	}
	return nil
}

// IsLetter reports whether s is a single upper-case A-Z letter.
func IsLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

// Alphabet is A through Z.
func Alphabet() []string {
	letters := make([]string, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		letters = append(letters, string(r))
	}
	return letters
}

// HeroImage is one of the two expandable header images.
type HeroImage struct {
	Title   string `json:"title" yaml:"title"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Thumb   Thumb  `json:"thumb,omitempty" yaml:"thumb,omitempty"`
}

// Hero is the page header: a classic image and a main image side by side.
type Hero struct {
	Classic HeroImage `json:"classic" yaml:"classic"`
	Main    HeroImage `json:"main" yaml:"main"`
}

// Section groups the entries that share a letter.
type Section struct {
	Letter  string
	Entries []Entry
}

// Catalog is the full page content.
type Catalog struct {
	Title    string
	Hero     Hero
	Sections []Section
}

// BuildCatalog validates entries, drops the invalid ones and groups the rest by
// letter in A-Z order, keeping input order inside a section. The rejected
// entries' errors are returned alongside.
func BuildCatalog(title string, hero Hero, entries []Entry) (Catalog, []error) {
	var errs []error
	byLetter := make(map[string][]Entry)
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		e.Letter = e.SectionLetter()
		byLetter[e.Letter] = append(byLetter[e.Letter], e.Clone())
	}

	letters := make([]string, 0, len(byLetter))
	for l := range byLetter {
		letters = append(letters, l)
	}
	sort.Strings(letters)

	c := Catalog{Title: title, Hero: hero}
	for _, l := range letters {
		c.Sections = append(c.Sections, Section{Letter: l, Entries: byLetter[l]})
	}
	return c, errs
}

// Popular returns entries flagged popular, in catalog order.
func (c Catalog) Popular() []Entry {
	var out []Entry
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			if e.Popular {
				out = append(out, e)
			}
		}
	}
	return out
}

// Section returns the section for letter, if present.
func (c Catalog) Section(letter string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Letter == letter {
			return s, true
		}
	}
	return Section{}, false
}

// Entries returns every entry in catalog order.
func (c Catalog) Entries() []Entry {
	var out []Entry
	for _, s := range c.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// Len is the total number of entries.
func (c Catalog) Len() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Entries)
	}
	return n
}
