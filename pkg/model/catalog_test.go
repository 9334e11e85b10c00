package model

import (
	"reflect"
	"testing"
)

func TestSectionLetter(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{Title: "aurora"}, "A"},
		{Entry{Title: "  \"Quasar\""}, "Q"},
		{Entry{Title: "42 Zeta"}, "Z"},
		{Entry{Title: "Nebula", Letter: "m"}, "M"},
		{Entry{Title: "123"}, ""},
	}
	for _, tt := range tests {
		if got := tt.entry.SectionLetter(); got != tt.want {
			t.Errorf("SectionLetter(%q) = %q, want %q", tt.entry.Title, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{"ok", Entry{ID: "1", Title: "Comet"}, false},
		{"empty title", Entry{ID: "2", Title: "  "}, true},
		{"bad letter", Entry{ID: "3", Title: "Comet", Letter: "7"}, true},
		{"no letter in title", Entry{ID: "4", Title: "1999"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildCatalog_GroupsByLetter(t *testing.T) {
	entries := []Entry{
		{ID: "1", Title: "Comet", Popular: true},
		{ID: "2", Title: "Aurora"},
		{ID: "3", Title: "Asteroid", Popular: true},
		{ID: "4", Title: ""},
		{ID: "5", Title: "Corona"},
	}
	c, errs := BuildCatalog("Sky", Hero{}, entries)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want 1 rejection", errs)
	}

	var letters []string
	for _, s := range c.Sections {
		letters = append(letters, s.Letter)
	}
	if !reflect.DeepEqual(letters, []string{"A", "C"}) {
		t.Fatalf("letters = %v, want [A C]", letters)
	}

	a, _ := c.Section("A")
	if a.Entries[0].Title != "Aurora" || a.Entries[1].Title != "Asteroid" {
		t.Errorf("section A order = %v, want input order", a.Entries)
	}
	if a.Entries[0].Letter != "A" {
		t.Errorf("letter not filled in: %q", a.Entries[0].Letter)
	}

	var popular []string
	for _, e := range c.Popular() {
		popular = append(popular, e.ID)
	}
	if !reflect.DeepEqual(popular, []string{"3", "1"}) {
		t.Errorf("Popular = %v, want [3 1]", popular)
	}
	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}
	if _, ok := c.Section("Z"); ok {
		t.Error("Section(Z) found in catalog without Z entries")
	}
}

func TestClone_CopiesTags(t *testing.T) {
	e := Entry{Title: "Comet", Tags: []string{"ice"}}
	c := e.Clone()
	c.Tags[0] = "dust"
	if e.Tags[0] != "ice" {
		t.Error("Clone shares tag storage")
	}
}
