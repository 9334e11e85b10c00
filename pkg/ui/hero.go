package ui

import "github.com/lumenpedia/lumen/pkg/model"

// HeroSide names one of the two hero images.
type HeroSide int

const (
	HeroNone HeroSide = iota
	HeroClassic
	HeroMain
)

// HeroColumn is how one hero column is presented.
type HeroColumn struct {
	Expanded     bool
	Hidden       bool
	Gray         bool
	CloseVisible bool
}

// HeroModel tracks which hero image, if any, is expanded. Expanding one side
// hides the other and grays its image; both columns get close buttons.
type HeroModel struct {
	expanded HeroSide
}

// Toggle expands side, or collapses it when it is already expanded.
func (h *HeroModel) Toggle(side HeroSide) {
	if side == HeroNone || h.expanded == side {
		h.expanded = HeroNone
		return
	}
	h.expanded = side
}

// Close resets both columns.
func (h *HeroModel) Close() {
	h.expanded = HeroNone
}

// Expanded returns the expanded side or HeroNone.
func (h HeroModel) Expanded() HeroSide {
	return h.expanded
}

// Column derives the presentation of side.
func (h HeroModel) Column(side HeroSide) HeroColumn {
	switch h.expanded {
	case HeroNone:
		return HeroColumn{}
	case side:
		return HeroColumn{Expanded: true, CloseVisible: true}
	default:
		return HeroColumn{Hidden: true, Gray: true, CloseVisible: true}
	}
}

func heroImage(hero model.Hero, side HeroSide) model.HeroImage {
	if side == HeroMain {
		return hero.Main
	}
	return hero.Classic
}

func heroEmpty(hero model.Hero) bool {
	return hero.Classic.Title == "" && hero.Classic.Thumb.Path == "" &&
		hero.Main.Title == "" && hero.Main.Thumb.Path == ""
}
