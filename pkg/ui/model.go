// Package ui is the bubbletea front end: a hero block, the A-Z bar, search,
// one carousel per visible section and the particle background.
package ui

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenpedia/lumen/pkg/anim"
	"github.com/lumenpedia/lumen/pkg/carousel"
	"github.com/lumenpedia/lumen/pkg/catalog"
	"github.com/lumenpedia/lumen/pkg/config"
	"github.com/lumenpedia/lumen/pkg/model"
	"github.com/lumenpedia/lumen/pkg/particles"
	"github.com/lumenpedia/lumen/pkg/render"
)

// PopularTitle heads the strip of popular entries.
const PopularTitle = "Most Searched"

// ReloadMsg carries a freshly loaded catalog, or the error that prevented it.
type ReloadMsg struct {
	Catalog model.Catalog
	Err     error
}

// Reloader loads the catalog again.
type Reloader func(ctx context.Context) (model.Catalog, error)

// stripView is one visible section with its carousel.
type stripView struct {
	title   string
	letter  string // "" for the popular strip
	active  bool
	entries []model.Entry

	car         *carousel.Carousel
	strip       *carousel.Strip
	left, right *carousel.Control
}

// entryAt returns the entry behind rendered card i.
func (s *stripView) entryAt(i int) (model.Entry, bool) {
	cards := s.strip.Cards()
	if i < 0 || i >= len(cards) {
		return model.Entry{}, false
	}
	src := cards[i].Source
	if src < 0 || src >= len(s.entries) {
		return model.Entry{}, false
	}
	return s.entries[src], true
}

// activeEntry is the entry under focus.
func (s *stripView) activeEntry() (model.Entry, bool) {
	i := s.car.ActiveSource()
	if i < 0 || i >= len(s.entries) {
		return model.Entry{}, false
	}
	return s.entries[i], true
}

type dragState struct {
	active bool
	strip  int
	card   int
	startX int
	moved  bool
}

// Model is the main bubbletea model.
type Model struct {
	cfg   *config.Config
	theme Theme
	keys  keyMap

	browser *catalog.Browser
	strips  []*stripView
	noMatch string
	focus   int

	search    textinput.Model
	searching bool

	hero        HeroModel
	helpOverlay HelpOverlayModel
	detail      DetailModel

	field   *particles.Field
	braille *render.Braille
	loop    *anim.Loop
	canvas  *render.Canvas
	thumbs  *thumbCache

	width, height int
	scroll        int
	drag          dragState
	status        string

	reload Reloader
	clock  carousel.Clock
	rng    *rand.Rand
}

// Option configures a Model.
type Option func(*Model)

// WithReloader enables the reload key.
func WithReloader(r Reloader) Option {
	return func(m *Model) {
		m.reload = r
	}
}

// WithClock drives carousel guards from clock instead of the wall clock.
func WithClock(clock carousel.Clock) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithRand seeds the particle field.
func WithRand(rng *rand.Rand) Option {
	return func(m *Model) {
		m.rng = rng
	}
}

// WithRenderer sets the lipgloss renderer used for styling.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.theme = DefaultTheme(r)
	}
}

// NewModel creates the browser over cat. A nil cfg uses config.Default().
func NewModel(cat model.Catalog, cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		cfg:   cfg,
		theme: DefaultTheme(nil),
		keys:  defaultKeyMap(),
		clock: carousel.SystemClock{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	if cfg.UI.Background != "" {
		m.theme.Background = cfg.UI.Background
	}

	ti := textinput.New()
	ti.Placeholder = "Search…"
	ti.Prompt = ""
	ti.CharLimit = 64
	m.search = ti

	m.browser = catalog.NewBrowser(cat, catalog.ParseMode(cfg.Search.Mode))
	m.helpOverlay = NewHelpOverlayModel(m.theme)
	m.detail = NewDetailModel(m.theme)
	m.canvas = render.NewCanvas(0, 0, m.theme.Renderer)
	m.thumbs = newThumbCache()
	m.loop = anim.NewLoop(cfg.Particles.FPS)

	if cfg.Particles.Enabled {
		ppc := cfg.Carousel.PixelsPerCell
		m.braille = render.NewBraille(0, 0, ppc, 2*ppc)
		m.braille.SetBackground(m.theme.Background)
		m.field = particles.NewField(cfg.ParticleSettings(), 0, 0, m.rng)
	}

	m.rebuild()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return m.loop.Start()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case anim.FrameMsg:
		if !m.loop.Accept(msg) {
			return m, nil
		}
		m.frame()
		return m, m.loop.Next()

	case ReloadMsg:
		m.applyReload(msg)
		return m, nil

	case tea.BlurMsg:
		if m.field != nil {
			m.field.PointerLeave()
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// View renders the page.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}
	if m.helpOverlay.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpOverlay.View())
	}
	if m.detail.IsVisible() {
		return m.detail.View()
	}
	m.compose()
	return m.canvas.String()
}

func (m *Model) ppc() float64 {
	return m.cfg.Carousel.PixelsPerCell
}

// toPixels maps the center of cell (x, y) to field coordinates. Cells are
// about twice as tall as they are wide.
func (m *Model) toPixels(x, y int) (float64, float64) {
	ppc := m.ppc()
	return (float64(x) + 0.5) * ppc, (float64(y) + 0.5) * 2 * ppc
}

func (m *Model) resize(width, height int) {
	first := m.width == 0
	m.width, m.height = width, height
	m.canvas.Resize(width, height)
	m.helpOverlay.SetSize(width, height)
	m.detail.SetSize(width, height)
	m.search.Width = m.searchWidth() - 2

	if m.field != nil {
		m.braille.Resize(width, height)
		w, h := m.braille.PixelSize()
		if first {
			m.field = particles.NewField(m.cfg.ParticleSettings(), w, h, m.rng)
		} else {
			m.field.Resize(w, h)
		}
	}

	if first {
		m.rebuild()
		return
	}
	vp := float64(stripViewport(width)) * m.ppc()
	for _, s := range m.strips {
		s.car.OnResize(vp)
	}
	m.clampScroll()
}

// frame advances the particle field and every carousel animation.
func (m *Model) frame() {
	if m.field != nil {
		m.field.Frame(m.braille)
	}
	for _, s := range m.strips {
		s.car.Tick()
	}
}

// rebuild derives the visible strips from the browser and sets up a fresh
// carousel over each one.
func (m *Model) rebuild() {
	v := m.browser.View()
	m.noMatch = v.NoResults
	m.strips = m.strips[:0]
	m.drag = dragState{}
	if v.PopularVisible && len(v.Popular) > 0 {
		m.addStrip(PopularTitle, "", false, v.Popular)
	}
	for _, s := range v.Sections {
		m.addStrip(s.Letter, s.Letter, s.Active, s.Entries)
	}
	if m.focus >= len(m.strips) {
		m.focus = len(m.strips) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.clampScroll()
}

func (m *Model) addStrip(title, letter string, active bool, entries []model.Entry) {
	s := &stripView{
		title:   title,
		letter:  letter,
		active:  active,
		entries: entries,
		car:     carousel.New(m.cfg.CarouselSettings(), carousel.WithClock(m.clock)),
		left:    &carousel.Control{},
		right:   &carousel.Control{},
	}
	s.strip = carousel.NewStrip(float64(stripViewport(m.width))*m.ppc(), len(entries), 0)
	s.car.Setup(s.strip, s.left, s.right)
	m.strips = append(m.strips, s)
}

func (m *Model) applyReload(msg ReloadMsg) {
	if msg.Err != nil {
		log.Printf("ui: reload failed: %v", msg.Err)
		m.status = "Reload failed: " + msg.Err.Error()
		return
	}
	m.browser.SetCatalog(msg.Catalog)
	m.thumbs.reset()
	m.rebuild()
	m.status = fmt.Sprintf("Reloaded %d entries", msg.Catalog.Len())
}

func (m *Model) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	r := m.reload
	return func() tea.Msg {
		cat, err := r(context.Background())
		return ReloadMsg{Catalog: cat, Err: err}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if m.helpOverlay.IsVisible() {
		m.helpOverlay, _ = m.helpOverlay.Update(msg)
		return *m, nil
	}
	if m.detail.IsVisible() {
		if key.Matches(msg, m.keys.Copy) {
			m.copyLink(m.detail.Entry())
			return *m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return *m, cmd
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.loop.Stop()
		return *m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Toggle()
	case key.Matches(msg, m.keys.Left):
		m.scrollFocused(-1)
	case key.Matches(msg, m.keys.Right):
		m.scrollFocused(1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollPage(-contentHeight(m.height) / 2)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollPage(contentHeight(m.height) / 2)
	case key.Matches(msg, m.keys.Search):
		cmd := m.focusSearch()
		return *m, cmd
	case key.Matches(msg, m.keys.Clear):
		m.clearFilter()
	case key.Matches(msg, m.keys.All):
		m.showAll()
	case key.Matches(msg, m.keys.PrevLetter):
		m.stepLetter(-1)
	case key.Matches(msg, m.keys.NextLetter):
		m.stepLetter(1)
	case key.Matches(msg, m.keys.Open):
		if s := m.focusedStrip(); s != nil {
			if e, ok := s.activeEntry(); ok {
				m.detail.Show(e)
			}
		}
	case key.Matches(msg, m.keys.Copy):
		if s := m.focusedStrip(); s != nil {
			if e, ok := s.activeEntry(); ok {
				m.copyLink(e)
			}
		}
	case key.Matches(msg, m.keys.Classic):
		m.hero.Toggle(HeroClassic)
	case key.Matches(msg, m.keys.Main):
		m.hero.Toggle(HeroMain)
	case key.Matches(msg, m.keys.CloseHero):
		m.hero.Close()
	case key.Matches(msg, m.keys.Theme):
		if m.field != nil {
			m.status = fmt.Sprintf("Particle theme %d", m.field.CycleTheme()+1)
		}
	case key.Matches(msg, m.keys.Reload):
		if cmd := m.reloadCmd(); cmd != nil {
			m.status = "Reloading…"
			return *m, cmd
		}
	}
	return *m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.loop.Stop()
		return *m, tea.Quit
	case "esc", "enter", "tab":
		m.searching = false
		m.search.Blur()
		return *m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applySearch()
	}
	return *m, cmd
}

func (m *Model) focusSearch() tea.Cmd {
	m.searching = true
	return m.search.Focus()
}

func (m *Model) applySearch() {
	m.browser.Search(m.search.Value())
	m.focus = 0
	m.scroll = 0
	m.rebuild()
}

// clearFilter drops the query and letter; with nothing to clear it closes
// an expanded hero image.
func (m *Model) clearFilter() {
	if m.browser.Query() != "" || m.browser.Letter() != "" {
		m.showAll()
		return
	}
	m.hero.Close()
}

func (m *Model) showAll() {
	m.browser.ShowAll()
	m.search.SetValue("")
	m.focus = 0
	m.rebuild()
}

func (m *Model) selectLetter(letter string) {
	if letter == "" {
		m.showAll()
		return
	}
	if !m.browser.SelectLetter(letter) {
		return
	}
	m.search.SetValue("")
	m.focus = 0
	m.scroll = 0
	m.rebuild()
}

// stepLetter moves to the previous or next enabled letter, passing through
// ALL at either end.
func (m *Model) stepLetter(dir int) {
	var enabled []string
	for _, b := range m.browser.Letters()[1:] {
		if !b.Disabled {
			enabled = append(enabled, b.Letter)
		}
	}
	if len(enabled) == 0 {
		return
	}
	cur := -1
	for i, l := range enabled {
		if l == m.browser.Letter() {
			cur = i
		}
	}
	next := cur + dir
	switch {
	case cur == -1 && dir < 0:
		next = len(enabled) - 1
	case next < 0 || next >= len(enabled):
		m.showAll()
		return
	}
	m.selectLetter(enabled[next])
}

func (m *Model) focusedStrip() *stripView {
	if m.focus < 0 || m.focus >= len(m.strips) {
		return nil
	}
	return m.strips[m.focus]
}

func (m *Model) scrollFocused(dir int) {
	if s := m.focusedStrip(); s != nil {
		s.car.ScrollCarousel(dir)
	}
}

func (m *Model) moveFocus(delta int) {
	if len(m.strips) == 0 {
		return
	}
	m.focus += delta
	if m.focus < 0 {
		m.focus = 0
	}
	if m.focus >= len(m.strips) {
		m.focus = len(m.strips) - 1
	}
	m.ensureFocusVisible()
}

func (m *Model) copyLink(e model.Entry) {
	if e.Link == "" {
		m.status = "No link for " + e.Title
		return
	}
	if err := clipboard.WriteAll(e.Link); err != nil {
		log.Printf("ui: clipboard: %v", err)
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + e.Link
}

// Accessors used by the CLI and tests.

// Browser returns the filter state.
func (m Model) Browser() *catalog.Browser { return m.browser }

// Hero returns the hero state.
func (m Model) Hero() HeroModel { return m.hero }

// Field returns the particle field, or nil when the background is off.
func (m Model) Field() *particles.Field { return m.field }

// Status returns the footer message.
func (m Model) Status() string { return m.status }
