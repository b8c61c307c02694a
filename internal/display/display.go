// Package display renders the game through Bubble Tea.
//
// The model owns nothing but presentation: every key press maps to one
// discrete engine operation, and a fixed-rate tick drives
// [engine.Engine.Update]. The engine stays the single source of truth.
package display

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/engine"
	"github.com/bunbaker/bunbakery/internal/logger"
	"github.com/bunbaker/bunbakery/internal/station"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#d4d4d8"))

	// Primary text — light zinc.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text — dimmed zinc for hints and key help.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	overdoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)

// frameRate is the display tick driving engine updates.
const frameRate = time.Second / 30

// UI runs the game screen. Call [NewUI] then [UI.Run] (blocking).
type UI struct {
	program *tea.Program
	log     *logger.Logger
}

// NewUI creates the display for an engine.
func NewUI(eng *engine.Engine, clk domain.Clock, log *logger.Logger) *UI {
	m := newModel(eng, clk, log)
	return &UI{
		program: tea.NewProgram(m, tea.WithAltScreen()),
		log:     log,
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	_, err := u.program.Run()
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	eng *engine.Engine
	clk domain.Clock
	log *logger.Logger

	width  int
	height int

	orderBar   progress.Model
	stationBar progress.Model
	moodBar    progress.Model
}

func newModel(eng *engine.Engine, clk domain.Clock, log *logger.Logger) model {
	newBar := func(color string) progress.Model {
		b := progress.New(progress.WithSolidFill(color), progress.WithoutPercentage())
		b.Width = 20
		return b
	}
	return model{
		eng:        eng,
		clk:        clk,
		log:        log,
		orderBar:   newBar("#fde68a"),
		stationBar: newBar("#bbf7d0"),
		moodBar:    newBar("#bae6fd"),
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.eng.Update(m.clk.Now())
		return m, tickCmd()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.eng.State() {
	case engine.StateMenu:
		switch key {
		case "p", "enter":
			m.eng.Play()
		case "s":
			m.eng.OpenShop()
		case "q":
			return m, tea.Quit
		}

	case engine.StateTutorial:
		switch key {
		case "enter", " ":
			m.eng.AdvanceTutorial()
		case "q":
			return m, tea.Quit
		}

	case engine.StatePlaying:
		return m.handleKitchenKey(key)

	case engine.StateShop:
		switch key {
		case "b", "esc":
			m.eng.CloseShop()
		case "q":
			return m, tea.Quit
		default:
			if i := digit(key); i >= 0 {
				m.eng.Purchase(i - 1)
			}
		}

	case engine.StateGameOver:
		switch key {
		case "r", "enter":
			m.eng.Play()
		case "s":
			m.eng.OpenShop()
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) handleKitchenKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "g":
		m.eng.PlaceOnStation(station.Thermal)
	case "t":
		m.eng.TakeFromStation(station.Thermal)
	case "c":
		m.eng.PlaceOnStation(station.Cutting)
	case "v":
		m.eng.TakeFromStation(station.Cutting)
	case "enter", " ":
		m.eng.PlaceOnStack()
	case "x":
		m.eng.Discard()
	default:
		if i := digit(key); i >= 1 {
			shelf := m.eng.Shelf()
			if i <= len(shelf) {
				m.eng.TakeFromShelf(shelf[i-1])
			}
		}
	}
	return m, nil
}

// digit parses a single "1".."9" key, returning -1 otherwise.
func digit(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '0')
	}
	return -1
}

func (m model) View() string {
	switch m.eng.State() {
	case engine.StateMenu:
		return m.viewMenu()
	case engine.StateTutorial:
		return m.viewTutorial()
	case engine.StatePlaying:
		return m.viewKitchen()
	case engine.StateShop:
		return m.viewShop()
	case engine.StateGameOver:
		return m.viewGameOver()
	default:
		return ""
	}
}
