// Package tui is the terminal client of the Pokédex. It drives the same
// pokemon.Session the web surface uses.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pokedex/internal/domain/pokemon"
)

// loadDoneMsg reports the end of a load started by the model.
type loadDoneMsg struct {
	err error
}

// Model is the Bubble Tea model of the browser: a search box over the
// session's cards, with ctrl+n loading the next page.
type Model struct {
	session *pokemon.Session
	search  textinput.Model
	spinner spinner.Model

	// pending is set between dispatching a load and receiving loadDoneMsg,
	// so the indicator shows before the session itself flips to Loading.
	pending bool
	scroll  int
	width   int
	height  int
}

// NewModel creates a browser over session.
func NewModel(session *pokemon.Session) Model {
	search := textinput.New()
	search.Placeholder = "Buscar Pokémon..."
	search.Prompt = "🔍 "
	search.CharLimit = 64
	search.Focus()

	return Model{
		session: session,
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(loadingStyle)),
		pending: true,
	}
}

// Init starts the initial page load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, load(m.session.EnsureLoaded))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, msg.Width-6)
		return m, nil

	case loadDoneMsg:
		// A failed load leaves the collection as it was; only the indicator reverts.
		m.pending = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n":
			if m.loading() {
				return m, nil
			}
			m.pending = true
			return m, tea.Batch(m.spinner.Tick, load(m.session.LoadMore))
		case "up", "ctrl+p":
			m.scroll = max(0, m.scroll-1)
			return m, nil
		case "down":
			m.scroll = min(m.scroll+1, max(0, len(m.cards())-1))
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.scroll = 0
	}
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	cards := m.cards()

	b.WriteString(titleStyle.Render("Pokédex"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d Pokémon", len(cards))))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	visible := cards
	if m.scroll < len(visible) {
		visible = visible[m.scroll:]
	}
	rendered := make([]string, 0, len(visible))
	for _, card := range visible {
		rendered = append(rendered, RenderCard(card))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rendered...)
	if m.height > 0 {
		grid = clipLines(grid, max(1, m.height-8))
	}
	b.WriteString(grid)
	b.WriteString("\n")

	if m.loading() {
		b.WriteString(m.spinner.View())
		b.WriteString(loadingStyle.Render("Cargando..."))
	} else {
		b.WriteString(helpStyle.Render("ctrl+n: Cargar más • ↑/↓: desplazar • esc: salir"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) loading() bool {
	return m.pending || m.session.State() == pokemon.Loading
}

func (m Model) cards() []pokemon.Card {
	snap := m.session.Snapshot()
	return pokemon.BuildViews(snap.Collection.Filter(m.search.Value()))
}

// load runs fn off the update loop. The context is never cancelled: a load
// in flight always completes.
func load(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := fn(context.Background())
		if errors.Is(err, pokemon.ErrLoadInProgress) {
			err = nil
		}
		return loadDoneMsg{err: err}
	}
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// Run starts the browser full screen and blocks until the user quits.
func Run(session *pokemon.Session) error {
	_, err := tea.NewProgram(NewModel(session), tea.WithAltScreen()).Run()
	return err
}
