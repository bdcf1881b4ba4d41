package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beatdash/internal/storage"
)

const maxHistoryRows = 100

// StatsKeyMap defines the key bindings for the run history view.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "close"),
		),
	}
}

// StatsModel is the Bubble Tea model for the run history screen.
type StatsModel struct {
	store    *storage.Store
	track    string // empty = all tracks
	runs     []storage.RunRecord
	summary  *storage.TrackStats
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a run history model. With a track name it shows
// that track's runs best-first plus a summary; without one it shows the
// most recent runs across all tracks.
func NewStatsModel(store *storage.Store, track string, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		store:  store,
		track:  track,
		keys:   DefaultStatsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.loadRuns()
	m.table = m.createTable()
	return m
}

func (m *StatsModel) loadRuns() {
	if m.store == nil {
		return
	}
	var err error
	if m.track != "" {
		m.runs, err = m.store.TrackRuns(m.track, maxHistoryRows)
		if err == nil {
			m.summary, _ = m.store.GetTrackStats(m.track)
		}
	} else {
		m.runs, err = m.store.RecentRuns(maxHistoryRows)
	}
	if err != nil {
		m.runs = nil
	}
}

// createTable creates the history table with current dimensions.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Track", Width: 24},
		{Title: "Tier", Width: 8},
		{Title: "Outcome", Width: 18},
		{Title: "Done", Width: 7},
		{Title: "Jumps", Width: 6},
		{Title: "Date", Width: 14},
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.Track,
			r.Tier,
			r.Outcome,
			fmt.Sprintf("%.1f%%", r.Completion),
			fmt.Sprintf("%d", r.Jumps),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history view.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if m.track != "" {
		title = fmt.Sprintf("RUN HISTORY - %s", m.track)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.summary != nil && m.summary.Plays > 0 {
		subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		line := fmt.Sprintf("%d plays · %d completed · best %.1f%% · avg %.1f%%",
			m.summary.Plays, m.summary.Completions, m.summary.BestCompletion, m.summary.AvgCompletion)
		b.WriteString(centerText(subtle.Render(line), m.width))
		b.WriteString("\n\n")
	}

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(centerText(emptyStyle.Render("No runs recorded yet.\nPlay a track to build your history!"), m.width))
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunStats shows the run history screen.
func RunStats(store *storage.Store, track string, width, height int) error {
	model := NewStatsModel(store, track, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
