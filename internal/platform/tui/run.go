package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"beatdash/internal/core"
	"beatdash/internal/sim"
)

// RunModel is the Bubble Tea model that drives one run of one track.
// Input is collected into a frame between ticks and handed to the
// session once per tick, so a key press between frames is never lost.
type RunModel struct {
	session *sim.Session
	screen  *core.Screen
	keys    *KeyMapper
	hud     RunHUD
	config  core.RuntimeConfig
	input   core.InputFrame
	done    bool
}

// NewRunModel creates a Bubble Tea model for the given session.
func NewRunModel(session *sim.Session, hud RunHUD, cfg core.RuntimeConfig) RunModel {
	return RunModel{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    NewKeyMapper(),
		hud:     hud,
		config:  cfg,
		input:   core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m RunModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keys.MapKeyToFrame(msg, &m.input)
		return m, nil

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.input)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		alive := m.session.Tick(m.input)
		m.input.Clear()
		if !alive {
			m.done = true
			return m, tea.Quit
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// View renders the current frame.
func (m RunModel) View() string {
	if m.done {
		return ""
	}
	drawRun(m.screen, m.session, m.hud)
	return RenderScreen(m.screen)
}

// Run plays one session to completion and returns its result.
func Run(session *sim.Session, hud RunHUD, cfg core.RuntimeConfig) (sim.Result, error) {
	model := NewRunModel(session, hud, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // left click doubles as jump
	)

	if _, err := p.Run(); err != nil {
		return sim.Result{}, err
	}
	return session.Result(), nil
}
