package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beatdash/internal/level"
)

// TierOption is one selectable difficulty tier with the obstacle count
// the player would face on it.
type TierOption struct {
	Tier      level.Tier
	Obstacles int
}

// DifficultyModel is the Bubble Tea model for the tier picker shown
// before a run starts and again after a change-difficulty request.
type DifficultyModel struct {
	track    string
	options  []TierOption
	cursor   int
	width    int
	height   int
	keys     *KeyMapper
	quitting bool
	selected *TierOption
}

// NewDifficultyModel creates a tier picker for the analyzed track. The
// obstacle counts come from filtering the track's beat timeline per tier.
func NewDifficultyModel(track string, beats []float64, width, height int) DifficultyModel {
	tiers := level.Tiers()
	options := make([]TierOption, 0, len(tiers))
	for _, t := range tiers {
		options = append(options, TierOption{
			Tier:      t,
			Obstacles: len(level.Filter(beats, t)),
		})
	}

	return DifficultyModel{
		track:   track,
		options: options,
		cursor:  1, // normal preselected
		width:   width,
		height:  height,
		keys:    NewKeyMapper(),
	}
}

// Init initializes the difficulty model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the tier picker.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit

		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}

		case MenuActionDown:
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}

		case MenuActionSelect:
			selected := m.options[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the tier picker.
func (m DifficultyModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	subtleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT DIFFICULTY"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render(m.track), m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s%-8s %3d obstacles", cursor, opt.Tier.Title(), opt.Obstacles)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render("up/down select · enter play · esc cancel"), m.width))

	return b.String()
}

// Selected returns the chosen tier, or nil if the picker was cancelled.
func (m DifficultyModel) Selected() *TierOption {
	return m.selected
}

// RunDifficultySelector shows the tier picker and returns the chosen
// tier. The second return is false when the user cancelled.
func RunDifficultySelector(track string, beats []float64, width, height int) (level.Tier, bool, error) {
	model := NewDifficultyModel(track, beats, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.Selected() == nil {
		return "", false, nil
	}
	return m.Selected().Tier, true, nil
}

// centerText pads a rendered line so its visible width is centered.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
