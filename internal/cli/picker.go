package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsandoval/clockfill/pkg/models"
)

// Picker styles.
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	pickerDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// workspacePickerModel is a minimal list picker over the user's workspaces.
type workspacePickerModel struct {
	workspaces []models.Workspace
	cursor     int
	choice     int
}

func newWorkspacePickerModel(workspaces []models.Workspace) workspacePickerModel {
	return workspacePickerModel{workspaces: workspaces, choice: -1}
}

func (m workspacePickerModel) Init() tea.Cmd {
	return nil
}

func (m workspacePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.workspaces)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			m.choice = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m workspacePickerModel) View() string {
	s := pickerTitleStyle.Render("Select a workspace") + "\n\n"

	for i, ws := range m.workspaces {
		cursor := "  "
		line := fmt.Sprintf("%s  %s", ws.Name, pickerDimStyle.Render(ws.ID))
		if i == m.cursor {
			cursor = pickerCursorStyle.Render("> ")
		}
		s += cursor + line + "\n"
	}

	s += "\n" + pickerDimStyle.Render("up/down: move   enter: select   q: cancel") + "\n"
	return s
}

// pickWorkspace runs the interactive picker and returns the chosen workspace.
func pickWorkspace(workspaces []models.Workspace) (models.Workspace, error) {
	program := tea.NewProgram(newWorkspacePickerModel(workspaces))
	final, err := program.Run()
	if err != nil {
		return models.Workspace{}, fmt.Errorf("running workspace picker: %w", err)
	}

	m, ok := final.(workspacePickerModel)
	if !ok || m.choice < 0 {
		return models.Workspace{}, fmt.Errorf("cancelled")
	}
	return m.workspaces[m.choice], nil
}
