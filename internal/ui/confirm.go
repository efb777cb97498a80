package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a single-key yes/no prompt. Anything but 'y' declines.
type confirmModel struct {
	prompt string
	answer bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "y", "Y":
			m.answer = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "enter", "ctrl+c":
			m.answer = false
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	return fmt.Sprintf("%s %s\n", styles.warn.Render(m.prompt), styles.help.Render("[y/N]"))
}

// Confirm renders prompt on the terminal and returns the user's answer.
func Confirm(prompt string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{prompt: prompt}).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("confirmation prompt returned unexpected model")
	}
	return m.answer, nil
}
