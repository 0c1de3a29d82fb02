package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recipe-server/confs"
	"recipe-server/db"
	"recipe-server/entities"
	"recipe-server/repositories"
	"recipe-server/usecases"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	flagOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	flagOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type step int

const (
	stepListingUsers step = iota
	stepEnteringEmail
	stepEnteringPassword
	stepEnteringName
	stepConfirmingDelete
)

type model struct {
	users         *usecases.UserUseCase
	step          step
	rows          []entities.User
	cursor        int
	creatingSuper bool
	newEmail      string
	newPassword   string
	currentInput  string
	message       string
	quitting      bool
}

type usersLoadedMsg []entities.User
type userSavedMsg struct{ email string }
type userDeletedMsg struct{ email string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(users *usecases.UserUseCase) model {
	return model{
		users: users,
		step:  stepListingUsers,
		rows:  []entities.User{},
	}
}

func (m model) Init() tea.Cmd {
	return m.loadUsers
}

func (m model) loadUsers() tea.Msg {
	rows, err := m.users.ListUsers()
	if err != nil {
		return errMsg{fmt.Errorf("failed to list users: %w", err)}
	}
	return usersLoadedMsg(rows)
}

func (m model) createUser(email, password, name string, super bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if super {
			_, err = m.users.CreateSuperuser(email, password)
		} else {
			_, err = m.users.CreateUser(email, password, name)
		}
		if err != nil {
			return errMsg{err}
		}
		return userSavedMsg{email: email}
	}
}

func (m model) toggleActive(id uint) tea.Cmd {
	return func() tea.Msg {
		user, err := m.users.ToggleActive(id)
		if err != nil {
			return errMsg{err}
		}
		return userSavedMsg{email: user.Email}
	}
}

func (m model) toggleStaff(id uint) tea.Cmd {
	return func() tea.Msg {
		user, err := m.users.ToggleStaff(id)
		if err != nil {
			return errMsg{err}
		}
		return userSavedMsg{email: user.Email}
	}
}

func (m model) deleteUser(id uint, email string) tea.Cmd {
	return func() tea.Msg {
		if err := m.users.DeleteUser(id); err != nil {
			return errMsg{err}
		}
		return userDeletedMsg{email: email}
	}
}

func (m model) entering() bool {
	return m.step == stepEnteringEmail || m.step == stepEnteringPassword || m.step == stepEnteringName
}

// updateInput handles keys while a text prompt is active so typed letters
// never collide with list hotkeys.
func (m model) updateInput(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.step = stepListingUsers
		m.currentInput = ""

	case "backspace":
		if len(m.currentInput) > 0 {
			m.currentInput = m.currentInput[:len(m.currentInput)-1]
		}

	case "enter":
		switch m.step {
		case stepEnteringEmail:
			if m.currentInput != "" {
				m.newEmail = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPassword
			}

		case stepEnteringPassword:
			if m.currentInput != "" {
				m.newPassword = m.currentInput
				m.currentInput = ""
				if m.creatingSuper {
					m.step = stepListingUsers
					return m, m.createUser(m.newEmail, m.newPassword, "", true)
				}
				m.step = stepEnteringName
			}

		case stepEnteringName:
			name := m.currentInput
			m.currentInput = ""
			m.step = stepListingUsers
			return m, m.createUser(m.newEmail, m.newPassword, name, false)
		}

	default:
		if len([]rune(key)) == 1 {
			m.currentInput += key
		}
	}

	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.entering() {
			return m.updateInput(msg.String())
		}

		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit

		case "esc":
			m.step = stepListingUsers
			m.message = ""

		case "up", "k":
			if m.step == stepListingUsers && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == stepListingUsers && m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case "n":
			if m.step == stepConfirmingDelete {
				m.step = stepListingUsers
			} else {
				m.creatingSuper = false
				m.step = stepEnteringEmail
				m.currentInput = ""
				m.message = ""
			}

		case "N":
			if m.step == stepListingUsers {
				m.creatingSuper = true
				m.step = stepEnteringEmail
				m.currentInput = ""
				m.message = ""
			}

		case "a":
			if m.step == stepListingUsers && len(m.rows) > 0 {
				return m, m.toggleActive(m.rows[m.cursor].ID)
			}

		case "s":
			if m.step == stepListingUsers && len(m.rows) > 0 {
				return m, m.toggleStaff(m.rows[m.cursor].ID)
			}

		case "d":
			if m.step == stepListingUsers && len(m.rows) > 0 {
				m.step = stepConfirmingDelete
				m.message = ""
			}

		case "y":
			if m.step == stepConfirmingDelete {
				row := m.rows[m.cursor]
				m.step = stepListingUsers
				return m, m.deleteUser(row.ID, row.Email)
			}

		case "r":
			if m.step == stepListingUsers {
				return m, m.loadUsers
			}
		}

	case usersLoadedMsg:
		m.rows = []entities.User(msg)
		if m.cursor >= len(m.rows) && m.cursor > 0 {
			m.cursor = len(m.rows) - 1
		}

	case userSavedMsg:
		m.message = successStyle.Render("saved " + msg.email)
		return m, m.loadUsers

	case userDeletedMsg:
		m.message = successStyle.Render("deleted " + msg.email)
		return m, m.loadUsers

	case errMsg:
		m.message = errorStyle.Render(msg.err.Error())
		m.step = stepListingUsers
	}

	return m, nil
}

func flag(name string, on bool) string {
	if on {
		return flagOnStyle.Render(name)
	}
	return flagOffStyle.Render(name)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Recipe Server User Administration\n\n"))

	switch m.step {
	case stepListingUsers:
		if len(m.rows) == 0 {
			s.WriteString(normalStyle.Render("no users yet\n"))
		}
		for i, user := range m.rows {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			flags := fmt.Sprintf("%s %s %s",
				flag("active", user.IsActive),
				flag("staff", user.IsStaff),
				flag("super", user.IsSuperuser))
			s.WriteString(fmt.Sprintf("%s %s  %s\n", cursor, style.Render(fmt.Sprintf("#%d %s", user.ID, user.Email)), flags))
		}
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}
		s.WriteString("\n↑/↓ select · n new user · N new superuser · a toggle active · s toggle staff · d delete · r refresh · q quit\n")

	case stepEnteringEmail:
		s.WriteString(promptStyle.Render("Email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter (esc to cancel)\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter (esc to cancel)\n")

	case stepEnteringName:
		s.WriteString(promptStyle.Render("Name (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter (esc to cancel)\n")

	case stepConfirmingDelete:
		row := m.rows[m.cursor]
		s.WriteString(errorStyle.Render(fmt.Sprintf("Delete %s?", row.Email)))
		s.WriteString("\n\ny to confirm, n to cancel\n")
	}

	return s.String()
}

func main() {
	if err := confs.LoadConfig(); err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	database, err := db.Connect()
	if err != nil {
		fmt.Println("Failed to connect to DB:", err)
		os.Exit(1)
	}

	users := usecases.NewUserUseCase(
		repositories.NewUserPgRepository(database),
		repositories.NewTokenPgRepository(database),
	)

	p := tea.NewProgram(initialModel(users))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
