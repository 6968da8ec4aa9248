// Package wizard implements the interactive graphplane init flow.
package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for the init wizard: a welcome screen, one
// text input per connection field, a summary, and a done/aborted screen.
type Model struct {
	state   State
	inputs  []textinput.Model
	focused int
	errMsg  string
	result  Result
	err     error
}

// New creates a new wizard model.
func New() Model {
	inputs := make([]textinput.Model, fieldCount)

	environment := textinput.New()
	environment.Placeholder = "local"
	environment.Focus()
	inputs[fieldEnvironment] = environment

	uri := textinput.New()
	uri.Placeholder = "neo4j://localhost:7687"
	inputs[fieldURI] = uri

	username := textinput.New()
	username.Placeholder = "neo4j"
	inputs[fieldUsername] = username

	password := textinput.New()
	password.Placeholder = "password (stored in .env.<environment>)"
	password.EchoMode = textinput.EchoPassword
	inputs[fieldPassword] = password

	db := textinput.New()
	db.Placeholder = "database (optional)"
	inputs[fieldDatabase] = db

	return Model{
		state:  StateWelcome,
		inputs: inputs,
	}
}

// Init initializes the wizard (Bubble Tea Init).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles state transitions (Bubble Tea Update).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.state = StateAborted
		return m, tea.Quit

	case "enter":
		return m.handleEnter()

	default:
		return m.updateFocusedInput(msg)
	}
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateWelcome:
		m.state = StateConnectionDetails
		return m, nil

	case StateConnectionDetails:
		if err := m.validateFocused(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""

		if m.focused < len(m.inputs)-1 {
			m.inputs[m.focused].Blur()
			m.focused++
			m.inputs[m.focused].Focus()
			return m, nil
		}

		m.result = m.collectResult()
		m.state = StateSummary
		return m, nil

	case StateSummary:
		if err := WriteFiles(m.result); err != nil {
			m.err = err
		}
		m.state = StateDone
		return m, tea.Quit

	default:
		return m, tea.Quit
	}
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != StateConnectionDetails {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) validateFocused() error {
	value := m.inputs[m.focused].Value()
	switch m.focused {
	case fieldEnvironment:
		if strings.TrimSpace(value) == "" {
			return nil // placeholder default applies
		}
		return ValidateEnvironmentName(value)
	case fieldURI:
		return ValidateURI(value)
	default:
		return nil
	}
}

func (m Model) collectResult() Result {
	valueOr := func(field int, fallback string) string {
		v := strings.TrimSpace(m.inputs[field].Value())
		if v == "" {
			return fallback
		}
		return v
	}
	return Result{
		Environment: valueOr(fieldEnvironment, "local"),
		URI:         strings.TrimSpace(m.inputs[fieldURI].Value()),
		Username:    valueOr(fieldUsername, "neo4j"),
		Password:    m.inputs[fieldPassword].Value(),
		Database:    strings.TrimSpace(m.inputs[fieldDatabase].Value()),
	}
}

// View renders the wizard UI (Bubble Tea View).
func (m Model) View() string {
	switch m.state {
	case StateWelcome:
		return m.renderWelcome()
	case StateConnectionDetails:
		return m.renderConnectionDetails()
	case StateSummary:
		return m.renderSummary()
	case StateDone:
		return m.renderDone()
	case StateAborted:
		return labelStyle.Render("Aborted, no files written.") + "\n"
	default:
		return "Unknown state"
	}
}

func (m Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("graphplane init"))
	b.WriteString("\n\n")
	b.WriteString("This wizard creates graphplane.toml with a named environment\n")
	b.WriteString("pointing at your graph database.\n")
	b.WriteString(helpStyle.Render("enter to continue · esc to abort"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderConnectionDetails() string {
	labels := []string{"Environment name", "Connection URI", "Username", "Password", "Database"}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Connection details"))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter to advance · esc to abort"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Summary"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Environment: %s\n", m.result.Environment))
	b.WriteString(fmt.Sprintf("URI:         %s\n", m.result.URI))
	b.WriteString(fmt.Sprintf("Username:    %s\n", m.result.Username))
	if m.result.Database != "" {
		b.WriteString(fmt.Sprintf("Database:    %s\n", m.result.Database))
	}
	b.WriteString(helpStyle.Render("enter to write graphplane.toml · esc to abort"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderDone() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Failed: %v", m.err)) + "\n"
	}
	return successStyle.Render("Wrote graphplane.toml") + "\n"
}

// Aborted reports whether the user cancelled the wizard.
func (m Model) Aborted() bool {
	return m.state == StateAborted
}

// Err returns the file-writing error, if any.
func (m Model) Err() error {
	return m.err
}
