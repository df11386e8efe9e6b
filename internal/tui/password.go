package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type pwField int

const (
	pwFieldPassword pwField = iota
	pwFieldConfirm
)

// passwordModel handles the store password prompt. On first run it shows a
// second field to confirm the new password.
type passwordModel struct {
	password textinput.Model
	confirm  textinput.Model
	focused  pwField
	firstRun bool
	errMsg   string
}

// passwordSubmitMsg is sent when the user submits a password.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg is sent when the store rejects the password.
type passwordErrMsg struct {
	err error
}

func newPasswordInput() textinput.Model {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

func newPasswordModel(firstRun bool) passwordModel {
	pw := newPasswordInput()
	pw.Focus()

	return passwordModel{
		password: pw,
		confirm:  newPasswordInput(),
		firstRun: firstRun,
	}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}

		if key.Matches(msg, zstyle.KeyTab) {
			if m.firstRun {
				m = m.focus(1 - m.focused)
			}
			return m, nil
		}

		m.errMsg = ""

	case passwordErrMsg:
		m.errMsg = msg.err.Error()
		m.password.SetValue("")
		m.confirm.SetValue("")
		m = m.focus(pwFieldPassword)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == pwFieldConfirm {
		m.confirm, cmd = m.confirm.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m passwordModel) focus(f pwField) passwordModel {
	m.focused = f
	if f == pwFieldConfirm {
		m.password.Blur()
		m.confirm.Focus()
	} else {
		m.confirm.Blur()
		m.password.Focus()
	}
	return m
}

func (m passwordModel) handleSubmit() (passwordModel, tea.Cmd) {
	val := m.password.Value()
	if val == "" {
		m.errMsg = "password cannot be empty"
		return m.focus(pwFieldPassword), nil
	}

	if m.firstRun {
		if m.focused == pwFieldPassword {
			return m.focus(pwFieldConfirm), nil
		}
		if m.confirm.Value() != val {
			m.errMsg = "passwords do not match"
			m.confirm.SetValue("")
			return m, nil
		}
	}

	m.errMsg = ""
	return m, func() tea.Msg {
		return passwordSubmitMsg{password: val}
	}
}

func (m passwordModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(
		zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)),
	)
	toolName := indent.Render(zstyle.MutedText.Render("zpnr"))

	title := "unlock store"
	desc := "enter your master password to open saved numbers"
	if m.firstRun {
		title = "create new store"
		desc = "choose a master password for saved numbers"
	}

	s := fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n\n",
		logo, toolName, zstyle.Subtitle.Render(title), zstyle.MutedText.Render(desc))

	s += "  " + fieldLabel("password", m.focused == pwFieldPassword) + "\n"
	s += "  " + m.password.View() + "\n"

	if m.firstRun {
		s += "\n  " + fieldLabel("confirm", m.focused == pwFieldConfirm) + "\n"
		s += "  " + m.confirm.View() + "\n"
	}

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg)
	}

	s += "\n"
	return s
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return accentStyle.Render(label)
	}
	return zstyle.MutedText.Render(label)
}
