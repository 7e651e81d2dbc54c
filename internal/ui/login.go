package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/storage"
)

type loginDoneMsg struct {
	sess storage.Session
	err  error
}

// loginModel is the email/password screen.
type loginModel struct {
	deps     Deps
	email    textinput.Model
	password textinput.Model
	focus    int // 0 = email, 1 = password
	loading  bool
	errText  string
}

func newLoginModel(deps Deps) loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return loginModel{
		deps:     deps,
		email:    email,
		password: password,
	}
}

func (m loginModel) init() tea.Cmd {
	return textinput.Blink
}

// submit performs the login call and persists the session.
func (m loginModel) submit() tea.Cmd {
	deps := m.deps
	email := m.email.Value()
	password := m.password.Value()
	return func() tea.Msg {
		resp, err := deps.Client.Login(context.Background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		sess := storage.Session{Token: resp.AccessToken, Profile: resp.Profile, Email: email}
		if err := deps.Store.SaveSession(sess); err != nil {
			deps.Logger.Warn("failed to persist session", zap.Error(err))
		}
		return loginDoneMsg{sess: sess}
	}
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return loggedInMsg{sess: msg.sess} }

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.email.Value() == "" || m.password.Value() == "" {
				m.errText = "Please enter email and password"
				return m, nil
			}
			m.loading = true
			m.errText = ""
			return m, m.submit()
		case "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) view() string {
	content := headerStyle.Render(" DMAFB Check-in ") + "\n\n"
	content += sectionStyle.Render("┃ Login") + "\n"
	content += labelStyle.Render("  Email:    ") + m.email.View() + "\n"
	content += labelStyle.Render("  Password: ") + m.password.View() + "\n"

	switch {
	case m.loading:
		content += "\n" + dimStyle.Render("  Signing in...")
	case m.errText != "":
		content += "\n" + errorStyle.Render("  "+m.errText)
	}

	content += "\n" + footer(
		[2]string{"tab", "switch field"},
		[2]string{"enter", "login"},
		[2]string{"esc", "quit"},
	)
	return content
}
