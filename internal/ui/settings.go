package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/auth"
	"github.com/dmafb/checkin/internal/storage"
)

// settingsModel is the profile and logout screen.
type settingsModel struct {
	deps Deps
	sess storage.Session
}

func newSettingsModel(deps Deps, sess storage.Session) settingsModel {
	return settingsModel{deps: deps, sess: sess}
}

func (m settingsModel) logout() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		if err := deps.Store.ClearSession(); err != nil {
			deps.Logger.Warn("failed to clear session", zap.Error(err))
		}
		return loggedOutMsg{}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "x" {
		return m, m.logout()
	}
	return m, nil
}

func (m settingsModel) view() string {
	p := m.sess.Profile

	company := p.CompanyName
	if company == "" {
		company = "Unknown Company"
	}
	role := p.Role
	if role == "" {
		role = "Member"
	}

	content := headerStyle.Render(" Settings ") + "\n\n"
	content += sectionStyle.Render("┃ Profile") + "\n"
	content += labelStyle.Render("  Name:    ") + valueStyle.Render(p.FullName()) + "\n"
	content += labelStyle.Render("  Company: ") + valueStyle.Render(company) + "\n"
	content += labelStyle.Render("  Role:    ") + valueStyle.Render(role) + "\n"
	if m.sess.Email != "" {
		content += labelStyle.Render("  Email:   ") + valueStyle.Render(m.sess.Email) + "\n"
	}

	content += "\n" + sectionStyle.Render("┃ Session") + "\n"
	if exp, ok := auth.TokenExpiry(m.sess.Token); ok {
		if m.deps.Now().After(exp) {
			content += labelStyle.Render("  Expires: ") + errorStyle.Render(exp.Format("Jan 2 15:04")+" (expired)") + "\n"
		} else {
			content += labelStyle.Render("  Expires: ") + valueStyle.Render(exp.Format("Jan 2 15:04")) + "\n"
		}
	} else {
		content += labelStyle.Render("  Expires: ") + dimStyle.Render("unknown") + "\n"
	}

	content += "\n" + footer([2]string{"x", "logout"})
	return content
}
