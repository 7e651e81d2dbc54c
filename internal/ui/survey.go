package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/session"
	"github.com/dmafb/checkin/internal/storage"
)

type sessionLoadedMsg struct{ err error }

type answerSubmittedMsg struct{ err error }

// surveyModel is the paged survey-taking screen. All survey state lives in
// the session controller; this model only tracks the option cursor and
// transient UI status.
type surveyModel struct {
	deps  Deps
	entry api.SurveyListEntry
	ctrl  *session.Controller

	cursor  int
	loading bool
	spin    spinner.Model
	errText string
}

func newSurveyModel(deps Deps, sess storage.Session, entry api.SurveyListEntry) surveyModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	ctrl := session.New(
		deps.Client,
		deps.Store,
		sess.Profile.UserID,
		entry.SurveyID,
		session.WithLogger(deps.Logger),
	)
	return surveyModel{deps: deps, entry: entry, ctrl: ctrl, spin: spin, loading: true}
}

func (m surveyModel) load() tea.Cmd {
	ctrl := m.ctrl
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return sessionLoadedMsg{err: ctrl.Load(context.Background())}
	})
}

func (m surveyModel) submit() tea.Cmd {
	ctrl := m.ctrl
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return answerSubmittedMsg{err: ctrl.Submit(context.Background())}
	})
}

func (m surveyModel) update(msg tea.Msg) (surveyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		return m, nil

	case answerSubmittedMsg:
		m.loading = false
		if msg.err != nil {
			// Position and selection are preserved for a manual retry.
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.cursor = 0
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.ctrl.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m surveyModel) handleKey(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		if m.ctrl.Submitting() {
			return m, nil
		}
		refresh := m.ctrl.State() == session.StateCompleted ||
			len(m.ctrl.Progress().CompletedQuestionIDs) > 0
		return m, func() tea.Msg { return closeSurveyMsg{refresh: refresh} }
	}

	q, ok := m.ctrl.Current()
	if !ok || m.ctrl.Submitting() {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case " ":
		m.ctrl.Select(q.Options[m.cursor])
	case "enter":
		if m.ctrl.CanSubmit() {
			m.errText = ""
			return m, m.submit()
		}
	}
	return m, nil
}

func (m surveyModel) view() string {
	title := m.entry.Title()
	content := headerStyle.Render(" "+title+" ") + "\n\n"

	if m.loading {
		return content + m.spin.View() + dimStyle.Render(" Loading survey...")
	}

	switch m.ctrl.State() {
	case session.StateError:
		content += errorStyle.Render(m.errText) + "\n"
		content += footer([2]string{"esc", "back"})
		return content

	case session.StateEmpty:
		content += dimStyle.Render("No questions available.") + "\n"
		content += footer([2]string{"esc", "back"})
		return content

	case session.StateCompleted:
		content += successStyle.Render("✓ Survey complete") + "\n"
		content += dimStyle.Render("Thank you for your responses.") + "\n"
		content += footer([2]string{"esc", "back"})
		return content
	}

	q, ok := m.ctrl.Current()
	if !ok {
		return content + dimStyle.Render("Nothing to answer.")
	}

	index, total := m.ctrl.Position()
	content += sectionStyle.Render("┃ "+q.SectionTitle) +
		dimStyle.Render(fmt.Sprintf("  (%d of %d remaining)", index+1, total)) + "\n"
	if q.Scale != "" {
		content += dimStyle.Render("  Scale: "+q.Scale) + "\n"
	}
	content += "\n" + valueStyle.Render("  "+q.Text) + "\n\n"

	selected := m.ctrl.Selected()
	for i, opt := range q.Options {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		radio := "( ) "
		if opt == selected {
			radio = "(•) "
		}
		line := marker + radio + opt
		if opt == selected {
			content += selectedOptionStyle.Render(line) + "\n"
		} else {
			content += optionStyle.Render(line) + "\n"
		}
	}

	if m.ctrl.Submitting() {
		content += "\n" + m.spin.View() + dimStyle.Render(" Submitting...")
	} else if m.errText != "" {
		content += "\n" + errorStyle.Render(m.errText)
	}

	action := "next"
	if m.ctrl.IsLast() {
		action = "finish"
	}
	content += "\n" + footer(
		[2]string{"↑/↓", "move"},
		[2]string{"space", "select"},
		[2]string{"enter", action},
		[2]string{"esc", "back"},
	)
	return content
}
