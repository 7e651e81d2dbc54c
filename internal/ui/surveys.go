package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/storage"
	"github.com/dmafb/checkin/internal/survey"
)

type surveysLoadedMsg struct {
	items []api.SurveyListEntry
	err   error
}

// surveysModel is the survey list screen.
type surveysModel struct {
	deps    Deps
	sess    storage.Session
	items   []api.SurveyListEntry
	cursor  int
	loading bool
	spin    spinner.Model
	errText string
}

func newSurveysModel(deps Deps, sess storage.Session) surveysModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return surveysModel{deps: deps, sess: sess, spin: spin, loading: true}
}

// reload fetches the survey list. Re-entering the screen forces a live fetch
// so freshly answered surveys show their new status.
func (m surveysModel) reload(force bool) tea.Cmd {
	deps := m.deps
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		items, err := deps.Lists.Fetch(context.Background(), force)
		return surveysLoadedMsg{items: items, err: err}
	})
}

// open seeds a local progress record from the list projection when none
// exists yet, then switches to the survey screen.
func (m surveysModel) open(entry api.SurveyListEntry) tea.Cmd {
	deps := m.deps
	userID := m.sess.Profile.UserID
	return func() tea.Msg {
		_, found, err := deps.Store.GetProgress(userID, entry.SurveyID)
		if err != nil {
			deps.Logger.Warn("failed to read progress before open", zap.Error(err))
		}
		if !found && err == nil {
			seed := survey.Progress{
				UserID:               userID,
				SurveyID:             entry.SurveyID,
				Status:               entry.Status,
				StartedAt:            deps.Now(),
				LastUpdatedAt:        deps.Now(),
				CurrentQuestionID:    entry.CurrentQuestionID,
				CompletedQuestionIDs: entry.CompletedQuestionIDs,
			}
			if seed.Status == "" {
				seed.Status = survey.StatusNotStarted
			}
			if err := deps.Store.PutProgress(userID, entry.SurveyID, seed); err != nil {
				deps.Logger.Warn("failed to seed progress record", zap.Error(err))
			}
		}
		return openSurveyMsg{entry: entry}
	}
}

// openable reports whether a card can be opened: unstarted surveys start,
// in-progress surveys resume, finished ones are inert.
func openable(status survey.Status) bool {
	return status == survey.StatusNotStarted || status == survey.StatusInProgress || status == ""
}

func (m surveysModel) update(msg tea.Msg) (surveysModel, tea.Cmd) {
	switch msg := msg.(type) {
	case surveysLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			return m, m.reload(true)
		case "enter":
			if m.cursor < len(m.items) && openable(m.items[m.cursor].Status) {
				return m, m.open(m.items[m.cursor])
			}
		}
	}
	return m, nil
}

func (m surveysModel) view() string {
	content := headerStyle.Render(" Surveys ") + "\n\n"

	switch {
	case m.loading:
		return content + m.spin.View() + dimStyle.Render(" Loading surveys...")
	case m.errText != "":
		return content + errorStyle.Render(m.errText) + "\n" + footer([2]string{"r", "retry"})
	case len(m.items) == 0:
		return content + dimStyle.Render("No surveys assigned.")
	}

	for i, item := range m.items {
		card := valueStyle.Render(item.Title()) + "  " + statusBadge(string(item.Status)) + "\n"
		if item.SurveyMeta.Description != "" {
			card += dimStyle.Render(item.SurveyMeta.Description) + "\n"
		}
		switch item.Status {
		case survey.StatusInProgress:
			card += labelStyle.Render("enter to resume")
		case survey.StatusNotStarted, "":
			card += labelStyle.Render("enter to start")
		default:
			card += dimStyle.Render("done")
		}

		style := cardStyle
		if i == m.cursor {
			style = selectedCardStyle
		}
		content += style.Render(card) + "\n"
	}

	content += footer(
		[2]string{"↑/↓", "select"},
		[2]string{"enter", "open"},
		[2]string{"r", "refresh"},
	)
	return content
}
