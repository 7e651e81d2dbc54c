package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/storage"
	"github.com/dmafb/checkin/internal/survey"
)

const (
	trendDays       = 14
	sparklineWidth  = 30
	sparklineHeight = 3
)

type dashboardLoadedMsg struct {
	items   []api.SurveyListEntry
	records []survey.Progress
	err     error
}

// homeModel is the dashboard screen: greeting, overall completion, and a
// check-in activity trend derived from locally stored progress records.
type homeModel struct {
	deps Deps
	sess storage.Session

	items   []api.SurveyListEntry
	records []survey.Progress
	loaded  bool
	errText string

	completion progress.Model
}

func newHomeModel(deps Deps, sess storage.Session) homeModel {
	completion := progress.New(
		progress.WithGradient("#00ffff", "#00ff00"),
		progress.WithWidth(40),
	)
	return homeModel{deps: deps, sess: sess, completion: completion}
}

// load fetches the survey list (through the cache) and the local progress
// history. A list failure still renders the local trend.
func (m homeModel) load() tea.Cmd {
	deps := m.deps
	userID := m.sess.Profile.UserID
	return func() tea.Msg {
		items, err := deps.Lists.Fetch(context.Background(), false)
		records, rerr := deps.Store.ListProgress(userID)
		if rerr != nil {
			deps.Logger.Warn("failed to read progress history", zap.Error(rerr))
		}
		return dashboardLoadedMsg{items: items, records: records, err: err}
	}
}

func (m homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loaded = true
		m.records = msg.records
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.items = msg.items
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load()
		}
	}
	return m, nil
}

// completionRatio is the share of assigned surveys already completed.
func completionRatio(items []api.SurveyListEntry) float64 {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.Status == survey.StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(items))
}

// buildActivity buckets check-in activity into one value per day, oldest
// first, covering the last days days ending at now. A progress record counts
// toward the day it was last updated; untouched records count nowhere.
func buildActivity(records []survey.Progress, now time.Time, days int) []float64 {
	activity := make([]float64, days)
	today := now.Truncate(24 * time.Hour)
	for _, r := range records {
		if r.LastUpdatedAt.IsZero() {
			continue
		}
		age := int(today.Sub(r.LastUpdatedAt.Truncate(24 * time.Hour)).Hours() / 24)
		if age < 0 || age >= days {
			continue
		}
		activity[days-1-age]++
	}
	return activity
}

// renderSparkline renders a trend chart from daily activity counts.
func renderSparkline(data []float64) string {
	if len(data) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, "no data"))
	}
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range data {
		spark.Push(v)
	}
	return sparklineStyle.Render(spark.View())
}

func (m homeModel) view() string {
	content := headerStyle.Render(" DMAFB Check-in ") + "\n"
	content += valueStyle.Render("Hello, "+m.sess.Profile.FullName()) + "\n"

	if !m.loaded {
		return content + "\n" + dimStyle.Render("Loading dashboard...")
	}

	content += "\n" + sectionStyle.Render("┃ Surveys") + "\n"
	if m.errText != "" {
		content += errorStyle.Render("  "+m.errText) + "\n"
	} else {
		ratio := completionRatio(m.items)
		content += labelStyle.Render("  Completed: ") +
			m.completion.ViewAs(ratio) +
			" " + dimStyle.Render(fmt.Sprintf("%.0f%%", ratio*100)) + "\n"

		open := 0
		for _, item := range m.items {
			if item.Status != survey.StatusCompleted && item.Status != survey.StatusAbandoned {
				open++
			}
		}
		content += labelStyle.Render("  Open: ") +
			valueStyle.Render(fmt.Sprintf("%d", open)) +
			dimStyle.Render(fmt.Sprintf(" of %d assigned", len(m.items))) + "\n"
	}

	content += "\n" + sectionStyle.Render("┃ Check-in trend") + "\n"
	activity := buildActivity(m.records, m.deps.Now(), trendDays)
	content += labelStyle.Render(fmt.Sprintf("  Last %d days: ", trendDays)) + "\n"
	content += renderSparkline(activity) + "\n"

	content += footer([2]string{"r", "refresh"})
	return content
}
