package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/survey"
)

func TestCompletionRatio(t *testing.T) {
	assert.Equal(t, 0.0, completionRatio(nil))

	items := []api.SurveyListEntry{
		{Status: survey.StatusCompleted},
		{Status: survey.StatusInProgress},
		{Status: survey.StatusCompleted},
		{Status: survey.StatusNotStarted},
	}
	assert.Equal(t, 0.5, completionRatio(items))
}

func TestBuildActivity(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	records := []survey.Progress{
		{LastUpdatedAt: now.Add(-2 * time.Hour)},            // today
		{LastUpdatedAt: now.Add(-26 * time.Hour)},           // yesterday
		{LastUpdatedAt: now.Add(-27 * time.Hour)},           // yesterday
		{LastUpdatedAt: now.AddDate(0, 0, -20)},             // outside window
		{},                                                  // never touched
		{LastUpdatedAt: now.AddDate(0, 0, -13).Add(-time.Hour)}, // oldest bucket
	}

	activity := buildActivity(records, now, 14)
	assert.Len(t, activity, 14)
	assert.Equal(t, 1.0, activity[13], "today")
	assert.Equal(t, 2.0, activity[12], "yesterday")
	assert.Equal(t, 1.0, activity[0], "oldest day in window")

	total := 0.0
	for _, v := range activity {
		total += v
	}
	assert.Equal(t, 4.0, total)
}

func TestBuildActivity_EmptyRecords(t *testing.T) {
	activity := buildActivity(nil, time.Now(), 7)
	assert.Len(t, activity, 7)
	for _, v := range activity {
		assert.Zero(t, v)
	}
}
