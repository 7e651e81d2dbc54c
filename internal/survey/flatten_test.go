package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSectionDefinition() *Definition {
	return &Definition{
		Sections: []Section{
			{
				Title: "Energy",
				Scale: "1 = never, 3 = always",
				Content: SectionContent{
					Options: []string{"Never", "Sometimes", "Always"},
					Questions: []Question{
						{ID: "q1", Text: "I feel rested in the morning."},
						{ID: "q2", Text: "I have energy through the afternoon."},
					},
				},
			},
			{
				Title: "Workload",
				Content: SectionContent{
					Options: []string{"Never", "Sometimes", "Always"},
					Questions: []Question{
						{ID: "q3", Text: "My workload feels manageable."},
						{ID: "q4", Text: "I can disconnect after hours."},
					},
				},
			},
		},
	}
}

func TestFlatten_NilDefinition(t *testing.T) {
	assert.Empty(t, Flatten(nil, Progress{}))
}

func TestFlatten_DocumentOrder(t *testing.T) {
	def := twoSectionDefinition()

	list := Flatten(def, Progress{})
	require.Len(t, list, 4)

	ids := make([]string, len(list))
	for i, q := range list {
		ids[i] = q.QuestionID
	}
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, ids)

	// Every question carries its section's full option set and labels.
	for _, q := range list {
		assert.Equal(t, []string{"Never", "Sometimes", "Always"}, q.Options)
	}
	assert.Equal(t, "Energy", list[0].SectionTitle)
	assert.Equal(t, "1 = never, 3 = always", list[1].Scale)
	assert.Equal(t, "Workload", list[2].SectionTitle)
	assert.Empty(t, list[3].Scale)
}

func TestFlatten_ResumeFilter(t *testing.T) {
	def := twoSectionDefinition()
	progress := Progress{
		Status:               StatusInProgress,
		CompletedQuestionIDs: []string{"q1", "q3"},
	}

	list := Flatten(def, progress)
	require.Len(t, list, 2)
	assert.Equal(t, "q2", list[0].QuestionID)
	assert.Equal(t, "q4", list[1].QuestionID)
}

func TestFlatten_NoFilterUnlessInProgress(t *testing.T) {
	def := twoSectionDefinition()

	for _, status := range []Status{StatusNotStarted, StatusCompleted, StatusAbandoned} {
		progress := Progress{Status: status, CompletedQuestionIDs: []string{"q1", "q3"}}
		assert.Len(t, Flatten(def, progress), 4, "status %s must not filter", status)
	}
}

func TestFlatten_EmptyCompletedSet(t *testing.T) {
	def := twoSectionDefinition()
	progress := Progress{Status: StatusInProgress}

	assert.Len(t, Flatten(def, progress), 4)
}

func TestResumeIndex_Found(t *testing.T) {
	list := Flatten(twoSectionDefinition(), Progress{})
	progress := Progress{Status: StatusInProgress, CurrentQuestionID: "q3"}

	assert.Equal(t, 2, ResumeIndex(list, progress))
}

func TestResumeIndex_StaleFallsBackToZero(t *testing.T) {
	list := Flatten(twoSectionDefinition(), Progress{})
	progress := Progress{Status: StatusInProgress, CurrentQuestionID: "gone"}

	assert.Equal(t, 0, ResumeIndex(list, progress))
}

func TestResumeIndex_NotInProgress(t *testing.T) {
	list := Flatten(twoSectionDefinition(), Progress{})
	progress := Progress{Status: StatusNotStarted, CurrentQuestionID: "q3"}

	assert.Equal(t, 0, ResumeIndex(list, progress))
}

func TestProgress_Completed(t *testing.T) {
	p := Progress{CompletedQuestionIDs: []string{"q1", "q2"}}
	assert.True(t, p.Completed("q1"))
	assert.False(t, p.Completed("q9"))
}
