// Package survey holds the wellness survey domain types and the question
// flattening logic shared by the session controller and the UI.
package survey

import "time"

// Status describes how far a user has advanced through a survey.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusAbandoned  Status = "ABANDONED"
)

// Definition is the immutable survey content fetched per survey id.
type Definition struct {
	Sections []Section `json:"sections"`
}

// Section groups questions that share one option set.
type Section struct {
	Title   string         `json:"title"`
	Scale   string         `json:"scale,omitempty"`
	Content SectionContent `json:"content"`
}

// SectionContent holds a section's answer options and questions, both ordered.
type SectionContent struct {
	Options   []string   `json:"options"`
	Questions []Question `json:"questions"`
}

// Question is a single survey question with a stable identifier.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// FlattenedQuestion is one answerable question in the linearized survey,
// carrying its section's option set and scale label. Derived, never persisted.
type FlattenedQuestion struct {
	QuestionID   string
	Text         string
	Options      []string
	SectionTitle string
	Scale        string
}

// Progress is the resumable per-(user, survey) answering state. A zero
// CompletedAt means "not yet complete"; it marshals to the wire sentinel
// "0001-01-01T00:00:00Z". An empty CurrentQuestionID means the session is
// either unpositioned or past the last question.
type Progress struct {
	UserID               string    `json:"userID"`
	SurveyID             string    `json:"surveyID"`
	Status               Status    `json:"status"`
	StartedAt            time.Time `json:"startedAt"`
	LastUpdatedAt        time.Time `json:"lastUpdatedAt"`
	CompletedAt          time.Time `json:"completedAt"`
	CurrentQuestionID    string    `json:"currentQuestionID"`
	CompletedQuestionIDs []string  `json:"completedQuestionIds"`
}

// Completed reports whether id has already been answered.
func (p Progress) Completed(id string) bool {
	for _, done := range p.CompletedQuestionIDs {
		if done == id {
			return true
		}
	}
	return false
}

// QuestionCount returns the total number of questions across all sections.
func (d *Definition) QuestionCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, s := range d.Sections {
		n += len(s.Content.Questions)
	}
	return n
}
