package api

import (
	"time"

	"github.com/dmafb/checkin/internal/survey"
)

// LoginRequest is the employee login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the opaque access token and the employee profile.
type LoginResponse struct {
	AccessToken string  `json:"accessToken"`
	Profile     Profile `json:"profile"`
}

// Profile is the authenticated employee identity returned by login.
type Profile struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	MemberID    string `json:"member_id"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// FullName joins first and last name, falling back to "Unknown User".
func (p Profile) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return "Unknown User"
	}
}

// SurveyMeta is the display metadata attached to a list entry.
type SurveyMeta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// SurveyListEntry is the server's read projection of a survey assignment and
// its progress, as returned by the list endpoint.
type SurveyListEntry struct {
	UserID               string        `json:"userID"`
	SurveyID             string        `json:"surveyID"`
	Status               survey.Status `json:"status,omitempty"`
	SurveyMeta           SurveyMeta    `json:"surveyMeta"`
	StartedAt            time.Time     `json:"startedAt,omitempty"`
	LastUpdatedAt        time.Time     `json:"lastUpdatedAt,omitempty"`
	CompletedAt          time.Time     `json:"completedAt,omitempty"`
	CurrentQuestionID    string        `json:"currentQuestionID,omitempty"`
	CompletedQuestionIDs []string      `json:"completedQuestionIds,omitempty"`
}

// Title returns the display title, falling back to the survey id.
func (e SurveyListEntry) Title() string {
	if e.SurveyMeta.Title != "" {
		return e.SurveyMeta.Title
	}
	return e.SurveyID
}

// Answer is a single selected option. Value is the 1-based position of the
// label within the question's option list; it is omitted when the label is
// not found there.
type Answer struct {
	Value *int   `json:"value,omitempty"`
	Label string `json:"label"`
}

// QuestionResponse pairs a question id with its answer.
type QuestionResponse struct {
	QuestionID string `json:"questionID"`
	Response   Answer `json:"response"`
}

// Submission is the per-answer response payload. CompletedAt stays at the
// zero-time sentinel until the final answer of the survey.
type Submission struct {
	UserID      string             `json:"userID"`
	SurveyID    string             `json:"surveyID"`
	StartedAt   time.Time          `json:"startedAt"`
	CompletedAt time.Time          `json:"completedAt"`
	Responses   []QuestionResponse `json:"responses"`
}
