// Package session drives one survey-taking session from entry to completion:
// loading content and stored progress, positioning at the resume point,
// advancing through questions, and submitting answers one at a time.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/survey"
)

// State is the controller's lifecycle state.
type State int

const (
	// StateLoading means content and progress are still being fetched.
	StateLoading State = iota
	// StateAnswering means exactly one question is current.
	StateAnswering
	// StateEmpty means there are no questions left to answer.
	StateEmpty
	// StateCompleted means the final answer was accepted.
	StateCompleted
	// StateError means the session cannot proceed this visit.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnswering:
		return "answering"
	case StateEmpty:
		return "empty"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSelection is returned when Submit is called without a selected option.
	ErrNoSelection = errors.New("session: no option selected")
	// ErrSubmissionInFlight is returned when a submission is already pending.
	ErrSubmissionInFlight = errors.New("session: submission already in flight")
	// ErrNotAnswering is returned when Submit is called outside the answering state.
	ErrNotAnswering = errors.New("session: not currently answering")
)

// API is the remote survey surface the controller needs. *api.Client
// satisfies this.
type API interface {
	Survey(ctx context.Context, surveyID string) (*survey.Definition, error)
	Respond(ctx context.Context, sub api.Submission) error
	Complete(ctx context.Context, surveyID, userID string) error
}

// ProgressStore persists resumable progress records. *storage.Store
// satisfies this.
type ProgressStore interface {
	GetProgress(userID, surveyID string) (survey.Progress, bool, error)
	PutProgress(userID, surveyID string, p survey.Progress) error
}

// Controller is the per-survey session state machine. All exported methods
// are safe for concurrent use; submissions are strictly sequential.
type Controller struct {
	api      API
	store    ProgressStore
	logger   *zap.Logger
	now      func() time.Time
	userID   string
	surveyID string

	mu         sync.Mutex
	state      State
	err        error
	def        *survey.Definition
	progress   survey.Progress
	questions  []survey.FlattenedQuestion
	index      int
	selected   string
	submitting bool
	notified   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a controller for one (user, survey) pair in the loading state.
func New(client API, store ProgressStore, userID, surveyID string, opts ...Option) *Controller {
	c := &Controller{
		api:      client,
		store:    store,
		logger:   zap.NewNop(),
		now:      time.Now,
		userID:   userID,
		surveyID: surveyID,
		state:    StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the survey definition and the stored progress record
// concurrently, then positions the session. A definition fetch failure is
// terminal for this visit; a progress read failure is treated as "no record".
func (c *Controller) Load(ctx context.Context) error {
	var (
		def   *survey.Definition
		prog  survey.Progress
		found bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := c.api.Survey(gctx, c.surveyID)
		if err != nil {
			return err
		}
		def = d
		return nil
	})
	g.Go(func() error {
		p, ok, err := c.store.GetProgress(c.userID, c.surveyID)
		if err != nil {
			c.logger.Warn("failed to read stored progress", zap.Error(err))
			return nil
		}
		prog, found = p, ok
		return nil
	})

	if err := g.Wait(); err != nil {
		c.mu.Lock()
		c.state = StateError
		c.err = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.def = def
	if found {
		c.progress = prog
	} else {
		c.progress = survey.Progress{
			UserID:   c.userID,
			SurveyID: c.surveyID,
			Status:   survey.StatusNotStarted,
		}
	}
	if c.progress.UserID == "" {
		c.progress.UserID = c.userID
	}
	if c.progress.SurveyID == "" {
		c.progress.SurveyID = c.surveyID
	}

	// First open flips a fresh record to mid-survey.
	if c.progress.Status == survey.StatusNotStarted || c.progress.Status == "" {
		now := c.now()
		c.progress.Status = survey.StatusInProgress
		c.progress.StartedAt = now
		c.progress.LastUpdatedAt = now
		if err := c.store.PutProgress(c.userID, c.surveyID, c.progress); err != nil {
			c.logger.Warn("failed to persist opened progress", zap.Error(err))
		}
	}
	if c.progress.StartedAt.IsZero() {
		c.progress.StartedAt = c.now()
	}

	c.position()
	return nil
}

// position derives the active question list and resume index. Caller holds mu.
func (c *Controller) position() {
	c.questions = survey.Flatten(c.def, c.progress)
	if len(c.questions) == 0 {
		c.state = StateEmpty
		return
	}
	c.index = survey.ResumeIndex(c.questions, c.progress)
	c.state = StateAnswering
}

// Select records the user's choice for the current question. A new selection
// replaces any prior one. Ignored outside the answering state or while a
// submission is pending.
func (c *Controller) Select(option string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAnswering || c.submitting {
		return
	}
	c.selected = option
}

// Submit sends the current answer. On success the progress record is updated
// and persisted before the session advances; on failure the position,
// selection, and stored progress are all unchanged so the user can retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateAnswering {
		c.mu.Unlock()
		return ErrNotAnswering
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if c.selected == "" {
		c.mu.Unlock()
		return ErrNoSelection
	}

	q := c.questions[c.index]
	isLast := c.index == len(c.questions)-1
	selected := c.selected
	startedAt := c.progress.StartedAt
	c.submitting = true
	c.mu.Unlock()

	now := c.now()
	sub := api.Submission{
		UserID:    c.userID,
		SurveyID:  c.surveyID,
		StartedAt: startedAt,
		Responses: []api.QuestionResponse{
			{QuestionID: q.QuestionID, Response: buildAnswer(q, selected)},
		},
	}
	if isLast {
		sub.CompletedAt = now
	}

	err := c.api.Respond(ctx, sub)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.progress.CompletedQuestionIDs = append(c.progress.CompletedQuestionIDs, q.QuestionID)
	c.progress.LastUpdatedAt = now
	if isLast {
		c.progress.CurrentQuestionID = ""
		c.progress.Status = survey.StatusCompleted
		c.progress.CompletedAt = now
	} else {
		c.progress.CurrentQuestionID = c.questions[c.index+1].QuestionID
	}

	// Persist before advancing. A successful remote submit is never rolled
	// back on a local persistence failure.
	if perr := c.store.PutProgress(c.userID, c.surveyID, c.progress); perr != nil {
		c.logger.Warn("failed to persist progress", zap.Error(perr))
	}

	c.selected = ""
	if isLast {
		c.state = StateCompleted
		notify := !c.notified
		c.notified = true
		c.mu.Unlock()

		if notify {
			if nerr := c.api.Complete(ctx, c.surveyID, c.userID); nerr != nil {
				c.logger.Warn("completion notification failed", zap.Error(nerr))
			}
		}
		return nil
	}

	c.position()
	c.mu.Unlock()
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the terminal error, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Current returns the question being answered. ok is false outside the
// answering state.
func (c *Controller) Current() (survey.FlattenedQuestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAnswering {
		return survey.FlattenedQuestion{}, false
	}
	return c.questions[c.index], true
}

// Position returns the 0-based index within the remaining questions and
// their total count.
func (c *Controller) Position() (index, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index, len(c.questions)
}

// IsLast reports whether the current question is the final one remaining.
func (c *Controller) IsLast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAnswering && c.index == len(c.questions)-1
}

// Selected returns the currently selected option label, or "".
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// CanSubmit reports whether the submit affordance should be enabled: an
// option is selected and no submission is pending.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAnswering && c.selected != "" && !c.submitting
}

// Progress returns a copy of the current progress record.
func (c *Controller) Progress() survey.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.progress
	p.CompletedQuestionIDs = append([]string(nil), p.CompletedQuestionIDs...)
	return p
}

// buildAnswer resolves the 1-based value of the selected label within the
// question's option list. The value is omitted when the label is absent; the
// label itself is always carried.
func buildAnswer(q survey.FlattenedQuestion, selected string) api.Answer {
	for i, opt := range q.Options {
		if opt == selected {
			value := i + 1
			return api.Answer{Value: &value, Label: selected}
		}
	}
	return api.Answer{Label: selected}
}
