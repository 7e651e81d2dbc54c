// Package ui implements the terminal screens: login, home dashboard, survey
// list, survey-taking flow, and settings.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/auth"
	"github.com/dmafb/checkin/internal/cache"
	"github.com/dmafb/checkin/internal/storage"
)

// Deps are the shared collaborators injected into every screen.
type Deps struct {
	Client *api.Client
	Store  *storage.Store
	Lists  *cache.SurveyList
	Logger *zap.Logger
	Now    func() time.Time
}

type screenID int

const (
	screenLogin screenID = iota
	screenHome
	screenSurveys
	screenSurvey
	screenSettings
)

// Screen-switch messages emitted by child screens.
type (
	loggedInMsg  struct{ sess storage.Session }
	loggedOutMsg struct{}
	openSurveyMsg struct {
		entry api.SurveyListEntry
	}
	closeSurveyMsg struct{ refresh bool }
)

// App is the root model. It owns the active screen and the authenticated
// session, and routes messages to the screen models.
type App struct {
	deps   Deps
	active screenID
	sess   storage.Session

	login    loginModel
	home     homeModel
	surveys  surveysModel
	survey   surveyModel
	settings settingsModel

	width  int
	height int
}

// NewApp builds the root model. A stored, unexpired session skips the login
// screen; anything else lands on it.
func NewApp(deps Deps) App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app := App{
		deps:   deps,
		active: screenLogin,
		login:  newLoginModel(deps),
	}

	sess, err := deps.Store.LoadSession()
	if err == nil && !auth.Expired(sess.Token, deps.Now()) {
		app.startSession(sess)
	}
	return app
}

// startSession wires an authenticated session into the client and screens.
func (a *App) startSession(sess storage.Session) {
	a.sess = sess
	a.deps.Client.SetToken(sess.Token)
	a.home = newHomeModel(a.deps, sess)
	a.surveys = newSurveysModel(a.deps, sess)
	a.settings = newSettingsModel(a.deps, sess)
	a.active = screenHome
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.active == screenLogin {
		return a.login.init()
	}
	return a.home.load()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case loggedInMsg:
		a.startSession(msg.sess)
		return a, a.home.load()

	case loggedOutMsg:
		a.sess = storage.Session{}
		a.deps.Client.SetToken("")
		a.login = newLoginModel(a.deps)
		a.active = screenLogin
		return a, a.login.init()

	case openSurveyMsg:
		a.survey = newSurveyModel(a.deps, a.sess, msg.entry)
		a.active = screenSurvey
		return a, a.survey.load()

	case closeSurveyMsg:
		a.active = screenSurveys
		if msg.refresh {
			// Force a live fetch so the list reflects the answers just given.
			return a, a.surveys.reload(true)
		}
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
	}

	return a.updateActive(msg)
}

// handleGlobalKey processes quit and tab-switch keys. Text-entry screens and
// the survey flow get their keys untouched except for ctrl+c.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if a.active == screenLogin || a.active == screenSurvey {
		return nil, false
	}

	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "1":
		a.active = screenHome
		return a.home.load(), true
	case "2":
		a.active = screenSurveys
		return a.surveys.reload(true), true
	case "3":
		a.active = screenSettings
		return nil, true
	}
	return nil, false
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case screenLogin:
		a.login, cmd = a.login.update(msg)
	case screenHome:
		a.home, cmd = a.home.update(msg)
	case screenSurveys:
		a.surveys, cmd = a.surveys.update(msg)
	case screenSurvey:
		a.survey, cmd = a.survey.update(msg)
	case screenSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	var body string
	switch a.active {
	case screenLogin:
		body = a.login.view()
	case screenHome:
		body = a.home.view()
	case screenSurveys:
		body = a.surveys.view()
	case screenSurvey:
		body = a.survey.view()
	case screenSettings:
		body = a.settings.view()
	}

	if a.active != screenLogin && a.active != screenSurvey {
		body += "\n" + footer(
			[2]string{"1", "home"},
			[2]string{"2", "surveys"},
			[2]string{"3", "settings"},
			[2]string{"q", "quit"},
		)
	}
	return containerStyle.Render(body)
}
