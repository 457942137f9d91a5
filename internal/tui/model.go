// Package tui is the terminal interface: the debate browser, the join
// confirmation prompt, the in-session view, and the profile and create
// forms.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/profile"
	"github.com/hottake/hottake/internal/session"
	"github.com/hottake/hottake/internal/state"
	"github.com/hottake/hottake/internal/tui/styles"
)

// view identifies the active screen.
type view int

const (
	viewBrowse view = iota
	viewSession
	viewProfile
	viewCreate
)

// genderOptions is the cycle order of the profile form's gender field.
// The empty value means undisclosed.
var genderOptions = []profile.Gender{
	"",
	profile.GenderMale,
	profile.GenderFemale,
	profile.GenderOther,
}

// Model holds the TUI application state.
type Model struct {
	app    *state.App
	store  *profile.Store
	client *directory.Client
	ctrl   *session.Controller
	styles *styles.Styles

	view     view
	width    int
	height   int
	ready    bool
	quitting bool

	// Browse state
	cursor        int
	loading       bool
	statusMessage string
	errorMessage  string

	// Session roster navigation
	rosterCursor int

	// Profile form
	nameInput   textinput.Model
	ageInput    textinput.Model
	genderIndex int
	formFocus   int

	// Create form
	titleInput textinput.Model

	// When set, the model opens straight into this debate's session.
	startDebateID string

	hideParticipantAges bool
}

// Option configures a Model.
type Option func(*Model)

// WithTheme selects the color theme.
func WithTheme(name string) Option {
	return func(m *Model) {
		m.styles = styles.New(styles.ThemeName(name))
	}
}

// WithStartDebate opens the session view for the given debate directly,
// skipping the browse screen.
func WithStartDebate(id string) Option {
	return func(m *Model) {
		m.startDebateID = id
		m.view = viewSession
		m.loading = true
	}
}

// WithShowParticipantAges controls whether session tiles include ages.
func WithShowParticipantAges(show bool) Option {
	return func(m *Model) {
		m.hideParticipantAges = !show
	}
}

// NewModel creates the TUI model.
func NewModel(app *state.App, store *profile.Store, client *directory.Client, ctrl *session.Controller, opts ...Option) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 60
	name.Width = 30

	age := textinput.New()
	age.Placeholder = "Age (optional)"
	age.CharLimit = 3
	age.Width = 30

	title := textinput.New()
	title.Placeholder = "Enter title of debate here..."
	title.CharLimit = directory.MaxTitleLength
	title.Width = 40

	m := Model{
		app:        app,
		store:      store,
		client:     client,
		ctrl:       ctrl,
		styles:     styles.New(styles.ThemeDefault),
		nameInput:  name,
		ageInput:   age,
		titleInput: title,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// debates returns the cached directory listing.
func (m Model) debates() []directory.Debate {
	return m.app.Debates()
}

// selectedDebate returns the debate under the browse cursor.
func (m Model) selectedDebate() (directory.Debate, bool) {
	debates := m.debates()
	if m.cursor < 0 || m.cursor >= len(debates) {
		return directory.Debate{}, false
	}
	return debates[m.cursor], true
}

// clampCursor keeps the browse cursor inside the listing after a refresh.
func (m *Model) clampCursor() {
	count := len(m.debates())
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// seedProfileForm fills the form inputs from the current user.
func (m *Model) seedProfileForm() {
	user := m.app.CurrentUser()
	m.nameInput.SetValue(user.Name)
	if user.Age != nil {
		m.ageInput.SetValue(strconv.Itoa(*user.Age))
	} else {
		m.ageInput.SetValue("")
	}
	m.genderIndex = 0
	for i, g := range genderOptions {
		if g == user.Gender {
			m.genderIndex = i
			break
		}
	}
	m.formFocus = 0
	m.nameInput.Focus()
	m.ageInput.Blur()
}
