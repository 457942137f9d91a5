package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/profile"
	"github.com/hottake/hottake/internal/session"
)

// errInvalidAge rejects non-numeric age input before it reaches the store.
var errInvalidAge = errors.NewValidationError("age must be a number").WithField("age")

// Init starts the initial data load.
func (m Model) Init() tea.Cmd {
	if m.startDebateID != "" {
		return tea.Batch(textinput.Blink, loadDebate(m.ctrl, m.client, m.startDebateID))
	}
	return tea.Batch(textinput.Blink, loadDebates(m.client))
}

// Update handles messages and drives the state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case debatesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = "Could not reach the debate directory."
			return m, nil
		}
		m.errorMessage = ""
		m.app.SetDebates(msg.debates)
		m.clampCursor()
		return m, nil

	case debateLoadedMsg:
		applied := m.ctrl.CompleteFetch(msg.token, msg.debate, msg.err)
		if !applied {
			// A newer navigation superseded this fetch.
			return m, nil
		}
		m.loading = false
		m.rosterCursor = 0
		return m, nil

	case debateCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = userMessage(msg.err, "Could not create the debate.")
			return m, nil
		}
		m.errorMessage = ""
		m.statusMessage = "Created \"" + msg.debate.Title + "\""
		m.view = viewBrowse
		m.loading = true
		return m, loadDebates(m.client)

	case debateRemovedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = "Could not delete the debate."
			return m, nil
		}
		if !msg.ok {
			m.statusMessage = "Debate was already gone."
		} else {
			m.statusMessage = "Debate deleted."
		}
		m.loading = true
		return m, loadDebates(m.client)

	case profileSavedMsg:
		if msg.err != nil {
			m.errorMessage = userMessage(msg.err, "Could not save your profile.")
			return m, nil
		}
		m.errorMessage = ""
		m.statusMessage = "Profile saved."
		m.view = viewBrowse
		return m, nil
	}

	return m.updateInputs(msg)
}

// userMessage prefers the error's own text for validation problems, where
// it names the field, and falls back otherwise.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if strings.Contains(msg, "title") || strings.Contains(msg, "name") || strings.Contains(msg, "age") {
		return msg
	}
	return fallback
}

// handleKey routes a keypress to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewBrowse:
		return m.handleBrowseKey(msg)
	case viewSession:
		return m.handleSessionKey(msg)
	case viewProfile:
		return m.handleProfileKey(msg)
	case viewCreate:
		return m.handleCreateKey(msg)
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirmation prompt captures input while open.
	if m.ctrl.ModalOpen() {
		switch msg.String() {
		case "enter", "y":
			id, err := m.ctrl.Confirm()
			if err != nil {
				m.errorMessage = "Nothing selected."
				return m, nil
			}
			m.view = viewSession
			m.loading = true
			m.errorMessage = ""
			return m, loadDebate(m.ctrl, m.client, id)
		case "esc", "n":
			m.ctrl.Cancel()
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.debates())-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if debate, ok := m.selectedDebate(); ok {
			m.ctrl.Select(debate)
		}
		return m, nil
	case "r":
		m.loading = true
		m.statusMessage = ""
		return m, loadDebates(m.client)
	case "c":
		m.titleInput.SetValue("")
		m.titleInput.Focus()
		m.view = viewCreate
		m.errorMessage = ""
		m.statusMessage = ""
		return m, nil
	case "p":
		m.seedProfileForm()
		m.view = viewProfile
		m.errorMessage = ""
		m.statusMessage = ""
		return m, nil
	case "d":
		if debate, ok := m.selectedDebate(); ok {
			m.loading = true
			return m, removeDebate(m.client, debate.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a participant is fullscreen, the overlay owns the keyboard;
	// only closing it is possible.
	if _, focused := m.ctrl.Focused(); focused {
		if msg.String() == "esc" || msg.String() == "f" {
			m.ctrl.CloseFullscreen()
		}
		return m, nil
	}

	if m.ctrl.CurrentState() == session.StateErrored {
		switch msg.String() {
		case "esc", "enter", "q":
			m.ctrl.Leave()
			m.view = viewBrowse
			m.loading = true
			return m, loadDebates(m.client)
		}
		return m, nil
	}

	switch msg.String() {
	case "m":
		m.ctrl.ToggleMute()
		return m, nil
	case "v":
		m.ctrl.ToggleVideo()
		return m, nil
	case "up", "k":
		if m.rosterCursor > 0 {
			m.rosterCursor--
		}
		return m, nil
	case "down", "j":
		if m.rosterCursor < len(m.ctrl.Roster())-1 {
			m.rosterCursor++
		}
		return m, nil
	case "f", "enter":
		roster := m.ctrl.Roster()
		if m.rosterCursor >= 0 && m.rosterCursor < len(roster) {
			m.ctrl.OpenFullscreen(roster[m.rosterCursor])
		}
		return m, nil
	case "esc", "q":
		m.ctrl.Leave()
		m.view = viewBrowse
		m.loading = true
		return m, loadDebates(m.client)
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewBrowse
		return m, nil
	case "tab", "down":
		m.setFormFocus(m.formFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFormFocus(m.formFocus - 1)
		return m, nil
	case "left":
		if m.formFocus == 2 {
			m.genderIndex = (m.genderIndex + len(genderOptions) - 1) % len(genderOptions)
			return m, nil
		}
	case "right":
		if m.formFocus == 2 {
			m.genderIndex = (m.genderIndex + 1) % len(genderOptions)
			return m, nil
		}
	case "enter":
		patch, err := m.buildProfilePatch()
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		return m, saveProfile(m.store, patch)
	}

	return m.updateInputs(msg)
}

// buildProfilePatch translates the form into a merge patch. Clearing a
// field in the form clears it in the stored profile too.
func (m Model) buildProfilePatch() (profile.Patch, error) {
	patch := profile.Patch{}.WithName(strings.TrimSpace(m.nameInput.Value()))

	ageText := strings.TrimSpace(m.ageInput.Value())
	if ageText == "" {
		patch = patch.ClearAge()
	} else {
		age, err := strconv.Atoi(ageText)
		if err != nil {
			return profile.Patch{}, errInvalidAge
		}
		if err := profile.ValidateAge(&age); err != nil {
			return profile.Patch{}, err
		}
		patch = patch.WithAge(age)
	}

	gender := genderOptions[m.genderIndex]
	if gender == "" {
		patch = patch.ClearGender()
	} else {
		patch = patch.WithGender(gender)
	}

	return patch, nil
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewBrowse
		return m, nil
	case "enter":
		draft := directory.Draft{
			Title: m.titleInput.Value(),
			Owner: m.app.CurrentUser(),
		}
		if err := draft.Validate(); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.loading = true
		m.errorMessage = ""
		return m, createDebate(m.client, draft)
	}

	return m.updateInputs(msg)
}

// setFormFocus moves the profile form focus, wrapping around the three
// fields (name, age, gender).
func (m *Model) setFormFocus(focus int) {
	const fields = 3
	m.formFocus = ((focus % fields) + fields) % fields

	m.nameInput.Blur()
	m.ageInput.Blur()
	switch m.formFocus {
	case 0:
		m.nameInput.Focus()
	case 1:
		m.ageInput.Focus()
	}
}

// updateInputs forwards a message to whichever text input is active.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewProfile:
		switch m.formFocus {
		case 0:
			m.nameInput, cmd = m.nameInput.Update(msg)
		case 1:
			m.ageInput, cmd = m.ageInput.Update(msg)
		}
	case viewCreate:
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}
