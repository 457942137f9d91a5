// Package session drives the debate join workflow and the in-session
// control surface.
//
// The workflow is a small state machine: the user browses the directory,
// selects a debate (which opens a confirmation prompt), confirms to join,
// and the session view then fetches the debate by id on its own. The fetch
// is decoupled from the selection because a session can also be entered
// directly by id without ever browsing.
//
// Fetches are asynchronous and may overlap when the user navigates
// quickly. Every fetch is issued with a token; only the most recently
// issued token may apply its result, so a slow response for an old debate
// can never overwrite the session the user actually asked for.
package session

import (
	"context"
	"sync"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/event"
	"github.com/hottake/hottake/internal/logging"
)

// State is the current workflow state.
type State string

const (
	// StateBrowsing means the directory list is the active view.
	StateBrowsing State = "browsing"
	// StateSelected means a debate is selected and the confirmation
	// prompt is open.
	StateSelected State = "selected"
	// StateJoining means the user confirmed and the session view is
	// loading the debate.
	StateJoining State = "joining"
	// StateInSession means the debate loaded and the controls are live.
	StateInSession State = "in_session"
	// StateErrored means the session fetch failed. There is no automatic
	// retry; the user leaves or re-enters the session.
	StateErrored State = "errored"
)

// Fetcher loads a debate by id. *directory.Client satisfies this.
type Fetcher interface {
	Get(ctx context.Context, id string) (directory.Debate, error)
}

// Controls is the transient in-session control state. The toggles are
// local UI state only; no media pipeline is attached to them.
type Controls struct {
	IsMuted   bool
	IsVideoOn bool
}

// Controller owns the join workflow and the per-session transient state.
// It is safe for concurrent use, though in practice a single UI loop
// drives it.
type Controller struct {
	mu      sync.Mutex
	fetcher Fetcher
	bus     *event.Bus
	logger  *logging.Logger

	state     State
	selected  *directory.Debate
	modalOpen bool

	// Session data, valid in StateInSession.
	debate   directory.Debate
	roster   []directory.Participant
	controls Controls
	focused  *directory.Participant

	// Error display, valid in StateErrored.
	errMessage  string
	errNotFound bool

	// Fetch supersession. Only the holder of the latest token may apply
	// its result.
	nextToken    uint64
	currentToken uint64
	fetchingID   string
}

// NewController creates a controller in the browsing state.
func NewController(fetcher Fetcher, bus *event.Bus, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Controller{
		fetcher: fetcher,
		bus:     bus,
		logger:  logger.WithComponent("session"),
		state:   StateBrowsing,
	}
}

// CurrentState returns the workflow state.
func (c *Controller) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ModalOpen reports whether the join confirmation prompt is showing.
func (c *Controller) ModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalOpen
}

// Select marks a debate as the join candidate and opens the confirmation
// prompt. Selecting is only meaningful while browsing.
func (c *Controller) Select(d directory.Debate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateBrowsing && c.state != StateSelected {
		return
	}

	sel := d
	c.selected = &sel
	c.modalOpen = true
	c.state = StateSelected
}

// Selected returns the join candidate shown in the confirmation prompt.
func (c *Controller) Selected() (directory.Debate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return directory.Debate{}, false
	}
	return *c.selected, true
}

// Cancel dismisses the confirmation prompt and discards the selection.
// No side effects are performed.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSelected {
		return
	}

	c.selected = nil
	c.modalOpen = false
	c.state = StateBrowsing
}

// Confirm accepts the selection and returns the debate id the caller
// should navigate to. The confirmation prompt is dismissed immediately.
func (c *Controller) Confirm() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return "", errors.NewSessionError("confirm without a selection", errors.ErrNoSelection).
			WithState(string(c.state))
	}

	id := c.selected.ID
	c.selected = nil
	c.modalOpen = false
	c.state = StateJoining

	c.logger.Info("join confirmed", "debate_id", id)
	return id, nil
}

// BeginFetch starts loading a debate for the session view and returns the
// token the eventual result must present. Issuing a new fetch supersedes
// every outstanding one: their results will be discarded on arrival.
//
// BeginFetch is legal from any state so a session can be deep-linked by
// id without passing through browsing.
func (c *Controller) BeginFetch(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextToken++
	c.currentToken = c.nextToken
	c.fetchingID = id
	c.state = StateJoining

	c.logger.Debug("session fetch issued", "debate_id", id, "token", c.currentToken)
	return c.currentToken
}

// Fetch performs the load synchronously: it issues a token, calls the
// fetcher, and applies the result. UI loops that need the call to run in
// the background use BeginFetch and CompleteFetch directly instead.
func (c *Controller) Fetch(ctx context.Context, id string) error {
	token := c.BeginFetch(id)
	debate, err := c.fetcher.Get(ctx, id)
	if !c.CompleteFetch(token, debate, err) {
		return errors.ErrStaleResponse
	}
	return err
}

// CompleteFetch applies a fetch result. It reports whether the result was
// applied; a result presenting a superseded token is discarded without
// touching any state, no matter whether it succeeded or failed.
func (c *Controller) CompleteFetch(token uint64, debate directory.Debate, fetchErr error) bool {
	c.mu.Lock()

	if token != c.currentToken {
		id := c.fetchingID
		c.mu.Unlock()
		c.logger.Debug("stale session fetch discarded",
			"token", token, "current_debate_id", id)
		return false
	}

	if fetchErr != nil {
		c.state = StateErrored
		c.errNotFound = errors.IsNotFound(fetchErr)
		if c.errNotFound {
			c.errMessage = "This debate no longer exists."
		} else {
			c.errMessage = "Failed to load debate. Please try again later."
		}
		id := c.fetchingID
		notFound := c.errNotFound
		msg := c.errMessage
		c.mu.Unlock()

		c.logger.Warn("session fetch failed", "debate_id", id, "error", fetchErr)
		if c.bus != nil {
			c.bus.Publish(event.NewSessionFetchFailedEvent(id, notFound, msg))
		}
		return true
	}

	c.debate = debate
	c.roster = debate.Participants
	c.controls = Controls{IsMuted: false, IsVideoOn: true}
	c.focused = nil
	c.errMessage = ""
	c.errNotFound = false
	c.state = StateInSession
	c.mu.Unlock()

	c.logger.Info("session joined",
		"debate_id", debate.ID,
		"participants", debate.ParticipantCount())
	if c.bus != nil {
		c.bus.Publish(event.NewSessionJoinedEvent(
			debate.ID, debate.Title, debate.ParticipantCount()))
	}
	return true
}

// Debate returns the loaded debate. Valid in StateInSession.
func (c *Controller) Debate() directory.Debate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debate
}

// Roster returns the session's participant roster.
func (c *Controller) Roster() []directory.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()

	roster := make([]directory.Participant, len(c.roster))
	copy(roster, c.roster)
	return roster
}

// ErrorMessage returns the display message for StateErrored and whether
// the failure was a missing debate rather than a network problem.
func (c *Controller) ErrorMessage() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage, c.errNotFound
}

// Controls returns the current control toggles.
func (c *Controller) Controls() Controls {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controls
}

// ToggleMute flips the mute toggle and returns the new value.
// The toggle is purely local; no media stream is affected.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInSession {
		return c.controls.IsMuted
	}
	c.controls.IsMuted = !c.controls.IsMuted
	return c.controls.IsMuted
}

// ToggleVideo flips the camera toggle and returns the new value.
func (c *Controller) ToggleVideo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInSession {
		return c.controls.IsVideoOn
	}
	c.controls.IsVideoOn = !c.controls.IsVideoOn
	return c.controls.IsVideoOn
}

// OpenFullscreen focuses a participant's tile.
func (c *Controller) OpenFullscreen(p directory.Participant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInSession {
		return
	}
	focused := p
	c.focused = &focused
}

// CloseFullscreen clears the focused participant.
func (c *Controller) CloseFullscreen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = nil
}

// Focused returns the participant shown fullscreen, if any.
func (c *Controller) Focused() (directory.Participant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.focused == nil {
		return directory.Participant{}, false
	}
	return *c.focused, true
}

// Leave discards all session state and returns to browsing. Leaving is
// client-local; the server is never notified.
func (c *Controller) Leave() {
	c.mu.Lock()

	left := c.debate.ID
	wasInSession := c.state == StateInSession

	c.debate = directory.Debate{}
	c.roster = nil
	c.controls = Controls{}
	c.focused = nil
	c.errMessage = ""
	c.errNotFound = false
	c.selected = nil
	c.modalOpen = false
	// Invalidate any in-flight fetch so a late result cannot resurrect
	// the session after the user walked away.
	c.currentToken = 0
	c.fetchingID = ""
	c.state = StateBrowsing
	c.mu.Unlock()

	if wasInSession {
		c.logger.Info("session left", "debate_id", left)
		if c.bus != nil {
			c.bus.Publish(event.NewSessionLeftEvent(left))
		}
	}
}
