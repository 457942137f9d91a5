package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "profile.updated", "session.joined")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Profile Events
// -----------------------------------------------------------------------------

// ProfileUpdatedEvent is emitted after a profile merge-patch has been
// persisted and applied to the shared application state. Events carry plain
// values so subscribers never share a mutable profile object.
type ProfileUpdatedEvent struct {
	baseEvent
	ProfileID string // Stable profile identifier
	Name      string // Display name after the update
	Age       *int   // Age after the update, nil when unset
	Gender    string // Gender after the update, empty when unset
	Fresh     bool   // True if this update created the profile
}

// NewProfileUpdatedEvent creates a ProfileUpdatedEvent.
func NewProfileUpdatedEvent(profileID, name string, age *int, gender string, fresh bool) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		baseEvent: newBaseEvent("profile.updated"),
		ProfileID: profileID,
		Name:      name,
		Age:       age,
		Gender:    gender,
		Fresh:     fresh,
	}
}

// ProfileClearedEvent is emitted when the persisted profile and the
// in-memory current user are reset together.
type ProfileClearedEvent struct {
	baseEvent
	ProfileID string // Identifier the profile had before it was cleared
}

// NewProfileClearedEvent creates a ProfileClearedEvent.
func NewProfileClearedEvent(profileID string) ProfileClearedEvent {
	return ProfileClearedEvent{
		baseEvent: newBaseEvent("profile.cleared"),
		ProfileID: profileID,
	}
}

// -----------------------------------------------------------------------------
// Directory Events
// -----------------------------------------------------------------------------

// DebatesRefreshedEvent is emitted when the cached debate list is replaced
// with a fresh server result.
type DebatesRefreshedEvent struct {
	baseEvent
	Count int // Number of debates in the refreshed cache
}

// NewDebatesRefreshedEvent creates a DebatesRefreshedEvent.
func NewDebatesRefreshedEvent(count int) DebatesRefreshedEvent {
	return DebatesRefreshedEvent{
		baseEvent: newBaseEvent("debates.refreshed"),
		Count:     count,
	}
}

// -----------------------------------------------------------------------------
// Session Events
// -----------------------------------------------------------------------------

// SessionJoinedEvent is emitted when the session view has successfully
// loaded a debate and entered the in-session state.
type SessionJoinedEvent struct {
	baseEvent
	DebateID         string // Debate that was joined
	Title            string // Debate title
	ParticipantCount int    // Roster size at join time
}

// NewSessionJoinedEvent creates a SessionJoinedEvent.
func NewSessionJoinedEvent(debateID, title string, participantCount int) SessionJoinedEvent {
	return SessionJoinedEvent{
		baseEvent:        newBaseEvent("session.joined"),
		DebateID:         debateID,
		Title:            title,
		ParticipantCount: participantCount,
	}
}

// SessionLeftEvent is emitted when the user leaves a session. Leaving is
// client-local; no server call is made.
type SessionLeftEvent struct {
	baseEvent
	DebateID string // Debate that was left
}

// NewSessionLeftEvent creates a SessionLeftEvent.
func NewSessionLeftEvent(debateID string) SessionLeftEvent {
	return SessionLeftEvent{
		baseEvent: newBaseEvent("session.left"),
		DebateID:  debateID,
	}
}

// SessionFetchFailedEvent is emitted when loading a debate for the session
// view fails. There is no automatic retry; the user navigates away or
// re-enters the session.
type SessionFetchFailedEvent struct {
	baseEvent
	DebateID string // Debate that failed to load
	NotFound bool   // True when the server reported the id does not exist
	Error    string // User-facing failure description
}

// NewSessionFetchFailedEvent creates a SessionFetchFailedEvent.
func NewSessionFetchFailedEvent(debateID string, notFound bool, errMsg string) SessionFetchFailedEvent {
	return SessionFetchFailedEvent{
		baseEvent: newBaseEvent("session.fetch_failed"),
		DebateID:  debateID,
		NotFound:  notFound,
		Error:     errMsg,
	}
}
