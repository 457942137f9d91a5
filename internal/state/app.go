// Package state holds the process-wide application state: the current
// user and the cached debate list.
//
// Exactly one App exists per process. Consumers never share a mutable
// profile object; they read value snapshots and subscribe to change events
// on the bus (profile.updated, profile.cleared, debates.refreshed), so
// every live view observes a change without re-reading storage and without
// aliasing hazards.
package state

import (
	"sync"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/event"
	"github.com/hottake/hottake/internal/profile"
)

// App is the shared application state. It is safe for concurrent use.
type App struct {
	mu          sync.RWMutex
	bus         *event.Bus
	currentUser profile.Profile
	debates     []directory.Debate

	subscriptions []string
}

// NewApp creates the application state, seeds the current user from the
// given profile (zero value when none is stored yet), and wires the state
// to profile change events so it stays current without manual plumbing.
func NewApp(bus *event.Bus, initial profile.Profile) *App {
	a := &App{
		bus:         bus,
		currentUser: cloneProfile(initial),
	}

	if bus != nil {
		a.subscriptions = append(a.subscriptions,
			bus.Subscribe("profile.updated", a.onProfileUpdated),
			bus.Subscribe("profile.cleared", a.onProfileCleared),
		)
	}

	return a
}

// Close detaches the state from the event bus.
func (a *App) Close() {
	if a.bus == nil {
		return
	}
	for _, id := range a.subscriptions {
		a.bus.Unsubscribe(id)
	}
	a.subscriptions = nil
}

// Bus returns the event bus the state publishes on.
func (a *App) Bus() *event.Bus {
	return a.bus
}

// CurrentUser returns a snapshot of the current user. Mutating the
// returned value has no effect on shared state; changes go through the
// profile store.
func (a *App) CurrentUser() profile.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneProfile(a.currentUser)
}

// Debates returns a snapshot of the cached debate list.
func (a *App) Debates() []directory.Debate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneDebates(a.debates)
}

// SetDebates replaces the debate cache with a fresh server result and
// publishes debates.refreshed. The cache is only ever replaced wholesale;
// individual debates are never mutated client-side.
func (a *App) SetDebates(debates []directory.Debate) {
	a.mu.Lock()
	a.debates = cloneDebates(debates)
	count := len(a.debates)
	a.mu.Unlock()

	if a.bus != nil {
		a.bus.Publish(event.NewDebatesRefreshedEvent(count))
	}
}

// DebateByID returns the cached debate with the given id, if present.
func (a *App) DebateByID(id string) (directory.Debate, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, d := range a.debates {
		if d.ID == id {
			return cloneDebate(d), true
		}
	}
	return directory.Debate{}, false
}

// onProfileUpdated applies a published profile change to the snapshot.
func (a *App) onProfileUpdated(e event.Event) {
	updated, ok := e.(event.ProfileUpdatedEvent)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.currentUser = profile.Profile{
		ID:     updated.ProfileID,
		Name:   updated.Name,
		Gender: profile.Gender(updated.Gender),
	}
	if updated.Age != nil {
		age := *updated.Age
		a.currentUser.Age = &age
	}
}

// onProfileCleared resets the current user together with the persisted
// profile, keeping disk and memory aligned.
func (a *App) onProfileCleared(event.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentUser = profile.Profile{}
}

// cloneProfile deep-copies a profile so snapshots never alias.
func cloneProfile(p profile.Profile) profile.Profile {
	c := p
	if p.Age != nil {
		age := *p.Age
		c.Age = &age
	}
	return c
}

// cloneDebate deep-copies a debate including its roster.
func cloneDebate(d directory.Debate) directory.Debate {
	c := d
	c.Participants = make([]directory.Participant, len(d.Participants))
	for i, p := range d.Participants {
		cp := p
		if p.Age != nil {
			age := *p.Age
			cp.Age = &age
		}
		c.Participants[i] = cp
	}
	return c
}

func cloneDebates(debates []directory.Debate) []directory.Debate {
	cloned := make([]directory.Debate, len(debates))
	for i, d := range debates {
		cloned[i] = cloneDebate(d)
	}
	return cloned
}
