package session

import (
	"context"
	"sync"
	"testing"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/event"
)

// stubFetcher serves debates from a fixed map, failing unknown ids with a
// not-found error like the real client does.
type stubFetcher struct {
	mu      sync.Mutex
	debates map[string]directory.Debate
	err     error
	calls   int
}

func (f *stubFetcher) Get(_ context.Context, id string) (directory.Debate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return directory.Debate{}, f.err
	}
	d, ok := f.debates[id]
	if !ok {
		return directory.Debate{}, errors.NewNotFoundError("debate", id)
	}
	return d, nil
}

func newTestController(fetcher Fetcher) (*Controller, *event.Bus) {
	bus := event.NewBus()
	return NewController(fetcher, bus, nil), bus
}

func TestController_StartsInBrowsing(t *testing.T) {
	c, _ := newTestController(&stubFetcher{})

	if c.CurrentState() != StateBrowsing {
		t.Errorf("expected browsing, got %s", c.CurrentState())
	}
	if c.ModalOpen() {
		t.Error("no prompt should be open initially")
	}
}

func TestController_SelectOpensConfirmation(t *testing.T) {
	c, _ := newTestController(&stubFetcher{})

	c.Select(directory.Debate{
		ID:           "d1",
		Title:        "dark souls II is a bad game",
		Participants: []directory.Participant{{ID: "p1"}, {ID: "p2"}},
	})

	if c.CurrentState() != StateSelected {
		t.Fatalf("expected selected, got %s", c.CurrentState())
	}
	if !c.ModalOpen() {
		t.Error("selecting must open the confirmation prompt")
	}

	sel, ok := c.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.Title != "dark souls II is a bad game" || sel.ParticipantCount() != 2 {
		t.Errorf("the prompt needs title and participant count: %+v", sel)
	}
}

func TestController_CancelDiscardsSelection(t *testing.T) {
	c, _ := newTestController(&stubFetcher{})

	c.Select(directory.Debate{ID: "d1"})
	c.Cancel()

	if c.CurrentState() != StateBrowsing {
		t.Errorf("cancel should return to browsing, got %s", c.CurrentState())
	}
	if c.ModalOpen() {
		t.Error("cancel must dismiss the prompt")
	}
	if _, ok := c.Selected(); ok {
		t.Error("cancel must discard the selection")
	}
}

func TestController_ConfirmDismissesAndNavigates(t *testing.T) {
	c, _ := newTestController(&stubFetcher{})

	c.Select(directory.Debate{ID: "d1", Title: "T"})
	id, err := c.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	if id != "d1" {
		t.Errorf("expected navigation target d1, got %q", id)
	}
	if c.ModalOpen() {
		t.Error("confirm must dismiss the prompt")
	}
	if c.CurrentState() != StateJoining {
		t.Errorf("expected joining, got %s", c.CurrentState())
	}
}

func TestController_ConfirmWithoutSelection(t *testing.T) {
	c, _ := newTestController(&stubFetcher{})

	if _, err := c.Confirm(); !errors.Is(err, errors.ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestController_FetchSuccess(t *testing.T) {
	fetcher := &stubFetcher{debates: map[string]directory.Debate{
		"d1": {
			ID:           "d1",
			Title:        "T",
			Participants: []directory.Participant{{ID: "p1", Name: "Alice"}},
		},
	}}
	c, bus := newTestController(fetcher)

	var joined event.SessionJoinedEvent
	gotJoined := false
	bus.Subscribe("session.joined", func(e event.Event) {
		joined = e.(event.SessionJoinedEvent)
		gotJoined = true
	})

	if err := c.Fetch(context.Background(), "d1"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if c.CurrentState() != StateInSession {
		t.Fatalf("expected in_session, got %s", c.CurrentState())
	}
	if c.Debate().ID != "d1" {
		t.Errorf("unexpected debate: %+v", c.Debate())
	}
	if roster := c.Roster(); len(roster) != 1 || roster[0].Name != "Alice" {
		t.Errorf("unexpected roster: %+v", roster)
	}
	if !gotJoined || joined.DebateID != "d1" || joined.ParticipantCount != 1 {
		t.Errorf("session.joined not published correctly: %+v", joined)
	}

	// Controls start from a known baseline every join.
	controls := c.Controls()
	if controls.IsMuted || !controls.IsVideoOn {
		t.Errorf("expected unmuted with video on, got %+v", controls)
	}
}

func TestController_FetchNotFound(t *testing.T) {
	c, bus := newTestController(&stubFetcher{debates: map[string]directory.Debate{}})

	var failed event.SessionFetchFailedEvent
	bus.Subscribe("session.fetch_failed", func(e event.Event) {
		failed = e.(event.SessionFetchFailedEvent)
	})

	err := c.Fetch(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}

	if c.CurrentState() != StateErrored {
		t.Fatalf("expected errored, got %s", c.CurrentState())
	}
	msg, notFound := c.ErrorMessage()
	if !notFound {
		t.Error("a missing debate must be distinguishable from a network failure")
	}
	if msg == "" {
		t.Error("expected a display message")
	}
	if !failed.NotFound || failed.DebateID != "missing" {
		t.Errorf("session.fetch_failed not published correctly: %+v", failed)
	}
}

func TestController_FetchNetworkError(t *testing.T) {
	c, _ := newTestController(&stubFetcher{
		err: errors.NewNetworkError("GET /debates/d1", nil),
	})

	if err := c.Fetch(context.Background(), "d1"); err == nil {
		t.Fatal("expected a fetch error")
	}

	if c.CurrentState() != StateErrored {
		t.Fatalf("expected errored, got %s", c.CurrentState())
	}
	if _, notFound := c.ErrorMessage(); notFound {
		t.Error("a network failure is not a missing debate")
	}
}

// Navigating from debate d1 to d2 while d1's response is still in flight
// must land the user in d2, no matter which response arrives first.
func TestController_OverlappingFetchesResolveToLatest(t *testing.T) {
	c, _ := newTestController(nil)

	t1 := c.BeginFetch("d1")
	t2 := c.BeginFetch("d2")

	// d2 resolves first.
	if !c.CompleteFetch(t2, directory.Debate{ID: "d2", Title: "newer"}, nil) {
		t.Fatal("the latest fetch must be applied")
	}
	// d1's slow response arrives afterward and must be dropped.
	if c.CompleteFetch(t1, directory.Debate{ID: "d1", Title: "older"}, nil) {
		t.Fatal("a superseded fetch must be discarded")
	}

	if c.CurrentState() != StateInSession {
		t.Fatalf("expected in_session, got %s", c.CurrentState())
	}
	if got := c.Debate().ID; got != "d2" {
		t.Errorf("expected to end up in d2, got %q", got)
	}
}

// A stale failure must not clobber a session that already loaded.
func TestController_StaleErrorDiscarded(t *testing.T) {
	c, _ := newTestController(nil)

	t1 := c.BeginFetch("d1")
	t2 := c.BeginFetch("d2")

	if !c.CompleteFetch(t2, directory.Debate{ID: "d2"}, nil) {
		t.Fatal("the latest fetch must be applied")
	}
	if c.CompleteFetch(t1, directory.Debate{}, errors.NewNetworkError("GET /debates/d1", nil)) {
		t.Fatal("a superseded failure must be discarded")
	}

	if c.CurrentState() != StateInSession {
		t.Errorf("a stale error must not change state, got %s", c.CurrentState())
	}
}

func TestController_ToggleMuteRoundTrip(t *testing.T) {
	c, _ := newTestController(nil)
	token := c.BeginFetch("d1")
	c.CompleteFetch(token, directory.Debate{ID: "d1"}, nil)

	before := c.Controls().IsMuted
	c.ToggleMute()
	if c.Controls().IsMuted == before {
		t.Error("one toggle must flip mute")
	}
	c.ToggleMute()
	if c.Controls().IsMuted != before {
		t.Error("two toggles must restore the original mute state")
	}
}

func TestController_ToggleVideoRoundTrip(t *testing.T) {
	c, _ := newTestController(nil)
	token := c.BeginFetch("d1")
	c.CompleteFetch(token, directory.Debate{ID: "d1"}, nil)

	before := c.Controls().IsVideoOn
	c.ToggleVideo()
	c.ToggleVideo()
	if c.Controls().IsVideoOn != before {
		t.Error("two toggles must restore the original video state")
	}
}

func TestController_TogglesInertOutsideSession(t *testing.T) {
	c, _ := newTestController(nil)

	c.ToggleMute()
	c.ToggleVideo()

	if controls := c.Controls(); controls.IsMuted || controls.IsVideoOn {
		t.Errorf("toggles must be inert outside a session, got %+v", controls)
	}
}

func TestController_Fullscreen(t *testing.T) {
	c, _ := newTestController(nil)
	token := c.BeginFetch("d1")
	c.CompleteFetch(token, directory.Debate{
		ID:           "d1",
		Participants: []directory.Participant{{ID: "p1", Name: "Alice"}},
	}, nil)

	c.OpenFullscreen(directory.Participant{ID: "p1", Name: "Alice"})
	if focused, ok := c.Focused(); !ok || focused.ID != "p1" {
		t.Errorf("expected p1 focused, got %+v, %v", focused, ok)
	}

	c.CloseFullscreen()
	if _, ok := c.Focused(); ok {
		t.Error("closing fullscreen must clear the focus")
	}
}

func TestController_LeaveResetsEverything(t *testing.T) {
	c, bus := newTestController(nil)

	var left event.SessionLeftEvent
	gotLeft := false
	bus.Subscribe("session.left", func(e event.Event) {
		left = e.(event.SessionLeftEvent)
		gotLeft = true
	})

	token := c.BeginFetch("d1")
	c.CompleteFetch(token, directory.Debate{
		ID:           "d1",
		Participants: []directory.Participant{{ID: "p1"}},
	}, nil)
	c.ToggleMute()
	c.OpenFullscreen(directory.Participant{ID: "p1"})

	c.Leave()

	if c.CurrentState() != StateBrowsing {
		t.Errorf("leave should return to browsing, got %s", c.CurrentState())
	}
	if len(c.Roster()) != 0 {
		t.Error("leave must discard the roster")
	}
	if _, ok := c.Focused(); ok {
		t.Error("leave must clear the fullscreen focus")
	}
	if !gotLeft || left.DebateID != "d1" {
		t.Errorf("session.left not published correctly: %+v", left)
	}

	// A new session starts from the control baseline, not the old toggles.
	token = c.BeginFetch("d2")
	c.CompleteFetch(token, directory.Debate{ID: "d2"}, nil)
	if controls := c.Controls(); controls.IsMuted {
		t.Error("a new session must not inherit the previous session's mute")
	}
}

func TestController_LeaveInvalidatesInFlightFetch(t *testing.T) {
	c, _ := newTestController(nil)

	token := c.BeginFetch("d1")
	c.Leave()

	if c.CompleteFetch(token, directory.Debate{ID: "d1"}, nil) {
		t.Fatal("a fetch issued before leaving must not apply after")
	}
	if c.CurrentState() != StateBrowsing {
		t.Errorf("expected browsing after leave, got %s", c.CurrentState())
	}
}

func TestController_SyncFetchStale(t *testing.T) {
	fetcher := &stubFetcher{debates: map[string]directory.Debate{
		"d1": {ID: "d1"},
	}}
	c, _ := newTestController(fetcher)

	token := c.BeginFetch("d1")
	// A later navigation supersedes the pending token before its result
	// is applied.
	c.BeginFetch("d2")

	if c.CompleteFetch(token, directory.Debate{ID: "d1"}, nil) {
		t.Fatal("superseded token must be rejected")
	}
}
