package event

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("profile.updated", func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}

	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}

	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe("profile.updated", func(e Event) {
		received = e
	})

	age := 30
	bus.Publish(NewProfileUpdatedEvent("u1", "John Doe", &age, "male", true))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	if received.EventType() != "profile.updated" {
		t.Errorf("Expected event type 'profile.updated', got '%s'", received.EventType())
	}

	updated, ok := received.(ProfileUpdatedEvent)
	if !ok {
		t.Fatalf("Expected ProfileUpdatedEvent, got %T", received)
	}
	if updated.Name != "John Doe" {
		t.Errorf("Expected name 'John Doe', got '%s'", updated.Name)
	}
	if !updated.Fresh {
		t.Error("Expected Fresh to be true")
	}
}

func TestBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewBus()

	callCount := 0
	bus.Subscribe("debates.refreshed", func(e Event) {
		callCount++
	})
	bus.Subscribe("debates.refreshed", func(e Event) {
		callCount++
	})

	bus.Publish(NewDebatesRefreshedEvent(5))

	if callCount != 2 {
		t.Errorf("Expected 2 handler calls, got %d", callCount)
	}
}

func TestBus_PublishNoHandlers(t *testing.T) {
	bus := NewBus()
	// Should not panic with no handlers registered.
	bus.Publish(NewSessionLeftEvent("d1"))
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var types []string
	bus.SubscribeAll(func(e Event) {
		types = append(types, e.EventType())
	})

	bus.Publish(NewSessionJoinedEvent("d1", "remote work vs office work", 6))
	bus.Publish(NewSessionLeftEvent("d1"))

	if len(types) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(types))
	}
	if types[0] != "session.joined" || types[1] != "session.left" {
		t.Errorf("Unexpected event order: %v", types)
	}
}

func TestBus_SpecificHandlersBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) {
		order = append(order, "wildcard")
	})
	bus.Subscribe("profile.cleared", func(e Event) {
		order = append(order, "specific")
	})

	bus.Publish(NewProfileClearedEvent("u1"))

	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("Expected specific handler first, got %v", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("profile.updated", func(e Event) {
		called = true
	})

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true for a known ID")
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return false for an already-removed ID")
	}

	bus.Publish(NewProfileUpdatedEvent("u1", "John", nil, "", false))
	if called {
		t.Error("Handler should not be called after unsubscribing")
	}
}

func TestBus_PanicIsolation(t *testing.T) {
	bus := NewBus()

	secondCalled := false
	bus.Subscribe("session.fetch_failed", func(e Event) {
		panic("handler exploded")
	})
	bus.Subscribe("session.fetch_failed", func(e Event) {
		secondCalled = true
	})

	bus.Publish(NewSessionFetchFailedEvent("d1", false, "failed to load debate"))

	if !secondCalled {
		t.Error("A panicking handler should not block later handlers")
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("profile.updated", func(e Event) {})
	bus.Subscribe("debates.refreshed", func(e Event) {})

	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after Clear, got %d", bus.SubscriptionCount())
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("debates.refreshed", func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewDebatesRefreshedEvent(1))
		}()
	}
	wg.Wait()

	if count != 10 {
		t.Errorf("Expected 10 handler calls, got %d", count)
	}
}
