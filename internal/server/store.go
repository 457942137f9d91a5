package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// debate is the wire representation the API serves. The directory client
// on the other side decodes exactly these shapes.
type debate struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	OwnerID      string        `json:"owner_id,omitempty"`
	CreatedAt    string        `json:"created_at"`
	Participants []participant `json:"participants"`
}

type participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// memoryStore keeps debates in insertion order. Everything lives in memory;
// restarting the server resets the directory to its seed.
type memoryStore struct {
	mu      sync.RWMutex
	order   []string
	debates map[string]debate
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		debates: make(map[string]debate),
	}
}

// list returns all debates in insertion order.
func (s *memoryStore) list() []debate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]debate, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.debates[id])
	}
	return all
}

func (s *memoryStore) get(id string) (debate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.debates[id]
	return d, ok
}

// create assigns the id and creation time and stores the debate.
func (s *memoryStore) create(title, ownerID, ownerName string, ownerAge *int, ownerGender string) debate {
	d := debate{
		ID:        uuid.NewString(),
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Participants: []participant{{
			ID:     ownerID,
			Name:   ownerName,
			Age:    ownerAge,
			Gender: ownerGender,
		}},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.debates[d.ID] = d
	s.order = append(s.order, d.ID)
	return d
}

// remove deletes a debate and reports whether it existed.
func (s *memoryStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.debates[id]; !ok {
		return false
	}
	delete(s.debates, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func intPtr(v int) *int { return &v }

// seed fills the store with the demo directory so a fresh server has
// something to browse.
func (s *memoryStore) seed() {
	demoRoster := []participant{
		{ID: uuid.NewString(), Name: "Alice", Age: intPtr(22), Gender: "female"},
		{ID: uuid.NewString(), Name: "Bob"},
		{ID: uuid.NewString(), Name: "Charlie", Age: intPtr(25)},
		{ID: uuid.NewString(), Name: "Diana", Gender: "other"},
		{ID: uuid.NewString(), Name: "Eve", Age: intPtr(80), Gender: "female"},
		{ID: uuid.NewString(), Name: "Frank", Age: intPtr(25), Gender: "male"},
	}

	titles := []struct {
		title string
		size  int
	}{
		{"dark souls II is a bad game", 6},
		{"universal basic income: good or bad?", 0},
		{"climate change policy debate", 5},
		{"remote work vs office work", 3},
		{"squidward vs spongebob vs plankton vs krabs who will win?", 2},
	}

	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range titles {
		roster := make([]participant, t.size)
		copy(roster, demoRoster[:t.size])
		d := debate{
			ID:           uuid.NewString(),
			Title:        t.title,
			CreatedAt:    now.Add(-time.Duration(len(titles)-i) * time.Hour).Format(time.RFC3339),
			Participants: roster,
		}
		s.debates[d.ID] = d
		s.order = append(s.order, d.ID)
	}
}
