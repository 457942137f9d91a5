package directory

import (
	"fmt"
	"time"

	"github.com/hottake/hottake/internal/profile"
)

// MaxTitleLength is the longest debate title the directory accepts.
const MaxTitleLength = 25

// Participant is a labeled occupant of a debate. It exists for display
// only and is never durably tracked by the client.
type Participant struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Age    *int           `json:"age,omitempty"`
	Gender profile.Gender `json:"gender,omitempty"`
}

// Label renders the participant as "name, age, gender" with unset parts
// omitted, matching the video tile labels.
func (p Participant) Label() string {
	label := p.Name
	if p.Age != nil {
		label = fmt.Sprintf("%s, %d", label, *p.Age)
	}
	if p.Gender != "" {
		label = fmt.Sprintf("%s, %s", label, p.Gender)
	}
	return label
}

// Debate is a joinable topical room. Instances are owned by the server;
// the client only ever replaces its cached copy after a successful read.
type Debate struct {
	ID           string
	Title        string
	OwnerID      string
	CreatedAt    time.Time
	Participants []Participant
}

// ParticipantCount returns the roster size. The count is always derived
// from the participant set, never stored separately.
func (d Debate) ParticipantCount() int {
	return len(d.Participants)
}

// FormattedDate renders the creation date for display.
// Returns an empty string when the server did not send a timestamp.
func (d Debate) FormattedDate() string {
	if d.CreatedAt.IsZero() {
		return ""
	}
	return d.CreatedAt.Format("Jan 2, 2006")
}

// debateRecord is the wire shape of a debate as returned by the API.
type debateRecord struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	OwnerID      string              `json:"owner_id"`
	CreatedAt    string              `json:"created_at"`
	Participants []participantRecord `json:"participants"`
}

// participantRecord is the wire shape of a participant.
type participantRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
}

// toDomain maps a wire record to a Debate. Missing optional fields are
// tolerated: an absent participant set maps to an empty roster and an
// unparseable timestamp maps to the zero time.
func (r debateRecord) toDomain() Debate {
	d := Debate{
		ID:           r.ID,
		Title:        r.Title,
		OwnerID:      r.OwnerID,
		Participants: make([]Participant, 0, len(r.Participants)),
	}

	if r.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			d.CreatedAt = ts
		}
	}

	for _, p := range r.Participants {
		d.Participants = append(d.Participants, Participant{
			ID:     p.ID,
			Name:   p.Name,
			Age:    p.Age,
			Gender: profile.Gender(p.Gender),
		})
	}

	return d
}
