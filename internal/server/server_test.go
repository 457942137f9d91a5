package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/profile"
)

// The tests drive the server through the real directory client so both
// sides of the wire are checked against each other.
func newTestPair(t *testing.T, opts ...Option) *directory.Client {
	t.Helper()

	srv := httptest.NewServer(New(opts...).Handler())
	t.Cleanup(srv.Close)

	return directory.NewClient(srv.URL + "/api")
}

func TestServer_EmptyDirectory(t *testing.T) {
	client := newTestPair(t)

	debates, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(debates) != 0 {
		t.Errorf("an unseeded server should be empty, got %d debates", len(debates))
	}
}

func TestServer_Seeded(t *testing.T) {
	client := newTestPair(t, WithSeed())

	debates, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(debates) != 5 {
		t.Fatalf("expected 5 seeded debates, got %d", len(debates))
	}

	if debates[0].Title != "dark souls II is a bad game" {
		t.Errorf("seed order not preserved: %q", debates[0].Title)
	}
	if debates[0].ParticipantCount() != 6 {
		t.Errorf("expected the full demo roster, got %d", debates[0].ParticipantCount())
	}
	if debates[1].ParticipantCount() != 0 {
		t.Errorf("expected an empty roster, got %d", debates[1].ParticipantCount())
	}
	if debates[0].CreatedAt.IsZero() {
		t.Error("seeded debates need creation times")
	}
}

func TestServer_CreateAndGet(t *testing.T) {
	client := newTestPair(t)

	age := 40
	owner := profile.Profile{ID: "u1", Name: "John Doe", Age: &age, Gender: profile.GenderMale}

	created, err := client.Create(context.Background(), directory.Draft{
		Title: "is cereal a soup?",
		Owner: owner,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" {
		t.Fatal("the server must assign an id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("the server must assign a creation time")
	}
	if created.OwnerID != "u1" {
		t.Errorf("owner not bound: %+v", created)
	}
	if created.ParticipantCount() != 1 || created.Participants[0].Name != "John Doe" {
		t.Errorf("the creator should be the first participant: %+v", created.Participants)
	}

	fetched, err := client.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Title != "is cereal a soup?" {
		t.Errorf("round trip lost the title: %q", fetched.Title)
	}
	if fetched.Participants[0].Age == nil || *fetched.Participants[0].Age != 40 {
		t.Error("round trip lost the owner age")
	}
}

func TestServer_GetUnknown(t *testing.T) {
	client := newTestPair(t, WithSeed())

	_, err := client.Get(context.Background(), "nope")
	if !errors.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestServer_Delete(t *testing.T) {
	client := newTestPair(t)

	created, err := client.Create(context.Background(), directory.Draft{
		Title: "pineapple on pizza",
		Owner: profile.Profile{ID: "u1", Name: "A"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := client.Remove(context.Background(), created.ID)
	if err != nil || !ok {
		t.Fatalf("Remove = %v, %v", ok, err)
	}

	// Gone afterwards, and a second delete reports not-success.
	if _, err := client.Get(context.Background(), created.ID); !errors.IsNotFound(err) {
		t.Errorf("deleted debate should be gone, got %v", err)
	}
	ok, err = client.Remove(context.Background(), created.ID)
	if err != nil || ok {
		t.Errorf("second Remove = %v, %v; want false, nil", ok, err)
	}
}

func TestServer_RejectsBadCreate(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	// The client validates titles locally, so exercise the server's own
	// validation with a raw request.
	for _, body := range []string{
		`{"title": ""}`,
		`{"title": "   "}`,
		`not json`,
	} {
		resp, err := srv.Client().Post(srv.URL+"/api/debates", "application/json",
			strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != 400 {
			t.Errorf("body %q: expected 400, got %d", body, resp.StatusCode)
		}
	}
}
