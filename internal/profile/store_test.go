package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/event"
)

func newTestStore(t *testing.T) (*Store, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	return NewStore(t.TempDir(), bus, nil), bus
}

func TestStore_ReadAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	if _, ok := store.Read(); ok {
		t.Error("Read on an empty store should report absent")
	}
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	want := Profile{ID: "u1", Name: "Alice", Age: intPtr(22), Gender: GenderFemale}
	if err := store.Write(want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, ok := store.Read()
	if !ok {
		t.Fatal("Read should find the written profile")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestStore_WriteRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Write(Profile{Name: "", Age: intPtr(22)})
	if err == nil {
		t.Fatal("Write should reject an empty name")
	}
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	// Nothing may be persisted after a rejected write.
	if _, ok := store.Read(); ok {
		t.Error("rejected write must not persist anything")
	}
}

func TestStore_MalformedPayloadIsAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	if err := os.MkdirAll(filepath.Dir(store.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Read(); ok {
		t.Error("a malformed payload must read as absent, not crash")
	}

	// And a fresh update on top of it starts from an empty base.
	p, err := store.Update(Patch{}.WithName("Recovered"))
	if err != nil {
		t.Fatalf("Update after malformed payload failed: %v", err)
	}
	if p.Name != "Recovered" || p.ID == "" {
		t.Errorf("unexpected recovered profile: %+v", p)
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	store, _ := newTestStore(t)

	p, fresh := store.GetOrCreate()
	if !fresh {
		t.Error("first GetOrCreate should report fresh")
	}
	if p.ID != "" || p.Name != "" {
		t.Errorf("fresh profile should be empty, got %+v", p)
	}

	if _, err := store.Update(Patch{}.WithName("Alice")); err != nil {
		t.Fatal(err)
	}

	p, fresh = store.GetOrCreate()
	if fresh {
		t.Error("GetOrCreate after an update should report existing")
	}
	if p.Name != "Alice" {
		t.Errorf("expected stored profile, got %+v", p)
	}
}

func TestStore_UpdateAssignsIdentityOnce(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Update(Patch{}.WithName("John Doe"))
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("first update must assign an identity")
	}

	second, err := store.Update(Patch{}.WithAge(35))
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("identity must be stable: first %q, second %q", first.ID, second.ID)
	}

	third, err := store.Update(Patch{}.WithGender(GenderOther).ClearAge())
	if err != nil {
		t.Fatalf("third update failed: %v", err)
	}
	if third.ID != first.ID {
		t.Errorf("identity must survive any number of updates, got %q", third.ID)
	}
	if third.Age != nil {
		t.Error("ClearAge should clear the stored age")
	}
	if third.Name != "John Doe" {
		t.Error("unpatched name should be preserved")
	}
}

func TestStore_UpdateMergeSemantics(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Update(Patch{}.WithName("Eve").WithAge(80).WithGender(GenderFemale)); err != nil {
		t.Fatal(err)
	}

	// A patch touching only the name leaves age and gender alone.
	got, err := store.Update(Patch{}.WithName("Evelyn"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Evelyn" {
		t.Errorf("name should be patched, got %q", got.Name)
	}
	if got.Age == nil || *got.Age != 80 {
		t.Error("age should be unchanged")
	}
	if got.Gender != GenderFemale {
		t.Error("gender should be unchanged")
	}
}

func TestStore_UpdateValidatesBeforePersist(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Update(Patch{}.WithName("Frank").WithAge(25)); err != nil {
		t.Fatal(err)
	}

	_, err := store.Update(Patch{}.WithAge(151))
	if err == nil {
		t.Fatal("out-of-range age must be rejected")
	}
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	// The stored profile is untouched by the failed update.
	p, ok := store.Read()
	if !ok || p.Age == nil || *p.Age != 25 {
		t.Errorf("failed update must not mutate stored state, got %+v", p)
	}
}

func TestStore_UpdatePublishesEvent(t *testing.T) {
	store, bus := newTestStore(t)

	var got event.ProfileUpdatedEvent
	received := false
	bus.Subscribe("profile.updated", func(e event.Event) {
		got = e.(event.ProfileUpdatedEvent)
		received = true
	})

	p, err := store.Update(Patch{}.WithName("Alice").WithAge(22))
	if err != nil {
		t.Fatal(err)
	}

	if !received {
		t.Fatal("Update must publish profile.updated")
	}
	if got.ProfileID != p.ID || got.Name != "Alice" {
		t.Errorf("event mismatch: %+v", got)
	}
	if got.Age == nil || *got.Age != 22 {
		t.Error("event should carry the merged age")
	}
	if !got.Fresh {
		t.Error("first update should be marked fresh")
	}
}

func TestStore_ClearRemovesAndPublishes(t *testing.T) {
	store, bus := newTestStore(t)

	p, err := store.Update(Patch{}.WithName("Bob"))
	if err != nil {
		t.Fatal(err)
	}

	var cleared event.ProfileClearedEvent
	received := false
	bus.Subscribe("profile.cleared", func(e event.Event) {
		cleared = e.(event.ProfileClearedEvent)
		received = true
	})

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, ok := store.Read(); ok {
		t.Error("Clear should remove the persisted profile")
	}
	if !received {
		t.Fatal("Clear must publish profile.cleared")
	}
	if cleared.ProfileID != p.ID {
		t.Errorf("cleared event should carry the old identity, got %q", cleared.ProfileID)
	}

	// Clearing again is a no-op that still succeeds.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on empty store should succeed: %v", err)
	}
}

func TestStore_IdentityResetAfterClear(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Update(Patch{}.WithName("Alice"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	second, err := store.Update(Patch{}.WithName("Alice"))
	if err != nil {
		t.Fatal(err)
	}
	if second.ID == first.ID {
		t.Error("a cleared store starts a new identity")
	}
}
