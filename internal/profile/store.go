// Package profile persists and reconciles the local user's identity.
//
// The store keeps one JSON document on disk. Reads fail soft: an absent or
// malformed payload means "no profile yet", never a crash. Writes are
// all-or-nothing (temp file + rename). Updates are merge-patches with
// explicit per-field presence, and the first update on an absent profile
// assigns the identity that every later update preserves.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/event"
	"github.com/hottake/hottake/internal/logging"
)

// profileFile is the file name holding the serialized profile within the
// storage directory.
const profileFile = "profile.json"

// Store persists the local profile and announces changes on the event bus.
// It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	path   string
	bus    *event.Bus
	logger *logging.Logger
}

// NewStore creates a Store rooted at the given storage directory.
// The directory is created lazily on first write.
func NewStore(dir string, bus *event.Bus, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Store{
		path:   filepath.Join(dir, profileFile),
		bus:    bus,
		logger: logger.WithComponent("profile"),
	}
}

// Path returns the location of the persisted profile.
func (s *Store) Path() string {
	return s.path
}

// Read returns the persisted profile and whether one exists.
// A malformed payload is logged and treated as absent; it never propagates
// as an error.
func (s *Store) Read() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() (Profile, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read persisted profile", "error", err)
		}
		return Profile{}, false
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("persisted profile is malformed, treating as absent", "error", err)
		return Profile{}, false
	}

	return p, true
}

// GetOrCreate returns the persisted profile, or a fresh empty one when
// nothing has been stored yet. The second return value reports first-time
// use. A fresh profile has no identity; that is assigned by the first
// Update.
func (s *Store) GetOrCreate() (Profile, bool) {
	if p, ok := s.Read(); ok {
		return p, false
	}
	return Profile{}, true
}

// Write validates and persists the full profile. The write is atomic: the
// previous payload stays intact if anything fails.
func (s *Store) Write(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(p)
}

func (s *Store) writeLocked(p Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.NewProfileError("failed to serialize profile", err).WithProfileID(p.ID)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.NewProfileError("failed to create storage directory", err)
	}

	if err := atomicWriteFile(s.path, data, 0644); err != nil {
		return errors.NewProfileError("failed to persist profile", err).WithProfileID(p.ID)
	}

	return nil
}

// Update applies a merge-patch to the stored profile (or an empty base when
// none exists), persists the result, and publishes profile.updated so every
// live consumer observes the change without re-reading storage.
//
// The first update on an absent profile assigns a new identity; later
// updates preserve it even though the patch cannot carry an ID at all.
func (s *Store) Update(patch Patch) (Profile, error) {
	s.mu.Lock()

	base, existed := s.readLocked()
	merged := patch.apply(base)

	fresh := merged.ID == ""
	if fresh {
		merged.ID = uuid.NewString()
	}

	if err := merged.Validate(); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}

	if err := s.writeLocked(merged); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}
	s.mu.Unlock()

	s.logger.Info("profile updated",
		"profile_id", merged.ID,
		"fresh", fresh,
		"existed", existed)

	if s.bus != nil {
		s.bus.Publish(event.NewProfileUpdatedEvent(
			merged.ID, merged.Name, merged.Age, string(merged.Gender), fresh))
	}

	return merged, nil
}

// Clear removes the persisted profile and publishes profile.cleared so the
// in-memory current user resets in the same step. Clearing an already-empty
// store is a no-op that still publishes, keeping disk and memory aligned.
func (s *Store) Clear() error {
	s.mu.Lock()

	previous, _ := s.readLocked()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.mu.Unlock()
		return errors.NewProfileError("failed to remove persisted profile", err).
			WithProfileID(previous.ID)
	}
	s.mu.Unlock()

	s.logger.Info("profile cleared", "profile_id", previous.ID)

	if s.bus != nil {
		s.bus.Publish(event.NewProfileClearedEvent(previous.ID))
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a
// temporary file first, then renaming. The target file is never observable
// in a partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
