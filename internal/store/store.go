package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"
)

// Store is the persisted set of subscriber chat IDs. It is the sole owner
// of subscriber state: command handling and the scheduled broadcast share
// one instance, so every operation is guarded by a single mutex. A
// mutation is acknowledged only after the file write succeeded; a failed
// write restores the previous in-memory state.
type Store struct {
	mu   sync.Mutex
	path string
	ids  map[int64]struct{}

	// save persists a snapshot; swapped out in tests to count and fail
	// writes without touching the filesystem.
	save func(ids []int64) error
}

// Open loads the subscriber set from path. A missing file yields an empty
// set; an unreadable or malformed file is an error, since silently
// dropping an existing subscriber list would orphan every recipient.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		ids:  make(map[int64]struct{}),
	}
	s.save = s.writeFile

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read subscribers file: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("parse subscribers file %s: %w", path, err)
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s, nil
}

// Add inserts id into the set. It reports whether the id was newly added;
// adding an existing id is a no-op and does not touch the file. The
// insertion is rolled back if persistence fails.
func (s *Store) Add(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return false, nil
	}
	s.ids[id] = struct{}{}
	if err := s.save(s.snapshotLocked()); err != nil {
		delete(s.ids, id)
		return false, fmt.Errorf("persist subscribers: %w", err)
	}
	return true, nil
}

// Remove deletes id from the set. It reports whether the id was present;
// removing an absent id does not touch the file. The removal is rolled
// back if persistence fails.
func (s *Store) Remove(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return false, nil
	}
	delete(s.ids, id)
	if err := s.save(s.snapshotLocked()); err != nil {
		s.ids[id] = struct{}{}
		return false, fmt.Errorf("persist subscribers: %w", err)
	}
	return true, nil
}

// Snapshot returns a point-in-time copy of the subscriber IDs, sorted.
// Broadcasts iterate the copy, so concurrent Add/Remove calls cannot
// corrupt an in-flight delivery.
func (s *Store) Snapshot() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the current number of subscribers.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Store) snapshotLocked() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// writeFile rewrites the whole subscriber file. The format is a flat JSON
// array of chat IDs.
func (s *Store) writeFile(ids []int64) error {
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}
