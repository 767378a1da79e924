package threads

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/models"
)

// Store keeps the ordered entry list for each known thread. Writes replace
// the thread's slice with a fresh copy, so previously returned snapshots
// stay valid. Entry IDs are snowflake-generated: unique and monotonically
// increasing across the process lifetime, which makes them usable as both
// identity and chronological sort key.
type Store struct {
	mu       sync.RWMutex
	threads  []models.Thread
	entries  map[string][]models.Entry
	selected string
	node     *snowflake.Node
}

// Ensure Store implements StoreInterface
var _ StoreInterface = (*Store)(nil)

// NewStore creates a store seeded with the given threads. The thread
// collection is fixed for the session and must not be empty; an empty
// collection is a wiring bug, not a state the demo runs in. The first
// thread starts selected.
func NewStore(seed []models.Thread) (*Store, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("thread store requires at least one thread")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create ID generator: %w", err)
	}

	entries := make(map[string][]models.Entry, len(seed))
	for _, t := range seed {
		if _, dup := entries[t.ID]; dup {
			return nil, fmt.Errorf("duplicate thread ID %q", t.ID)
		}
		entries[t.ID] = nil
	}

	threads := make([]models.Thread, len(seed))
	copy(threads, seed)

	return &Store{
		threads:  threads,
		entries:  entries,
		selected: threads[0].ID,
		node:     node,
	}, nil
}

// Threads returns the known thread collection in seed order.
func (s *Store) Threads() []models.Thread {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Thread, len(s.threads))
	copy(out, s.threads)
	return out
}

// Thread looks up one thread by ID.
func (s *Store) Thread(threadID string) (models.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findThread(threadID)
}

// Select makes threadID the active thread. Unknown IDs are an error; the
// store never silently falls back to another thread.
func (s *Store) Select(threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findThread(threadID); err != nil {
		return err
	}

	s.selected = threadID
	return nil
}

// Selected returns the currently active thread. The selection always
// resolves to a member of the known collection.
func (s *Store) Selected() models.Thread {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.findThread(s.selected)
	if err != nil {
		// Selection is validated on every write, so this cannot happen.
		panic(fmt.Sprintf("selected thread %q missing from collection", s.selected))
	}
	return t
}

// Append adds a new entry at the end of the thread's sequence and returns
// it. The previous sequence is left untouched.
func (s *Store) Append(threadID, author, text string, status models.EntryStatus) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[threadID]
	if !ok {
		return models.Entry{}, fmt.Errorf("unknown thread %q", threadID)
	}

	entry := models.Entry{
		ID:          s.node.Generate().Int64(),
		ThreadID:    threadID,
		AuthorLabel: author,
		Text:        text,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	updated := make([]models.Entry, len(current)+1)
	copy(updated, current)
	updated[len(current)] = entry
	s.entries[threadID] = updated

	logrus.Debugf("Appended entry %d to thread %s (status=%s)", entry.ID, threadID, status)
	return entry, nil
}

// Entries returns the thread's current entry snapshot in append order.
// Callers must treat the returned slice as read-only.
func (s *Store) Entries(threadID string) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.entries[threadID]
	if !ok {
		return nil, fmt.Errorf("unknown thread %q", threadID)
	}
	return entries, nil
}

// Confirm promotes a pending-review entry to confirmed. Confirmed entries
// never regress, so confirming an already-confirmed entry is a no-op.
func (s *Store) Confirm(threadID string, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[threadID]
	if !ok {
		return fmt.Errorf("unknown thread %q", threadID)
	}

	for i, e := range current {
		if e.ID != entryID {
			continue
		}
		if e.Status == models.StatusConfirmed {
			return nil
		}

		updated := make([]models.Entry, len(current))
		copy(updated, current)
		updated[i].Status = models.StatusConfirmed
		s.entries[threadID] = updated
		return nil
	}

	return fmt.Errorf("entry %d not found in thread %q", entryID, threadID)
}

func (s *Store) findThread(threadID string) (models.Thread, error) {
	for _, t := range s.threads {
		if t.ID == threadID {
			return t, nil
		}
	}
	return models.Thread{}, fmt.Errorf("unknown thread %q", threadID)
}
