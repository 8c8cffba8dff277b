package tracker

import (
	"log"
	"sync"
	"time"

	"NanoTracker/internal/model"
)

// Store owns the per-user word-count histories with concurrency safety.
// Ticks append one user at a time; command handlers read concurrently and
// observe either the pre- or post-append state.
type Store struct {
	mu          sync.Mutex
	state       model.TrackerState
	periodStart time.Time
	filePath    string
}

// NewStore creates a Store, loading prior state from disk if present.
func NewStore(filePath string, periodStart time.Time) (*Store, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Store{state: state, periodStart: periodStart, filePath: filePath}, nil
}

// PeriodStart returns day zero of the tracking period.
func (s *Store) PeriodStart() time.Time {
	return s.periodStart
}

// EnsureUser creates the user's history if absent, seeded with a zero-word
// sample at the period start. Idempotent.
func (s *Store) EnsureUser(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(user)
}

func (s *Store) ensureLocked(user string) {
	if _, ok := s.state[user]; !ok {
		s.state[user] = model.UserHistory{{At: s.periodStart, Words: 0}}
	}
}

// Last returns the most recently appended sample for the user.
func (s *Store) Last(user string) (model.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[user].Last()
}

// Append records a sample at the tail of the user's history. Calls are
// assumed to arrive in real time; timestamps are not reordered. The store
// does not deduplicate; the collector decides whether to append.
func (s *Store) Append(user string, at time.Time, words int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked(user)
	s.state[user] = append(s.state[user], model.Sample{At: at, Words: words})

	if err := SaveState(s.filePath, s.state); err != nil {
		log.Printf("[ERROR] save tracker state: %v", err)
	}
}

// All returns a deep copy of the tracked state.
func (s *Store) All() model.TrackerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(model.TrackerState, len(s.state))
	for user, history := range s.state {
		copied := make(model.UserHistory, len(history))
		copy(copied, history)
		out[user] = copied
	}
	return out
}

// Save writes the current state to disk. Called once more at shutdown after
// the scheduler has stopped.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SaveState(s.filePath, s.state)
}
