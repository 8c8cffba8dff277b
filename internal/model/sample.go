package model

import "time"

// Sample is a single timestamped cumulative word-count observation.
// Decreases are recorded as fetched; the tracker never rejects them.
type Sample struct {
	At    time.Time `json:"at"`
	Words int       `json:"words"`
}

// UserHistory is one user's chronologically ordered samples.
// Once a user is known the history is never empty: it starts with a
// zero-word sample anchored at the tracking period start.
type UserHistory []Sample

// Last returns the most recently appended sample.
func (h UserHistory) Last() (Sample, bool) {
	if len(h) == 0 {
		return Sample{}, false
	}
	return h[len(h)-1], true
}

// TrackerState maps user names to their histories. This is the entire
// persisted state of the tracker.
type TrackerState map[string]UserHistory
