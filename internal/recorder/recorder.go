package recorder

import "time"

// SampleEvent records one ingested word-count sample.
type SampleEvent struct {
	User   string
	At     time.Time
	Words  int
	Forced bool
}

// PaceAlertEvent records one user flagged behind pace on a daily tick.
type PaceAlertEvent struct {
	User         string
	At           time.Time
	NeededPerDay int
}

// Recorder persists an audit trail of ingests and alerts. It is never read
// on the hot path; failures are logged and ignored by callers.
type Recorder interface {
	RecordSample(evt *SampleEvent) error
	RecordPaceAlert(evt *PaceAlertEvent) error
	Close() error
}
