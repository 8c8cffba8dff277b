package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"NanoTracker/internal/model"
)

// stateVersion is the on-disk schema version. Files with any other version
// are rejected rather than reinterpreted.
const stateVersion = 1

type stateFile struct {
	Version int                       `json:"version"`
	SavedAt int64                     `json:"saved_at"`
	Users   map[string][]sampleRecord `json:"users"`
}

type sampleRecord struct {
	At    int64 `json:"at"` // unix seconds
	Words int   `json:"words"`
}

// LoadState reads tracker state from a JSON file. Returns an empty state if
// the file doesn't exist.
func LoadState(filePath string) (model.TrackerState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.TrackerState{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var sf stateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if sf.Version != stateVersion {
		return nil, fmt.Errorf("state file version %d not supported (want %d)", sf.Version, stateVersion)
	}

	state := make(model.TrackerState, len(sf.Users))
	for user, records := range sf.Users {
		history := make(model.UserHistory, len(records))
		for i, r := range records {
			history[i] = model.Sample{At: time.Unix(r.At, 0).UTC(), Words: r.Words}
		}
		state[user] = history
	}
	return state, nil
}

// SaveState writes tracker state to a JSON file with second-precision timestamps.
func SaveState(filePath string, state model.TrackerState) error {
	sf := stateFile{
		Version: stateVersion,
		SavedAt: time.Now().Unix(),
		Users:   make(map[string][]sampleRecord, len(state)),
	}
	for user, history := range state {
		records := make([]sampleRecord, len(history))
		for i, s := range history {
			records[i] = sampleRecord{At: s.At.Unix(), Words: s.Words}
		}
		sf.Users[user] = records
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return os.WriteFile(filePath, data, 0644)
}
