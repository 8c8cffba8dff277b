package tracker

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"NanoTracker/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

var periodStart = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "state.json"), periodStart)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestEnsureUser_SeedsZeroSample(t *testing.T) {
	s := newTestStore(t)
	s.EnsureUser("simon")

	last, ok := s.Last("simon")
	if !ok {
		t.Fatal("expected seeded sample")
	}
	if !last.At.Equal(periodStart) || last.Words != 0 {
		t.Errorf("expected (periodStart, 0), got (%v, %d)", last.At, last.Words)
	}
}

func TestEnsureUser_Idempotent(t *testing.T) {
	s := newTestStore(t)
	s.EnsureUser("simon")
	s.Append("simon", periodStart.Add(time.Hour), 1200)
	s.EnsureUser("simon")

	if got := len(s.All()["simon"]); got != 2 {
		t.Errorf("expected history untouched (2 samples), got %d", got)
	}
}

func TestAppend_ChronologicalTail(t *testing.T) {
	s := newTestStore(t)
	s.Append("simon", periodStart.Add(1*time.Hour), 500)
	s.Append("simon", periodStart.Add(2*time.Hour), 400) // decreases are recorded as fetched

	history := s.All()["simon"]
	if len(history) != 3 {
		t.Fatalf("expected seed + 2 samples, got %d", len(history))
	}
	last, _ := s.Last("simon")
	if last.Words != 400 {
		t.Errorf("expected last value 400, got %d", last.Words)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewStore(path, periodStart)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	s.Append("simon", periodStart.Add(26*time.Hour), 1667)
	s.Append("lena", periodStart.Add(30*time.Hour), 2100)

	first, err := LoadState(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := SaveState(path, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := LoadState(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip not stable:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(second["simon"]) != 2 || second["simon"][1].Words != 1667 {
		t.Errorf("unexpected simon history: %+v", second["simon"])
	}
}

func TestLoadState_MissingFile(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state) != 0 {
		t.Errorf("expected empty state, got %+v", state)
	}
}

func TestLoadState_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	writeFile(t, path, `{"version": 99, "users": {}}`)
	if _, err := LoadState(path); err == nil {
		t.Error("expected error for unknown version")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.Append("simon", periodStart.Add(time.Hour), 500)

	snapshot := s.All()
	snapshot["simon"] = append(snapshot["simon"], model.Sample{At: time.Now(), Words: 9999})

	last, _ := s.Last("simon")
	if last.Words != 500 {
		t.Errorf("mutating the snapshot leaked into the store: %+v", last)
	}
}
