package collector

import (
	"fmt"
	"log"
	"time"

	"NanoTracker/internal/model"
	"NanoTracker/internal/tracker"
)

// MockFetcher returns controllable fixed records for development and testing.
type MockFetcher struct {
	Records map[string]model.StatsRecord
	Errs    map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchStats(user string) (model.StatsRecord, error) {
	if err, ok := m.Errs[user]; ok {
		return nil, err
	}
	if rec, ok := m.Records[user]; ok {
		return rec, nil
	}
	return nil, fmt.Errorf("mock: no record for %s", user)
}

// IngestResult describes what one tick did for one user.
type IngestResult struct {
	User     string
	Words    int
	Appended bool
}

// UserPace flags a user whose required daily pace exceeds the alert threshold.
type UserPace struct {
	User         string
	NeededPerDay int
}

// TickResult is the outcome of one scheduled ingest pass. Notification
// dispatch is left to the caller; the collector holds no cross-tick state.
type TickResult struct {
	At      time.Time
	Forced  bool
	Ingests []IngestResult
	Behind  []UserPace
}

// Collector runs the per-tick ingest procedure over the tracked user roster.
type Collector struct {
	Fetcher       Fetcher
	Store         *tracker.Store
	Users         []string
	PaceThreshold int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, store *tracker.Store, users []string, paceThreshold int) *Collector {
	return &Collector{Fetcher: fetcher, Store: store, Users: users, PaceThreshold: paceThreshold}
}

// RunTick fetches every tracked user and feeds the store. On a forced (daily)
// tick every fetched value is appended and behind-pace users are collected;
// on a frequent tick a value is appended only when it differs from the last
// recorded one. A single user's failure never blocks the rest of the roster.
func (c *Collector) RunTick(forced bool) TickResult {
	result := TickResult{At: time.Now().UTC(), Forced: forced}

	for _, user := range c.Users {
		record, err := c.Fetcher.FetchStats(user)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v", user, err)
			continue
		}

		words, err := record.Int(model.AspectTotalWords)
		if err != nil {
			log.Printf("[WARN] total words for %s: %v", user, err)
			continue
		}

		c.Store.EnsureUser(user)

		appended := forced
		if !forced {
			last, ok := c.Store.Last(user)
			appended = !ok || last.Words != words
		}
		if appended {
			c.Store.Append(user, result.At, words)
		}
		result.Ingests = append(result.Ingests, IngestResult{User: user, Words: words, Appended: appended})

		if forced {
			if pace, err := record.Int(model.AspectNeededPerDay); err == nil && pace > c.PaceThreshold {
				result.Behind = append(result.Behind, UserPace{User: user, NeededPerDay: pace})
			}
		}
	}
	return result
}
