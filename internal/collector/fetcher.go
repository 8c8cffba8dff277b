package collector

import "NanoTracker/internal/model"

// Fetcher defines the interface for fetching one user's stats record.
type Fetcher interface {
	FetchStats(user string) (model.StatsRecord, error)
	Name() string
}
