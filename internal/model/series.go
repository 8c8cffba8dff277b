package model

import "time"

// SeriesPoint is one (instant, value) point of a chart series.
type SeriesPoint struct {
	At    time.Time
	Words float64
}

// Series is a named ordered point sequence handed to the chart renderer.
// Derived from histories or embedded page arrays; never persisted.
type Series struct {
	Name   string
	Points []SeriesPoint
}
