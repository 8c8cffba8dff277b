package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Aspect is a recognized labeled field on a participant's stats page.
type Aspect string

const (
	AspectTotalWords    Aspect = "Total Words Written"
	AspectWordsToday    Aspect = "Words Written Today"
	AspectTargetAverage Aspect = "Target Average Words Per Day"
	AspectNeededPerDay  Aspect = "Words Per Day To Finish On Time"
	AspectFinishDate    Aspect = "At This Rate You Will Finish On"
)

// Raw keys carrying the inline script arrays embedded in the stats page.
const (
	RawKeyChart    = "chart"
	RawKeyWordGoal = "wordgoal"
)

// StatsRecord is one fetched snapshot of a participant's stats page:
// labeled fields plus the two raw array strings under the reserved keys.
// Immutable once returned by a fetcher; never persisted.
type StatsRecord map[string]string

// Text returns the raw text of an aspect.
func (r StatsRecord) Text(a Aspect) (string, bool) {
	v, ok := r[string(a)]
	return v, ok
}

// Int parses an aspect as an integer, accepting comma grouping ("50,000").
func (r StatsRecord) Int(a Aspect) (int, error) {
	v, ok := r[string(a)]
	if !ok {
		return 0, fmt.Errorf("aspect %q missing", a)
	}
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(v), ",", ""))
	if err != nil {
		return 0, fmt.Errorf("aspect %q: parse %q: %w", a, v, err)
	}
	return n, nil
}
