package chart

import (
	"errors"
	"log"
	"sort"
	"time"

	"NanoTracker/internal/calculator"
	"NanoTracker/internal/model"
)

// GoalSeriesName labels the synthetic overall goal-pace curve.
const GoalSeriesName = "Daily Goal"

// Composer turns tracked histories into named chart series and renders them.
type Composer struct {
	PeriodStart time.Time
	PeriodDays  int
	Goal        int
	Width       int
	Height      int
}

// NewComposer creates a Composer for the configured tracking period.
func NewComposer(periodStart time.Time, periodDays, goal, width, height int) *Composer {
	return &Composer{
		PeriodStart: periodStart,
		PeriodDays:  periodDays,
		Goal:        goal,
		Width:       width,
		Height:      height,
	}
}

// Compose builds the display series for the given users: one line per user
// with data, ordered by latest value descending, each extended with a
// trailing point at `now`, followed by `extras` (ad hoc curves supplied by
// the caller) and the synthetic goal-pace reference. Users without data are
// dropped silently; zero user series overall is an error.
func (c *Composer) Compose(state model.TrackerState, users []string, extras []model.Series, now time.Time) ([]model.Series, error) {
	var series []model.Series
	for _, user := range users {
		history := state[user]
		if len(history) == 0 {
			continue
		}
		points := make([]model.SeriesPoint, 0, len(history)+1)
		for _, s := range history {
			points = append(points, model.SeriesPoint{At: s.At, Words: float64(s.Words)})
		}
		// Carry the last known value forward so every line reaches "now".
		last := points[len(points)-1]
		trail := now
		if !trail.After(last.At) {
			trail = last.At.Add(time.Second)
		}
		points = append(points, model.SeriesPoint{At: trail, Words: last.Words})
		series = append(series, model.Series{Name: user, Points: points})
	}
	// Legend order reflects current standing.
	sort.SliceStable(series, func(i, j int) bool {
		return latestValue(series[i]) > latestValue(series[j])
	})

	series = append(series, extras...)
	if len(series) == 0 {
		return nil, errors.New("no word-count data for any requested user")
	}

	goal, err := calculator.GoalPaceSeries(GoalSeriesName, c.PeriodStart, c.Goal, c.PeriodDays)
	if err != nil {
		log.Printf("[WARN] goal pace series: %v", err)
	} else {
		series = append(series, goal)
	}
	return series, nil
}

// DayMapSeries converts a decoded day-index map into a time-anchored series,
// mapping day i to periodStart + i days.
func (c *Composer) DayMapSeries(name string, days map[int]int) model.Series {
	idx := make([]int, 0, len(days))
	for d := range days {
		idx = append(idx, d)
	}
	sort.Ints(idx)

	series := model.Series{Name: name, Points: make([]model.SeriesPoint, 0, len(idx))}
	for _, d := range idx {
		series.Points = append(series.Points, model.SeriesPoint{
			At:    c.PeriodStart.AddDate(0, 0, d),
			Words: float64(days[d]),
		})
	}
	return series
}

func latestValue(s model.Series) float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Words
}
