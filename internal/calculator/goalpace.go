package calculator

import (
	"errors"
	"time"

	"NanoTracker/internal/model"
)

// GoalPaceSeries builds the idealized straight-line pace curve for a goal:
// starting at `start`, the total steps up by goal/periodDays once per
// simulated day until it reaches the goal.
func GoalPaceSeries(name string, start time.Time, goal, periodDays int) (model.Series, error) {
	if goal <= 0 {
		return model.Series{}, errors.New("goal must be positive")
	}
	if periodDays <= 0 {
		return model.Series{}, errors.New("period length must be positive")
	}

	series := model.Series{Name: name}
	for day := 0; ; day++ {
		total := float64(goal) * float64(day) / float64(periodDays)
		if total > float64(goal) {
			total = float64(goal)
		}
		series.Points = append(series.Points, model.SeriesPoint{
			At:    start.AddDate(0, 0, day),
			Words: total,
		})
		// hard stop at twice the period length
		if total >= float64(goal) || day >= 2*periodDays {
			break
		}
	}
	return series, nil
}
