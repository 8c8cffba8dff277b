package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"NanoTracker/internal/model"
)

var periodStart = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func testComposer() *Composer {
	return NewComposer(periodStart, 30, 50000, 640, 480)
}

func history(samples ...model.Sample) model.UserHistory {
	return model.UserHistory(samples)
}

func TestCompose_OrdersByLatestValue(t *testing.T) {
	state := model.TrackerState{
		"low": history(
			model.Sample{At: periodStart, Words: 0},
			model.Sample{At: periodStart.Add(24 * time.Hour), Words: 1000},
		),
		"high": history(
			model.Sample{At: periodStart, Words: 0},
			model.Sample{At: periodStart.Add(24 * time.Hour), Words: 5000},
		),
	}
	now := periodStart.Add(48 * time.Hour)

	series, err := testComposer().Compose(state, []string{"low", "high"}, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series[0].Name != "high" || series[1].Name != "low" {
		t.Errorf("expected high before low, got %q, %q", series[0].Name, series[1].Name)
	}
}

func TestCompose_TrailingPointReachesNow(t *testing.T) {
	state := model.TrackerState{
		"simon": history(
			model.Sample{At: periodStart, Words: 0},
			model.Sample{At: periodStart.Add(24 * time.Hour), Words: 2000},
		),
	}
	now := periodStart.Add(5 * 24 * time.Hour)

	series, err := testComposer().Compose(state, []string{"simon"}, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	points := series[0].Points
	last := points[len(points)-1]
	if !last.At.Equal(now) {
		t.Errorf("expected trailing point at now, got %v", last.At)
	}
	if last.Words != 2000 {
		t.Errorf("trailing point must carry the last value forward, got %v", last.Words)
	}
}

func TestCompose_AppendsGoalPace(t *testing.T) {
	state := model.TrackerState{
		"simon": history(model.Sample{At: periodStart, Words: 0}),
	}
	series, err := testComposer().Compose(state, []string{"simon"}, nil, periodStart.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := series[len(series)-1]
	if last.Name != GoalSeriesName {
		t.Errorf("expected goal-pace series last, got %q", last.Name)
	}
	if last.Points[len(last.Points)-1].Words != 50000 {
		t.Errorf("goal curve should end at the goal")
	}
}

func TestCompose_EmptyUserDroppedOthersKept(t *testing.T) {
	state := model.TrackerState{
		"simon": history(
			model.Sample{At: periodStart, Words: 0},
			model.Sample{At: periodStart.Add(time.Hour), Words: 100},
		),
	}
	series, err := testComposer().Compose(state, []string{"simon", "ghost"}, nil, periodStart.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("one missing user must not fail the chart: %v", err)
	}
	for _, s := range series {
		if s.Name == "ghost" {
			t.Error("user without data should produce no series")
		}
	}
}

func TestCompose_NoUsersAtAllFails(t *testing.T) {
	if _, err := testComposer().Compose(model.TrackerState{}, []string{"a", "b"}, nil, time.Now()); err == nil {
		t.Error("expected error when no user has data")
	}
}

func TestDayMapSeries_AnchorsAtPeriodStart(t *testing.T) {
	s := testComposer().DayMapSeries("simon", map[int]int{0: 0, 1: 1000, 2: 2500})
	if len(s.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(s.Points))
	}
	if !s.Points[0].At.Equal(periodStart) {
		t.Errorf("day 0 should sit at period start, got %v", s.Points[0].At)
	}
	if !s.Points[2].At.Equal(periodStart.AddDate(0, 0, 2)) || s.Points[2].Words != 2500 {
		t.Errorf("day 2 misplaced: %+v", s.Points[2])
	}
}

func TestRender_WritesPNG(t *testing.T) {
	state := model.TrackerState{
		"simon": history(
			model.Sample{At: periodStart, Words: 0},
			model.Sample{At: periodStart.Add(24 * time.Hour), Words: 1800},
			model.Sample{At: periodStart.Add(48 * time.Hour), Words: 3600},
		),
	}
	c := testComposer()
	series, err := c.Compose(state, []string{"simon"}, nil, periodStart.Add(72*time.Hour))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	out := filepath.Join(t.TempDir(), "words.png")
	if err := c.Render(out, series); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered chart is empty")
	}
}

func TestRender_NoSeriesFails(t *testing.T) {
	c := testComposer()
	if err := c.Render(filepath.Join(t.TempDir(), "words.png"), nil); err == nil {
		t.Error("expected error for zero series")
	}
}
