package notifier

import (
	"strings"
	"testing"

	"NanoTracker/internal/analyzer"
	"NanoTracker/internal/collector"
	"NanoTracker/internal/model"
)

func TestFormatStats_DropsNoiseAndGroupsNumbers(t *testing.T) {
	record := model.StatsRecord{
		string(model.AspectTotalWords): "4100",
		string(model.AspectFinishDate): "December 2",
		model.RawKeyChart:              "[1,2,3]",
		model.RawKeyWordGoal:           "[1,2,3]",
		"Target Word Count":            "50,000",
		"Current Day":                  "3",
		"Days Remaining":               "27",
	}
	out := FormatStats("simon", record)

	if !strings.Contains(out, "simon") {
		t.Error("missing user name")
	}
	if !strings.Contains(out, "Total Words Written : 4,100") {
		t.Errorf("numeric value not re-grouped:\n%s", out)
	}
	if !strings.Contains(out, "December 2") {
		t.Error("free-text value lost")
	}
	for _, noise := range []string{"rawCamperData", "[1,2,3]", "Target Word Count", "Current Day", "Days Remaining"} {
		if strings.Contains(out, noise) {
			t.Errorf("noise key leaked: %s\n%s", noise, out)
		}
	}
}

func TestFormatComparison_SectionsAndLeaderboard(t *testing.T) {
	cmp := &analyzer.Comparison{
		Aspects: []analyzer.AspectRanking{
			{Aspect: model.AspectTotalWords, Entries: []analyzer.RankedEntry{
				{User: "a", Value: 50000, Ratio: 1.0},
				{User: "b", Value: 30000, Ratio: 0.6},
			}},
			{Aspect: model.AspectWordsToday}, // empty section is skipped
		},
		FinishBoard: []analyzer.FinishEntry{
			{User: "a", TotalWords: 50000, FinishDate: "November 28"},
		},
	}
	out := FormatComparison(cmp)

	if !strings.Contains(out, "1. a : 50,000 (1.00)") {
		t.Errorf("leader line malformed:\n%s", out)
	}
	if !strings.Contains(out, "2. b : 30,000 (0.60)") {
		t.Errorf("runner-up line malformed:\n%s", out)
	}
	if strings.Contains(out, string(model.AspectWordsToday)) {
		t.Error("empty aspect section should be omitted")
	}
	if !strings.Contains(out, "November 28") {
		t.Error("finish board missing")
	}
}

func TestFormatPaceAlert(t *testing.T) {
	out := FormatPaceAlert([]collector.UserPace{
		{User: "simon", NeededPerDay: 1800},
		{User: "lena", NeededPerDay: 2150},
	})
	if !strings.Contains(out, "simon needs 1,800 words per day") {
		t.Errorf("alert line malformed:\n%s", out)
	}
	if !strings.Contains(out, "lena needs 2,150 words per day") {
		t.Errorf("alert should aggregate all users:\n%s", out)
	}
}
