package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"NanoTracker/internal/analyzer"
	"NanoTracker/internal/calculator"
	"NanoTracker/internal/collector"
	"NanoTracker/internal/model"
)

// statsNoiseKeys are dropped from the stats reply: raw arrays and fields
// that never change over a tracking period.
var statsNoiseKeys = map[string]bool{
	model.RawKeyChart:    true,
	model.RawKeyWordGoal: true,
	"Target Word Count":  true,
	"Current Day":        true,
	"Days Remaining":     true,
}

// statsOrder puts the interesting aspects first; leftover fields follow alphabetically.
var statsOrder = []model.Aspect{
	model.AspectTotalWords,
	model.AspectWordsToday,
	model.AspectTargetAverage,
	model.AspectNeededPerDay,
	model.AspectFinishDate,
}

// FormatStats formats a single user's stats record.
func FormatStats(user string, record model.StatsRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📖 <b>%s</b> | %s\n\n", user, time.Now().Format("2006-01-02")))

	seen := map[string]bool{}
	for _, aspect := range statsOrder {
		if v, ok := record.Text(aspect); ok {
			b.WriteString(fmt.Sprintf("%s : %s\n", aspect, groupValue(v)))
			seen[string(aspect)] = true
		}
	}

	var rest []string
	for key := range record {
		if !seen[key] && !statsNoiseKeys[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		b.WriteString(fmt.Sprintf("%s : %s\n", key, groupValue(record[key])))
	}
	return b.String()
}

// FormatComparison formats the multi-section comparison report: one ranked
// block per aspect, then the finish-date leaderboard.
func FormatComparison(cmp *analyzer.Comparison) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏆 <b>Wordcount Comparison</b> | %s\n", time.Now().Format("2006-01-02")))

	for _, ranking := range cmp.Aspects {
		if len(ranking.Entries) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n<b>%s</b>\n", ranking.Aspect))
		for i, e := range ranking.Entries {
			b.WriteString(fmt.Sprintf("  %d. %s : %s (%.2f)\n",
				i+1, e.User, humanize.Comma(int64(e.Value)), e.Ratio))
		}
	}

	if len(cmp.FinishBoard) > 0 {
		b.WriteString("\n<b>Projected Finish</b>\n")
		for i, e := range cmp.FinishBoard {
			b.WriteString(fmt.Sprintf("  %d. %s : %s words, finishing %s\n",
				i+1, e.User, humanize.Comma(int64(e.TotalWords)), e.FinishDate))
		}
	}
	return b.String()
}

// FormatPaceAlert formats the aggregate falling-behind notification.
func FormatPaceAlert(behind []collector.UserPace) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>Falling behind pace</b>\n\n")
	for _, p := range behind {
		b.WriteString(fmt.Sprintf("%s needs %s words per day to finish on time\n",
			p.User, humanize.Comma(int64(p.NeededPerDay))))
	}
	return b.String()
}

// HelpText describes the available commands.
func HelpText() string {
	return "Commands:\n" +
		"/nano stats <user>\n" +
		"    Displays the stats of a particular user.\n" +
		"/nano chart [user...]  (alias: graph)\n" +
		"    Draws a progress chart for the given users (default: tracked roster).\n" +
		"/nano compare [user...]\n" +
		"    Ranks users across wordcount aspects."
}

// groupValue re-groups numeric values ("50000" -> "50,000"), passing
// free-text values through untouched.
func groupValue(v string) string {
	if n, err := calculator.ParseGroupedInt(v); err == nil {
		return humanize.Comma(int64(n))
	}
	return v
}
