package analyzer

import (
	"log"
	"sort"

	"NanoTracker/internal/model"
)

// CompareAspects is the fixed aspect order of the comparison report.
var CompareAspects = []model.Aspect{
	model.AspectWordsToday,
	model.AspectTargetAverage,
	model.AspectNeededPerDay,
	model.AspectTotalWords,
}

// RankedEntry is one user's standing within a single aspect ranking.
type RankedEntry struct {
	User  string
	Value int
	Ratio float64 // value relative to the aspect leader, 1.0 for the leader
}

// AspectRanking holds the descending ranking for one aspect.
type AspectRanking struct {
	Aspect  model.Aspect
	Entries []RankedEntry
}

// FinishEntry pairs a user's total with their projected finish date.
type FinishEntry struct {
	User       string
	TotalWords int
	FinishDate string
}

// Comparison is the full cross-user comparison result.
type Comparison struct {
	Aspects     []AspectRanking
	FinishBoard []FinishEntry
}

// Empty reports whether no user produced any usable data.
func (c *Comparison) Empty() bool {
	for _, a := range c.Aspects {
		if len(a.Entries) > 0 {
			return false
		}
	}
	return len(c.FinishBoard) == 0
}

// FetchFunc retrieves one user's current stats record.
type FetchFunc func(user string) (model.StatsRecord, error)

// Compare fetches every user once and ranks them per aspect, descending,
// with each entry's ratio to the aspect leader, plus a finish-date
// leaderboard ordered by total words. Users whose fetch fails or whose
// value doesn't parse are omitted from the affected rankings only.
func Compare(fetch FetchFunc, users []string) *Comparison {
	records := make(map[string]model.StatsRecord, len(users))
	for _, user := range users {
		record, err := fetch(user)
		if err != nil {
			log.Printf("[WARN] compare: fetch %s: %v", user, err)
			continue
		}
		records[user] = record
	}

	cmp := &Comparison{}
	for _, aspect := range CompareAspects {
		cmp.Aspects = append(cmp.Aspects, rankAspect(aspect, users, records))
	}
	cmp.FinishBoard = finishBoard(users, records)
	return cmp
}

func rankAspect(aspect model.Aspect, users []string, records map[string]model.StatsRecord) AspectRanking {
	ranking := AspectRanking{Aspect: aspect}
	for _, user := range users {
		record, ok := records[user]
		if !ok {
			continue
		}
		value, err := record.Int(aspect)
		if err != nil {
			log.Printf("[WARN] compare: %v", err)
			continue
		}
		ranking.Entries = append(ranking.Entries, RankedEntry{User: user, Value: value})
	}

	sort.SliceStable(ranking.Entries, func(i, j int) bool {
		return ranking.Entries[i].Value > ranking.Entries[j].Value
	})
	if len(ranking.Entries) > 0 {
		top := ranking.Entries[0].Value
		for i := range ranking.Entries {
			if top != 0 {
				ranking.Entries[i].Ratio = float64(ranking.Entries[i].Value) / float64(top)
			}
		}
	}
	return ranking
}

func finishBoard(users []string, records map[string]model.StatsRecord) []FinishEntry {
	var board []FinishEntry
	for _, user := range users {
		record, ok := records[user]
		if !ok {
			continue
		}
		total, err := record.Int(model.AspectTotalWords)
		if err != nil {
			continue
		}
		date, ok := record.Text(model.AspectFinishDate)
		if !ok {
			date = "unknown"
		}
		board = append(board, FinishEntry{User: user, TotalWords: total, FinishDate: date})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].TotalWords > board[j].TotalWords
	})
	return board
}
