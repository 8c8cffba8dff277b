package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DecodePointSeries converts an embedded numeric-array string of the form
// "[v1,v2,...,vn]" into a day-index map: day 0 is always 0, day i holds v_i.
// The result has n+1 entries for an n-element array.
func DecodePointSeries(raw string) (map[int]int, error) {
	return DecodePointSeriesN(raw, -1)
}

// DecodePointSeriesN decodes like DecodePointSeries but stops after `cutoff`
// array entries (days 0..cutoff), aligning e.g. a goal array to the number of
// days actually elapsed. A negative cutoff decodes everything.
func DecodePointSeriesN(raw string, cutoff int) (map[int]int, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil, fmt.Errorf("point series %q: missing brackets", raw)
	}

	days := map[int]int{0: 0}
	body := strings.TrimSpace(raw[1 : len(raw)-1])
	if body == "" {
		return days, nil
	}

	day := 1
	for _, field := range strings.Split(body, ",") {
		if cutoff >= 0 && day > cutoff {
			break
		}
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("point series entry %d: parse %q: %w", day, field, err)
		}
		days[day] = v
		day++
	}
	return days, nil
}

// ParseGroupedInt parses an integer that may use comma grouping ("50,000").
func ParseGroupedInt(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("empty number")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse grouped int: %w", err)
	}
	return n, nil
}
