package model

import "testing"

func TestStatsRecord_Int(t *testing.T) {
	r := StatsRecord{
		string(AspectTotalWords): "50,000",
		string(AspectWordsToday): " 1,667",
		string(AspectFinishDate): "November 30",
	}

	if n, err := r.Int(AspectTotalWords); err != nil || n != 50000 {
		t.Errorf("total: got %d, %v", n, err)
	}
	if n, err := r.Int(AspectWordsToday); err != nil || n != 1667 {
		t.Errorf("today: got %d, %v", n, err)
	}
	if _, err := r.Int(AspectFinishDate); err == nil {
		t.Error("expected error for free-text aspect")
	}
	if _, err := r.Int(AspectNeededPerDay); err == nil {
		t.Error("expected error for missing aspect")
	}
}

func TestUserHistory_Last(t *testing.T) {
	var h UserHistory
	if _, ok := h.Last(); ok {
		t.Error("empty history should have no last sample")
	}
	h = UserHistory{{Words: 1}, {Words: 2}}
	if last, ok := h.Last(); !ok || last.Words != 2 {
		t.Errorf("got %+v, %v", last, ok)
	}
}
