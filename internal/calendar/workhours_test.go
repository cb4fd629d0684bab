package calendar

import (
	"testing"
	"time"
)

func TestHours_Validate(t *testing.T) {
	cases := []struct {
		h  Hours
		ok bool
	}{
		{Hours{Open: 8, Close: 20}, true},
		{Hours{Open: 0, Close: 23}, true},
		{Hours{Open: 10, Close: 10}, false},
		{Hours{Open: 14, Close: 10}, false},
		{Hours{Open: -1, Close: 10}, false},
		{Hours{Open: 8, Close: 24}, false},
	}
	for _, c := range cases {
		err := c.h.Validate()
		if (err == nil) != c.ok {
			t.Fatalf("%+v: expected ok=%v, got %v", c.h, c.ok, err)
		}
		if err != nil && ReasonOf(err) != ReasonValidation {
			t.Fatalf("%+v: expected VALIDATION_ERROR, got %v", c.h, err)
		}
	}
}

func TestDateRangeHours_Validate(t *testing.T) {
	d := mustTime(t, 2026, 1, 20, 0, 0)
	ok := DateRangeHours{StartDate: d, EndDate: d, Hours: Hours{Open: 10, Close: 14}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("single-day override must be valid, got %v", err)
	}

	reversed := DateRangeHours{StartDate: d.AddDate(0, 0, 1), EndDate: d, Hours: Hours{Open: 10, Close: 14}}
	if err := reversed.Validate(); err == nil {
		t.Fatalf("expected error for start after end")
	}

	empty := DateRangeHours{Hours: Hours{Open: 10, Close: 14}}
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected error for missing dates")
	}
}

func TestResolveHours_Precedence(t *testing.T) {
	d := mustTime(t, 2026, 1, 20, 0, 0)
	override := DateRangeHours{StartDate: d, EndDate: d, Hours: Hours{Open: 10, Close: 14}}
	base := &Hours{Open: 9, Close: 17}
	global := &Hours{Open: 7, Close: 21}

	got := ResolveHours(d, []DateRangeHours{override}, base, global)
	if got.Source != SourceOverride || got.Open != 10 || got.Close != 14 {
		t.Fatalf("expected override 10-14, got %+v", got)
	}

	got = ResolveHours(d.AddDate(0, 0, 1), []DateRangeHours{override}, base, global)
	if got.Source != SourceTrainer || got.Open != 9 || got.Close != 17 {
		t.Fatalf("expected trainer 9-17 on the next day, got %+v", got)
	}

	got = ResolveHours(d, nil, nil, global)
	if got.Source != SourceGlobal || got.Open != 7 || got.Close != 21 {
		t.Fatalf("expected global 7-21, got %+v", got)
	}

	got = ResolveHours(d, nil, nil, nil)
	if got.Source != SourceGlobal || got.Open != DefaultOpenHour || got.Close != DefaultCloseHour {
		t.Fatalf("expected default window, got %+v", got)
	}
}

func TestSelectOverride_LatestWins(t *testing.T) {
	d := mustTime(t, 2026, 1, 20, 0, 0)
	older := DateRangeHours{
		StartDate: d.AddDate(0, 0, -2), EndDate: d.AddDate(0, 0, 2),
		Hours: Hours{Open: 6, Close: 12}, UpdatedAt: d.Add(-time.Hour),
	}
	newer := DateRangeHours{
		StartDate: d, EndDate: d,
		Hours: Hours{Open: 10, Close: 14}, UpdatedAt: d,
	}

	got, ok := SelectOverride([]DateRangeHours{newer, older}, d)
	if !ok || got.Open != 10 {
		t.Fatalf("expected the most recently updated override, got %+v (found=%v)", got, ok)
	}

	got, ok = SelectOverride([]DateRangeHours{newer, older}, d.AddDate(0, 0, 1))
	if !ok || got.Open != 6 {
		t.Fatalf("expected the wider override on the next day, got %+v", got)
	}

	if _, ok := SelectOverride([]DateRangeHours{newer}, d.AddDate(0, 0, 5)); ok {
		t.Fatalf("expected no override outside the range")
	}
}

func TestEffectiveHours_Admits(t *testing.T) {
	e := EffectiveHours{Hours: Hours{Open: 9, Close: 17}}
	if e.Admits(8) || !e.Admits(9) || !e.Admits(17) || e.Admits(18) {
		t.Fatalf("unexpected admits for %+v", e)
	}
}
