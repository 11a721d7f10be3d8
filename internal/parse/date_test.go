package parse

import (
	"testing"
	"time"
)

func TestDate_SlashDateBR(t *testing.T) {
	got, ok := Date("15/03/2025", LocaleBR)
	if !ok {
		t.Fatal("expected 15/03/2025 to parse")
	}
	want := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDate_AmbiguousSlashDateByLocale(t *testing.T) {
	cases := []struct {
		locale    DateLocale
		wantDay   int
		wantMonth time.Month
	}{
		{LocaleBR, 3, time.April},
		{LocaleUS, 4, time.March},
		// first component 03 <= 12, so the legacy guess goes month-first
		{LocaleHeuristic, 4, time.March},
	}
	for _, tc := range cases {
		got, ok := Date("03/04/2025", tc.locale)
		if !ok {
			t.Fatalf("locale %d: expected parse", tc.locale)
		}
		if got.Day() != tc.wantDay || got.Month() != tc.wantMonth {
			t.Errorf("locale %d: got %v, want day=%d month=%d", tc.locale, got, tc.wantDay, tc.wantMonth)
		}
	}
}

func TestDate_HeuristicDayFirstWhenUnambiguous(t *testing.T) {
	got, ok := Date("25/03/2025", LocaleHeuristic)
	if !ok {
		t.Fatal("expected parse")
	}
	if got.Day() != 25 || got.Month() != time.March {
		t.Errorf("got %v, want 2025-03-25", got)
	}
}

func TestDate_ExcelSerial(t *testing.T) {
	// serial 25569 is the Unix epoch itself
	got, ok := Date(25569, LocaleBR)
	if !ok {
		t.Fatal("expected serial to parse")
	}
	if !got.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("serial 25569 = %v, want 1970-01-01", got)
	}

	got, ok = Date(45000.0, LocaleBR)
	if !ok {
		t.Fatal("expected serial to parse")
	}
	want := time.Unix((45000-25569)*86400, 0).UTC()
	if !got.Equal(want) {
		t.Errorf("serial 45000 = %v, want %v", got, want)
	}

	// serials show up as strings in CSV cells
	got, ok = Date("45000", LocaleBR)
	if !ok || !got.Equal(want) {
		t.Errorf("Date(\"45000\") = %v/%v, want %v", got, ok, want)
	}
}

func TestDate_NativeAndGenericFormats(t *testing.T) {
	now := time.Now()
	if got, ok := Date(now, LocaleBR); !ok || !got.Equal(now) {
		t.Errorf("native time not passed through")
	}

	got, ok := Date("2025-03-15", LocaleBR)
	if !ok || got.Day() != 15 || got.Month() != time.March {
		t.Errorf("ISO date failed: %v %v", got, ok)
	}
}

func TestDate_SilentFallback(t *testing.T) {
	for _, in := range []any{"not a date", "", "99/99/2025", nil, struct{}{}} {
		if _, ok := Date(in, LocaleBR); ok {
			t.Errorf("Date(%v) unexpectedly parsed", in)
		}
	}
}

func TestParseDateLocale(t *testing.T) {
	if ParseDateLocale("us") != LocaleUS {
		t.Error("us should map to LocaleUS")
	}
	if ParseDateLocale("HEURISTIC") != LocaleHeuristic {
		t.Error("HEURISTIC should map to LocaleHeuristic")
	}
	if ParseDateLocale("") != LocaleBR {
		t.Error("default should be LocaleBR")
	}
}
