package dates

import (
	"testing"
	"time"
)

func TestParseDateOnly(t *testing.T) {
	got := Parse("1818-01-01")
	want := time.Date(1818, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseUTCDatetime(t *testing.T) {
	got := Parse("2010-10-05T14:30:00Z")
	want := time.Date(2010, 10, 5, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseOffsetDatetime(t *testing.T) {
	got := Parse("2010-10-05T14:30:00+02:00")
	want := time.Date(2010, 10, 5, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
}

func TestParseFractionalSeconds(t *testing.T) {
	got := Parse("2010-10-05T14:30:00.500Z")
	want := time.Date(2010, 10, 5, 14, 30, 0, 500*int(time.Millisecond), time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseGarbageFallsBackToToday(t *testing.T) {
	for _, text := range []string{"", "not a date", "2010-13-05", "2010-10-32", "2010/10/05"} {
		got := Parse(text)
		if got.IsZero() {
			t.Errorf("Parse(%q) returned the zero instant", text)
		}
		if !got.Equal(got.Truncate(24 * time.Hour)) {
			t.Errorf("Parse(%q) fallback not truncated to day: %v", text, got)
		}
	}
}
