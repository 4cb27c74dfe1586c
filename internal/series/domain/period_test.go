package series

import (
	"fmt"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func mustParser(t *testing.T, encoding Encoding, start, end time.Time) *PeriodParser {
	t.Helper()
	horizon, err := NewHorizon(start, end)
	if err != nil {
		t.Fatalf("new horizon: %v", err)
	}
	parser, err := NewPeriodParser(encoding, horizon, WithNow(fixedNow))
	if err != nil {
		t.Fatalf("new parser: %v", err)
	}
	return parser
}

func TestParseMonthYear(t *testing.T) {
	parser := mustParser(t, EncodingMonthYear,
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))

	date, ambiguous, ok := parser.Parse("012023")
	if !ok {
		t.Fatalf("expected 012023 to parse")
	}
	if ambiguous {
		t.Fatalf("012023 must not be ambiguous")
	}
	want := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("got %v, want %v", date, want)
	}
}

func TestParseMonthYearRejections(t *testing.T) {
	parser := mustParser(t, EncodingMonthYear,
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		name  string
		token string
	}{
		{"month 13", "132023"},
		{"month 0", "002023"},
		{"non numeric", "ab2023"},
		{"five digits", "12023"},
		{"seven digits", "0120234"},
		{"empty", ""},
		{"before horizon", "122022"},
		{"after horizon", "012026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, ok := parser.Parse(tc.token); ok {
				t.Fatalf("expected %q to be rejected", tc.token)
			}
		})
	}
}

func TestParseMonthYearRoundTrip(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	parser := mustParser(t, EncodingMonthYear, start, end)

	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		token := fmt.Sprintf("%02d%04d", int(cursor.Month()), cursor.Year())
		date, _, ok := parser.Parse(token)
		if !ok {
			t.Fatalf("token %q did not parse", token)
		}
		if !date.Equal(cursor) {
			t.Fatalf("token %q: got %v, want %v", token, date, cursor)
		}
	}
}

func TestParseFlexYear(t *testing.T) {
	parser := mustParser(t, EncodingFlexYear,
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), time.Time{})

	date, ambiguous, ok := parser.Parse("12024")
	if !ok {
		t.Fatalf("expected 12024 to parse")
	}
	if !ambiguous {
		t.Fatalf("five-digit token must be flagged ambiguous")
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("got %v, want %v", date, want)
	}

	date, ambiguous, ok = parser.Parse("102024")
	if !ok || ambiguous {
		t.Fatalf("expected 102024 to parse unambiguously, got ok=%v ambiguous=%v", ok, ambiguous)
	}
	want = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("got %v, want %v", date, want)
	}
}

func TestParseShort(t *testing.T) {
	parser := mustParser(t, EncodingShort,
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), time.Time{})

	date, _, ok := parser.Parse("0124")
	if !ok {
		t.Fatalf("expected 0124 to parse")
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("got %v, want %v", date, want)
	}

	if _, _, ok := parser.Parse("1324"); ok {
		t.Fatalf("month 13 must be rejected")
	}
	if _, _, ok := parser.Parse("012024"); ok {
		t.Fatalf("six-digit token must be rejected for short encoding")
	}
}

func TestOpenHorizonEndsToday(t *testing.T) {
	parser := mustParser(t, EncodingMonthYear,
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), time.Time{})

	// fixedNow is June 2025: June parses, July does not.
	if _, _, ok := parser.Parse("062025"); !ok {
		t.Fatalf("expected current month to parse")
	}
	if _, _, ok := parser.Parse("072025"); ok {
		t.Fatalf("expected future month to be rejected")
	}
}

func TestNewPeriodParserValidation(t *testing.T) {
	horizon := Horizon{Start: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := NewPeriodParser("weekly", horizon); err != ErrInvalidEncoding {
		t.Fatalf("got %v, want ErrInvalidEncoding", err)
	}
	if _, err := NewPeriodParser(EncodingMonthYear, Horizon{}); err != ErrInvalidHorizon {
		t.Fatalf("got %v, want ErrInvalidHorizon", err)
	}
	if _, err := NewHorizon(horizon.Start, horizon.Start.AddDate(-1, 0, 0)); err != ErrInvalidHorizon {
		t.Fatalf("got %v, want ErrInvalidHorizon", err)
	}
}
