package analytics

import (
	"math"
	"testing"
	"time"

	series "market-dashboard/internal/series/domain"
)

func TestStatsTableValues(t *testing.T) {
	stats := StatsTable(sampleRecords(), series.AggregationSum)
	if len(stats) != 2 {
		t.Fatalf("got %d rows, want 2", len(stats))
	}

	// EMPRESA_B holds the larger share: 700/1000, 730/730.
	first := stats[0]
	if first.Company != "EMPRESA_B" {
		t.Fatalf("got leader %s, want EMPRESA_B", first.Company)
	}
	if first.Min != 700 || first.Max != 730 {
		t.Fatalf("got min=%v max=%v, want 700/730", first.Min, first.Max)
	}
	if math.Abs(first.Mean-715) > 1e-9 {
		t.Fatalf("got mean %v, want 715", first.Mean)
	}
	if !first.HasParticipation {
		t.Fatalf("expected participation for EMPRESA_B")
	}
	wantRatio := (70.0 + 100.0) / 2.0
	if math.Abs(first.MeanParticipation-wantRatio) > 1e-9 {
		t.Fatalf("got mean participation %v, want %v", first.MeanParticipation, wantRatio)
	}
}

func TestStatsTableSortedByParticipationDescending(t *testing.T) {
	stats := StatsTable(sampleRecords(), series.AggregationSum)
	for i := 1; i < len(stats); i++ {
		if stats[i-1].MeanParticipation < stats[i].MeanParticipation {
			t.Fatalf("stats not sorted descending: %v", stats)
		}
	}
}

func TestStatsTableTiesAlphabetical(t *testing.T) {
	records := []series.LongRecord{
		{Agent: "B1", Company: "BETA", Date: date(2023, time.January), Value: 50},
		{Agent: "A1", Company: "ALFA", Date: date(2023, time.January), Value: 50},
	}
	stats := StatsTable(records, series.AggregationSum)
	if stats[0].Company != "ALFA" || stats[1].Company != "BETA" {
		t.Fatalf("tie not broken alphabetically: %v", stats)
	}
}

func TestStatsTableZeroSystemDates(t *testing.T) {
	// Offsetting values make every system total zero, so no participation
	// is defined anywhere.
	records := []series.LongRecord{
		{Agent: "X", Company: "EMPRESA_A", Date: date(2023, time.January), Value: 100},
		{Agent: "Z", Company: "EMPRESA_B", Date: date(2023, time.January), Value: -100},
	}
	stats := StatsTable(records, series.AggregationSum)
	for _, stat := range stats {
		if stat.HasParticipation {
			t.Fatalf("company %s must have no participation", stat.Company)
		}
	}
	// Deterministic order still holds.
	if stats[0].Company != "EMPRESA_A" {
		t.Fatalf("expected alphabetical order, got %v", stats)
	}
}
