package analytics

import (
	"math"
	"testing"
	"time"

	series "market-dashboard/internal/series/domain"
)

func TestParticipationShare(t *testing.T) {
	// EMPRESA_A agents X=100 and Y=200 against a 1000 system total.
	got, ok := Participation(300, 1000)
	if !ok {
		t.Fatalf("expected a defined participation")
	}
	if got != 30 {
		t.Fatalf("got %v, want 30", got)
	}
}

func TestParticipationZeroSystemTotal(t *testing.T) {
	if _, ok := Participation(300, 0); ok {
		t.Fatalf("zero system total must report no data, not a ratio")
	}
}

func TestParticipationPartitionSumsTo100(t *testing.T) {
	records := sampleRecords()
	jan := FilterByDate(records, date(2023, time.January), date(2023, time.January))
	system := Total(AggregateByDate(jan, series.AggregationSum))

	var sum float64
	for _, company := range Companies(jan) {
		points := AggregateByDate(Filter(jan, FilterParams{Company: company}), series.AggregationSum)
		ratio, ok := Participation(Total(points), system)
		if !ok {
			t.Fatalf("company %s: expected a defined participation", company)
		}
		sum += ratio
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("partition participation sums to %v, want 100", sum)
	}
}
