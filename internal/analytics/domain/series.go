package analytics

import (
	"sort"
	"time"

	series "market-dashboard/internal/series/domain"
)

// Point is one value of a per-date series.
type Point struct {
	Date  time.Time
	Value float64
}

// AggregateByDate groups records by date and combines values sharing a
// date according to kind: summed for extensive measurements, averaged for
// intensive ones. The result is sorted by date ascending.
func AggregateByDate(records []series.LongRecord, kind series.AggregationKind) []Point {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, rec := range records {
		sums[rec.Date] += rec.Value
		counts[rec.Date]++
	}

	points := make([]Point, 0, len(sums))
	for date, sum := range sums {
		value := sum
		if kind == series.AggregationMean {
			value = sum / float64(counts[date])
		}
		points = append(points, Point{Date: date, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// AgentSeries returns the records for one agent as a series ordered by
// date ascending. Post-reshape there is at most one record per date.
func AgentSeries(records []series.LongRecord, agent string) []Point {
	points := make([]Point, 0)
	for _, rec := range records {
		if rec.Agent != agent {
			continue
		}
		points = append(points, Point{Date: rec.Date, Value: rec.Value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// Total sums a series.
func Total(points []Point) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum
}

// Summary computes the configured summary statistic over a series.
// ok is false for an empty series.
func Summary(points []Point, stat series.SummaryStat) (float64, bool) {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}
	if stat == series.SummaryMedian {
		return Median(values)
	}
	return Mean(values)
}

// Mean averages values; ok is false for an empty set.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Median returns the middle value; ok is false for an empty set.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

// MinMax returns the smallest and largest values; ok is false for an
// empty set.
func MinMax(values []float64) (min, max float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}

func distinct(records []series.LongRecord, key func(series.LongRecord) string) []string {
	set := make(map[string]bool)
	for _, rec := range records {
		if k := key(rec); k != "" {
			set[k] = true
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
