package analytics

import (
	"sort"
	"time"

	series "market-dashboard/internal/series/domain"
)

// CompanyStat summarizes one company over the filtered interval: extremes
// and mean of its per-date aggregated series, plus the mean of its
// per-date participation ratio. HasParticipation is false when no date in
// the interval had a non-zero system total for the company.
type CompanyStat struct {
	Company           string
	Min               float64
	Mean              float64
	Max               float64
	MeanParticipation float64
	HasParticipation  bool
}

// StatsTable computes per-company statistics over the records, sorted by
// mean participation descending with ties broken by company name
// ascending for determinism. Companies without a defined participation
// sort after all companies that have one.
func StatsTable(records []series.LongRecord, kind series.AggregationKind) []CompanyStat {
	systemByDate := make(map[time.Time]float64)
	for _, p := range AggregateByDate(records, kind) {
		systemByDate[p.Date] = p.Value
	}

	byCompany := make(map[string][]series.LongRecord)
	for _, rec := range records {
		byCompany[rec.Company] = append(byCompany[rec.Company], rec)
	}

	stats := make([]CompanyStat, 0, len(byCompany))
	for company, recs := range byCompany {
		points := AggregateByDate(recs, kind)
		values := make([]float64, 0, len(points))
		var ratios []float64
		for _, p := range points {
			values = append(values, p.Value)
			if ratio, ok := Participation(p.Value, systemByDate[p.Date]); ok {
				ratios = append(ratios, ratio)
			}
		}
		min, max, _ := MinMax(values)
		mean, _ := Mean(values)
		stat := CompanyStat{Company: company, Min: min, Mean: mean, Max: max}
		if meanRatio, ok := Mean(ratios); ok {
			stat.MeanParticipation = meanRatio
			stat.HasParticipation = true
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.HasParticipation != b.HasParticipation {
			return a.HasParticipation
		}
		if a.MeanParticipation != b.MeanParticipation {
			return a.MeanParticipation > b.MeanParticipation
		}
		return a.Company < b.Company
	})
	return stats
}
