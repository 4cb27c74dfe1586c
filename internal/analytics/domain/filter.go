package analytics

import (
	"time"

	series "market-dashboard/internal/series/domain"
)

// FilterParams is the immutable selection the presenter supplies: a closed
// date interval plus optional company and agent selectors. Zero From/To
// leave that bound open.
type FilterParams struct {
	From    time.Time
	To      time.Time
	Company string
	Agent   string
}

// NewFilterParams validates a selection. A degenerate interval
// (From == To) is allowed and selects that single instant.
func NewFilterParams(from, to time.Time, company, agent string) (FilterParams, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return FilterParams{}, ErrInvalidInterval
	}
	return FilterParams{From: from, To: to, Company: company, Agent: agent}, nil
}

// Filter keeps the records matching the selection. The date interval is
// inclusive on both ends, so filtering is idempotent.
func Filter(records []series.LongRecord, p FilterParams) []series.LongRecord {
	out := make([]series.LongRecord, 0, len(records))
	for _, rec := range records {
		if !p.From.IsZero() && rec.Date.Before(p.From) {
			continue
		}
		if !p.To.IsZero() && rec.Date.After(p.To) {
			continue
		}
		if p.Company != "" && rec.Company != p.Company {
			continue
		}
		if p.Agent != "" && rec.Agent != p.Agent {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FilterByDate keeps the records inside the closed interval [from, to].
func FilterByDate(records []series.LongRecord, from, to time.Time) []series.LongRecord {
	return Filter(records, FilterParams{From: from, To: to})
}

// Companies lists the distinct companies in the records, sorted ascending.
func Companies(records []series.LongRecord) []string {
	return distinct(records, func(r series.LongRecord) string { return r.Company })
}

// Agents lists the distinct agents belonging to company, sorted ascending.
func Agents(records []series.LongRecord, company string) []string {
	return distinct(records, func(r series.LongRecord) string {
		if company != "" && r.Company != company {
			return ""
		}
		return r.Agent
	})
}
