package application

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	analytics "market-dashboard/internal/analytics/domain"
	"market-dashboard/internal/dashboard"
	dataset "market-dashboard/internal/dataset/domain"
	"market-dashboard/internal/observability/metrics"
	seriesapp "market-dashboard/internal/series/application"
	series "market-dashboard/internal/series/domain"
)

// ErrPageNotFound is returned when no configured page matches the name.
var ErrPageNotFound = errors.New("dashboard: page not found")

// RawTableLoader supplies cached raw tables per workbook path.
type RawTableLoader interface {
	Load(path string) (*dataset.RawTable, error)
}

// SeriesResult is one aggregate series plus its scalar companions.
// ParticipationOK is false when the system total over the interval is
// zero; SummaryOK is false for an empty series.
type SeriesResult struct {
	Points          []analytics.Point
	Summary         float64
	SummaryOK       bool
	Participation   float64
	ParticipationOK bool
}

type pageRuntime struct {
	page     dashboard.Page
	measure  series.Measurement
	reshaper *seriesapp.Reshaper
}

// Service is the core-to-presenter surface: it owns the load → reshape
// pipeline per page and answers filter/aggregate queries over the
// materialized long tables. It is a pure query layer; filter parameters
// are passed in explicitly and never held as session state.
type Service struct {
	cfg    dashboard.Config
	loader RawTableLoader
	logger *log.Logger
	pages  map[string]*pageRuntime

	mu     sync.Mutex
	tables map[string][]series.LongRecord
}

// NewService validates every configured page up front and constructs the
// query service.
func NewService(cfg dashboard.Config, loader RawTableLoader, logger *log.Logger) (*Service, error) {
	if loader == nil {
		return nil, errors.New("dashboard: raw table loader required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pages := make(map[string]*pageRuntime, len(cfg.Pages))
	for _, page := range cfg.Pages {
		measure, err := page.Measurement()
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}
		parser, err := page.Parser()
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}
		reshaper, err := seriesapp.NewReshaper(parser, logger)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}
		pages[page.Name] = &pageRuntime{page: page, measure: measure, reshaper: reshaper}
	}
	return &Service{
		cfg:    cfg,
		loader: loader,
		logger: logger,
		pages:  pages,
		tables: make(map[string][]series.LongRecord),
	}, nil
}

// Pages returns the configured pages in configuration order.
func (s *Service) Pages() []dashboard.Page { return s.cfg.Pages }

// FindPage looks a configured page up by name.
func (s *Service) FindPage(name string) (dashboard.Page, bool) {
	return s.cfg.FindPage(name)
}

// Table returns the page's long table restricted to [from, to].
func (s *Service) Table(name string, from, to time.Time) ([]series.LongRecord, error) {
	records, _, err := s.longTable(name)
	if err != nil {
		return nil, err
	}
	return analytics.FilterByDate(records, from, to), nil
}

// Companies lists the companies present in the page's long table.
func (s *Service) Companies(name string) ([]string, error) {
	records, _, err := s.longTable(name)
	if err != nil {
		return nil, err
	}
	return analytics.Companies(records), nil
}

// Agents lists the agents of one company in the page's long table.
func (s *Service) Agents(name, company string) ([]string, error) {
	records, _, err := s.longTable(name)
	if err != nil {
		return nil, err
	}
	return analytics.Agents(records, company), nil
}

// DateBounds returns the earliest and latest dates in the page's long
// table, used by the shell to seed the date-range selector.
func (s *Service) DateBounds(name string) (min, max time.Time, err error) {
	records, _, err := s.longTable(name)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(records) == 0 {
		return time.Time{}, time.Time{}, analytics.ErrNoData
	}
	min, max = records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date.Before(min) {
			min = rec.Date
		}
		if rec.Date.After(max) {
			max = rec.Date
		}
	}
	return min, max, nil
}

// AgentSeries returns the selected agent's series over the interval, the
// page's summary statistic over it, and the agent's participation in the
// system total.
func (s *Service) AgentSeries(name string, p analytics.FilterParams) (SeriesResult, error) {
	records, rt, err := s.longTable(name)
	if err != nil {
		return SeriesResult{}, err
	}
	filtered := analytics.Filter(records, analytics.FilterParams{From: p.From, To: p.To, Agent: p.Agent})
	points := analytics.AgentSeries(filtered, p.Agent)
	if len(points) == 0 {
		return SeriesResult{}, analytics.ErrNoData
	}
	result := SeriesResult{Points: points}
	result.Summary, result.SummaryOK = analytics.Summary(points, rt.page.Summary())
	system := analytics.AggregateByDate(analytics.FilterByDate(records, p.From, p.To), rt.measure.Kind)
	result.Participation, result.ParticipationOK = analytics.Participation(analytics.Total(points), analytics.Total(system))
	return result, nil
}

// CompanySeries returns the selected company's per-date aggregated series
// over the interval, its mean, and the company's participation in the
// system total.
func (s *Service) CompanySeries(name string, p analytics.FilterParams) (SeriesResult, error) {
	records, rt, err := s.longTable(name)
	if err != nil {
		return SeriesResult{}, err
	}
	filtered := analytics.Filter(records, analytics.FilterParams{From: p.From, To: p.To, Company: p.Company})
	points := analytics.AggregateByDate(filtered, rt.measure.Kind)
	if len(points) == 0 {
		return SeriesResult{}, analytics.ErrNoData
	}
	result := SeriesResult{Points: points}
	result.Summary, result.SummaryOK = analytics.Summary(points, series.SummaryMean)
	system := analytics.AggregateByDate(analytics.FilterByDate(records, p.From, p.To), rt.measure.Kind)
	result.Participation, result.ParticipationOK = analytics.Participation(analytics.Total(points), analytics.Total(system))
	return result, nil
}

// SystemSeries returns the system-wide per-date aggregated series over the
// interval and its mean.
func (s *Service) SystemSeries(name string, from, to time.Time) (SeriesResult, error) {
	records, rt, err := s.longTable(name)
	if err != nil {
		return SeriesResult{}, err
	}
	points := analytics.AggregateByDate(analytics.FilterByDate(records, from, to), rt.measure.Kind)
	if len(points) == 0 {
		return SeriesResult{}, analytics.ErrNoData
	}
	result := SeriesResult{Points: points}
	result.Summary, result.SummaryOK = analytics.Summary(points, series.SummaryMean)
	return result, nil
}

// Stats returns the ranked per-company statistics table over the interval.
func (s *Service) Stats(name string, from, to time.Time) ([]analytics.CompanyStat, error) {
	records, rt, err := s.longTable(name)
	if err != nil {
		return nil, err
	}
	filtered := analytics.FilterByDate(records, from, to)
	if len(filtered) == 0 {
		return nil, analytics.ErrNoData
	}
	return analytics.StatsTable(filtered, rt.measure.Kind), nil
}

// longTable materializes the page's long table on first use. The raw load
// is memoized per path by the loader; the reshape result is memoized per
// page here. Both are read-only once built.
func (s *Service) longTable(name string) ([]series.LongRecord, *pageRuntime, error) {
	rt, ok := s.pages[name]
	if !ok {
		return nil, nil, ErrPageNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if records, ok := s.tables[name]; ok {
		return records, rt, nil
	}

	start := time.Now()
	raw, err := s.loader.Load(s.cfg.SourcePath(rt.page))
	if err != nil {
		metrics.ObserveLoad(metrics.ResultError, time.Since(start))
		return nil, nil, err
	}
	records, warnings := rt.reshaper.Reshape(raw, rt.measure)
	metrics.ObserveLoad(metrics.ResultSuccess, time.Since(start))
	metrics.AddReshapeRecords(name, len(records))
	metrics.AddReshapeWarnings(name, len(warnings))
	if s.logger != nil {
		s.logger.Printf("page %s: reshaped %d records from %d rows (%d warnings)", name, len(records), raw.NumRows(), len(warnings))
	}

	s.tables[name] = records
	return records, rt, nil
}
