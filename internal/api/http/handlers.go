package apihttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	application "market-dashboard/internal/analytics/application"
	analytics "market-dashboard/internal/analytics/domain"
	"market-dashboard/internal/analytics/interfaces"
	dataset "market-dashboard/internal/dataset/domain"
	"market-dashboard/internal/observability/metrics"
)

const dateLayout = "2006-01-02"

const routePrefix = "/api/v1/dashboards"

// DashboardsHandler serves the presenter-facing dashboard queries.
type DashboardsHandler struct {
	svc *application.Service
}

// NewDashboardsHandler constructs a DashboardsHandler.
func NewDashboardsHandler(svc *application.Service) (*DashboardsHandler, error) {
	if svc == nil {
		return nil, errors.New("apihttp: service required")
	}
	return &DashboardsHandler{svc: svc}, nil
}

// ServeHTTP routes GET /api/v1/dashboards and its page sub-resources.
func (h *DashboardsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, routePrefix), "/")
	if rest == "" {
		h.listPages(w)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	page, ok := h.svc.FindPage(parts[0])
	if !ok {
		http.Error(w, "unknown dashboard", http.StatusNotFound)
		return
	}
	op := ""
	if len(parts) == 2 {
		op = parts[1]
	}

	switch op {
	case "table":
		h.table(w, r, page.Name)
	case "companies":
		h.companies(w, r, page.Name)
	case "agents":
		h.agents(w, r, page.Name)
	case "series":
		h.series(w, r, page.Name)
	case "stats":
		h.stats(w, r, page.Name)
	case "export/stats.xlsx":
		h.exportStats(w, r, page.Name, "xlsx")
	case "export/stats.pdf":
		h.exportStats(w, r, page.Name, "pdf")
	default:
		http.Error(w, "unknown operation", http.StatusNotFound)
	}
}

type pagePayload struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Label       string `json:"label"`
	Unit        string `json:"unit"`
	Aggregation string `json:"aggregation"`
}

func (h *DashboardsHandler) listPages(w http.ResponseWriter) {
	pages := h.svc.Pages()
	payload := make([]pagePayload, 0, len(pages))
	for _, p := range pages {
		payload = append(payload, pagePayload{
			Name:        p.Name,
			Title:       p.Title,
			Label:       p.Label,
			Unit:        p.Unit,
			Aggregation: p.Aggregation,
		})
	}
	writeJSON(w, payload)
	metrics.IncQuery("list", metrics.ResultSuccess)
}

type recordPayload struct {
	Agent   string  `json:"agent"`
	Company string  `json:"company"`
	Date    string  `json:"date"`
	Value   float64 `json:"value"`
	Period  string  `json:"period"`
}

func (h *DashboardsHandler) table(w http.ResponseWriter, r *http.Request, page string) {
	from, to, err := h.interval(r, page)
	if err != nil {
		h.fail(w, "table", err)
		return
	}
	records, err := h.svc.Table(page, from, to)
	if err != nil {
		h.fail(w, "table", err)
		return
	}
	payload := make([]recordPayload, 0, len(records))
	for _, rec := range records {
		payload = append(payload, recordPayload{
			Agent:   rec.Agent,
			Company: rec.Company,
			Date:    rec.Date.Format(dateLayout),
			Value:   rec.Value,
			Period:  rec.PeriodCode,
		})
	}
	writeJSON(w, payload)
	metrics.IncQuery("table", metrics.ResultSuccess)
}

func (h *DashboardsHandler) companies(w http.ResponseWriter, _ *http.Request, page string) {
	companies, err := h.svc.Companies(page)
	if err != nil {
		h.fail(w, "companies", err)
		return
	}
	writeJSON(w, companies)
	metrics.IncQuery("companies", metrics.ResultSuccess)
}

func (h *DashboardsHandler) agents(w http.ResponseWriter, r *http.Request, page string) {
	company := r.URL.Query().Get("company")
	if company == "" {
		http.Error(w, "company is required", http.StatusBadRequest)
		return
	}
	agents, err := h.svc.Agents(page, company)
	if err != nil {
		h.fail(w, "agents", err)
		return
	}
	writeJSON(w, agents)
	metrics.IncQuery("agents", metrics.ResultSuccess)
}

type pointPayload struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type seriesPayload struct {
	Scope         string         `json:"scope"`
	Points        []pointPayload `json:"points"`
	Summary       *float64       `json:"summary"`
	Participation *float64       `json:"participation"`
}

func (h *DashboardsHandler) series(w http.ResponseWriter, r *http.Request, page string) {
	from, to, err := h.interval(r, page)
	if err != nil {
		h.fail(w, "series", err)
		return
	}
	scope := r.URL.Query().Get("scope")
	agent := r.URL.Query().Get("agent")
	company := r.URL.Query().Get("company")

	var result application.SeriesResult
	switch scope {
	case "agent":
		if agent == "" {
			http.Error(w, "agent is required", http.StatusBadRequest)
			return
		}
		params, perr := analytics.NewFilterParams(from, to, company, agent)
		if perr != nil {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		result, err = h.svc.AgentSeries(page, params)
	case "company":
		if company == "" {
			http.Error(w, "company is required", http.StatusBadRequest)
			return
		}
		params, perr := analytics.NewFilterParams(from, to, company, "")
		if perr != nil {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		result, err = h.svc.CompanySeries(page, params)
	case "system":
		result, err = h.svc.SystemSeries(page, from, to)
	default:
		http.Error(w, "scope must be agent, company or system", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, "series", err)
		return
	}

	payload := seriesPayload{Scope: scope, Points: make([]pointPayload, 0, len(result.Points))}
	for _, p := range result.Points {
		payload.Points = append(payload.Points, pointPayload{Date: p.Date.Format(dateLayout), Value: p.Value})
	}
	if result.SummaryOK {
		summary := result.Summary
		payload.Summary = &summary
	}
	if result.ParticipationOK {
		participation := result.Participation
		payload.Participation = &participation
	}
	writeJSON(w, payload)
	metrics.IncQuery("series", metrics.ResultSuccess)
}

type statPayload struct {
	Company           string   `json:"company"`
	Min               float64  `json:"min"`
	Mean              float64  `json:"mean"`
	Max               float64  `json:"max"`
	MeanParticipation *float64 `json:"mean_participation"`
}

func (h *DashboardsHandler) stats(w http.ResponseWriter, r *http.Request, page string) {
	stats, err := h.statsTable(r, page)
	if err != nil {
		h.fail(w, "stats", err)
		return
	}
	payload := make([]statPayload, 0, len(stats))
	for _, stat := range stats {
		item := statPayload{Company: stat.Company, Min: stat.Min, Mean: stat.Mean, Max: stat.Max}
		if stat.HasParticipation {
			participation := stat.MeanParticipation
			item.MeanParticipation = &participation
		}
		payload = append(payload, item)
	}
	writeJSON(w, payload)
	metrics.IncQuery("stats", metrics.ResultSuccess)
}

func (h *DashboardsHandler) exportStats(w http.ResponseWriter, r *http.Request, page, format string) {
	stats, err := h.statsTable(r, page)
	if err != nil {
		h.fail(w, "export", err)
		return
	}
	cfg, _ := h.svc.FindPage(page)

	var body []byte
	var contentType, filename string
	switch format {
	case "xlsx":
		body, err = interfaces.BuildStatsXLSX(cfg.Title, cfg.Unit, stats)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = page + "-stats.xlsx"
	case "pdf":
		body, err = interfaces.BuildStatsPDF(cfg.Title, cfg.Unit, stats)
		contentType = "application/pdf"
		filename = page + "-stats.pdf"
	}
	if err != nil {
		http.Error(w, "export error", http.StatusInternalServerError)
		metrics.IncQuery("export", metrics.ResultError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(body)
	metrics.IncQuery("export", metrics.ResultSuccess)
}

func (h *DashboardsHandler) statsTable(r *http.Request, page string) ([]analytics.CompanyStat, error) {
	from, to, err := h.interval(r, page)
	if err != nil {
		return nil, err
	}
	return h.svc.Stats(page, from, to)
}

// interval resolves the from/to query params, defaulting missing bounds to
// the page's date extremes.
func (h *DashboardsHandler) interval(r *http.Request, page string) (from, to time.Time, err error) {
	from, err = parseDateQuery(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, errBadRequest(err)
	}
	to, err = parseDateQuery(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, errBadRequest(err)
	}
	if from.IsZero() || to.IsZero() {
		min, max, berr := h.svc.DateBounds(page)
		if berr != nil {
			return time.Time{}, time.Time{}, berr
		}
		if from.IsZero() {
			from = min
		}
		if to.IsZero() {
			to = max
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errBadRequest(analytics.ErrInvalidInterval)
	}
	return from, to, nil
}

// fail maps pipeline errors to the presenter-facing outcomes: resource
// problems become a distinguishable "no data available", degenerate
// aggregates a "no data" payload.
func (h *DashboardsHandler) fail(w http.ResponseWriter, op string, err error) {
	var bad badRequestError
	switch {
	case errors.As(err, &bad):
		http.Error(w, bad.Error(), http.StatusBadRequest)
	case errors.Is(err, application.ErrPageNotFound):
		http.Error(w, "unknown dashboard", http.StatusNotFound)
	case errors.Is(err, dataset.ErrFileNotFound),
		errors.Is(err, dataset.ErrEmptyTable),
		errors.Is(err, dataset.ErrNoSheet),
		errors.Is(err, dataset.ErrMissingIdentityColumn):
		http.Error(w, "no data available", http.StatusServiceUnavailable)
	case errors.Is(err, analytics.ErrNoData):
		writeJSON(w, map[string]bool{"no_data": true})
		metrics.IncQuery(op, metrics.ResultSuccess)
		return
	default:
		http.Error(w, "query error", http.StatusInternalServerError)
	}
	metrics.IncQuery(op, metrics.ResultError)
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func errBadRequest(err error) error { return badRequestError{err: err} }

func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be 2006-01-02", key)
	}
	return parsed.UTC(), nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
