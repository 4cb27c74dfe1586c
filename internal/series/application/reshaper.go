package application

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	dataset "market-dashboard/internal/dataset/domain"
	series "market-dashboard/internal/series/domain"
)

// Warning describes a non-fatal problem absorbed during a reshape.
type Warning struct {
	Column     string
	PeriodCode string
	Reason     string
}

// Reshaper pivots a wide RawTable into the long per-date table for one
// measurement. Parse problems never abort a reshape; the offending column
// or cell is excluded and reported as a warning.
type Reshaper struct {
	parser *series.PeriodParser
	logger *log.Logger
}

// NewReshaper constructs a Reshaper.
func NewReshaper(parser *series.PeriodParser, logger *log.Logger) (*Reshaper, error) {
	if parser == nil {
		return nil, errors.New("series: period parser required")
	}
	return &Reshaper{parser: parser, logger: logger}, nil
}

// Reshape selects every column whose trimmed header contains the
// measurement label, resolves each column's trailing period token to a
// date, and emits one record per (agent, period) pair with a usable value.
// The output holds at most one record per (agent, date).
func (r *Reshaper) Reshape(raw *dataset.RawTable, m series.Measurement) ([]series.LongRecord, []Warning) {
	agentCol, _ := raw.Column(dataset.ColumnAgent)
	companyCol, _ := raw.Column(dataset.ColumnCompany)

	var records []series.LongRecord
	var warnings []Warning
	seen := make(map[string]map[time.Time]bool)

	for col, header := range raw.Headers() {
		if !strings.Contains(header, m.Label) {
			continue
		}
		fields := strings.Fields(header)
		if len(fields) == 0 {
			continue
		}
		code := fields[len(fields)-1]

		date, ambiguous, ok := r.parser.Parse(code)
		if !ok {
			warnings = append(warnings, r.warn(header, code, "unparseable or out-of-horizon period code"))
			continue
		}
		if ambiguous {
			warnings = append(warnings, r.warn(header, code, "ambiguous 5-digit period code, assumed 1-digit month"))
		}

		duplicated := false
		for row := 0; row < raw.NumRows(); row++ {
			agent := strings.TrimSpace(raw.Cell(row, agentCol))
			company := strings.TrimSpace(raw.Cell(row, companyCol))
			value, usable := coerceNumeric(raw.Cell(row, col))
			if !usable {
				continue
			}
			if seen[agent] == nil {
				seen[agent] = make(map[time.Time]bool)
			}
			if seen[agent][date] {
				duplicated = true
				continue
			}
			seen[agent][date] = true
			records = append(records, series.LongRecord{
				Agent:      agent,
				Company:    company,
				Date:       date,
				Value:      value,
				PeriodCode: code,
			})
		}
		if duplicated {
			warnings = append(warnings, r.warn(header, code, "duplicate period for agent, kept first occurrence"))
		}
	}
	return records, warnings
}

func (r *Reshaper) warn(column, code, reason string) Warning {
	if r.logger != nil {
		r.logger.Printf("reshape warning: column=%q period=%q %s", column, code, reason)
	}
	return Warning{Column: column, PeriodCode: code, Reason: reason}
}

// coerceNumeric parses a cell into a float64, stripping thousands
// separators first. Blank and unparseable cells are unusable, never zero.
func coerceNumeric(cell string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
