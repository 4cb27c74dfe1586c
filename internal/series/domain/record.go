package series

import "time"

// AggregationKind tells how values across agents sharing a date combine.
type AggregationKind string

const (
	// AggregationSum is for extensive measurements (volumes, capacities).
	AggregationSum AggregationKind = "sum"
	// AggregationMean is for intensive measurements (unit prices, tolls).
	AggregationMean AggregationKind = "mean"
)

// IsValid checks the kind is one of the supported values.
func (k AggregationKind) IsValid() bool {
	return k == AggregationSum || k == AggregationMean
}

// SummaryStat selects the per-agent summary statistic convention.
type SummaryStat string

const (
	SummaryMean   SummaryStat = "mean"
	SummaryMedian SummaryStat = "median"
)

// IsValid checks the stat is one of the supported values.
func (s SummaryStat) IsValid() bool {
	return s == SummaryMean || s == SummaryMedian
}

// Measurement identifies one observed quantity and its aggregation
// semantics. Label is the substring that selects value columns.
type Measurement struct {
	Label string
	Unit  string
	Kind  AggregationKind
}

// NewMeasurement validates a measurement definition.
func NewMeasurement(label, unit string, kind AggregationKind) (Measurement, error) {
	if label == "" {
		return Measurement{}, ErrEmptyLabel
	}
	if !kind.IsValid() {
		return Measurement{}, ErrInvalidAggregation
	}
	return Measurement{Label: label, Unit: unit, Kind: kind}, nil
}

// LongRecord is one observation in the long table: a value for an
// (agent, company) pair at a first-of-month date. For a fixed measurement
// there is at most one record per (agent, date).
type LongRecord struct {
	Agent      string
	Company    string
	Date       time.Time
	Value      float64
	PeriodCode string
}
