package series

import "errors"

var (
	// ErrInvalidEncoding is returned when the period encoding is unsupported.
	ErrInvalidEncoding = errors.New("series: invalid period encoding")
	// ErrInvalidHorizon is returned when the horizon bounds are unusable.
	ErrInvalidHorizon = errors.New("series: invalid horizon")
	// ErrEmptyLabel is returned when a measurement has no label substring.
	ErrEmptyLabel = errors.New("series: empty measurement label")
	// ErrInvalidAggregation is returned when the aggregation kind is unsupported.
	ErrInvalidAggregation = errors.New("series: invalid aggregation kind")
)
