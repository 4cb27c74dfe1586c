package analytics

import "errors"

var (
	// ErrInvalidInterval is returned when the date range end precedes its start.
	ErrInvalidInterval = errors.New("analytics: interval end before start")
	// ErrNoData is returned when a filtered set is empty or an aggregate is
	// undefined; the presenter reports it instead of rendering.
	ErrNoData = errors.New("analytics: no data")
)
