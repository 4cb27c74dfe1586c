package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "dashboard_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	loadTotal   *prometheus.CounterVec
	loadLatency *prometheus.HistogramVec

	reshapeRecords  *prometheus.CounterVec
	reshapeWarnings *prometheus.CounterVec

	queryTotal *prometheus.CounterVec
)

// Init registers the dashboard pipeline metrics.
func Init() {
	registerOnce.Do(func() {
		loadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "load_total",
				Help: "Total workbook load and reshape passes by result",
			},
			[]string{"result"},
		)
		loadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "load_latency_seconds",
				Help:    "Workbook load and reshape latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		reshapeRecords = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reshape_records_total",
				Help: "Long records produced by reshape per page",
			},
			[]string{"page"},
		)
		reshapeWarnings = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reshape_warnings_total",
				Help: "Non-fatal reshape warnings per page",
			},
			[]string{"page"},
		)
		queryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "query_requests_total",
				Help: "Presenter queries by operation and result",
			},
			[]string{"op", "result"},
		)

		prometheus.MustRegister(
			loadTotal,
			loadLatency,
			reshapeRecords,
			reshapeWarnings,
			queryTotal,
		)
	})
}

// ObserveLoad records one load-and-reshape pass.
func ObserveLoad(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if loadTotal != nil {
		loadTotal.WithLabelValues(result).Inc()
	}
	if loadLatency != nil {
		loadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddReshapeRecords adds produced record count for a page.
func AddReshapeRecords(page string, count int) {
	if count <= 0 {
		return
	}
	if reshapeRecords != nil {
		reshapeRecords.WithLabelValues(page).Add(float64(count))
	}
}

// AddReshapeWarnings adds absorbed warning count for a page.
func AddReshapeWarnings(page string, count int) {
	if count <= 0 {
		return
	}
	if reshapeWarnings != nil {
		reshapeWarnings.WithLabelValues(page).Add(float64(count))
	}
}

// IncQuery increments the presenter query counter.
func IncQuery(op, result string) {
	if op == "" {
		op = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if queryTotal != nil {
		queryTotal.WithLabelValues(op, result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
