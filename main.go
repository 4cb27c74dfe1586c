package main

import (
	"log"
	"net/http"
	"os"
	"time"

	analyticsapp "market-dashboard/internal/analytics/application"
	apihttp "market-dashboard/internal/api/http"
	"market-dashboard/internal/dashboard"
	datasetapp "market-dashboard/internal/dataset/application"
	dataset "market-dashboard/internal/dataset/domain"
	"market-dashboard/internal/dataset/infrastructure/excel"
	"market-dashboard/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	pages, err := dashboard.LoadConfig()
	if err != nil {
		logger.Fatalf("dashboard config error: %v", err)
	}

	metrics.Init()

	reader := excel.NewReader(logger)
	keep := excel.ColumnPredicate(pages.ColumnPredicate())
	loader, err := datasetapp.NewCachedLoader(func(path string) (*dataset.RawTable, error) {
		return reader.Load(path, keep)
	})
	if err != nil {
		logger.Fatalf("loader error: %v", err)
	}

	service, err := analyticsapp.NewService(pages, loader, logger)
	if err != nil {
		logger.Fatalf("dashboard service error: %v", err)
	}
	handler, err := apihttp.NewDashboardsHandler(service)
	if err != nil {
		logger.Fatalf("dashboard handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/dashboards", handler)
	mux.Handle("/api/v1/dashboards/", handler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s, serving %d dashboards", cfg.HTTPAddr, len(pages.Pages))
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	HTTPAddr string
}

func loadConfig() config {
	return config{
		HTTPAddr: getenvDefault("HTTP_ADDR", ":8080"),
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
