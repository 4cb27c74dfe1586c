package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	series "market-dashboard/internal/series/domain"
)

const dateLayout = "2006-01-02"

// HorizonConfig bounds the months a page accepts. An empty End means the
// horizon runs through "today".
type HorizonConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Page is one dashboard page: a measurement over one source workbook plus
// the page's aggregation conventions.
type Page struct {
	Name        string        `yaml:"name"`
	Title       string        `yaml:"title"`
	Source      string        `yaml:"source"`
	Label       string        `yaml:"label"`
	Unit        string        `yaml:"unit"`
	Aggregation string        `yaml:"aggregation"`
	SummaryStat string        `yaml:"summary_stat"`
	Encoding    string        `yaml:"encoding"`
	Horizon     HorizonConfig `yaml:"horizon"`
}

// Config is the full dashboard configuration.
type Config struct {
	DataDir string `yaml:"data_dir"`
	Pages   []Page `yaml:"pages"`
}

// LoadConfig loads the dashboard configuration from the YAML file named by
// DASHBOARDS_CONFIG, falling back to the built-in five pages. DATA_DIR
// overrides the workbook directory either way.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("DASHBOARDS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.FromSlash("data")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every page is well formed and page names are unique.
func (c Config) Validate() error {
	if len(c.Pages) == 0 {
		return fmt.Errorf("dashboard: no pages configured")
	}
	names := make(map[string]bool, len(c.Pages))
	for _, page := range c.Pages {
		if page.Name == "" {
			return fmt.Errorf("dashboard: page without name")
		}
		if names[page.Name] {
			return fmt.Errorf("dashboard: duplicate page name %q", page.Name)
		}
		names[page.Name] = true
		if page.Source == "" {
			return fmt.Errorf("dashboard: page %s: source workbook required", page.Name)
		}
		if _, err := page.Measurement(); err != nil {
			return fmt.Errorf("dashboard: page %s: %w", page.Name, err)
		}
		if !page.Summary().IsValid() {
			return fmt.Errorf("dashboard: page %s: invalid summary_stat %q", page.Name, page.SummaryStat)
		}
		if _, err := page.Parser(); err != nil {
			return fmt.Errorf("dashboard: page %s: %w", page.Name, err)
		}
	}
	return nil
}

// FindPage looks a page up by name.
func (c Config) FindPage(name string) (Page, bool) {
	for _, page := range c.Pages {
		if page.Name == name {
			return page, true
		}
	}
	return Page{}, false
}

// SourcePath resolves a page's workbook path against the data directory.
func (c Config) SourcePath(page Page) string {
	if filepath.IsAbs(page.Source) {
		return page.Source
	}
	return filepath.Join(c.DataDir, page.Source)
}

// Labels returns the distinct measurement labels across all pages, used to
// restrict workbook loads to needed columns.
func (c Config) Labels() []string {
	var labels []string
	seen := make(map[string]bool)
	for _, page := range c.Pages {
		if !seen[page.Label] {
			seen[page.Label] = true
			labels = append(labels, page.Label)
		}
	}
	return labels
}

// ColumnPredicate keeps the columns matching any configured label.
func (c Config) ColumnPredicate() func(header string) bool {
	labels := c.Labels()
	return func(header string) bool {
		for _, label := range labels {
			if strings.Contains(header, label) {
				return true
			}
		}
		return false
	}
}

// Measurement builds the page's measurement definition.
func (p Page) Measurement() (series.Measurement, error) {
	return series.NewMeasurement(p.Label, p.Unit, series.AggregationKind(p.Aggregation))
}

// Summary returns the page's summary statistic convention, defaulting to
// the mean.
func (p Page) Summary() series.SummaryStat {
	if p.SummaryStat == "" {
		return series.SummaryMean
	}
	return series.SummaryStat(p.SummaryStat)
}

// Parser builds the page's period parser from its encoding and horizon.
func (p Page) Parser() (*series.PeriodParser, error) {
	start, err := time.Parse(dateLayout, p.Horizon.Start)
	if err != nil {
		return nil, fmt.Errorf("horizon start: %w", err)
	}
	var end time.Time
	if p.Horizon.End != "" {
		end, err = time.Parse(dateLayout, p.Horizon.End)
		if err != nil {
			return nil, fmt.Errorf("horizon end: %w", err)
		}
	}
	horizon, err := series.NewHorizon(start, end)
	if err != nil {
		return nil, err
	}
	return series.NewPeriodParser(series.Encoding(p.Encoding), horizon)
}

// defaultConfig ships the five production pages.
func defaultConfig() Config {
	return Config{
		DataDir: filepath.FromSlash("data"),
		Pages: []Page{
			{
				Name:        "energia",
				Title:       "Análisis Integral de Energía",
				Source:      "serie_energia.xlsx",
				Label:       "Energía MWh",
				Unit:        "MWh",
				Aggregation: string(series.AggregationSum),
				SummaryStat: string(series.SummaryMedian),
				Encoding:    string(series.EncodingMonthYear),
				Horizon:     HorizonConfig{Start: "2023-01-01", End: "2025-12-01"},
			},
			{
				Name:        "potencia",
				Title:       "Análisis Integral de Potencia",
				Source:      "serie_energia.xlsx",
				Label:       "Potencia kW",
				Unit:        "kW",
				Aggregation: string(series.AggregationSum),
				SummaryStat: string(series.SummaryMean),
				Encoding:    string(series.EncodingMonthYear),
				Horizon:     HorizonConfig{Start: "2023-01-01", End: "2025-12-01"},
			},
			{
				Name:        "potencia-distribuidoras",
				Title:       "Análisis de Potencia de Distribuidoras",
				Source:      "serie_energia.xlsx",
				Label:       "Potencia kW",
				Unit:        "kW",
				Aggregation: string(series.AggregationSum),
				SummaryStat: string(series.SummaryMean),
				Encoding:    string(series.EncodingMonthYear),
				Horizon:     HorizonConfig{Start: "2023-01-01", End: "2025-12-01"},
			},
			{
				Name:        "precio-potencia",
				Title:       "Análisis Integral de Precios de Potencia",
				Source:      "energia_con_empresas.xlsx",
				Label:       "Precio Potencia US$/kW",
				Unit:        "US$/kW",
				Aggregation: string(series.AggregationMean),
				SummaryStat: string(series.SummaryMean),
				Encoding:    string(series.EncodingShort),
				Horizon:     HorizonConfig{Start: "2023-01-01"},
			},
			{
				Name:        "peaje-generacion",
				Title:       "Análisis Integral de Peajes de Generación",
				Source:      "serie_peaje.xlsx",
				Label:       "Peaje generación USD/MWh",
				Unit:        "USD/MWh",
				Aggregation: string(series.AggregationMean),
				SummaryStat: string(series.SummaryMean),
				Encoding:    string(series.EncodingFlexYear),
				Horizon:     HorizonConfig{Start: "2023-01-01"},
			},
		},
	}
}
