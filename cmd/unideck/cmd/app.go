package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	dto "github.com/prometheus/client_model/go"

	"github.com/unideck/unideck/internal/adapter/outbound/cache"
	"github.com/unideck/unideck/internal/adapter/outbound/dummyjson"
	"github.com/unideck/unideck/internal/adapter/outbound/storage"
	"github.com/unideck/unideck/internal/config"
	"github.com/unideck/unideck/internal/service"
	"github.com/unideck/unideck/internal/state"
)

// app bundles the wired dependencies every command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	files   *storage.FileStore
	metrics *dummyjson.Metrics
	cache   *cache.CatalogCache
	store   *state.Store
}

// newApp loads the configuration and wires the client, persistence,
// service, and state store.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	files, err := storage.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	metrics := dummyjson.NewMetrics()
	client := dummyjson.NewClient(
		dummyjson.WithBaseURL(cfg.API.BaseURL),
		dummyjson.WithTimeout(cfg.API.Timeout),
		dummyjson.WithLogger(logger),
		dummyjson.WithMetrics(metrics),
	)

	catalogCache, err := cache.Open(filepath.Join(cfg.DataDir, "catalog.db"), logger)
	if err != nil {
		// The cache is an optimization; browsing still works without it.
		logger.Warn("catalog cache unavailable", "error", err)
		catalogCache = nil
	}

	svc := service.NewCatalogService(client, files, logger)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		files:   files,
		metrics: metrics,
		cache:   catalogCache,
	}
	if catalogCache != nil {
		a.store = state.New(svc, files, catalogCache, logger, cfg.Catalog.PageLimit)
	} else {
		a.store = state.New(svc, files, nil, logger, cfg.Catalog.PageLimit)
	}
	return a, nil
}

// close releases held resources and, when requested, prints request
// statistics gathered during the run.
func (a *app) close() {
	if showStats {
		a.printStats()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close catalog cache", "error", err)
		}
	}
}

// printStats dumps the request counters and latency summaries collected
// by the API client during this run.
func (a *app) printStats() {
	families, err := a.metrics.Gatherer().Gather()
	if err != nil {
		a.logger.Warn("failed to gather request metrics", "error", err)
		return
	}
	fmt.Fprintln(os.Stderr, "request statistics:")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(os.Stderr, "  %s%s %v\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(os.Stderr, "  %s%s count=%d sum=%.4fs\n",
					mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}
