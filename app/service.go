// Package app wires configuration, the plan store, the computation engines
// and the HTTP surface into a runnable service.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yuksel-arslan/SmartCon360-sub007/api/plans"
	"github.com/yuksel-arslan/SmartCon360-sub007/api/simulate"
	"github.com/yuksel-arslan/SmartCon360-sub007/config"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/montecarlo"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/planstore"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/scenario"
	"github.com/yuksel-arslan/SmartCon360-sub007/infra/logger"
	"github.com/yuksel-arslan/SmartCon360-sub007/infra/metrics"
	"github.com/yuksel-arslan/SmartCon360-sub007/internal/eventbus"
)

// Service orchestrates the takt engine and its HTTP surface.
type Service struct {
	cfg     *config.Config
	store   planstore.Store
	bus     *eventbus.Bus
	log     logger.Logger
	handler http.Handler
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.NewWithLevel("service", cfg.Logging.Level)

	em, err := metrics.NewEngineMetrics(nil)
	if err != nil {
		return nil, err
	}

	cache := planstore.NewMemoryStore(cfg.PlanStore.CacheSize, time.Duration(cfg.PlanStore.CacheTTLMinutes)*time.Minute)
	var durable planstore.Store
	if cfg.PlanStore.SQLitePath != "" {
		durable, err = planstore.NewSQLiteStore(cfg.PlanStore.SQLitePath)
		if err != nil {
			return nil, err
		}
	}
	store := planstore.NewTieredStore(cache, durable)

	bus := eventbus.New()
	sim := scenario.New(logger.NewWithLevel("scenario", cfg.Logging.Level))
	mc := montecarlo.New(cfg.MonteCarlo.Workers, logger.NewWithLevel("montecarlo", cfg.Logging.Level))
	mc.Seed = cfg.MonteCarlo.Seed
	mcTimeout := time.Duration(cfg.MonteCarlo.TimeoutSeconds) * time.Second

	mux := http.NewServeMux()
	mux.Handle("/takt/", plans.NewHandler(store, bus, em, logger.NewWithLevel("api-plans", cfg.Logging.Level), cfg.HTTP.APIToken))
	mux.Handle("/simulate/", simulate.NewHandler(store, sim, mc, em, logger.NewWithLevel("api-simulate", cfg.Logging.Level), cfg.HTTP.APIToken, mcTimeout))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","service":"takt-engine","mode":"stateless-compute"}`))
	})

	return &Service{cfg: cfg, store: store, bus: bus, log: logg, handler: mux}, nil
}

// Handler exposes the HTTP surface, mainly for tests.
func (s *Service) Handler() http.Handler { return s.handler }

// Run starts the API server (and the Prometheus endpoint when enabled) and
// blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	go s.auditEvents(ctx)

	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: s.handler}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("takt engine listening on %s", s.cfg.HTTP.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(s.cfg.HTTP.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// auditEvents logs plan lifecycle events published on the bus.
func (s *Service) auditEvents(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			s.log.Infof("plan event %s: %s", e.Kind, e.PlanID)
		}
	}
}

// Close releases the plan store and the event bus.
func (s *Service) Close() error {
	s.bus.Close()
	return s.store.Close()
}
