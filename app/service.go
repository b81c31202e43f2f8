package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/platalloc/api/platforms"
	"github.com/kilianp07/platalloc/config"
	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/delay"
	"github.com/kilianp07/platalloc/core/events"
	coremetrics "github.com/kilianp07/platalloc/core/metrics"
	"github.com/kilianp07/platalloc/core/model"
	coremqtt "github.com/kilianp07/platalloc/core/mqtt"
	"github.com/kilianp07/platalloc/core/stats"
	"github.com/kilianp07/platalloc/core/timetable"
	"github.com/kilianp07/platalloc/infra/logger"
	"github.com/kilianp07/platalloc/infra/metrics"
	"github.com/kilianp07/platalloc/infra/mqtt"
	"github.com/kilianp07/platalloc/internal/eventbus"
)

// Service owns the live train snapshot. It is the only writer of the latest
// run; HTTP handlers and bus subscribers only read it.
type Service struct {
	cfg      config.Config
	engine   *assign.Engine
	base     []model.Train
	gen      *delay.Generator
	interval time.Duration
	bus      *eventbus.TypedBus[events.RunCompleted]
	sink     coremetrics.MetricsSink
	pub      coremqtt.Publisher
	log      logger.Logger

	mu     sync.RWMutex
	latest events.RunCompleted
	hasRun bool
}

var _ platforms.Source = (*Service)(nil)

// Option customises a Service.
type Option func(*Service)

// WithPublisher replaces the MQTT publisher built from the configuration.
func WithPublisher(p coremqtt.Publisher) Option { return func(s *Service) { s.pub = p } }

// WithSink replaces the metrics sink built from the configuration.
func WithSink(sink coremetrics.MetricsSink) Option { return func(s *Service) { s.sink = sink } }

// WithTrains replaces the configured timetable.
func WithTrains(trains []model.Train) Option {
	return func(s *Service) { s.base = model.CloneTrains(trains) }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:      *cfg,
		engine:   assign.NewEngine(cfg.Assign.Weights),
		gen:      delay.NewGenerator(cfg.Delay),
		interval: cfg.Delay.Interval(),
		bus:      eventbus.NewTyped[events.RunCompleted](),
		log:      logger.New("service"),
	}
	for _, o := range opts {
		o(s)
	}
	if s.base == nil {
		trains, err := timetable.Load(cfg.Timetable)
		if err != nil {
			return nil, fmt.Errorf("timetable: %w", err)
		}
		s.base = trains
	}
	if s.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		s.sink = sink
	}
	if s.pub == nil && cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		s.pub = pub
	}
	s.log.Infof("loaded %d trains, %d minute window", len(s.base), int(cfg.Window.LengthMinutes))
	return s, nil
}

// Bus returns the bus completed runs are published on.
func (s *Service) Bus() *eventbus.TypedBus[events.RunCompleted] { return s.bus }

// Latest returns the most recent run.
func (s *Service) Latest() (events.RunCompleted, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.hasRun
}

// Process assigns one snapshot, stores the result and publishes it.
func (s *Service) Process(tick uint64, trains []model.Train) events.RunCompleted {
	run := s.engine.Run(tick, trains)
	ev := events.RunCompleted{Run: run, Report: stats.Aggregate(run.Platforms)}
	s.mu.Lock()
	s.latest, s.hasRun = ev, true
	s.mu.Unlock()
	s.log.Debugw("assignment run", map[string]any{
		"run_id":    run.ID,
		"tick":      tick,
		"platforms": len(run.Platforms),
		"delayed":   ev.Delayed(),
	})
	s.bus.Publish(ev)
	return ev
}

// Handler returns the JSON API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	platforms.Register(mux, s, s.cfg.Assign.Weights)
	return mux
}

func serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run starts the subscribers and servers, assigns the base timetable and,
// when the delay simulation is enabled, reassigns on every tick. It blocks
// until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartRunCollector(ctx, s.bus, s.sink, logger.New("metrics"))
	mqtt.StartRunPublisher(ctx, s.bus, s.pub, logger.New("mqtt"))
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if addr := s.cfg.HTTP.Addr; addr != "" {
		go func() {
			if err := serve(ctx, addr, s.Handler()); err != nil {
				s.log.Errorf("http server: %v", err)
			}
		}()
		s.log.Infof("HTTP API listening on %s", addr)
	}

	s.Process(0, s.base)
	if !s.cfg.Delay.Enabled {
		<-ctx.Done()
		return nil
	}
	t := &delay.Ticker{Generator: s.gen, Interval: s.interval, Logger: logger.New("delay")}
	for snap := range t.Run(ctx, s.base) {
		s.Process(snap.Tick, snap.Trains)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if p, ok := s.pub.(*mqtt.PahoPublisher); ok {
		p.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
