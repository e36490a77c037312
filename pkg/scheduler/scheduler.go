// Package scheduler drives the periodic work of the service: delivery cycles, profile decay,
// feed collection and article cleanup.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdrop/pkg/feed"
)

//go:generate moq -out mocks/decayer.go -pkg mocks -skip-ensure -fmt goimports . Decayer
//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector

// Decayer fades preference profiles over time
type Decayer interface {
	ApplyDecay(ctx context.Context) (int, error)
}

// Collector pulls feeds into the article store and expires old articles
type Collector interface {
	Collect(ctx context.Context) (feed.CollectStats, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler runs the background workers
type Scheduler struct {
	orchestrator *Orchestrator
	decayer      Decayer
	collector    Collector

	deliveryInterval time.Duration
	decayInterval    time.Duration
	collectInterval  time.Duration
	cleanupInterval  time.Duration
	retention        time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Params defines scheduler dependencies and intervals. A nil Decayer or Collector disables its worker.
type Params struct {
	Orchestrator     *Orchestrator
	Decayer          Decayer
	Collector        Collector
	DeliveryInterval time.Duration
	DecayInterval    time.Duration
	CollectInterval  time.Duration
	CleanupInterval  time.Duration
	Retention        time.Duration
}

// NewScheduler makes a scheduler, zero intervals get defaults
func NewScheduler(p Params) *Scheduler {
	if p.DeliveryInterval <= 0 {
		p.DeliveryInterval = time.Minute
	}
	if p.DecayInterval <= 0 {
		p.DecayInterval = 7 * 24 * time.Hour
	}
	if p.CollectInterval <= 0 {
		p.CollectInterval = 30 * time.Minute
	}
	if p.CleanupInterval <= 0 {
		p.CleanupInterval = 24 * time.Hour
	}
	if p.Retention <= 0 {
		p.Retention = feed.DefaultRetention
	}
	return &Scheduler{
		orchestrator:     p.Orchestrator,
		decayer:          p.Decayer,
		collector:        p.Collector,
		deliveryInterval: p.DeliveryInterval,
		decayInterval:    p.DecayInterval,
		collectInterval:  p.CollectInterval,
		cleanupInterval:  p.CleanupInterval,
		retention:        p.Retention,
	}
}

// Start launches workers, they stop on ctx cancellation or Stop
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.collector != nil {
		s.every(ctx, s.collectInterval, true, s.collect)
		s.every(ctx, s.cleanupInterval, false, s.cleanup)
	}
	if s.orchestrator != nil {
		s.every(ctx, s.deliveryInterval, true, func(ctx context.Context) { s.orchestrator.RunCycle(ctx) })
	}
	if s.decayer != nil {
		s.every(ctx, s.decayInterval, false, s.decay)
	}

	lgr.Printf("[INFO] scheduler started, delivery every %v, collect every %v, decay every %v",
		s.deliveryInterval, s.collectInterval, s.decayInterval)
}

// Stop cancels workers and waits for them to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// every runs fn on each tick until ctx is done. Runs of one worker never overlap,
// a slow run delays the next one.
func (s *Scheduler) every(ctx context.Context, interval time.Duration, immediate bool, fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate {
			fn(ctx)
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

func (s *Scheduler) collect(ctx context.Context) {
	if _, err := s.collector.Collect(ctx); err != nil {
		lgr.Printf("[WARN] feed collection interrupted: %v", err)
	}
}

func (s *Scheduler) cleanup(ctx context.Context) {
	if _, err := s.collector.Cleanup(ctx, s.retention); err != nil {
		lgr.Printf("[WARN] article cleanup failed: %v", err)
	}
}

func (s *Scheduler) decay(ctx context.Context) {
	if _, err := s.decayer.ApplyDecay(ctx); err != nil {
		lgr.Printf("[WARN] profile decay failed: %v", err)
	}
}
