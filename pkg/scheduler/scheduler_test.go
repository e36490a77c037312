package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/feed"
	"github.com/umputun/newsdrop/pkg/scheduler/mocks"
)

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Params{})
	assert.Equal(t, time.Minute, s.deliveryInterval)
	assert.Equal(t, 7*24*time.Hour, s.decayInterval)
	assert.Equal(t, 30*time.Minute, s.collectInterval)
	assert.Equal(t, 24*time.Hour, s.cleanupInterval)
	assert.Equal(t, feed.DefaultRetention, s.retention)

	s = NewScheduler(Params{DeliveryInterval: 5 * time.Second, Retention: time.Hour})
	assert.Equal(t, 5*time.Second, s.deliveryInterval)
	assert.Equal(t, time.Hour, s.retention)
}

func TestScheduler_StartStop(t *testing.T) {
	users := &mocks.UserStoreMock{GetAllFunc: func(ctx context.Context) ([]domain.UserChannelConfig, error) {
		return nil, nil
	}}
	collector := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context) (feed.CollectStats, error) { return feed.CollectStats{Feeds: 1}, nil },
		CleanupFunc: func(ctx context.Context, retention time.Duration) (int64, error) {
			return 0, errors.New("locked")
		},
	}
	decayer := &mocks.DecayerMock{ApplyDecayFunc: func(ctx context.Context) (int, error) { return 2, nil }}

	s := NewScheduler(Params{
		Orchestrator:     NewOrchestrator(OrchestratorConfig{Users: users}),
		Collector:        collector,
		Decayer:          decayer,
		DeliveryInterval: 20 * time.Millisecond,
		CollectInterval:  time.Hour,
		CleanupInterval:  30 * time.Millisecond,
		DecayInterval:    30 * time.Millisecond,
		Retention:        time.Hour,
	})
	s.Start(context.Background())
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	assert.Len(t, collector.CollectCalls(), 1, "collect runs once on start")
	assert.GreaterOrEqual(t, len(users.GetAllCalls()), 3, "delivery runs on start and on ticks")
	assert.GreaterOrEqual(t, len(collector.CleanupCalls()), 2, "failed cleanup doesn't stop the worker")
	assert.Equal(t, time.Hour, collector.CleanupCalls()[0].Retention)
	assert.GreaterOrEqual(t, len(decayer.ApplyDecayCalls()), 2)

	// no more runs after stop
	calls := len(users.GetAllCalls())
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, users.GetAllCalls(), calls)
}

func TestScheduler_OptionalWorkers(t *testing.T) {
	s := NewScheduler(Params{DeliveryInterval: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()
	s.Stop()
}
