package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/service"
	"rentdesk/mocks"
)

func schedulerConfig() config.BillingConfig {
	return config.BillingConfig{
		TickInterval: 10 * time.Millisecond,
		RunHourUTC:   9,
	}
}

func emptyReport(month domain.Month) *domain.GenerationReport {
	return &domain.GenerationReport{Month: month, ErrorDetails: []domain.GenerationFailure{}}
}

// runScheduler starts the loop and returns a stop func that blocks until it
// has shut down.
func runScheduler(s *service.BillingScheduler) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Start(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func waitForSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scheduler to fire")
	}
}

func TestBillingScheduler_FiresOnceAfterRunHour(t *testing.T) {
	gen := new(mocks.MockGenerationService)
	clk := mocks.NewFixedClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	sched := service.NewBillingScheduler(gen, clk, schedulerConfig())

	june := domain.Month{Year: 2025, Month: time.June}
	fired := make(chan struct{}, 1)
	gen.On("Generate", mock.Anything, june, (*uuid.UUID)(nil)).
		Run(func(mock.Arguments) {
			select {
			case fired <- struct{}{}:
			default:
			}
		}).
		Return(emptyReport(june), nil)

	stop := runScheduler(sched)
	waitForSignal(t, fired)

	// Let several more ticks elapse; the month is handled, so no re-fire.
	time.Sleep(100 * time.Millisecond)
	stop()

	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestBillingScheduler_WaitsForRunHour(t *testing.T) {
	gen := new(mocks.MockGenerationService)
	clk := mocks.NewFixedClock(time.Date(2025, 6, 1, 8, 59, 0, 0, time.UTC))
	sched := service.NewBillingScheduler(gen, clk, schedulerConfig())

	stop := runScheduler(sched)
	time.Sleep(100 * time.Millisecond)
	stop()

	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingScheduler_FiresForNewMonth(t *testing.T) {
	gen := new(mocks.MockGenerationService)
	clk := mocks.NewFixedClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	sched := service.NewBillingScheduler(gen, clk, schedulerConfig())

	june := domain.Month{Year: 2025, Month: time.June}
	july := domain.Month{Year: 2025, Month: time.July}

	juneFired := make(chan struct{}, 1)
	julyFired := make(chan struct{}, 1)
	gen.On("Generate", mock.Anything, june, (*uuid.UUID)(nil)).
		Run(func(mock.Arguments) {
			select {
			case juneFired <- struct{}{}:
			default:
			}
		}).
		Return(emptyReport(june), nil)
	gen.On("Generate", mock.Anything, july, (*uuid.UUID)(nil)).
		Run(func(mock.Arguments) {
			select {
			case julyFired <- struct{}{}:
			default:
			}
		}).
		Return(emptyReport(july), nil)

	stop := runScheduler(sched)
	waitForSignal(t, juneFired)

	// Month rolls over past the run hour; the level-triggered check catches
	// up on its next tick.
	clk.Set(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC))
	waitForSignal(t, julyFired)
	stop()

	gen.AssertNumberOfCalls(t, "Generate", 2)
}

func TestBillingScheduler_RetriesAfterInProgress(t *testing.T) {
	gen := new(mocks.MockGenerationService)
	clk := mocks.NewFixedClock(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	sched := service.NewBillingScheduler(gen, clk, schedulerConfig())

	june := domain.Month{Year: 2025, Month: time.June}
	succeeded := make(chan struct{}, 1)

	// A manual run holds the flag on the first attempt; the month stays
	// unhandled and a later tick completes it.
	gen.On("Generate", mock.Anything, june, (*uuid.UUID)(nil)).
		Return(nil, domain.ErrGenerationInProgress).Once()
	gen.On("Generate", mock.Anything, june, (*uuid.UUID)(nil)).
		Run(func(mock.Arguments) {
			select {
			case succeeded <- struct{}{}:
			default:
			}
		}).
		Return(emptyReport(june), nil)

	stop := runScheduler(sched)
	waitForSignal(t, succeeded)
	stop()

	assert.GreaterOrEqual(t, len(gen.Calls), 2)
}

func TestBillingScheduler_Status(t *testing.T) {
	gen := new(mocks.MockGenerationService)
	clk := mocks.NewFixedClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	sched := service.NewBillingScheduler(gen, clk, schedulerConfig())

	gen.On("Status").Return(domain.RunStatus{IsRunning: false})

	status := sched.Status()

	assert.False(t, status.IsRunning)
	assert.Equal(t, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC), status.NextRun)
	assert.Nil(t, status.LastRun, "no run recorded yet")
}
