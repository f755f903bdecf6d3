package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/promoflow/backend/internal/infrastructure/config"
	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Dispatcher runs due-post batches for every user that has work pending.
// Satisfied by the campaign DispatchService.
type Dispatcher interface {
	RunAllDue(ctx context.Context) error
}

// DispatchTrigger fires the dispatcher on a cron schedule. Each run gets its
// own timeout so a stuck batch cannot pile up behind the next tick; cron
// skips a tick while the previous job is still running.
type DispatchTrigger struct {
	cron       *cron.Cron
	dispatcher Dispatcher
	schedule   string
	jobTimeout time.Duration
	logger     *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewDispatchTrigger creates a trigger from the scheduler configuration
func NewDispatchTrigger(cfg *config.SchedulerConfig, dispatcher Dispatcher, logger *zap.Logger) *DispatchTrigger {
	return &DispatchTrigger{
		cron:       cron.New(),
		dispatcher: dispatcher,
		schedule:   cfg.CronSchedule,
		jobTimeout: cfg.JobTimeout,
		logger:     logger,
	}
}

// Start registers the dispatch job and starts the cron loop
func (t *DispatchTrigger) Start() error {
	if _, err := t.cron.AddFunc(t.schedule, t.runJob); err != nil {
		return fmt.Errorf("scheduling dispatch job: %w", err)
	}
	t.cron.Start()
	t.logger.Info("dispatch trigger started", zap.String("schedule", t.schedule))
	return nil
}

// Stop cancels any in-flight job and waits for the cron loop to drain
func (t *DispatchTrigger) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()

	<-t.cron.Stop().Done()
	t.logger.Info("dispatch trigger stopped")
}

func (t *DispatchTrigger) runJob() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.logger.Warn("previous dispatch run still in progress, skipping tick")
		return
	}
	t.running = true
	ctx, cancel := context.WithTimeout(context.Background(), t.jobTimeout)
	t.cancel = cancel
	t.mu.Unlock()

	defer func() {
		cancel()
		t.mu.Lock()
		t.running = false
		t.cancel = nil
		t.mu.Unlock()
	}()

	start := time.Now()
	if err := t.dispatcher.RunAllDue(ctx); err != nil {
		t.logger.Error("dispatch run failed", zap.Error(err))
		return
	}
	t.logger.Info("dispatch run completed", zap.Duration("took", time.Since(start)))
}
