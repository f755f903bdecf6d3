package generation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/promoflow/backend/internal/application/content"
	"github.com/promoflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrGenerationFailed wraps the last underlying error once every retry
// attempt has been exhausted.
var ErrGenerationFailed = errors.New("generation: all attempts failed")

// Limiter wraps a TextGenerator with a sliding-window rate limit and retry.
// Admission is by timestamp: a call goes through only while fewer than the
// cap were admitted inside the trailing window, otherwise it blocks until
// the oldest admission ages out. A burst of cap+k calls therefore puts the
// overflow a full window behind the burst, not on a steady refill drip.
// Each admitted call gets up to maxAttempts tries with exponential backoff
// plus jitter.
type Limiter struct {
	inner       content.TextGenerator
	maxAttempts int
	logger      *zap.Logger

	mu       sync.Mutex
	admitted []time.Time
	capacity int
	window   time.Duration

	// now and sleep are swapped out in tests to drive the window without waiting
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter wraps the generator according to the generation configuration
func NewLimiter(inner content.TextGenerator, cfg *config.GenerationConfig, logger *zap.Logger) *Limiter {
	return &Limiter{
		inner:       inner,
		capacity:    cfg.CallsPerWindow,
		window:      cfg.Window,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
		now:         time.Now,
		sleep:       sleepContext,
	}
}

// admit blocks until the call fits inside the trailing window, honoring ctx.
func (l *Limiter) admit(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.now()
		cutoff := now.Add(-l.window)
		i := 0
		for i < len(l.admitted) && !l.admitted[i].After(cutoff) {
			i++
		}
		l.admitted = append(l.admitted[:0], l.admitted[i:]...)

		if len(l.admitted) < l.capacity {
			l.admitted = append(l.admitted, now)
			l.mu.Unlock()
			return nil
		}
		wait := l.admitted[0].Add(l.window).Sub(now)
		l.mu.Unlock()

		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Generate blocks until the window admits the call, then retries the
// underlying generator until it succeeds or attempts run out.
func (l *Limiter) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		if err := l.admit(ctx); err != nil {
			return "", fmt.Errorf("generation: rate limiter: %w", err)
		}

		text, err := l.inner.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		l.logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", l.maxAttempts),
			zap.Error(err))

		if attempt == l.maxAttempts {
			break
		}
		backoff := time.Duration(math.Pow(2, float64(attempt)))*time.Second +
			time.Duration(rand.Float64()*float64(time.Second))
		if err := l.sleep(ctx, backoff); err != nil {
			return "", fmt.Errorf("generation: backoff interrupted: %w", err)
		}
	}
	return "", fmt.Errorf("%w: %w", ErrGenerationFailed, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ content.TextGenerator = (*Limiter)(nil)
