package segmind

import (
	"context"
	"math/rand"
	"time"
)

const (
	DefaultMaxRetries   = 5
	DefaultInitialDelay = time.Second
)

// RetryPolicy wraps one logical dispatch+classify call and retries it on rate
// limiting and transport failures with exponential backoff. Any other error,
// or exhaustion of the retry budget, propagates the last error unchanged.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration

	// sleep and jitter are swapped out by tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
}

func NewRetryPolicy(maxRetries int, initialDelay time.Duration) *RetryPolicy {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}
	return &RetryPolicy{
		MaxRetries:   maxRetries,
		InitialDelay: initialDelay,
		sleep:        sleepCtx,
		jitter:       rand.Float64,
	}
}

// Do attempts op until it succeeds, fails terminally, or the budget runs out.
// The delay before retry n is InitialDelay * 2^n plus a random jitter in
// [0, 0.1*delay].
func (p *RetryPolicy) Do(ctx context.Context, op func() (*Result, error)) (*Result, error) {
	for attempt := 0; ; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		if !retryableError(err) || attempt >= p.MaxRetries {
			return nil, err
		}
		delay := p.InitialDelay << attempt
		delay += time.Duration(p.jitter() * 0.1 * float64(delay))
		if serr := p.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
