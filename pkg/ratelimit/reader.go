package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBurst keeps small limits from degenerating into byte-at-a-time
// reads during session file copies.
const minBurst = 64 * 1024

// Limiter is a token bucket shared by all readers of one backend, so a
// bandwidth cap applies to the whole sync run rather than per file.
type Limiter struct {
	mu             sync.Mutex
	bytesPerSecond int64
	burst          int64
	tokens         int64
	lastRefill     time.Time
}

// NewLimiter creates a limiter capped at bytesPerSecond. A cap of zero
// or less returns nil, which disables limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	burst := bytesPerSecond
	if burst < minBurst {
		burst = minBurst
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		burst:          burst,
		tokens:         burst,
		lastRefill:     time.Now(),
	}
}

// take blocks until n tokens are available and consumes them. It
// returns early with the context error when ctx is cancelled.
func (l *Limiter) take(ctx context.Context, n int64) error {
	if n > l.burst {
		n = l.burst
	}

	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= n {
			l.tokens -= n
			l.mu.Unlock()
			return nil
		}
		wait := l.waitFor(n - l.tokens)
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refill credits tokens for the time elapsed since the last refill.
// Callers must hold l.mu.
func (l *Limiter) refill() {
	now := time.Now()
	credit := int64(now.Sub(l.lastRefill).Seconds() * float64(l.bytesPerSecond))
	if credit <= 0 {
		return
	}

	l.tokens += credit
	if l.tokens > l.burst {
		l.tokens = l.burst
	}
	l.lastRefill = now
}

// waitFor returns how long the bucket needs to accumulate deficit
// tokens. Callers must hold l.mu.
func (l *Limiter) waitFor(deficit int64) time.Duration {
	wait := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	return wait
}

// reader throttles an io.Reader against a shared Limiter
type reader struct {
	src     io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps src so that reads draw tokens from limiter. A nil
// limiter returns src unchanged.
func NewReader(ctx context.Context, src io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return src
	}
	return &reader{src: src, limiter: limiter, ctx: ctx}
}

// Read acquires tokens for the requested chunk before reading. Reads
// never exceed the burst size, so large buffers are throttled in
// slices rather than stalling for a full bucket.
func (r *reader) Read(p []byte) (int, error) {
	chunk := int64(len(p))
	if chunk > r.limiter.burst {
		chunk = r.limiter.burst
	}

	if err := r.limiter.take(r.ctx, chunk); err != nil {
		return 0, err
	}

	n, err := r.src.Read(p[:chunk])
	if excess := chunk - int64(n); excess > 0 {
		// Short read; return the unused tokens.
		r.limiter.mu.Lock()
		r.limiter.tokens += excess
		if r.limiter.tokens > r.limiter.burst {
			r.limiter.tokens = r.limiter.burst
		}
		r.limiter.mu.Unlock()
	}

	return n, err
}
