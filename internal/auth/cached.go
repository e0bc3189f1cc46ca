package auth

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is slightly under the identity service's advertised 3600s expiry
// so a cached token is never handed out moments before it dies.
const DefaultTTL = 55 * time.Minute

// Cached memoizes tokens from an underlying [TokenProvider] until a fixed TTL
// elapses. Safe for concurrent use; concurrent callers during a refresh share
// a single exchange.
type Cached struct {
	provider TokenProvider
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewCached wraps provider with TTL-based memoization. A non-positive ttl
// falls back to [DefaultTTL].
func NewCached(provider TokenProvider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Token returns the cached token, refreshing it through the underlying
// provider once the TTL has elapsed.
func (c *Cached) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	token, err := c.provider.Token(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiresAt = c.now().Add(c.ttl)
	return token, nil
}

// Invalidate drops the cached token so the next call performs a fresh exchange.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiresAt = time.Time{}
}

var _ TokenProvider = (*Cached)(nil)
