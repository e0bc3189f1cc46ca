package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// countingProvider implements [TokenProvider] and records exchange counts.
type countingProvider struct {
	mu    sync.Mutex
	calls int
	token string
	err   error
}

func (p *countingProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.token, p.err
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestCached(t *testing.T) {
	t.Run("Memoizes Within TTL", func(t *testing.T) {
		underlying := &countingProvider{token: "tok_1"}
		cached := NewCached(underlying, time.Hour)

		for range 3 {
			token, err := cached.Token(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "tok_1" {
				t.Errorf("expected 'tok_1', got %s", token)
			}
		}

		if underlying.count() != 1 {
			t.Errorf("expected 1 exchange, got %d", underlying.count())
		}
	})

	t.Run("Refreshes After TTL", func(t *testing.T) {
		underlying := &countingProvider{token: "tok_1"}
		cached := NewCached(underlying, time.Hour)

		current := time.Unix(1000, 0)
		cached.now = func() time.Time { return current }

		if _, err := cached.Token(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		current = current.Add(2 * time.Hour)
		underlying.token = "tok_2"

		token, err := cached.Token(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "tok_2" {
			t.Errorf("expected refreshed token 'tok_2', got %s", token)
		}
		if underlying.count() != 2 {
			t.Errorf("expected 2 exchanges, got %d", underlying.count())
		}
	})

	t.Run("Propagates Exchange Failures Without Caching", func(t *testing.T) {
		boom := errors.New("exchange failed")
		underlying := &countingProvider{err: boom}
		cached := NewCached(underlying, time.Hour)

		if _, err := cached.Token(context.Background()); !errors.Is(err, boom) {
			t.Errorf("expected exchange error, got %v", err)
		}

		underlying.err = nil
		underlying.token = "tok_ok"

		token, err := cached.Token(context.Background())
		if err != nil {
			t.Fatalf("expected recovery, got %v", err)
		}
		if token != "tok_ok" {
			t.Errorf("expected 'tok_ok', got %s", token)
		}
	})

	t.Run("Invalidate Forces Fresh Exchange", func(t *testing.T) {
		underlying := &countingProvider{token: "tok_1"}
		cached := NewCached(underlying, time.Hour)

		cached.Token(context.Background())
		cached.Invalidate()
		cached.Token(context.Background())

		if underlying.count() != 2 {
			t.Errorf("expected 2 exchanges after invalidate, got %d", underlying.count())
		}
	})

	t.Run("Default TTL", func(t *testing.T) {
		cached := NewCached(&countingProvider{token: "t"}, 0)
		if cached.ttl != DefaultTTL {
			t.Errorf("expected DefaultTTL, got %v", cached.ttl)
		}
	})
}
