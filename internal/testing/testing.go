// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
)

// StaticTokenProvider implements [auth.TokenProvider] with a fixed token.
type StaticTokenProvider struct {
	AccessToken string
	Err         error
}

func (p *StaticTokenProvider) Token(ctx context.Context) (string, error) {
	return p.AccessToken, p.Err
}

// CountingTransport wraps an [http.RoundTripper] and counts requests, used to
// assert that short-circuit paths perform zero network calls.
type CountingTransport struct {
	mu    sync.Mutex
	Inner http.RoundTripper
	calls int
}

func (c *CountingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	inner := c.Inner
	if inner == nil {
		inner = http.DefaultTransport
	}
	return inner.RoundTrip(req)
}

// Calls returns the number of requests observed.
func (c *CountingTransport) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// MockRoundTripper allows custom HTTP responses for testing.
type MockRoundTripper struct {
	Response *http.Response
	Err      error
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.Response, m.Err
}

// FWriter always returns an error on Write.
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes.
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
