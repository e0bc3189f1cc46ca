package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"spotsearch/internal/auth"
	"spotsearch/internal/shared"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// PageSize bounds every search result slice.
const PageSize = 10

// requestTimeout applies per HTTP call; expiry surfaces as a request failure.
const requestTimeout = 10 * time.Second

// RequestError is returned for non-2xx catalog responses.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("catalog request failed: status %d: %s", e.Status, e.Body)
}

// Unwrap lets callers match the error with errors.Is(err, shared.ErrAPIRequest).
func (e *RequestError) Unwrap() error {
	return shared.ErrAPIRequest
}

// Client issues authorized requests against the catalog REST API.
//
// Public reads attach an app token from the injected [auth.TokenProvider];
// library mutations attach the caller-supplied user token instead. The client
// holds no mutable entity state, only transport plumbing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	provider   auth.TokenProvider
	limiter    *rate.Limiter
	market     string
	logger     *log.Logger
}

// ClientOpts contains configuration options for creating a [Client].
type ClientOpts struct {
	BaseURL    string       // defaults to the public catalog host
	HTTPClient *http.Client // defaults to a client with a 10s timeout
	Market     string       // optional market query parameter for searches
	Logger     *log.Logger
	Limiter    *rate.Limiter // defaults to 10 req/s with burst 10
}

// NewClient creates a catalog client with the given app token provider.
func NewClient(provider auth.TokenProvider, opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Limit(10), 10)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		provider:   provider,
		limiter:    opts.Limiter,
		market:     opts.Market,
		logger:     opts.Logger,
	}
}

// get performs an app-token-authorized GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if c.provider == nil {
		return fmt.Errorf("%w: no token provider configured", shared.ErrNotAuthenticated)
	}

	token, err := c.provider.Token(ctx)
	if err != nil {
		return err
	}

	body, err := c.send(ctx, http.MethodGet, path, query, token)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// send performs one HTTP request with the supplied bearer token and returns
// the raw response body. Non-2xx responses become a [*RequestError].
func (c *Client) send(ctx context.Context, method, path string, query url.Values, token string) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty bearer token", shared.ErrNotAuthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request cancelled: %w", err)
	}

	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
