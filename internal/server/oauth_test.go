package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"spotsearch/internal/shared"
)

func newTestConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
		RedirectURL:  "http://localhost:8080/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  tokenURL + "/authorize",
			TokenURL: tokenURL + "/token",
		},
	}
}

func callbackRequest(state, code string) *http.Request {
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	if code != "" {
		q.Set("code", code)
	}
	return httptest.NewRequest(http.MethodGet, "/callback?"+q.Encode(), nil)
}

func awaitResult(t *testing.T, h *CallbackHandler) AuthResult {
	t.Helper()
	select {
	case result := <-h.Result():
		return result
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
		return AuthResult{}
	}
}

func TestCallbackHandler(t *testing.T) {
	t.Run("Routes From Redirect URI", func(t *testing.T) {
		config := newTestConfig("http://example.test")
		config.RedirectURL = "http://localhost:9090/spotify/done"
		handler := NewCallbackHandler(config, "state123")

		routes := handler.Routes()
		if len(routes) != 1 || routes[0] != "/spotify/done" {
			t.Errorf("expected [/spotify/done], got %v", routes)
		}
	})

	t.Run("Rejects State Mismatch", func(t *testing.T) {
		handler := NewCallbackHandler(newTestConfig("http://example.test"), "expected")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, callbackRequest("forged", "code123"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := awaitResult(t, handler)
		if !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Rejects Missing Code", func(t *testing.T) {
		handler := NewCallbackHandler(newTestConfig("http://example.test"), "state123")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&error=access_denied&error_description=user+denied", nil)
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := awaitResult(t, handler)
		if !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Exchanges Code For Token", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse token request: %v", err)
			}
			if got := r.FormValue("code"); got != "code123" {
				t.Errorf("expected code123, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "user_token_abc", "token_type": "Bearer", "expires_in": 3600}`))
		}))
		defer ts.Close()

		handler := NewCallbackHandler(newTestConfig(ts.URL), "state123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, callbackRequest("state123", "code123"))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		result := awaitResult(t, handler)
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Token == nil || result.Token.AccessToken != "user_token_abc" {
			t.Errorf("expected user_token_abc, got %+v", result.Token)
		}
	})

	t.Run("Processes Only First Callback", func(t *testing.T) {
		handler := NewCallbackHandler(newTestConfig("http://example.test"), "state123")

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, callbackRequest("forged", ""))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, callbackRequest("state123", "code123"))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected replay to get 400, got %d", second.Code)
		}
	})
}
