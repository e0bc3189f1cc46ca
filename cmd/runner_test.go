package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"spotsearch/internal/catalog"
	"spotsearch/internal/search"
	"spotsearch/internal/shared"
	tu "spotsearch/internal/testing"
)

// fakeStore is an in-memory TokenStore.
type fakeStore struct {
	token string
	err   error
}

func (f *fakeStore) Store(token string) error {
	if f.err != nil {
		return f.err
	}
	f.token = token
	return nil
}

func (f *fakeStore) Retrieve() (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	return f.token, f.token != "", nil
}

func (f *fakeStore) Clear() error {
	if f.err != nil {
		return f.err
	}
	f.token = ""
	return nil
}

func newTestRunner(t *testing.T, serverURL string) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	client := catalog.NewClient(&tu.StaticTokenProvider{AccessToken: "app_token"}, catalog.ClientOpts{
		BaseURL: serverURL,
		Logger:  shared.NewLogger(&bytes.Buffer{}),
	})

	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Store:  &fakeStore{},
		Client: client,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})
	return runner, output
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds orchestrator from client", func(t *testing.T) {
			client := catalog.NewClient(&tu.StaticTokenProvider{AccessToken: "t"}, catalog.ClientOpts{})
			runner := NewRunner(RunnerOpts{Client: client})

			if runner.orchestrator == nil {
				t.Error("expected orchestrator to be derived from client")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: tu.NewLimitedWriter(1, &bytes.Buffer{})})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected 'hello world', got %q", output.String())
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("userToken", func(t *testing.T) {
		t.Run("with nil store", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			_, err := runner.userToken()
			if !errors.Is(err, shared.ErrStorage) {
				t.Errorf("expected ErrStorage, got %v", err)
			}
		})

		t.Run("with no stored token", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Store: &fakeStore{}})

			_, err := runner.userToken()
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("with stored token", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Store: &fakeStore{token: "user_token"}})

			token, err := runner.userToken()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "user_token" {
				t.Errorf("expected user_token, got %q", token)
			}
		})
	})
}

func TestRenderSection(t *testing.T) {
	runner, output := newTestRunner(t, "http://unused.test")

	results := search.ResultSet{
		Query: "daft punk",
		Tracks: []catalog.Track{
			{ID: "t1", Name: "One More Time", DurationMS: 320000, Artists: []catalog.Artist{{Name: "Daft Punk"}}},
		},
		Errs: map[catalog.Kind]error{
			catalog.KindShow: errors.New("rate limited"),
		},
	}

	runner.renderSection(catalog.KindTrack, results)
	runner.renderSection(catalog.KindShow, results)
	runner.renderSection(catalog.KindArtist, results)

	out := output.String()
	if !strings.Contains(out, "One More Time") {
		t.Errorf("expected track line, got %q", out)
	}
	if !strings.Contains(out, "Daft Punk • 5:20") {
		t.Errorf("expected artist and duration summary, got %q", out)
	}
	if !strings.Contains(out, "Shows: lookup failed") {
		t.Errorf("expected failed section line, got %q", out)
	}
	if strings.Contains(out, "Artists:") {
		t.Errorf("expected empty section to be omitted, got %q", out)
	}
}

func TestSearchCommand(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("type") {
		case "artist":
			w.Write([]byte(`{"artists": {"items": [{"id": "a1", "name": "Daft Punk"}], "total": 1, "limit": 10}}`))
		case "track":
			w.Write([]byte(`{"tracks": {"items": [{"id": "t1", "name": "One More Time", "duration_ms": 320000}], "total": 1, "limit": 10}}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer ts.Close()

	t.Run("renders populated sections", func(t *testing.T) {
		runner, output := newTestRunner(t, ts.URL)

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "search", "daft punk"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Artists:") || !strings.Contains(out, "Daft Punk") {
			t.Errorf("expected artists section, got %q", out)
		}
		if !strings.Contains(out, "Tracks:") || !strings.Contains(out, "One More Time") {
			t.Errorf("expected tracks section, got %q", out)
		}
	})

	t.Run("kind flag restricts to one section", func(t *testing.T) {
		runner, output := newTestRunner(t, ts.URL)

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "search", "--kind", "track", "daft punk"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if strings.Contains(out, "Artists:") {
			t.Errorf("expected no artists section, got %q", out)
		}
		if !strings.Contains(out, "Tracks:") {
			t.Errorf("expected tracks section, got %q", out)
		}
	})

	t.Run("missing query argument", func(t *testing.T) {
		runner, _ := newTestRunner(t, ts.URL)

		app := buildApp(runner)
		err := app.Run(context.Background(), []string{"spotsearch", "search"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("invalid kind flag", func(t *testing.T) {
		runner, _ := newTestRunner(t, ts.URL)

		app := buildApp(runner)
		err := app.Run(context.Background(), []string{"spotsearch", "search", "--kind", "playlist", "daft punk"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestLibraryCommands(t *testing.T) {
	var lastAuth, lastMethod, lastIDs string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth = r.Header.Get("Authorization")
		lastMethod = r.Method
		lastIDs = r.URL.Query().Get("ids")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	t.Run("save uses stored user token", func(t *testing.T) {
		runner, output := newTestRunner(t, ts.URL)
		runner.store = &fakeStore{token: "user_token"}

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "library", "save", "t1", "t2"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if lastAuth != "Bearer user_token" {
			t.Errorf("expected user token auth, got %q", lastAuth)
		}
		if lastMethod != http.MethodPut {
			t.Errorf("expected PUT, got %s", lastMethod)
		}
		if lastIDs != "t1,t2" {
			t.Errorf("expected ids t1,t2, got %q", lastIDs)
		}
		if !strings.Contains(output.String(), "Saved 2 item(s)") {
			t.Errorf("expected confirmation, got %q", output.String())
		}
	})

	t.Run("unfollow issues DELETE", func(t *testing.T) {
		runner, _ := newTestRunner(t, ts.URL)
		runner.store = &fakeStore{token: "user_token"}

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "library", "unfollow", "a1"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if lastMethod != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", lastMethod)
		}
	})

	t.Run("requires authorization", func(t *testing.T) {
		runner, _ := newTestRunner(t, ts.URL)

		app := buildApp(runner)
		err := app.Run(context.Background(), []string{"spotsearch", "library", "save", "t1"})
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("requires at least one id", func(t *testing.T) {
		runner, _ := newTestRunner(t, ts.URL)
		runner.store = &fakeStore{token: "user_token"}

		app := buildApp(runner)
		err := app.Run(context.Background(), []string{"spotsearch", "library", "save"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestAuthStatusCommand(t *testing.T) {
	t.Run("not authorized", func(t *testing.T) {
		runner, output := newTestRunner(t, "http://unused.test")

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "auth", "status"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Not authorized") {
			t.Errorf("expected not-authorized line, got %q", output.String())
		}
	})

	t.Run("authorized", func(t *testing.T) {
		runner, output := newTestRunner(t, "http://unused.test")
		runner.store = &fakeStore{token: "user_token"}

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "auth", "status"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Authorized") {
			t.Errorf("expected authorized line, got %q", output.String())
		}
	})

	t.Run("logout clears token", func(t *testing.T) {
		store := &fakeStore{token: "user_token"}
		runner, _ := newTestRunner(t, "http://unused.test")
		runner.store = store

		app := buildApp(runner)
		if err := app.Run(context.Background(), []string{"spotsearch", "auth", "logout"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.token != "" {
			t.Errorf("expected token cleared, got %q", store.token)
		}
	})
}
