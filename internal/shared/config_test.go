package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		contents := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"
redirect_uri = "http://localhost:9999/callback"
scopes = "user-library-read"

[catalog]
market = "CR"

[database]
path = "tokens.db"

[server]
host = "127.0.0.1"
port = 9999
`
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "abc" {
			t.Errorf("expected client_id 'abc', got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Catalog.Market != "CR" {
			t.Errorf("expected market 'CR', got %s", config.Catalog.Market)
		}
		if config.Server.Addr() != "127.0.0.1:9999" {
			t.Errorf("expected addr '127.0.0.1:9999', got %s", config.Server.Addr())
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte("[credentials\nbroken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("Environment Override", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		contents := `
[credentials.spotify]
client_id = "file_id"

[catalog]
market = "US"
`
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		t.Setenv("SPOTIFY_CLIENT_ID", "env_id")
		t.Setenv("SPOTIFY_MARKET", "MX")

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env override 'env_id', got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Catalog.Market != "MX" {
			t.Errorf("expected env override 'MX', got %s", config.Catalog.Market)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Credentials.Spotify.RedirectURI == "" {
		t.Error("expected embedded default redirect URI")
	}
	if config.Server.Port == 0 {
		t.Error("expected embedded default server port")
	}
	if config.Database.Path == "" {
		t.Error("expected embedded default database path")
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Creates File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config file to exist: %v", err)
		}
	})

	t.Run("Refuses Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})
}

func TestSpotifyConfigMap(t *testing.T) {
	cfg := SpotifyConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "uri", Scopes: "a b"}
	m := cfg.Map()

	for key, want := range map[string]string{
		"client_id":     "id",
		"client_secret": "secret",
		"redirect_uri":  "uri",
		"scopes":        "a b",
	} {
		if m[key] != want {
			t.Errorf("expected %s=%s, got %s", key, want, m[key])
		}
	}
}
