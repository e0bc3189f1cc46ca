package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"spotsearch/internal/auth"
	"spotsearch/internal/catalog"
	"spotsearch/internal/player"
	"spotsearch/internal/search"
	"spotsearch/internal/shared"
	"spotsearch/internal/store"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	var tokenStore store.TokenStore
	if s, err := store.Open(config.Database.Path); err == nil {
		tokenStore = s
		defer s.Close()
	} else {
		logger.Warn("token store unavailable", "error", err)
	}

	var client *catalog.Client
	var orchestrator *search.Orchestrator
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		provider, err := auth.NewClientCredentials(config.Credentials.Spotify.Map())
		if err != nil {
			logger.Fatalf("invalid credentials: %v", err)
		}
		cached := auth.NewCached(provider, auth.DefaultTTL)
		client = catalog.NewClient(cached, catalog.ClientOpts{
			Market: config.Catalog.Market,
			Logger: logger,
		})
		orchestrator = search.New(client, logger)
	}

	session := player.NewSession(player.NewProcessLoader(logger), logger)

	runner := NewRunner(RunnerOpts{
		Config:       config,
		ConfigPath:   configPath,
		Store:        tokenStore,
		Client:       client,
		Orchestrator: orchestrator,
		Session:      session,
		Logger:       logger,
	})

	if err := buildApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// buildApp assembles the top-level command tree.
func buildApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "spotsearch",
		Usage:    "Browse the Spotify catalog: search, inspect, preview, and manage your library",
		Version:  "0.3.0",
		Commands: runner.register(),
	}
}
