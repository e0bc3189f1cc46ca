package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"spotsearch/internal/auth"
	"spotsearch/internal/server"
	"spotsearch/internal/shared"
)

// AuthLogin runs the interactive authorization code flow and stores the
// resulting user token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: token store not initialized", shared.ErrStorage)
	}

	oauthConfig, err := auth.OAuthConfig(r.config.Credentials.Spotify.Map())
	if err != nil {
		return err
	}

	token, err := r.doOAuth(oauthConfig)
	if err != nil {
		return err
	}

	if err := r.store.Store(token.AccessToken); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	r.logger.Info("authorization successful")
	return r.writePlain("✓ Authorization successful\n")
}

// AuthStatus reports whether a user token is currently stored.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: token store not initialized", shared.ErrStorage)
	}

	_, found, err := r.store.Retrieve()
	if err != nil {
		return err
	}

	if found {
		return r.writePlain("Authentication: ✓ Authorized\n")
	}
	return r.writePlain("Authentication: ✗ Not authorized (run `spotsearch auth login`)\n")
}

// AuthLogout removes the stored user token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: token store not initialized", shared.ErrStorage)
	}

	if err := r.store.Clear(); err != nil {
		return err
	}

	r.logger.Info("stored token cleared")
	return r.writePlain("✓ Logged out\n")
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server.
func (r *Runner) doOAuth(oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthConfig.AuthCodeURL(state)
	callbackHandler := server.NewCallbackHandler(oauthConfig, state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(callbackHandler)

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting OAuth callback server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser automatically", "error", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.AuthResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
