// package auth implements credential acquisition for the catalog API.
//
// Two kinds of bearer credentials exist: an app token from the
// client-credentials exchange (public catalog reads) and a user token from the
// interactive authorization-code flow (library mutations).
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"spotsearch/internal/shared"
)

const (
	AuthURL  = "https://accounts.spotify.com/authorize"
	TokenURL = "https://accounts.spotify.com/api/token"
)

// DefaultScopes cover library reads and mutations for the user token.
const DefaultScopes = "user-library-read user-library-modify user-follow-read user-follow-modify"

// TokenProvider yields a bearer token usable to authorize a catalog call.
// Implementations must never return an empty token with a nil error.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// ClientCredentials exchanges fixed application credentials for a short-lived
// app token. Each call performs a fresh exchange; wrap with [Cached] to avoid
// one identity round-trip per catalog call.
type ClientCredentials struct {
	config *clientcredentials.Config
}

// NewClientCredentials creates a provider from a credentials map containing
// client_id and client_secret. A token_url entry overrides the identity
// endpoint, used by tests.
func NewClientCredentials(credentials map[string]string) (*ClientCredentials, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = TokenURL
	}

	return &ClientCredentials{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
	}, nil
}

// Token performs the client-credentials exchange and returns the app token.
func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	tok, err := c.config.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: response lacks access token", shared.ErrAuthFailed)
	}
	return tok.AccessToken, nil
}

// OAuthConfig builds the authorization-code flow config for interactive user
// login from a credentials map (client_id, client_secret, redirect_uri,
// scopes; auth_url/token_url override the endpoints for tests).
func OAuthConfig(credentials map[string]string) (*oauth2.Config, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := credentials["redirect_uri"]
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	scopes := credentials["scopes"]
	if scopes == "" {
		scopes = DefaultScopes
	}

	authURL := credentials["auth_url"]
	if authURL == "" {
		authURL = AuthURL
	}
	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = TokenURL
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       strings.Fields(scopes),
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}, nil
}
