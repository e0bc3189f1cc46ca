package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"spotsearch/internal/shared"
)

// Library mutations authorize with the user's token from the credential
// store, not the app token. Failures propagate as typed errors so the UI can
// show a visible failure indicator instead of silently reverting.

func (c *Client) mutate(ctx context.Context, method, path string, params url.Values, userToken string, ids []string) error {
	if userToken == "" {
		return fmt.Errorf("%w: user token required for library mutations", shared.ErrNotAuthenticated)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one id", shared.ErrMissingArgument)
	}

	params.Set("ids", strings.Join(ids, ","))

	if _, err := c.send(ctx, method, path, params, userToken); err != nil {
		c.logger.Warn("library mutation failed", "method", method, "path", path, "error", err)
		return err
	}
	return nil
}

// SaveTracks adds the tracks to the user's library.
func (c *Client) SaveTracks(ctx context.Context, userToken string, ids ...string) error {
	return c.mutate(ctx, http.MethodPut, "/me/tracks", url.Values{}, userToken, ids)
}

// RemoveTracks removes the tracks from the user's library.
func (c *Client) RemoveTracks(ctx context.Context, userToken string, ids ...string) error {
	return c.mutate(ctx, http.MethodDelete, "/me/tracks", url.Values{}, userToken, ids)
}

// FollowArtists follows the artists for the user.
func (c *Client) FollowArtists(ctx context.Context, userToken string, ids ...string) error {
	params := url.Values{}
	params.Set("type", "artist")
	return c.mutate(ctx, http.MethodPut, "/me/following", params, userToken, ids)
}

// UnfollowArtists unfollows the artists for the user.
func (c *Client) UnfollowArtists(ctx context.Context, userToken string, ids ...string) error {
	params := url.Values{}
	params.Set("type", "artist")
	return c.mutate(ctx, http.MethodDelete, "/me/following", params, userToken, ids)
}
