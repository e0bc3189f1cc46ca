package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// page is the paginated items wrapper the API nests under each pluralized key.
type page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}

// searchEnvelope is the /search response keyed by pluralized type.
type searchEnvelope struct {
	Artists *page[Artist] `json:"artists"`
	Albums  *page[Album]  `json:"albums"`
	Tracks  *page[Track]  `json:"tracks"`
	Shows   *page[Show]   `json:"shows"`
}

// search issues one GET /search call for a single kind and returns the raw envelope.
func (c *Client) search(ctx context.Context, query string, kind Kind) (*searchEnvelope, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", string(kind))
	params.Set("limit", strconv.Itoa(PageSize))
	if c.market != "" {
		params.Set("market", c.market)
	}

	var envelope searchEnvelope
	if err := c.get(ctx, "/search", params, &envelope); err != nil {
		c.logger.Warn("catalog search failed", "type", kind, "error", err)
		return nil, err
	}

	return &envelope, nil
}

// SearchArtists searches the catalog for artists matching the free-text query.
// An empty query short-circuits to an empty result without a network call.
// Items are returned verbatim in the order received, at most [PageSize].
func (c *Client) SearchArtists(ctx context.Context, query string) ([]Artist, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	envelope, err := c.search(ctx, query, KindArtist)
	if err != nil {
		return nil, err
	}
	if envelope.Artists == nil {
		return nil, nil
	}
	return envelope.Artists.Items, nil
}

// SearchAlbums searches the catalog for albums matching the free-text query.
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]Album, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	envelope, err := c.search(ctx, query, KindAlbum)
	if err != nil {
		return nil, err
	}
	if envelope.Albums == nil {
		return nil, nil
	}
	return envelope.Albums.Items, nil
}

// SearchTracks searches the catalog for tracks matching the free-text query.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	envelope, err := c.search(ctx, query, KindTrack)
	if err != nil {
		return nil, err
	}
	if envelope.Tracks == nil {
		return nil, nil
	}
	return envelope.Tracks.Items, nil
}

// SearchShows searches the catalog for podcasts/shows matching the free-text query.
func (c *Client) SearchShows(ctx context.Context, query string) ([]Show, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	envelope, err := c.search(ctx, query, KindShow)
	if err != nil {
		return nil, err
	}
	if envelope.Shows == nil {
		return nil, nil
	}
	return envelope.Shows.Items, nil
}
