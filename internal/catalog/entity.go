package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetArtist retrieves a single artist by ID.
func (c *Client) GetArtist(ctx context.Context, id string) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, fmt.Sprintf("/artists/%s", id), nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetAlbum retrieves a single album by ID.
func (c *Client) GetAlbum(ctx context.Context, id string) (*Album, error) {
	var album Album
	if err := c.get(ctx, fmt.Sprintf("/albums/%s", id), nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// GetShow retrieves a single podcast/show by ID.
func (c *Client) GetShow(ctx context.Context, id string) (*Show, error) {
	var show Show
	params := url.Values{}
	if c.market != "" {
		params.Set("market", c.market)
	}
	if err := c.get(ctx, fmt.Sprintf("/shows/%s", id), params, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// GetTrack retrieves a single track by ID, including its preview URL.
func (c *Client) GetTrack(ctx context.Context, id string) (*Track, error) {
	var track Track
	params := url.Values{}
	if c.market != "" {
		params.Set("market", c.market)
	}
	if err := c.get(ctx, fmt.Sprintf("/tracks/%s", id), params, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// GetAlbumTracks retrieves an album's track listing.
func (c *Client) GetAlbumTracks(ctx context.Context, id string) ([]Track, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(50))

	var tracks page[Track]
	if err := c.get(ctx, fmt.Sprintf("/albums/%s/tracks", id), params, &tracks); err != nil {
		return nil, err
	}
	return tracks.Items, nil
}
