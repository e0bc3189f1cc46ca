package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"spotsearch/internal/catalog"
	"spotsearch/internal/shared"
)

func entityID(cmd *cli.Command) (string, error) {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return "", fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	return id, nil
}

// InfoArtist prints full artist detail.
func (r *Runner) InfoArtist(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	id, err := entityID(cmd)
	if err != nil {
		return err
	}

	artist, err := r.client.GetArtist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", artist.Name)
	r.writePlain("Followers: %d\n", artist.Followers.Total)
	r.writePlain("Popularity: %d\n", artist.Popularity)
	if len(artist.Genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(artist.Genres, ", "))
	}
	return nil
}

// InfoAlbum prints full album detail including its track listing.
func (r *Runner) InfoAlbum(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	id, err := entityID(cmd)
	if err != nil {
		return err
	}

	album, err := r.client.GetAlbum(ctx, id)
	if err != nil {
		return err
	}

	tracks, err := r.client.GetAlbumTracks(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Album  *catalog.Album  `json:"album"`
			Tracks []catalog.Track `json:"tracks"`
		}{album, tracks}, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", album.Name)
	r.writePlain("By: %s\n", catalog.ArtistNames(album.Artists))
	r.writePlain("Released: %s\n", album.ReleaseDate)
	r.writePlain("Tracks: %d\n\n", album.TotalTracks)
	for i, track := range tracks {
		r.writePlain("%2d. %s (%s)\n", i+1, track.Name, shared.FormatDuration(track.DurationMS))
	}
	return nil
}

// InfoTrack prints full track detail.
func (r *Runner) InfoTrack(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	id, err := entityID(cmd)
	if err != nil {
		return err
	}

	track, err := r.client.GetTrack(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", track.Name)
	r.writePlain("By: %s\n", catalog.ArtistNames(track.Artists))
	r.writePlain("Album: %s\n", track.Album.Name)
	r.writePlain("Duration: %s\n", shared.FormatDuration(track.DurationMS))
	if track.PreviewURL == "" {
		r.writePlain("Preview: none\n")
	} else {
		r.writePlain("Preview: available (spotsearch play %s)\n", track.ID)
	}
	return nil
}

// InfoShow prints full show detail.
func (r *Runner) InfoShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	id, err := entityID(cmd)
	if err != nil {
		return err
	}

	show, err := r.client.GetShow(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(show, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", show.Name)
	r.writePlain("Publisher: %s\n", show.Publisher)
	r.writePlain("Episodes: %d\n", show.TotalEpisodes)
	if show.Description != "" {
		r.writePlain("\n%s\n", show.Description)
	}
	return nil
}
