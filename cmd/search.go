package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"spotsearch/internal/catalog"
	"spotsearch/internal/search"
	"spotsearch/internal/shared"
)

// Search runs one search cycle and prints the four result sections. The
// --kind flag restricts the query to one kind and skips the orchestrator.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	if kindFlag := cmd.String("kind"); kindFlag != "" {
		return r.searchOne(ctx, cmd, query, catalog.Kind(kindFlag))
	}

	results, err := r.orchestrator.Run(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	for _, kind := range catalog.Kinds {
		r.renderSection(kind, results)
	}

	if results.Empty() {
		r.writePlain("No results for %q\n", query)
	}

	return nil
}

// searchOne runs a single-kind search outside the orchestrator.
func (r *Runner) searchOne(ctx context.Context, cmd *cli.Command, query string, kind catalog.Kind) error {
	var results search.ResultSet
	results.Query = query

	var err error
	switch kind {
	case catalog.KindArtist:
		results.Artists, err = r.client.SearchArtists(ctx, query)
	case catalog.KindAlbum:
		results.Albums, err = r.client.SearchAlbums(ctx, query)
	case catalog.KindTrack:
		results.Tracks, err = r.client.SearchTracks(ctx, query)
	case catalog.KindShow:
		results.Shows, err = r.client.SearchShows(ctx, query)
	default:
		return fmt.Errorf("%w: kind must be one of artist, album, track, show", shared.ErrInvalidArgument)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results.Items(kind), cmd.Bool("pretty"))
	}

	r.renderSection(kind, results)
	return nil
}

func (r *Runner) renderSection(kind catalog.Kind, results search.ResultSet) {
	items := results.Items(kind)

	if err := results.Failed(kind); err != nil {
		r.writePlain("%s: lookup failed (%v)\n\n", sectionHeader(kind), err)
		return
	}
	if len(items) == 0 {
		return
	}

	r.writePlain("%s:\n", sectionHeader(kind))
	for i, item := range items {
		r.writePlain("%2d. %s%s\n", i+1, item.Name(), itemSummary(item))
	}
	r.writePlain("\n")
}

func sectionHeader(kind catalog.Kind) string {
	switch kind {
	case catalog.KindArtist:
		return "Artists"
	case catalog.KindAlbum:
		return "Albums"
	case catalog.KindTrack:
		return "Tracks"
	case catalog.KindShow:
		return "Shows"
	}
	return string(kind)
}

func itemSummary(item catalog.Item) string {
	switch item.Kind {
	case catalog.KindAlbum:
		return fmt.Sprintf(" • %s", catalog.ArtistNames(item.Album.Artists))
	case catalog.KindTrack:
		return fmt.Sprintf(" • %s (%s)", catalog.ArtistNames(item.Track.Artists), shared.FormatDuration(item.Track.DurationMS))
	case catalog.KindShow:
		return fmt.Sprintf(" • %s", item.Show.Publisher)
	}
	return ""
}
