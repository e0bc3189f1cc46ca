package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"spotsearch/internal/shared"
)

// mutation applies one library mutation to the IDs passed as arguments.
func (r *Runner) mutation(ctx context.Context, cmd *cli.Command, verb string,
	apply func(ctx context.Context, userToken string, ids ...string) error) error {
	if err := r.requireClient(); err != nil {
		return err
	}

	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one id", shared.ErrMissingArgument)
	}

	token, err := r.userToken()
	if err != nil {
		return err
	}

	if err := apply(ctx, token, ids...); err != nil {
		return err
	}

	r.logger.Info("library updated", "op", verb, "count", len(ids))
	return r.writePlain("✓ %s %d item(s)\n", verb, len(ids))
}

// LibrarySave saves tracks to the user's library.
func (r *Runner) LibrarySave(ctx context.Context, cmd *cli.Command) error {
	return r.mutation(ctx, cmd, "Saved", r.client.SaveTracks)
}

// LibraryRemove removes tracks from the user's library.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	return r.mutation(ctx, cmd, "Removed", r.client.RemoveTracks)
}

// LibraryFollow follows artists.
func (r *Runner) LibraryFollow(ctx context.Context, cmd *cli.Command) error {
	return r.mutation(ctx, cmd, "Followed", r.client.FollowArtists)
}

// LibraryUnfollow unfollows artists.
func (r *Runner) LibraryUnfollow(ctx context.Context, cmd *cli.Command) error {
	return r.mutation(ctx, cmd, "Unfollowed", r.client.UnfollowArtists)
}
