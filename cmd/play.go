package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v3"

	"spotsearch/internal/player"
	"spotsearch/internal/shared"
)

// Play fetches a track and plays its audio preview, blocking until the
// preview finishes or the user interrupts.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	if r.session == nil {
		return fmt.Errorf("%w: playback not initialized", shared.ErrPlayback)
	}

	id, err := entityID(cmd)
	if err != nil {
		return err
	}

	track, err := r.client.GetTrack(ctx, id)
	if err != nil {
		return err
	}

	if err := r.session.Play(ctx, track.PreviewURL); err != nil {
		return err
	}

	r.writePlain("▶ %s • %s (%s preview)\n", track.Name, shared.FormatDuration(track.DurationMS), r.session.Duration())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			r.session.Stop()
			return r.writePlain("\n■ Stopped\n")
		case <-ctx.Done():
			r.session.Stop()
			return ctx.Err()
		case <-ticker.C:
			if r.session.State() == player.Idle {
				return r.writePlain("✓ Preview finished\n")
			}
		}
	}
}
