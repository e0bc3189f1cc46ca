package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"spotsearch/internal/shared"
	"spotsearch/internal/ui"
)

// TUI launches the interactive catalog browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	if r.session == nil {
		return fmt.Errorf("%w: playback not initialized", shared.ErrPlayback)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotsearch-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// Library toggles are optional in the TUI; an empty token surfaces as a
	// visible failure line on first use.
	var userToken string
	if r.store != nil {
		if token, found, err := r.store.Retrieve(); err != nil {
			r.logger.Warn("token store unavailable", "error", err)
		} else if found {
			userToken = token
		}
	}

	model := ui.NewModel(ctx, r.orchestrator, r.client, r.session, userToken)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
