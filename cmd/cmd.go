// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles initial configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the credential database",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify using OAuth2 and store the user token",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check whether a user token is stored",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored user token",
				Action: r.AuthLogout,
			},
		},
	}
}

// searchCommand runs the four-kind concurrent search.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search artists, albums, tracks, and shows",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Restrict to one kind (artist, album, track, show)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// infoCommand fetches full detail for one entity.
func infoCommand(r *Runner) *cli.Command {
	entity := func(name string, action cli.ActionFunc) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: "Show " + name + " detail",
			Arguments: []cli.Argument{
				&cli.StringArg{Name: "id"},
			},
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
			},
			Action: action,
		}
	}

	return &cli.Command{
		Name:  "info",
		Usage: "Fetch full detail for a catalog entity",
		Commands: []*cli.Command{
			entity("artist", r.InfoArtist),
			entity("album", r.InfoAlbum),
			entity("track", r.InfoTrack),
			entity("show", r.InfoShow),
		},
	}
}

// libraryCommand handles personal library mutations. Each subcommand takes
// one or more entity IDs as arguments.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage the personal library (requires auth login)",
		Commands: []*cli.Command{
			{Name: "save", Usage: "Save tracks to the library", Action: r.LibrarySave},
			{Name: "remove", Usage: "Remove tracks from the library", Action: r.LibraryRemove},
			{Name: "follow", Usage: "Follow artists", Action: r.LibraryFollow},
			{Name: "unfollow", Usage: "Unfollow artists", Action: r.LibraryUnfollow},
		},
	}
}

// playCommand plays a track's audio preview.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a track's 30 second audio preview",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Play,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Action:  r.TUI,
	}
}
