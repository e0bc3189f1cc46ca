package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"spotsearch/internal/catalog"
	"spotsearch/internal/player"
	"spotsearch/internal/search"
	"spotsearch/internal/shared"
	"spotsearch/internal/store"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	configPath   string
	store        store.TokenStore
	client       *catalog.Client
	orchestrator *search.Orchestrator
	session      *player.Session
	logger       *log.Logger
	output       io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config       *shared.Config
	ConfigPath   string
	Store        store.TokenStore
	Client       *catalog.Client
	Orchestrator *search.Orchestrator
	Session      *player.Session
	Logger       *log.Logger
	Output       io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Orchestrator == nil && opts.Client != nil {
		opts.Orchestrator = search.New(opts.Client, opts.Logger)
	}

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		store:        opts.Store,
		client:       opts.Client,
		orchestrator: opts.Orchestrator,
		session:      opts.Session,
		logger:       opts.Logger,
		output:       opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, infoCommand, libraryCommand, playCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// userToken fetches the stored user token, failing when the user never
// authorized or the store is unavailable.
func (r *Runner) userToken() (string, error) {
	if r.store == nil {
		return "", fmt.Errorf("%w: token store not initialized", shared.ErrStorage)
	}
	token, found, err := r.store.Retrieve()
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: run `spotsearch auth login` first", shared.ErrNotAuthenticated)
	}
	return token, nil
}

func (r *Runner) requireClient() error {
	if r.client == nil {
		return fmt.Errorf("%w: spotify credentials not configured", shared.ErrMissingCredentials)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
