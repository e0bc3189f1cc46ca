package player

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"context"

	"github.com/charmbracelet/log"

	"spotsearch/internal/shared"
)

// previewDuration is the fixed length of catalog audio previews.
const previewDuration = 30 * time.Second

// playerCandidates are the external players probed in order.
var playerCandidates = []string{"mpv", "mplayer", "ffplay", "mpg123", "afplay"}

// ProcessLoader plays previews through an external player binary. The preview
// is downloaded to a temp file first so the player never blocks on the
// network.
type ProcessLoader struct {
	httpClient *http.Client
	players    []string
	logger     *log.Logger
}

// NewProcessLoader creates a loader that probes the standard player binaries.
func NewProcessLoader(logger *log.Logger) *ProcessLoader {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ProcessLoader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		players:    playerCandidates,
		logger:     logger,
	}
}

// Load downloads the preview at url and starts a player process over it.
func (l *ProcessLoader) Load(ctx context.Context, url string) (Handle, error) {
	player, err := l.findPlayer()
	if err != nil {
		return nil, err
	}

	path, err := l.download(ctx, url)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(player, path)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to start %s: %w", player, err)
	}

	l.logger.Debug("preview playback started", "player", player, "file", path)

	return &processHandle{cmd: cmd, path: path, duration: previewDuration}, nil
}

func (l *ProcessLoader) findPlayer() (string, error) {
	for _, candidate := range l.players {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no audio player found (tried %v)", l.players)
}

func (l *ProcessLoader) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build preview request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("preview fetch returned status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "spotsearch-preview-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write preview: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close preview file: %w", err)
	}

	return f.Name(), nil
}

// processHandle owns one player process and its temp file.
type processHandle struct {
	cmd      *exec.Cmd
	path     string
	duration time.Duration
	once     sync.Once
}

func (h *processHandle) Duration() time.Duration { return h.duration }

// Close kills the player process and removes the temp file. Safe against a
// process that already exited on its own.
func (h *processHandle) Close() error {
	h.once.Do(func() {
		if h.cmd.Process != nil {
			h.cmd.Process.Kill()
			h.cmd.Wait()
		}
		os.Remove(h.path)
	})
	return nil
}
