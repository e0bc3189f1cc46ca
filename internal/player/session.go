// package player implements the audio preview playback session.
//
// A session owns at most one decoded audio handle and walks the lifecycle
// Idle → Loading → Playing → {Stopped, Finished} → Idle. Stopped and Finished
// transition to Idle immediately, so Idle is the observable resting state.
// The handle is released on every exit path from Playing: stop, natural
// finish, or a superseding play.
package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"spotsearch/internal/shared"
)

// State enumerates the playback lifecycle states.
type State int

const (
	Idle State = iota
	Loading
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// positionInterval bounds how often the watcher polls for end-of-track.
const positionInterval = 200 * time.Millisecond

// Handle is a decoded audio resource. Close releases the decoder and must be
// safe to call exactly once per acquisition.
type Handle interface {
	Duration() time.Duration
	Close() error
}

// Loader loads and decodes the preview resource at a URL.
type Loader interface {
	Load(ctx context.Context, url string) (Handle, error)
}

// Session is the single playback session for the process. Access is expected
// from the UI event loop; the internal mutex only coordinates the end-of-track
// watcher goroutine.
type Session struct {
	loader Loader
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	state     State
	handle    Handle
	playID    uint64
	startedAt time.Time
	duration  time.Duration
}

// NewSession creates a playback session over the given loader.
func NewSession(loader Loader, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{loader: loader, logger: logger, now: time.Now}
}

// Play loads the preview at url and begins playback. An empty url or a load
// failure leaves the session Idle. If another preview is already playing its
// handle is released first, exactly once.
func (s *Session) Play(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Playing {
		s.releaseLocked()
		s.state = Idle
	}

	if url == "" {
		return fmt.Errorf("%w: no preview available", shared.ErrPlayback)
	}

	s.state = Loading
	handle, err := s.loader.Load(ctx, url)
	if err != nil {
		s.state = Idle
		return fmt.Errorf("%w: %v", shared.ErrPlayback, err)
	}

	s.handle = handle
	s.duration = handle.Duration()
	s.startedAt = s.now()
	s.state = Playing
	s.playID++

	go s.watch(s.playID)
	return nil
}

// Stop ends playback, releases the audio handle and resets the position to 0.
// Stopping an idle session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return
	}

	s.releaseLocked()
	s.state = Idle
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position returns the elapsed playback position, clamped to the track
// duration. Idle sessions report 0.
func (s *Session) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return 0
	}

	elapsed := s.now().Sub(s.startedAt)
	if elapsed > s.duration {
		return s.duration
	}
	return elapsed
}

// Duration returns the loaded preview's total duration, or 0 when idle.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return 0
	}
	return s.duration
}

// watch polls until the preview reaches its end, then releases the handle and
// returns the session to Idle. It exits silently when its play has been
// stopped or superseded.
func (s *Session) watch(id uint64) {
	ticker := time.NewTicker(positionInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		if s.state != Playing || s.playID != id {
			s.mu.Unlock()
			return
		}
		if s.now().Sub(s.startedAt) >= s.duration {
			s.releaseLocked()
			s.state = Idle
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// releaseLocked closes the handle if one is held. Nil-ing the handle makes
// repeated release paths idempotent, so the decoder is closed exactly once.
func (s *Session) releaseLocked() {
	if s.handle == nil {
		return
	}
	if err := s.handle.Close(); err != nil {
		s.logger.Warn("failed to release audio handle", "error", err)
	}
	s.handle = nil
	s.duration = 0
}
