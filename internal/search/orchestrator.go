// package search orchestrates the concurrent catalog sub-queries for one
// submitted free-text query.
//
// One orchestration cycle fires the four kind searches (artist, album, track,
// show) concurrently and publishes a merged result set only after all four
// settle. The join is partial-success: a failed sub-query degrades its own
// slice to empty and is recorded per kind; the other slices populate normally.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"spotsearch/internal/catalog"
	"spotsearch/internal/shared"
)

// ErrSuperseded reports that a newer cycle started while this one was in
// flight; the superseded cycle's results are discarded, never published.
var ErrSuperseded = fmt.Errorf("search superseded by a newer query")

// Gateway is the slice of the catalog client the orchestrator needs.
type Gateway interface {
	SearchArtists(ctx context.Context, query string) ([]catalog.Artist, error)
	SearchAlbums(ctx context.Context, query string) ([]catalog.Album, error)
	SearchTracks(ctx context.Context, query string) ([]catalog.Track, error)
	SearchShows(ctx context.Context, query string) ([]catalog.Show, error)
}

// ResultSet holds the four independent ordered sequences for one cycle, each
// bounded at the gateway's page size, plus the per-kind failures.
type ResultSet struct {
	Query   string
	Artists []catalog.Artist
	Albums  []catalog.Album
	Tracks  []catalog.Track
	Shows   []catalog.Show
	Errs    map[catalog.Kind]error
}

// Failed returns the recorded error for a kind, or nil if its sub-query succeeded.
func (r ResultSet) Failed(kind catalog.Kind) error {
	return r.Errs[kind]
}

// Empty reports whether no sub-query returned any items.
func (r ResultSet) Empty() bool {
	return len(r.Artists) == 0 && len(r.Albums) == 0 && len(r.Tracks) == 0 && len(r.Shows) == 0
}

// Items returns one kind's results as tagged [catalog.Item] values, in the
// gateway's order.
func (r ResultSet) Items(kind catalog.Kind) []catalog.Item {
	var items []catalog.Item
	switch kind {
	case catalog.KindArtist:
		for i := range r.Artists {
			items = append(items, catalog.Item{Kind: kind, Artist: &r.Artists[i]})
		}
	case catalog.KindAlbum:
		for i := range r.Albums {
			items = append(items, catalog.Item{Kind: kind, Album: &r.Albums[i]})
		}
	case catalog.KindTrack:
		for i := range r.Tracks {
			items = append(items, catalog.Item{Kind: kind, Track: &r.Tracks[i]})
		}
	case catalog.KindShow:
		for i := range r.Shows {
			items = append(items, catalog.Item{Kind: kind, Show: &r.Shows[i]})
		}
	}
	return items
}

// Orchestrator runs search cycles and guards against out-of-order completion:
// when cycles overlap, only the newest invocation may publish, and superseded
// cycles have their in-flight sub-queries cancelled.
type Orchestrator struct {
	gateway Gateway
	logger  *log.Logger

	mu         sync.Mutex
	generation uint64
	cancelPrev context.CancelFunc
	inflight   int
	latest     ResultSet
}

// New creates an orchestrator over the given gateway.
func New(gateway Gateway, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Orchestrator{gateway: gateway, logger: logger}
}

// Run executes one orchestration cycle for the submitted query.
//
// An empty query is a no-op: zero network calls, and the previously published
// result set is returned unchanged. When a newer Run supersedes this one, the
// stale results are discarded and [ErrSuperseded] is returned.
func (o *Orchestrator) Run(ctx context.Context, query string) (ResultSet, error) {
	if strings.TrimSpace(query) == "" {
		return o.Latest(), nil
	}

	o.mu.Lock()
	o.generation++
	gen := o.generation
	if o.cancelPrev != nil {
		o.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	o.cancelPrev = cancel
	o.inflight++
	o.mu.Unlock()

	defer cancel()
	defer func() {
		o.mu.Lock()
		o.inflight--
		o.mu.Unlock()
	}()

	var (
		wg      sync.WaitGroup
		artists []catalog.Artist
		albums  []catalog.Album
		tracks  []catalog.Track
		shows   []catalog.Show

		artistErr, albumErr, trackErr, showErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		artists, artistErr = o.gateway.SearchArtists(ctx, query)
	}()
	go func() {
		defer wg.Done()
		albums, albumErr = o.gateway.SearchAlbums(ctx, query)
	}()
	go func() {
		defer wg.Done()
		tracks, trackErr = o.gateway.SearchTracks(ctx, query)
	}()
	go func() {
		defer wg.Done()
		shows, showErr = o.gateway.SearchShows(ctx, query)
	}()
	wg.Wait()

	result := ResultSet{Query: query, Errs: map[catalog.Kind]error{}}
	for kind, err := range map[catalog.Kind]error{
		catalog.KindArtist: artistErr,
		catalog.KindAlbum:  albumErr,
		catalog.KindTrack:  trackErr,
		catalog.KindShow:   showErr,
	} {
		if err != nil {
			result.Errs[kind] = err
			o.logger.Warn("sub-query failed", "kind", kind, "query", query, "error", err)
		}
	}
	if artistErr == nil {
		result.Artists = artists
	}
	if albumErr == nil {
		result.Albums = albums
	}
	if trackErr == nil {
		result.Tracks = tracks
	}
	if showErr == nil {
		result.Shows = shows
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		return o.latest, ErrSuperseded
	}

	o.latest = result
	return result, nil
}

// Latest returns the most recently published result set.
func (o *Orchestrator) Latest() ResultSet {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.latest
}

// Loading reports whether any orchestration cycle is in flight.
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inflight > 0
}
