package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"spotsearch/internal/catalog"
	"spotsearch/internal/player"
	"spotsearch/internal/search"
	"spotsearch/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
	DetailView
)

// Catalog is the slice of the catalog client the TUI needs beyond searching.
type Catalog interface {
	GetArtist(ctx context.Context, id string) (*catalog.Artist, error)
	GetAlbum(ctx context.Context, id string) (*catalog.Album, error)
	GetAlbumTracks(ctx context.Context, id string) ([]catalog.Track, error)
	GetTrack(ctx context.Context, id string) (*catalog.Track, error)
	GetShow(ctx context.Context, id string) (*catalog.Show, error)
	SaveTracks(ctx context.Context, userToken string, ids ...string) error
	RemoveTracks(ctx context.Context, userToken string, ids ...string) error
	FollowArtists(ctx context.Context, userToken string, ids ...string) error
	UnfollowArtists(ctx context.Context, userToken string, ids ...string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	orchestrator *search.Orchestrator
	gateway      Catalog
	session      *player.Session
	userToken    string

	view    ViewState
	width   int
	height  int
	input   textinput.Model
	lists   []list.Model
	section int
	results search.ResultSet
	loading bool

	detail       catalog.Item
	detailTracks []catalog.Track

	saved    map[string]bool
	followed map[string]bool

	flash string
	err   error
	help  help.Model
	keys  keyMap
}

type searchDoneMsg struct {
	results search.ResultSet
	err     error
}

type detailFetchedMsg struct {
	item   catalog.Item
	tracks []catalog.Track
	err    error
}

type mutationDoneMsg struct {
	kind   catalog.Kind
	id     string
	enable bool
	err    error
}

type playbackMsg struct {
	err error
}

// NewModel creates a new TUI model with the provided dependencies. userToken
// may be empty; library toggles then report a visible failure instead of
// mutating.
func NewModel(ctx context.Context, orchestrator *search.Orchestrator, gateway Catalog, session *player.Session, userToken string) *Model {
	input := textinput.New()
	input.Placeholder = "Search artists, albums, tracks, shows..."
	input.Focus()
	input.CharLimit = 200

	return &Model{
		ctx:          ctx,
		orchestrator: orchestrator,
		gateway:      gateway,
		session:      session,
		userToken:    userToken,
		view:         SearchView,
		input:        input,
		saved:        map[string]bool{},
		followed:     map[string]bool{},
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.lists {
			m.lists[i].SetSize(m.listWidth(), m.listHeight())
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case searchDoneMsg:
		m.loading = false
		if msg.err != nil {
			// superseded cycles are filtered before this message is built
			m.err = msg.err
			return m, nil
		}
		m.results = msg.results
		m.lists = make([]list.Model, len(catalog.Kinds))
		for i, kind := range catalog.Kinds {
			l := list.New(sectionItems(m.results.Items(kind)), list.NewDefaultDelegate(), m.listWidth(), m.listHeight())
			l.Title = sectionTitle(kind)
			l.SetShowHelp(false)
			m.lists[i] = l
		}
		m.section = 0
		m.view = ResultsView
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("lookup failed: %v", msg.err)
			return m, nil
		}
		m.detail = msg.item
		m.detailTracks = msg.tracks
		m.view = DetailView
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			// roll the optimistic toggle back
			switch msg.kind {
			case catalog.KindTrack:
				m.saved[msg.id] = !msg.enable
			case catalog.KindArtist:
				m.followed[msg.id] = !msg.enable
			}
			m.flash = fmt.Sprintf("%s failed: %v", mutationVerb(msg.kind, msg.enable), msg.err)
		}
		return m, nil

	case playbackMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("playback failed: %v", msg.err)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) listHeight() int {
	h := m.height - 10
	if h < 4 {
		h = 4
	}
	return h
}

func (m *Model) listWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.lists) > 0 {
			m.input.Blur()
			m.view = ResultsView
		}
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.loading = true
		m.flash = ""
		m.input.Blur()
		return m, m.runSearch(query)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.session.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.section):
		m.section = (m.section + 1) % len(m.lists)
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.selectedItem(); ok {
			return m, m.fetchDetail(item)
		}
		return m, nil
	case key.Matches(msg, m.keys.play):
		if item, ok := m.selectedItem(); ok && item.Kind == catalog.KindTrack {
			return m, m.togglePreview(*item.Track)
		}
		return m, nil
	case key.Matches(msg, m.keys.save):
		if item, ok := m.selectedItem(); ok && item.Kind == catalog.KindTrack {
			return m, m.toggleSaved(item.Track.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.follow):
		if item, ok := m.selectedItem(); ok && item.Kind == catalog.KindArtist {
			return m, m.toggleFollowed(item.Artist.ID)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.session.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ResultsView
		return m, nil
	case key.Matches(msg, m.keys.play):
		if m.detail.Kind == catalog.KindTrack {
			return m, m.togglePreview(*m.detail.Track)
		}
		return m, nil
	case key.Matches(msg, m.keys.save):
		if m.detail.Kind == catalog.KindTrack {
			return m, m.toggleSaved(m.detail.Track.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.follow):
		if m.detail.Kind == catalog.KindArtist {
			return m, m.toggleFollowed(m.detail.Artist.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.input, cmd = m.input.Update(msg)
	case ResultsView:
		if m.section < len(m.lists) {
			m.lists[m.section], cmd = m.lists[m.section].Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) selectedItem() (catalog.Item, bool) {
	if m.section >= len(m.lists) {
		return catalog.Item{}, false
	}
	selected := m.lists[m.section].SelectedItem()
	if selected == nil {
		return catalog.Item{}, false
	}
	ri, ok := selected.(resultItem)
	return ri.item, ok
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.orchestrator.Run(m.ctx, query)
		if errors.Is(err, search.ErrSuperseded) {
			return nil
		}
		return searchDoneMsg{results: results, err: err}
	}
}

func (m *Model) fetchDetail(item catalog.Item) tea.Cmd {
	return func() tea.Msg {
		switch item.Kind {
		case catalog.KindArtist:
			artist, err := m.gateway.GetArtist(m.ctx, item.ID())
			if err != nil {
				return detailFetchedMsg{err: err}
			}
			return detailFetchedMsg{item: catalog.Item{Kind: item.Kind, Artist: artist}}
		case catalog.KindAlbum:
			album, err := m.gateway.GetAlbum(m.ctx, item.ID())
			if err != nil {
				return detailFetchedMsg{err: err}
			}
			tracks, err := m.gateway.GetAlbumTracks(m.ctx, item.ID())
			if err != nil {
				return detailFetchedMsg{err: err}
			}
			return detailFetchedMsg{item: catalog.Item{Kind: item.Kind, Album: album}, tracks: tracks}
		case catalog.KindTrack:
			track, err := m.gateway.GetTrack(m.ctx, item.ID())
			if err != nil {
				return detailFetchedMsg{err: err}
			}
			return detailFetchedMsg{item: catalog.Item{Kind: item.Kind, Track: track}}
		case catalog.KindShow:
			show, err := m.gateway.GetShow(m.ctx, item.ID())
			if err != nil {
				return detailFetchedMsg{err: err}
			}
			return detailFetchedMsg{item: catalog.Item{Kind: item.Kind, Show: show}}
		}
		return detailFetchedMsg{err: fmt.Errorf("%w: unknown kind", shared.ErrInvalidArgument)}
	}
}

func (m *Model) togglePreview(track catalog.Track) tea.Cmd {
	if m.session.State() == player.Playing {
		m.session.Stop()
		return nil
	}
	url := track.PreviewURL
	return func() tea.Msg {
		return playbackMsg{err: m.session.Play(m.ctx, url)}
	}
}

func (m *Model) toggleSaved(id string) tea.Cmd {
	enable := !m.saved[id]
	m.saved[id] = enable
	m.flash = ""
	return func() tea.Msg {
		var err error
		if enable {
			err = m.gateway.SaveTracks(m.ctx, m.userToken, id)
		} else {
			err = m.gateway.RemoveTracks(m.ctx, m.userToken, id)
		}
		return mutationDoneMsg{kind: catalog.KindTrack, id: id, enable: enable, err: err}
	}
}

func (m *Model) toggleFollowed(id string) tea.Cmd {
	enable := !m.followed[id]
	m.followed[id] = enable
	m.flash = ""
	return func() tea.Msg {
		var err error
		if enable {
			err = m.gateway.FollowArtists(m.ctx, m.userToken, id)
		} else {
			err = m.gateway.UnfollowArtists(m.ctx, m.userToken, id)
		}
		return mutationDoneMsg{kind: catalog.KindArtist, id: id, enable: enable, err: err}
	}
}

func mutationVerb(kind catalog.Kind, enable bool) string {
	switch {
	case kind == catalog.KindTrack && enable:
		return "save"
	case kind == catalog.KindTrack:
		return "remove"
	case enable:
		return "follow"
	default:
		return "unfollow"
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("spotsearch")

	var status string
	if m.loading {
		status = styles.dim.Render("Searching...")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s", title, m.input.View(), status, m.flashLine(), helpView)
}

func (m *Model) renderResults() string {
	var tabs []string
	for i, kind := range catalog.Kinds {
		label := fmt.Sprintf("%s (%d)", sectionTitle(kind), len(m.results.Items(kind)))
		if m.results.Failed(kind) != nil {
			label = fmt.Sprintf("%s (✗)", sectionTitle(kind))
		}
		if i == m.section {
			tabs = append(tabs, styles.active.Render(label))
		} else {
			tabs = append(tabs, styles.dim.Render(label))
		}
	}

	var body string
	if m.section < len(m.lists) {
		body = m.lists[m.section].View()
	}

	helpKeys := []key.Binding{m.keys.section, m.keys.enter, m.keys.search, m.keys.play, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", strings.Join(tabs, "  "), body, m.flashLine(), helpView)
}

func (m *Model) renderDetail() string {
	var body string
	switch m.detail.Kind {
	case catalog.KindArtist:
		a := m.detail.Artist
		body = fmt.Sprintf("%s\nFollowers: %d\nPopularity: %d\nGenres: %s",
			styles.title.Render(a.Name), a.Followers.Total, a.Popularity, strings.Join(a.Genres, ", "))
		if m.followed[a.ID] {
			body += "\n" + styles.ok.Render("✓ Following")
		}
	case catalog.KindAlbum:
		al := m.detail.Album
		body = fmt.Sprintf("%s\nBy: %s\nReleased: %s\nTracks: %d\n",
			styles.title.Render(al.Name), catalog.ArtistNames(al.Artists), al.ReleaseDate, al.TotalTracks)
		for i, track := range m.detailTracks {
			body += fmt.Sprintf("\n%2d. %s (%s)", i+1, track.Name, shared.FormatDuration(track.DurationMS))
		}
	case catalog.KindTrack:
		t := m.detail.Track
		body = fmt.Sprintf("%s\nBy: %s\nAlbum: %s\nDuration: %s\nPopularity: %d",
			styles.title.Render(t.Name), catalog.ArtistNames(t.Artists), t.Album.Name,
			shared.FormatDuration(t.DurationMS), t.Popularity)
		if t.PreviewURL == "" {
			body += "\n" + styles.warn.Render("No preview available")
		} else if m.session.State() == player.Playing {
			body += "\n" + styles.ok.Render("▶ Playing preview")
		}
		if m.saved[t.ID] {
			body += "\n" + styles.ok.Render("✓ Saved")
		}
	case catalog.KindShow:
		s := m.detail.Show
		body = fmt.Sprintf("%s\nPublisher: %s\nEpisodes: %d\n\n%s",
			styles.title.Render(s.Name), s.Publisher, s.TotalEpisodes, s.Description)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.play, m.keys.save, m.keys.follow, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", body, m.flashLine(), helpView)
}

func (m *Model) flashLine() string {
	if m.flash == "" {
		return ""
	}
	return styles.warn.Render(m.flash)
}
