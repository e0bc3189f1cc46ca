package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"spotsearch/internal/catalog"
	"spotsearch/internal/shared"
)

var _ list.Item = resultItem{}

// resultItem wraps [catalog.Item] to implement [list.Item].
type resultItem struct {
	item catalog.Item
}

func (i resultItem) FilterValue() string { return i.item.Name() }
func (i resultItem) Title() string       { return i.item.Name() }

func (i resultItem) Description() string {
	switch i.item.Kind {
	case catalog.KindArtist:
		a := i.item.Artist
		desc := fmt.Sprintf("%d followers", a.Followers.Total)
		if len(a.Genres) > 0 {
			desc = fmt.Sprintf("%s • %s", desc, a.Genres[0])
		}
		return desc
	case catalog.KindAlbum:
		al := i.item.Album
		desc := catalog.ArtistNames(al.Artists)
		if al.ReleaseDate != "" {
			desc = fmt.Sprintf("%s • %s", desc, al.ReleaseDate)
		}
		return desc
	case catalog.KindTrack:
		t := i.item.Track
		return fmt.Sprintf("%s • %s", catalog.ArtistNames(t.Artists), shared.FormatDuration(t.DurationMS))
	case catalog.KindShow:
		s := i.item.Show
		return fmt.Sprintf("%s • %d episodes", s.Publisher, s.TotalEpisodes)
	}
	return ""
}

// sectionItems converts one kind's slice of results into list items.
func sectionItems(results []catalog.Item) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{item: r}
	}
	return items
}

// sectionTitle is the tab label for each kind.
func sectionTitle(kind catalog.Kind) string {
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
