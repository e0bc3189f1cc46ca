// package catalog implements the query gateway for the Spotify Web API.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package catalog

// Kind identifies the catalog entity variant. It is assigned at fetch time
// from the request's known type parameter, never inferred from which fields
// happen to be present in a response payload.
type Kind string

const (
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindTrack  Kind = "track"
	KindShow   Kind = "show"
)

// Kinds lists every searchable variant in presentation order.
var Kinds = []Kind{KindArtist, KindAlbum, KindTrack, KindShow}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type followers struct {
	Total int `json:"total"`
}

// Artist represents a catalog artist.
type Artist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Genres     []string  `json:"genres"`
	Popularity int       `json:"popularity"`
	Followers  followers `json:"followers"`
	Images     []Image   `json:"images"`
	URI        string    `json:"uri"`
}

// Album represents a catalog album.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []Artist `json:"artists"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	Images      []Image  `json:"images"`
	URI         string   `json:"uri"`
}

// Track represents a catalog track. PreviewURL may be empty when the catalog
// offers no audio preview for the track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	Popularity int      `json:"popularity"`
	PreviewURL string   `json:"preview_url"`
	URI        string   `json:"uri"`
}

// Show represents a catalog podcast/show.
type Show struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Publisher     string   `json:"publisher"`
	Description   string   `json:"description"`
	TotalEpisodes int      `json:"total_episodes"`
	Languages     []string `json:"languages"`
	Images        []Image  `json:"images"`
	URI           string   `json:"uri"`
}

// Item is the tagged union over the four catalog variants. Exactly one of the
// variant pointers is set, matching Kind.
type Item struct {
	Kind   Kind
	Artist *Artist
	Album  *Album
	Track  *Track
	Show   *Show
}

// ID returns the variant's unique identifier.
func (i Item) ID() string {
	switch i.Kind {
	case KindArtist:
		return i.Artist.ID
	case KindAlbum:
		return i.Album.ID
	case KindTrack:
		return i.Track.ID
	case KindShow:
		return i.Show.ID
	}
	return ""
}

// Name returns the variant's display name.
func (i Item) Name() string {
	switch i.Kind {
	case KindArtist:
		return i.Artist.Name
	case KindAlbum:
		return i.Album.Name
	case KindTrack:
		return i.Track.Name
	case KindShow:
		return i.Show.Name
	}
	return ""
}

// ImageURL returns the variant's primary image URL, or "" when none exists.
// Tracks borrow their album artwork.
func (i Item) ImageURL() string {
	var images []Image
	switch i.Kind {
	case KindArtist:
		images = i.Artist.Images
	case KindAlbum:
		images = i.Album.Images
	case KindTrack:
		images = i.Track.Album.Images
	case KindShow:
		images = i.Show.Images
	}
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// ArtistNames joins the credited artist names for albums and tracks.
func ArtistNames(artists []Artist) string {
	names := ""
	for i, a := range artists {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}
