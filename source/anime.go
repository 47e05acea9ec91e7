// Package source defines the domain models for anime discovery and playback state.
package source

import "fmt"

// EpisodeCount is the sub/dub availability breakdown reported by the upstream catalog.
type EpisodeCount struct {
	Sub int `json:"sub"`
	Dub int `json:"dub"`
}

// Anime is the summary representation of a catalog entry.
//
// The catalog is owned by third-party APIs: summaries are read-only, fetched fresh
// per request and never mutated locally. ID is the stable join key across every
// surface (search, details, progress, history).
type Anime struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Poster string `json:"poster"`
	Banner string `json:"banner"`
	Image  string `json:"image"`

	Episodes EpisodeCount `json:"episodes"`
	Type     string       `json:"type"`
	Year     string       `json:"year"`
}

func (a *Anime) String() string {
	return a.Title
}

// BestImage returns the first populated image URL in fallback order: poster,
// banner, then the generic image field.
func (a *Anime) BestImage() (string, error) {
	if a.Poster != "" {
		return a.Poster, nil
	}
	if a.Banner != "" {
		return a.Banner, nil
	}
	if a.Image != "" {
		return a.Image, nil
	}
	return "", fmt.Errorf("no image for %q", a.ID)
}

// TotalEpisodes returns the best known episode total for the entry, preferring the
// subbed count. Zero means the total is unknown.
func (a *Anime) TotalEpisodes() int {
	if a.Episodes.Sub > 0 {
		return a.Episodes.Sub
	}
	return a.Episodes.Dub
}

// AnimeDetail is the full representation of a catalog entry.
//
// EpisodeList order is significant: consumers navigate by list position, not by the
// episode Number field, since upstream numbering is not guaranteed contiguous.
type AnimeDetail struct {
	Anime

	EpisodeList []*Episode `json:"episodeList"`
	Related     []*Anime   `json:"related"`
	Recommended []*Anime   `json:"recommended"`
	Genres      []string   `json:"genres"`
	Synopsis    string     `json:"synopsis"`

	// External rating identifiers.
	MalID     int `json:"malId"`
	AnilistID int `json:"anilistId"`
}

// EpisodeByNumber returns the first episode whose Number matches n, or nil.
func (d *AnimeDetail) EpisodeByNumber(n int) *Episode {
	for _, ep := range d.EpisodeList {
		if ep.Number == n {
			return ep
		}
	}
	return nil
}
