// Package source defines the domain models for anime discovery and playback state.
package source

import (
	"strings"

	"github.com/aniko-app/aniko/constant"
)

// Episode represents a discrete media segment within an anime series.
type Episode struct {
	// Globally unique id. Embeds the parent anime id via the delimiter convention,
	// e.g. "steins-gate?ep=13499".
	ID string `json:"id"`
	// Episode number. Positive, but not guaranteed contiguous across the list.
	Number int `json:"number"`
	// Display title (e.g. "Turning Point").
	Title string `json:"title"`
	// Filler marks recap/filler episodes.
	Filler bool `json:"filler"`
}

// String returns the canonical display representation of the episode.
func (e *Episode) String() string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

// AnimeID extracts the parent anime id embedded in the episode id.
func (e *Episode) AnimeID() string {
	id, _, _ := strings.Cut(e.ID, constant.EpisodeDelimiter)
	return id
}

// NextAfter locates the episode immediately following ep in list order.
// List position is authoritative for navigation; the Number field is not consulted.
// Returns nil when ep is last or absent.
func NextAfter(episodes []*Episode, ep *Episode) *Episode {
	for i, e := range episodes {
		if e.ID == ep.ID {
			if i+1 < len(episodes) {
				return episodes[i+1]
			}
			return nil
		}
	}
	return nil
}

// FirstEpisode returns the first episode in list order, or nil for an empty list.
func FirstEpisode(episodes []*Episode) *Episode {
	if len(episodes) == 0 {
		return nil
	}
	return episodes[0]
}
