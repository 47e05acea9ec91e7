// Package history implements the bounded, most-recent-first watch ledgers.
package history

import (
	"fmt"
	"time"

	"github.com/aniko-app/aniko/source"
)

// Item is a single watched-episode entry.
type Item struct {
	AnimeID       string `json:"animeId"`
	EpisodeID     string `json:"episodeId"`
	Title         string `json:"title"`
	EpisodeNumber int    `json:"episodeNumber"`
	Image         string `json:"image"`
	Timestamp     int64  `json:"timestamp"`
}

func (i Item) String() string {
	return fmt.Sprintf("%s : episode %d", i.Title, i.EpisodeNumber)
}

// NewItem builds a ledger entry for a watched episode.
func NewItem(anime *source.Anime, ep *source.Episode) Item {
	image, _ := anime.BestImage()
	return Item{
		AnimeID:       anime.ID,
		EpisodeID:     ep.ID,
		Title:         anime.Title,
		EpisodeNumber: ep.Number,
		Image:         image,
		Timestamp:     time.Now().UnixMilli(),
	}
}

// Push prepends item to items, removing any existing entry for the same anime and
// truncating to capacity. Re-watching an anime therefore moves its entry to the
// front instead of duplicating it.
func Push(items []Item, item Item, capacity int) []Item {
	out := make([]Item, 0, len(items)+1)
	out = append(out, item)
	for _, existing := range items {
		if existing.AnimeID == item.AnimeID {
			continue
		}
		out = append(out, existing)
	}
	if capacity > 0 && len(out) > capacity {
		out = out[:capacity]
	}
	return out
}
