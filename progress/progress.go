// Package progress maintains per-user watch progress across a local mirror for the
// demo identity and a remote document store for authenticated identities.
package progress

import (
	"time"

	"github.com/aniko-app/aniko/source"
)

// Status classifies a list entry.
type Status string

const (
	StatusWatching  Status = "Watching"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
)

// UserProgress is one user's state for one anime.
//
// Title and Poster are denormalized snapshots taken at write time and may go
// stale relative to the live catalog record.
type UserProgress struct {
	AnimeID        string `json:"animeId"`
	Title          string `json:"title"`
	Poster         string `json:"poster"`
	CurrentEpisode int    `json:"currentEpisode"`
	TotalEpisodes  int    `json:"totalEpisodes"`
	Status         Status `json:"status"`
	LastUpdated    int64  `json:"lastUpdated"`
	NextEpisodeID  string `json:"nextEpisodeId,omitempty"`
}

// Classify derives the status invariant: Completed iff the total is known and
// reached, Watching once started, On Hold otherwise.
func Classify(currentEpisode, totalEpisodes int) Status {
	switch {
	case totalEpisodes > 0 && currentEpisode >= totalEpisodes:
		return StatusCompleted
	case currentEpisode > 0:
		return StatusWatching
	default:
		return StatusOnHold
	}
}

// Percent returns completion in [0, 1]. Zero when the total is unknown. The
// clamp guards against stale denormalized totals letting progress exceed 100%.
func (p *UserProgress) Percent() float64 {
	if p == nil || p.TotalEpisodes <= 0 {
		return 0
	}
	percent := float64(p.CurrentEpisode) / float64(p.TotalEpisodes)
	if percent < 0 {
		return 0
	}
	if percent > 1 {
		return 1
	}
	return percent
}

// NextWatchTarget picks the episode to offer as "continue watching": the episode
// numbered one past current progress when it exists, otherwise the first episode
// in list order, otherwise nil (caller disables the watch action).
func NextWatchTarget(p *UserProgress, episodes []*source.Episode) *source.Episode {
	if p != nil {
		for _, ep := range episodes {
			if ep.Number == p.CurrentEpisode+1 {
				return ep
			}
		}
	}
	return source.FirstEpisode(episodes)
}

// newRecord builds an On-Hold entry for an anime that was added but not started.
func newRecord(anime *source.Anime) UserProgress {
	poster, _ := anime.BestImage()
	return UserProgress{
		AnimeID:       anime.ID,
		Title:         anime.Title,
		Poster:        poster,
		TotalEpisodes: anime.TotalEpisodes(),
		Status:        StatusOnHold,
		LastUpdated:   time.Now().UnixMilli(),
	}
}

// watchedRecord builds the upserted entry for a watched episode, recomputing the
// status invariant and the precomputed next-episode pointer.
func watchedRecord(detail *source.AnimeDetail, ep *source.Episode) UserProgress {
	total := len(detail.EpisodeList)
	if total == 0 {
		total = detail.TotalEpisodes()
	}

	record := UserProgress{
		AnimeID:        detail.ID,
		Title:          detail.Title,
		CurrentEpisode: ep.Number,
		TotalEpisodes:  total,
		Status:         Classify(ep.Number, total),
		LastUpdated:    time.Now().UnixMilli(),
	}
	record.Poster, _ = detail.BestImage()
	if next := source.NextAfter(detail.EpisodeList, ep); next != nil {
		record.NextEpisodeID = next.ID
	}
	return record
}
