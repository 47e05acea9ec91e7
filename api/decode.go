package api

import (
	"encoding/json"

	"github.com/aniko-app/aniko/source"
	"github.com/samber/lo"
)

// Wire types tolerate the alternate field names the upstream has used across API
// versions. Each logical field reads its preferred name first, then historical ones.

type wireAnime struct {
	ID       string              `json:"id"`
	AnimeID  string              `json:"animeId"`
	Title    string              `json:"title"`
	Name     string              `json:"name"`
	Poster   string              `json:"poster"`
	Img      string              `json:"img"`
	Image    string              `json:"image"`
	Banner   string              `json:"banner"`
	Episodes source.EpisodeCount `json:"episodes"`
	Type     string              `json:"type"`
	Year     string              `json:"year"`
	Released string              `json:"releaseDate"`
}

func (w wireAnime) model() *source.Anime {
	return &source.Anime{
		ID:       coalesce(w.ID, w.AnimeID),
		Title:    coalesce(w.Title, w.Name),
		Poster:   coalesce(w.Poster, w.Img),
		Banner:   w.Banner,
		Image:    w.Image,
		Episodes: w.Episodes,
		Type:     w.Type,
		Year:     coalesce(w.Year, w.Released),
	}
}

type wireEpisode struct {
	ID        string `json:"id"`
	EpisodeID string `json:"episodeId"`
	Number    int    `json:"number"`
	Episode   int    `json:"episode"`
	Title     string `json:"title"`
	Name      string `json:"name"`
	Filler    bool   `json:"filler"`
	IsFiller  bool   `json:"isFiller"`
}

func (w wireEpisode) model() *source.Episode {
	number := w.Number
	if number == 0 {
		number = w.Episode
	}
	return &source.Episode{
		ID:     coalesce(w.ID, w.EpisodeID),
		Number: number,
		Title:  coalesce(w.Title, w.Name),
		Filler: w.Filler || w.IsFiller,
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// SearchPage is one page of search or category results.
type SearchPage struct {
	Animes      []*source.Anime
	CurrentPage int
	HasNextPage bool
}

// DecodeSearchPage projects a search-like payload onto a SearchPage, trying each
// historical collection name in order.
func DecodeSearchPage(raw json.RawMessage) *SearchPage {
	wires := PickList[wireAnime](raw, "results", "response", "animes")
	return &SearchPage{
		Animes:      lo.Map(wires, func(w wireAnime, _ int) *source.Anime { return w.model() }),
		CurrentPage: PickInt(raw, 1, "currentPage", "pageInfo.currentPage"),
		HasNextPage: PickBool(raw, "hasNextPage", "pageInfo.hasNextPage"),
	}
}

// DecodeAnimes projects any anime collection under the given candidate keys.
func DecodeAnimes(raw json.RawMessage, candidates ...string) []*source.Anime {
	wires := PickList[wireAnime](raw, candidates...)
	return lo.Map(wires, func(w wireAnime, _ int) *source.Anime { return w.model() })
}

// DecodeEpisodes projects an episode-list payload, preserving upstream list order.
func DecodeEpisodes(raw json.RawMessage) []*source.Episode {
	wires := PickList[wireEpisode](raw, "episodes", "items")
	return lo.Map(wires, func(w wireEpisode, _ int) *source.Episode { return w.model() })
}

// DecodeDetail projects a details payload onto an AnimeDetail. The anime object
// may sit under "anime" or "info", or be the payload itself.
func DecodeDetail(raw json.RawMessage) (*source.AnimeDetail, error) {
	payload := raw
	for _, candidate := range []string{"anime", "info"} {
		if inner, ok := lookup(raw, candidate); ok {
			payload = inner
			break
		}
	}

	var w struct {
		wireAnime
		Genres      []string `json:"genres"`
		Synopsis    string   `json:"synopsis"`
		Description string   `json:"description"`
		MalID       int      `json:"malId"`
		AnilistID   int      `json:"anilistId"`
	}
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, err
	}

	detail := &source.AnimeDetail{
		Anime:       *w.wireAnime.model(),
		Genres:      w.Genres,
		Synopsis:    coalesce(w.Synopsis, w.Description),
		MalID:       w.MalID,
		AnilistID:   w.AnilistID,
		Related:     DecodeAnimes(raw, "relatedAnimes", "related"),
		Recommended: DecodeAnimes(raw, "recommendedAnimes", "recommended"),
	}
	detail.EpisodeList = DecodeEpisodes(raw)
	return detail, nil
}

// ScheduleEntry is one airing slot on the broadcast schedule.
type ScheduleEntry struct {
	ID      string `json:"id"`
	Title   string `json:"name"`
	Time    string `json:"time"`
	Episode int    `json:"episode"`
}

// DecodeSchedule projects a schedule payload.
func DecodeSchedule(raw json.RawMessage) []*ScheduleEntry {
	return PickList[*ScheduleEntry](raw, "scheduledAnimes", "schedule", "results")
}

type wireServer struct {
	ServerName string `json:"serverName"`
	Name       string `json:"name"`
}

// DecodeServers projects a servers payload into the distinct server names across
// every audio track grouping.
func DecodeServers(raw json.RawMessage) []string {
	var names []string
	for _, candidate := range []string{"sub", "dub", "raw", "servers"} {
		for _, w := range PickList[wireServer](raw, candidate) {
			if name := coalesce(w.ServerName, w.Name); name != "" {
				names = append(names, name)
			}
		}
	}
	return lo.Uniq(names)
}

// StreamSource is one playable stream variant.
type StreamSource struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Quality string `json:"quality"`
}

// StreamInfo is the playable payload for one episode on one server.
type StreamInfo struct {
	Sources []*StreamSource
	Referer string
}

// DecodeStream projects a stream payload. Stream links expire quickly and are
// never cached across runs.
func DecodeStream(raw json.RawMessage) *StreamInfo {
	referer := PickString(raw, "headers.Referer", "headers.referer")
	return &StreamInfo{
		Sources: PickList[*StreamSource](raw, "sources", "streamingLink"),
		Referer: referer,
	}
}
