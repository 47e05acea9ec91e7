// Package endpoint resolves logical API request keys into concrete request URLs.
//
// Templates are user-overridable: each logical endpoint is its own configuration
// key, so a partial override merges key-by-key over the built-in defaults and never
// drops untouched ones.
package endpoint

// Key identifies a logical upstream endpoint.
type Key string

// The fixed set of logical endpoints consumed by the application.
const (
	Home       Key = "home"
	Search     Key = "search"
	Suggestion Key = "suggestion"
	Details    Key = "details"
	Episodes   Key = "episodes"
	Servers    Key = "servers"
	Stream     Key = "stream"
	Schedule   Key = "schedule"
	Genre      Key = "genre"
	Category   Key = "category"
)

// Defaults maps every logical endpoint to its built-in URL template.
// Placeholders use single-brace syntax: {id}, {keyword}, {q}, {date}.
var Defaults = map[Key]string{
	Home:       "/anime/hianime/home",
	Search:     "/anime/hianime/{keyword}",
	Suggestion: "/anime/hianime/suggestion?keyword={q}",
	Details:    "/anime/hianime/info?id={id}",
	Episodes:   "/anime/hianime/episodes/{id}",
	Servers:    "/anime/hianime/servers?episodeId=",
	Stream:     "/anime/hianime/stream?id=",
	Schedule:   "/anime/hianime/schedule?date={date}",
	Genre:      "/anime/hianime/genre/{id}",
	Category:   "/anime/hianime/{id}",
}

// AllKeys returns every logical endpoint key in stable order.
func AllKeys() []Key {
	return []Key{
		Home, Search, Suggestion, Details, Episodes,
		Servers, Stream, Schedule, Genre, Category,
	}
}

// searchLike reports whether the endpoint takes a free-text query term.
func searchLike(k Key) bool {
	return k == Search || k == Suggestion
}
