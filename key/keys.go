// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Upstream API - these keys control how logical endpoints resolve into concrete request URLs.
const (
	APIBaseURL   = "api.base_url"
	APIAccessKey = "api.access_key"

	// EndpointPrefix namespaces one key per logical endpoint. Each template is its own
	// key so a partial user override merges key-by-key over the built-in defaults.
	EndpointPrefix = "endpoints."
)

// Cloud Document Store - these keys configure the remote progress/history backend.
const (
	CloudBaseURL = "cloud.base_url"
	CloudProject = "cloud.project"
)

// History Tracking - these keys configure the persistence of watch state.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Search Interaction.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Presentation.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	IconsVariant    = "icons.variant"
)

// Endpoint returns the full configuration key for a logical endpoint name.
func Endpoint(name string) string {
	return EndpointPrefix + name
}
