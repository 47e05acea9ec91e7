// Package constant defines immutable application-level identifiers and conventions.
package constant

const (
	// Aniko is the canonical application identifier used for filesystem paths and CLI branding.
	Aniko = "aniko"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to upstream APIs.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DemoUserID is the reserved guest identity. Every persistence operation performed
	// for this identity stays on the local filesystem and never reaches the cloud store.
	DemoUserID = "demo"

	// EpisodeDelimiter separates the parent anime id from the episode ordinal inside an
	// episode id, e.g. "steins-gate?ep=13499".
	EpisodeDelimiter = "?ep="
)

// Build metadata, overridden at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// History ledger capacities. The session ledger is local-only; the mirrored ledger
// rides inside the per-user cloud document. They are distinct product surfaces and
// are deliberately not unified.
const (
	SessionHistoryCap  = 20
	MirroredHistoryCap = 50
)
