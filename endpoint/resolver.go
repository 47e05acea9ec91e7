package endpoint

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

// Params is the open string-keyed parameter map passed to Resolve.
// Recognized special entries: "q" (search term), "id", "page".
type Params map[string]string

// ConfigurationError reports a logical endpoint that cannot produce a usable URL.
// It is fatal to the request, not to the application.
type ConfigurationError struct {
	Key    Key
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("endpoint %q: %s", string(e.Key), e.Reason)
}

// Resolver turns (key, params) pairs into concrete request URLs.
type Resolver struct {
	cfg Config
}

// NewResolver returns a resolver bound to an explicit configuration snapshot.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Config returns the configuration snapshot the resolver was built with.
func (r *Resolver) Config() Config {
	return r.cfg
}

var placeholderRe = regexp.MustCompile(`\{[^{}]+\}`)

// Resolve builds the request URL for a logical endpoint.
//
// Substitution order: the search term fills {q} or {keyword} (or is appended as a
// keyword= query parameter when neither placeholder exists); an id fills {id},
// extends a template ending in "=", or is appended as a path segment; a page is
// always appended as a page= query parameter. Remaining {name} placeholders are
// filled from the params map. Any placeholder left unresolved is a
// ConfigurationError, never a silently malformed URL.
//
// Resolution is deterministic for a fixed configuration, so the result doubles as
// a cache key.
func (r *Resolver) Resolve(k Key, params Params) (string, error) {
	tmpl, ok := r.cfg.Endpoints[k]
	if !ok || tmpl == "" {
		tmpl, ok = Defaults[k]
		if !ok || tmpl == "" {
			return "", &ConfigurationError{Key: k, Reason: "no template configured and no built-in default"}
		}
	}

	consumed := make(map[string]bool, len(params))
	out := tmpl

	if q := params["q"]; searchLike(k) && q != "" {
		consumed["q"] = true
		switch {
		case strings.Contains(out, "{q}"):
			out = strings.ReplaceAll(out, "{q}", url.PathEscape(q))
		case strings.Contains(out, "{keyword}"):
			out = strings.ReplaceAll(out, "{keyword}", url.PathEscape(q))
		default:
			out = appendQuery(out, "keyword="+url.QueryEscape(q))
		}
	}

	if id := params["id"]; id != "" {
		consumed["id"] = true
		switch {
		case strings.Contains(out, "{id}"):
			out = strings.ReplaceAll(out, "{id}", id)
		case strings.HasSuffix(out, "="):
			// Templates like "info?id=" take the id verbatim.
			out += id
		default:
			out = strings.TrimRight(out, "/") + "/" + id
		}
	}

	if page := params["page"]; page != "" {
		consumed["page"] = true
		out = appendQuery(out, "page="+page)
	}

	// Fill any remaining named placeholders, in sorted key order for determinism.
	names := make([]string, 0, len(params))
	for name := range params {
		if !consumed[name] {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		out = strings.ReplaceAll(out, "{"+name+"}", url.PathEscape(params[name]))
	}

	if leftover := placeholderRe.FindString(out); leftover != "" {
		return "", &ConfigurationError{
			Key:    k,
			Reason: fmt.Sprintf("unresolved placeholder %s in template %q", leftover, tmpl),
		}
	}

	return out, nil
}

// appendQuery attaches a raw key=value pair using "?" or "&" depending on whether
// the URL already carries a query string.
func appendQuery(u, pair string) string {
	if strings.Contains(u, "?") {
		return u + "&" + pair
	}
	return u + "?" + pair
}
