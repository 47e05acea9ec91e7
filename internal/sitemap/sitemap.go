// Package sitemap aggregates the home feed into a sitemap document combining
// static site routes with every anime page discoverable from the feed.
package sitemap

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/aniko-app/aniko/api"
	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/filesystem"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// URL is one sitemap location entry.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Build fetches the home feed and assembles the full sitemap: the fixed static
// routes first, then one anime page per distinct id found anywhere in the feed.
func Build(ctx context.Context, client *api.Client) (*URLSet, error) {
	payload, err := client.Get(ctx, endpoint.Home, nil)
	if err != nil {
		return nil, err
	}

	ids := lo.Uniq(collectIDs(payload))

	now := time.Now().UTC().Format("2006-01-02")
	set := &URLSet{Xmlns: xmlns}
	for _, route := range constant.StaticRoutes {
		set.URLs = append(set.URLs, URL{Loc: constant.SiteOrigin + route, LastMod: now})
	}
	for _, id := range ids {
		set.URLs = append(set.URLs, URL{Loc: fmt.Sprintf("%s/anime/%s", constant.SiteOrigin, id), LastMod: now})
	}
	return set, nil
}

// collectIDs walks the feed payload and gathers every string "id" field, in
// document order. Episode ids carry the episode delimiter and are skipped; the
// sitemap only lists anime pages.
func collectIDs(raw json.RawMessage) []string {
	var ids []string

	var walk func(node json.RawMessage)
	walk = func(node json.RawMessage) {
		trimmed := strings.TrimSpace(string(node))
		if len(trimmed) == 0 {
			return
		}

		switch trimmed[0] {
		case '{':
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(node, &fields); err != nil {
				return
			}
			var id string
			if raw, ok := fields["id"]; ok && json.Unmarshal(raw, &id) == nil {
				if id != "" && !strings.Contains(id, constant.EpisodeDelimiter) {
					ids = append(ids, id)
				}
			}
			// Sorted field order keeps the generated document deterministic.
			keys := lo.Keys(fields)
			slices.Sort(keys)
			for _, k := range keys {
				walk(fields[k])
			}
		case '[':
			var items []json.RawMessage
			if err := json.Unmarshal(node, &items); err != nil {
				return
			}
			for _, item := range items {
				walk(item)
			}
		}
	}
	walk(raw)

	return ids
}

// Write marshals the document and writes it to path.
func Write(set *URLSet, path string) error {
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	content := append([]byte(xml.Header), body...)
	content = append(content, '\n')
	return filesystem.API().WriteFile(path, content, 0644)
}
