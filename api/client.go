// Package api executes upstream catalog requests with request-keyed deduplication,
// response normalization and bounded retry.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/endpoint"
	"github.com/aniko-app/aniko/internal/cache"
	"github.com/aniko-app/aniko/log"
	"github.com/aniko-app/aniko/network"
)

// call tracks one in-flight request so identical keys share a single round trip.
type call struct {
	done    chan struct{}
	payload json.RawMessage
	err     error
}

// Client resolves logical endpoints and fetches their payloads.
//
// The cache key is the exact resolved URL. Concurrent requests for the same key
// collapse into one network call; completed payloads are memoized for the process
// lifetime. An empty URL disables the request entirely.
type Client struct {
	resolver *endpoint.Resolver
	http     *http.Client

	mu       sync.Mutex
	inflight map[string]*call
	memo     map[string]json.RawMessage
}

// New returns a client bound to an explicit endpoint configuration snapshot.
func New(cfg endpoint.Config) *Client {
	return &Client{
		resolver: endpoint.NewResolver(cfg),
		http:     network.Client,
		inflight: make(map[string]*call),
		memo:     make(map[string]json.RawMessage),
	}
}

// Resolve exposes URL resolution without fetching, for consumers that only need
// the concrete URL (embeds, sitemap entries).
func (c *Client) Resolve(k endpoint.Key, params endpoint.Params) (string, error) {
	return c.resolver.Resolve(k, params)
}

// Get resolves and fetches a logical endpoint, returning the unwrapped inner
// payload. Stream and server payloads carry expiring links and bypass the
// cross-run disk cache.
func (c *Client) Get(ctx context.Context, k endpoint.Key, params endpoint.Params) (json.RawMessage, error) {
	u, err := c.resolver.Resolve(k, params)
	if err != nil {
		return nil, err
	}
	persist := k != endpoint.Stream && k != endpoint.Servers
	return c.Fetch(ctx, u, persist)
}

// Fetch retrieves the payload for an already-resolved URL.
func (c *Client) Fetch(ctx context.Context, u string, persist bool) (json.RawMessage, error) {
	if u == "" {
		// Disabled request: the caller gated it off.
		return nil, nil
	}

	c.mu.Lock()
	if payload, ok := c.memo[u]; ok {
		c.mu.Unlock()
		return payload, nil
	}
	if existing, ok := c.inflight[u]; ok {
		c.mu.Unlock()
		select {
		case <-existing.done:
			return existing.payload, existing.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	current := &call{done: make(chan struct{})}
	c.inflight[u] = current
	c.mu.Unlock()

	payload, err := c.do(ctx, u, persist)
	current.payload, current.err = payload, err

	c.mu.Lock()
	delete(c.inflight, u)
	if err == nil {
		c.memo[u] = payload
	}
	c.mu.Unlock()
	close(current.done)

	return payload, err
}

func (c *Client) do(ctx context.Context, u string, persist bool) (json.RawMessage, error) {
	full := c.fullURL(u)

	var cacheKey string
	if persist {
		cacheKey = cache.GenerateKey(full, "api")
		var cached json.RawMessage
		if cache.Read(cacheKey, &cached) {
			return cached, nil
		}
	}

	payload, err := c.request(ctx, full)
	if err != nil && ctx.Err() == nil {
		// One automatic retry, never more.
		log.Warnf("retrying %s after: %v", full, err)
		payload, err = c.request(ctx, full)
	}
	if err != nil {
		return nil, err
	}

	if persist {
		_ = cache.Write(cacheKey, payload)
	}
	return payload, nil
}

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// fullURL joins a relative path to the configured base with exactly one
// separating slash. Absolute URLs bypass the base entirely.
func (c *Client) fullURL(u string) string {
	if schemeRe.MatchString(u) {
		return u
	}
	base := strings.TrimRight(c.resolver.Config().BaseURL, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return base + u
}

func (c *Client) request(ctx context.Context, full string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")
	if accessKey := c.resolver.Config().AccessKey; accessKey != "" {
		req.Header.Set("x-api-key", accessKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := serverMessage(body)
		if message == "" {
			message = resp.Status
		}
		return nil, &Error{Kind: KindUpstream, Status: resp.StatusCode, Message: message}
	}

	return Unwrap(body), nil
}
