package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aniko-app/aniko/auth"
	"github.com/aniko-app/aniko/history"
	syncq "github.com/aniko-app/aniko/internal/sync"
	"github.com/aniko-app/aniko/key"
	"github.com/aniko-app/aniko/log"
	"github.com/aniko-app/aniko/network"
	"github.com/aniko-app/aniko/source"
	"github.com/spf13/viper"
)

// RemoteStore keeps a user's progress in the cloud document store: one document
// per user, read-modify-written wholesale.
//
// Every write re-sends the whole document, so operations read before writing to
// avoid clobbering concurrent changes from another device. Two concurrent writers
// can still race and the later write wins wholesale; that last-writer-wins model
// is the store's contract, not an oversight.
type RemoteStore struct {
	baseURL string
	project string
	token   func() (string, error)
	http    *http.Client
}

// NewRemote builds a store from the ambient cloud configuration.
func NewRemote() *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(viper.GetString(key.CloudBaseURL), "/"),
		project: viper.GetString(key.CloudProject),
		token:   auth.Token,
		http:    network.Client,
	}
}

func (s *RemoteStore) documentURL(userID string) string {
	return fmt.Sprintf("%s/projects/%s/users/%s/document", s.baseURL, s.project, url.PathEscape(userID))
}

func (s *RemoteStore) authorize(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if token, err := s.token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// fetch loads the user's document. A missing document is an empty one; anything
// else that goes wrong is a load failure, never silently an empty result.
func (s *RemoteStore) fetch(ctx context.Context, userID string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.documentURL(userID), nil)
	if err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	s.authorize(req)

	resp, err := s.http.Do(req)
	if err != nil {
		log.Error(err)
		return nil, &StoreError{Op: "load", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return emptyDocument(), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StoreError{Op: "load", Err: fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &StoreError{Op: "load", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}

	doc := emptyDocument()
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	if doc.Progress == nil {
		doc.Progress = make(map[string]UserProgress)
	}
	return doc, nil
}

// put replaces the user's document wholesale. A failed write is queued locally
// for deferred reconciliation before the error is surfaced.
func (s *RemoteStore) put(ctx context.Context, userID string, doc *Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}

	if err := s.putRaw(ctx, userID, body); err != nil {
		log.Error(err)
		if queueErr := syncq.Queue(userID, doc); queueErr != nil {
			log.Error(queueErr)
		}
		return &StoreError{Op: "save", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	return nil
}

func (s *RemoteStore) putRaw(ctx context.Context, userID string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.documentURL(userID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.authorize(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func (s *RemoteStore) GetAll(ctx context.Context, userID string) (map[string]UserProgress, error) {
	doc, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doc.Progress, nil
}

func (s *RemoteStore) Add(ctx context.Context, userID string, anime *source.Anime) error {
	doc, err := s.fetch(ctx, userID)
	if err != nil {
		return err
	}
	if !applyAdd(doc, anime) {
		return nil
	}
	return s.put(ctx, userID, doc)
}

func (s *RemoteStore) RecordEpisodeWatched(ctx context.Context, userID string, detail *source.AnimeDetail, ep *source.Episode) error {
	doc, err := s.fetch(ctx, userID)
	if err != nil {
		return err
	}
	applyWatch(doc, detail, ep)
	return s.put(ctx, userID, doc)
}

func (s *RemoteStore) Remove(ctx context.Context, userID, animeID string) error {
	doc, err := s.fetch(ctx, userID)
	if err != nil {
		return err
	}
	if !applyRemove(doc, animeID) {
		return nil
	}
	return s.put(ctx, userID, doc)
}

func (s *RemoteStore) History(ctx context.Context, userID string) ([]history.Item, error) {
	doc, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doc.WatchHistory, nil
}

// ReconcilePending replays queued document writes against the remote store.
// Intended to run in the background at startup.
func ReconcilePending() {
	reconcile(NewRemote())
}

func reconcile(store *RemoteStore) {
	syncq.Reconcile(func(userID string, document json.RawMessage) error {
		return store.putRaw(context.Background(), userID, document)
	})
}
