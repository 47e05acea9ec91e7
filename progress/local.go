package progress

import (
	"context"
	"sync"

	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/history"
	"github.com/aniko-app/aniko/source"
	"github.com/aniko-app/aniko/where"
	"github.com/metafates/gache"
)

// LocalStore mirrors the cloud document schema on the local filesystem. It backs
// the demo identity and performs no network I/O whatsoever.
type LocalStore struct {
	mu     sync.Mutex
	cacher *gache.Cache[*Document]
}

// NewLocal opens the local mirror at its standard path.
func NewLocal() *LocalStore {
	return NewLocalAt(where.MockCloud())
}

// NewLocalAt opens a local mirror at an explicit path.
func NewLocalAt(path string) *LocalStore {
	return &LocalStore{
		cacher: gache.New[*Document](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// load reads the stored document. Corrupt or missing local state degrades to an
// empty document; local storage failures are never surfaced as sync errors.
func (s *LocalStore) load() *Document {
	doc, expired, err := s.cacher.Get()
	if err != nil || expired || doc == nil {
		return emptyDocument()
	}
	if doc.Progress == nil {
		doc.Progress = make(map[string]UserProgress)
	}
	return doc
}

func (s *LocalStore) save(doc *Document) error {
	if err := s.cacher.Set(doc); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}

func (s *LocalStore) GetAll(_ context.Context, _ string) (map[string]UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Progress, nil
}

func (s *LocalStore) Add(_ context.Context, _ string, anime *source.Anime) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if !applyAdd(doc, anime) {
		return nil
	}
	return s.save(doc)
}

func (s *LocalStore) RecordEpisodeWatched(_ context.Context, _ string, detail *source.AnimeDetail, ep *source.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	applyWatch(doc, detail, ep)
	return s.save(doc)
}

func (s *LocalStore) Remove(_ context.Context, _, animeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if !applyRemove(doc, animeID) {
		return nil
	}
	return s.save(doc)
}

func (s *LocalStore) History(_ context.Context, _ string) ([]history.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().WatchHistory, nil
}
