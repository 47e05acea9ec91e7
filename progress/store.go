package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/history"
	"github.com/aniko-app/aniko/source"
)

// ErrUnavailable marks the remote document store as unreachable, distinct from
// catalog fetch failures so the UI can explain that sync is degraded rather than
// that content failed to load.
var ErrUnavailable = errors.New("progress store unavailable")

// StoreError wraps a failed store operation with a user-facing explanation that
// distinguishes load from save failures.
type StoreError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *StoreError) Error() string {
	switch e.Op {
	case "load":
		return fmt.Sprintf("could not load your list: %v", e.Err)
	case "save":
		return fmt.Sprintf("could not save your progress: %v", e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store is the capability interface over a user's progress document.
//
// Every operation is keyed by userID. An empty result is only ever "no record
// exists"; a backend failure always surfaces as an error.
type Store interface {
	// GetAll returns the user's entire progress map keyed by anime id.
	GetAll(ctx context.Context, userID string) (map[string]UserProgress, error)

	// Add creates an On-Hold record iff none exists for the anime. Calling it
	// again without an intervening watch leaves the stored record unchanged.
	Add(ctx context.Context, userID string, anime *source.Anime) error

	// RecordEpisodeWatched upserts the record for the watched episode and mirrors
	// the event into the document's bounded watch-history list.
	RecordEpisodeWatched(ctx context.Context, userID string, detail *source.AnimeDetail, ep *source.Episode) error

	// Remove deletes the record if present; absent records are a no-op.
	Remove(ctx context.Context, userID, animeID string) error

	// History returns the document's mirrored watch-history list, most recent first.
	History(ctx context.Context, userID string) ([]history.Item, error)
}

// ForUser selects the backing store once per session: the demo identity runs
// exclusively against local storage and never performs network I/O; every other
// identity runs against the remote document store.
func ForUser(userID string) Store {
	if userID == constant.DemoUserID {
		return NewLocal()
	}
	return NewRemote()
}

// Document is the per-user unit of storage: the full progress map plus the
// mirrored watch-history ledger, read-modify-written wholesale.
type Document struct {
	Progress     map[string]UserProgress `json:"progress"`
	WatchHistory []history.Item          `json:"watchHistory"`
}

func emptyDocument() *Document {
	return &Document{Progress: make(map[string]UserProgress)}
}

// applyAdd inserts a fresh On-Hold record; reports whether the document changed.
func applyAdd(doc *Document, anime *source.Anime) bool {
	if doc.Progress == nil {
		doc.Progress = make(map[string]UserProgress)
	}
	if _, exists := doc.Progress[anime.ID]; exists {
		return false
	}
	doc.Progress[anime.ID] = newRecord(anime)
	return true
}

// applyWatch upserts the progress record and mirrors the event into the
// document's capped history list.
func applyWatch(doc *Document, detail *source.AnimeDetail, ep *source.Episode) {
	if doc.Progress == nil {
		doc.Progress = make(map[string]UserProgress)
	}
	doc.Progress[detail.ID] = watchedRecord(detail, ep)
	doc.WatchHistory = history.Push(doc.WatchHistory, history.NewItem(&detail.Anime, ep), constant.MirroredHistoryCap)
}

// applyRemove deletes the record; reports whether the document changed.
func applyRemove(doc *Document, animeID string) bool {
	if _, exists := doc.Progress[animeID]; !exists {
		return false
	}
	delete(doc.Progress, animeID)
	return true
}
