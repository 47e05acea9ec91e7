package history

import (
	"sync"

	"github.com/aniko-app/aniko/constant"
	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/where"
	"github.com/metafates/gache"
)

// Ledger is a capped, most-recent-first log of watched episodes backed by a
// local file. It never touches the remote store.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	cacher   *gache.Cache[[]Item]
}

// NewLedger opens a ledger at the given path with a fixed capacity.
func NewLedger(path string, capacity int) *Ledger {
	return &Ledger{
		capacity: capacity,
		cacher: gache.New[[]Item](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Record inserts an entry at the front of the ledger, deduplicating by anime id
// and truncating to capacity.
func (l *Ledger) Record(item Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load()
	if err != nil {
		return err
	}
	return l.cacher.Set(Push(items, item, l.capacity))
}

// All returns a most-recent-first snapshot of the ledger.
func (l *Ledger) All() ([]Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Clear empties the ledger.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cacher.Set([]Item{})
}

// load reads the stored entries. Corrupt or missing local state degrades to an
// empty ledger rather than an error surfaced to the user.
func (l *Ledger) load() ([]Item, error) {
	items, expired, err := l.cacher.Get()
	if err != nil || expired || items == nil {
		return []Item{}, nil
	}
	return items, nil
}

var (
	sessionOnce sync.Once
	session     *Ledger
)

// Session returns the process-wide local session ledger.
func Session() *Ledger {
	sessionOnce.Do(func() {
		session = NewLedger(where.History(), constant.SessionHistoryCap)
	})
	return session
}
