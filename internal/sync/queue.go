// Package sync implements an offline queue for cloud document writes that failed,
// flushed with backoff on a later startup.
package sync

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/where"
)

// PendingWrite is one deferred document replacement.
type PendingWrite struct {
	Timestamp int64           `json:"timestamp"`
	UserID    string          `json:"user_id"`
	Document  json.RawMessage `json:"document"`
}

// Queue appends a failed document write to the local deferral log.
// Later writes for the same user supersede earlier ones at flush time.
func Queue(userID string, document any) error {
	raw, err := json.Marshal(document)
	if err != nil {
		return err
	}

	f, err := filesystem.API().OpenFile(where.PendingSync(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(PendingWrite{
		Timestamp: time.Now().Unix(),
		UserID:    userID,
		Document:  raw,
	})
}

// Load returns the queued writes, newest write per user winning. A missing or
// unreadable log is an empty queue.
func Load() []PendingWrite {
	content, err := filesystem.API().ReadFile(where.PendingSync())
	if err != nil || len(content) == 0 {
		return nil
	}

	latest := make(map[string]PendingWrite)
	var order []string
	decoder := json.NewDecoder(bytes.NewReader(content))
	for decoder.More() {
		var w PendingWrite
		if err := decoder.Decode(&w); err != nil {
			// Corrupt local state: treat the remainder as absent.
			break
		}
		if _, seen := latest[w.UserID]; !seen {
			order = append(order, w.UserID)
		}
		latest[w.UserID] = w
	}

	writes := make([]PendingWrite, 0, len(latest))
	for _, userID := range order {
		writes = append(writes, latest[userID])
	}
	return writes
}

// Reconcile replays queued writes through put, applying incremental backoff with
// jitter between attempts. The log is truncated only when every write succeeds.
func Reconcile(put func(userID string, document json.RawMessage) error) {
	writes := Load()
	if len(writes) == 0 {
		return
	}

	succeeded := 0
	for i, w := range writes {
		backoff := time.Duration((1<<i)*100)*time.Millisecond + time.Duration(rand.Intn(100))*time.Millisecond
		time.Sleep(backoff)

		if err := put(w.UserID, w.Document); err == nil {
			succeeded++
		}
	}

	if succeeded == len(writes) {
		_ = filesystem.API().WriteFile(where.PendingSync(), nil, 0644)
	}
}
