// Package cache provides localized filesystem-based caching for transient upstream API payloads.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/aniko-app/aniko/filesystem"
	"github.com/aniko-app/aniko/where"
)

const TTL = 24 * time.Hour

// GenerateKey generates a deterministic SHA-256 hash from a request URL and scope pair for use as a cache identifier.
func GenerateKey(url, scope string) string {
	sanitized := strings.ToLower(url) + scope
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

func pathFor(key string) string {
	return filepath.Join(where.Cache(), key)
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(key string, target interface{}) bool {
	path := pathFor(key)
	fs := filesystem.API()

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		return false
	}
	return true
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(key string, data interface{}) error {
	path := pathFor(key)
	tmpPath := path + ".tmp"
	fs := filesystem.API()

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return fs.Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired cache entries from the filesystem.
func CollectGarbage() {
	go collectGarbage()
}

func collectGarbage() {
	fs := filesystem.API()
	dir := where.Cache()
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if time.Since(entry.ModTime()) > TTL {
			_ = fs.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
