package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketDirectory = []byte("directory")
	bucketRecent    = []byte("recent")
)

var allBuckets = [][]byte{bucketDirectory, bucketRecent}

// DirectoryStore implements domain.Store using BoltDB.
type DirectoryStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewDirectoryStore opens matchday.db under a per-server subdirectory of
// baseCacheDir. An empty baseCacheDir keeps everything in memory.
func NewDirectoryStore(baseCacheDir, serverURL string) (*DirectoryStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &DirectoryStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "matchday.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DirectoryStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *DirectoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *DirectoryStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *DirectoryStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// clear empties the given buckets in memory and on disk
func (s *DirectoryStore) clear(buckets ...[]byte) {
	s.mu.Lock()
	for k := range s.cache {
		for _, bucket := range buckets {
			if strings.HasPrefix(k, string(bucket)+":") {
				delete(s.cache, k)
			}
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			b := tx.Bucket(bucket)
			var keys [][]byte
			b.ForEach(func(k, _ []byte) error {
				keys = append(keys, append([]byte(nil), k...))
				return nil
			})
			for _, k := range keys {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// === Directory (keys: {kind}:list, {kind}:ts) ===

func (s *DirectoryStore) GetParents(kind domain.ParentKind) ([]domain.Parent, bool) {
	var parents []domain.Parent
	ok := s.get(bucketDirectory, string(kind)+":list", &parents)
	return parents, ok
}

func (s *DirectoryStore) SaveParents(kind domain.ParentKind, parents []domain.Parent, fetchedAt time.Time) error {
	if parents == nil {
		parents = []domain.Parent{}
	}
	if err := s.set(bucketDirectory, string(kind)+":list", parents); err != nil {
		return err
	}
	// Timestamp kept separately for freshness checks
	return s.set(bucketDirectory, string(kind)+":ts", fetchedAt.Unix())
}

// IsFresh reports whether the directory for kind was saved within maxAge.
// A non-positive maxAge never expires.
func (s *DirectoryStore) IsFresh(kind domain.ParentKind, maxAge time.Duration, now time.Time) bool {
	var storedTS int64
	if !s.get(bucketDirectory, string(kind)+":ts", &storedTS) {
		return false
	}
	if maxAge <= 0 {
		return true
	}
	return now.Sub(time.Unix(storedTS, 0)) < maxAge
}

// === Recent parents ===

func (s *DirectoryStore) GetRecent() []domain.Parent {
	var recent []domain.Parent
	if !s.get(bucketRecent, "list", &recent) {
		return []domain.Parent{}
	}
	return recent
}

// TouchRecent moves p to the front of the recent list, trimming it to limit
func (s *DirectoryStore) TouchRecent(p domain.Parent, limit int) error {
	recent := s.GetRecent()

	next := make([]domain.Parent, 0, len(recent)+1)
	next = append(next, p)
	for _, r := range recent {
		if r.Kind == p.Kind && r.ID == p.ID {
			continue
		}
		next = append(next, r)
	}
	if limit > 0 && len(next) > limit {
		next = next[:limit]
	}
	return s.set(bucketRecent, "list", next)
}

// === Invalidation ===

func (s *DirectoryStore) InvalidateDirectory() {
	s.clear(bucketDirectory)
}

func (s *DirectoryStore) InvalidateAll() {
	s.clear(allBuckets...)
}
