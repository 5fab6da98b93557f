// Package store persists small bits of session state between runs: the
// active tab (the original app kept this in browser localStorage) and the
// last-fetched collection snapshots, so the UI can render instantly while
// a fresh fetch runs in the background.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nvidela/duet/internal/domain"
)

// Bucket names
var (
	bucketPrefs    = []byte("prefs")
	bucketMovies   = []byte("movies")
	bucketCoupons  = []byte("coupons")
	bucketProducts = []byte("products")
	bucketPet      = []byte("pet")
)

var allBuckets = [][]byte{bucketPrefs, bucketMovies, bucketCoupons, bucketProducts, bucketPet}

const keyActiveTab = "active_tab"

// Store wraps BoltDB with an in-memory hot map for repeated reads.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex

	hot map[string][]byte
}

// New opens (or creates) the store at path. An empty path yields a
// memory-only store with no persistence, used by tests.
func New(path string) (*Store, error) {
	if path == "" {
		return &Store{hot: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
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

	return &Store{db: db, hot: make(map[string][]byte)}, nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	hotKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.hot[hotKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}

	s.mu.Lock()
	s.hot[hotKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) put(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.hot[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// === Preferences ===

// ActiveTab returns the tab the user was last on
func (s *Store) ActiveTab() (string, bool) {
	var tab string
	ok := s.get(bucketPrefs, keyActiveTab, &tab)
	return tab, ok
}

// SaveActiveTab persists the current tab
func (s *Store) SaveActiveTab(tab string) error {
	return s.put(bucketPrefs, keyActiveTab, tab)
}

// === Collection snapshots ===

// Movies returns the last persisted slice for a list
func (s *Store) Movies(list domain.ListName) ([]*domain.Movie, bool) {
	var movies []*domain.Movie
	ok := s.get(bucketMovies, string(list), &movies)
	return movies, ok
}

// SaveMovies persists a fetched slice for a list
func (s *Store) SaveMovies(list domain.ListName, movies []*domain.Movie) error {
	return s.put(bucketMovies, string(list), movies)
}

// Coupons returns the last persisted slice for an owner
func (s *Store) Coupons(owner string) ([]*domain.Coupon, bool) {
	var coupons []*domain.Coupon
	ok := s.get(bucketCoupons, owner, &coupons)
	return coupons, ok
}

// SaveCoupons persists a fetched slice for an owner
func (s *Store) SaveCoupons(owner string, coupons []*domain.Coupon) error {
	return s.put(bucketCoupons, owner, coupons)
}

// Products returns the last persisted wishlist
func (s *Store) Products() ([]*domain.Product, bool) {
	var products []*domain.Product
	ok := s.get(bucketProducts, "all", &products)
	return products, ok
}

// SaveProducts persists the wishlist
func (s *Store) SaveProducts(products []*domain.Product) error {
	return s.put(bucketProducts, "all", products)
}

// Pet returns the last persisted pet state
func (s *Store) Pet() (*domain.Pet, bool) {
	var pet domain.Pet
	if !s.get(bucketPet, "state", &pet) {
		return nil, false
	}
	return &pet, true
}

// SavePet persists the pet state
func (s *Store) SavePet(pet *domain.Pet) error {
	return s.put(bucketPet, "state", pet)
}

// InvalidateAll wipes every snapshot but keeps preferences
func (s *Store) InvalidateAll() error {
	s.mu.Lock()
	for key := range s.hot {
		if !strings.HasPrefix(key, "prefs:") {
			delete(s.hot, key)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMovies, bucketCoupons, bucketProducts, bucketPet} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
