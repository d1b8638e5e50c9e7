package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cabfare/backend/internal/domain"
)

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Value      []byte
	Expiration time.Time
}

// MemoryStore is a thread-safe in-memory comparison store with TTL support
type MemoryStore struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a new in-memory store and starts its expiry sweeper
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		data: make(map[string]cacheItem),
		now:  time.Now,
		stop: make(chan struct{}),
	}

	go store.cleanupExpired(10 * time.Minute)

	return store
}

// Save stores a comparison under its ID until ttl elapses
func (s *MemoryStore) Save(ctx context.Context, result *domain.ComparisonResult, ttl time.Duration) error {
	if result == nil || result.ID == "" {
		return domain.ErrInvalidRequest
	}

	// Stored encoded; Get always returns a fresh copy.
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode comparison: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[result.ID] = cacheItem{
		Value:      encoded,
		Expiration: s.now().Add(ttl),
	}
	return nil
}

// Get retrieves a comparison; expired entries read as not found
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.ComparisonResult, error) {
	s.mutex.RLock()
	item, exists := s.data[id]
	s.mutex.RUnlock()

	if !exists || s.now().After(item.Expiration) {
		return nil, domain.ErrComparisonNotFound
	}

	var result domain.ComparisonResult
	if err := json.Unmarshal(item.Value, &result); err != nil {
		return nil, fmt.Errorf("decode comparison: %w", err)
	}
	return &result, nil
}

// Delete removes a comparison from the store
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
	return nil
}

// Close stops the expiry sweeper and drops every stored comparison
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]cacheItem)
	return nil
}

// cleanupExpired removes expired entries from the store periodically
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	for key, item := range s.data {
		if now.After(item.Expiration) {
			delete(s.data, key)
		}
	}
}

// Size returns the number of stored comparisons, expired ones included
// until the next sweep
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.data)
}
