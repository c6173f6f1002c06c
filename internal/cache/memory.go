package cache

import (
	"context"       // Request-scoped context
	"encoding/json" // JSON encoding/decoding
	"sync"          // Guards the hit-and-refresh step
	"time"          // Sliding expiration window

	lru "github.com/hashicorp/golang-lru/v2" // Bounded LRU
)

// entry is a cached JSON payload and its current deadline
type entry struct {
	payload []byte    // Marshalled value
	expires time.Time // Deadline, pushed forward on every hit
}

// Memory is a process-local Store backed by a bounded LRU.
type Memory struct {
	mu  sync.Mutex                // Makes the hit and the deadline refresh one step
	ttl time.Duration             // Sliding window
	lru *lru.Cache[string, entry] // Bounded storage
	now func() time.Time          // Clock, replaced in tests
}

// NewMemory creates an in-process cache holding at most size keys
func NewMemory(size int, ttl time.Duration) (*Memory, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err // Size must be positive
	}
	return &Memory{
		ttl: ttl,      // Sliding window
		lru: c,        // LRU storage
		now: time.Now, // Wall clock
	}, nil
}

// Get decodes a live entry into dest and restarts its lifetime
func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	now := m.now() // Read the clock before locking
	m.mu.Lock()
	e, ok := m.lru.Get(key)
	if !ok {
		m.mu.Unlock()
		return false, nil // Key does not exist
	}
	if !now.Before(e.expires) {
		m.lru.Remove(key) // Expired, drop it
		m.mu.Unlock()
		return false, nil
	}
	e.expires = now.Add(m.ttl) // Sliding: every hit restarts the lifetime
	m.lru.Add(key, e)
	m.mu.Unlock()
	return true, json.Unmarshal(e.payload, dest) // Unmarshal JSON into dest
}

// Set stores value as JSON with a fresh lifetime
func (m *Memory) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Add(key, entry{payload: b, expires: now.Add(m.ttl)})
	return nil
}

// Invalidate drops the key
func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Remove(key) // Delete key from the LRU
	return nil
}
