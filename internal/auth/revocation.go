package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// RevocationStore records tokens invalidated before their natural expiry.
// Keys are token hashes (see HashToken); expiresAt lets a store forget an
// entry once the token could no longer verify anyway.
type RevocationStore interface {
	Add(ctx context.Context, tokenHash string, expiresAt time.Time) error
	Contains(ctx context.Context, tokenHash string) (bool, error)
}

// HashToken returns SHA256 hex of the token
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// MemoryRevocations is a process-local RevocationStore. Contents are lost on restart.
type MemoryRevocations struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations creates an empty in-memory revocation set
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Add records the token hash. Re-adding keeps the later expiry. Entries that
// have already expired are pruned on the way.
func (m *MemoryRevocations) Add(_ context.Context, tokenHash string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked(m.now())
	if prev, ok := m.revoked[tokenHash]; !ok || expiresAt.After(prev) {
		m.revoked[tokenHash] = expiresAt
	}
	return nil
}

// Contains reports whether the token hash has been revoked
func (m *MemoryRevocations) Contains(_ context.Context, tokenHash string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.revoked[tokenHash]
	return ok, nil
}

// Prune removes entries whose token would have expired by now and returns how many were dropped
func (m *MemoryRevocations) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(now)
}

// Len returns the number of tracked revocations
func (m *MemoryRevocations) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.revoked)
}

func (m *MemoryRevocations) pruneLocked(now time.Time) int {
	removed := 0
	for hash, expiresAt := range m.revoked {
		if !expiresAt.After(now) {
			delete(m.revoked, hash)
			removed++
		}
	}
	return removed
}
