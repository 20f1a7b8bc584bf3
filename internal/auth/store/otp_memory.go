package store

import (
	"context"
	"sync"
	"time"

	"fundready/internal/auth/models"
	"fundready/pkg/platform/sentinel"
)

type otpEntry struct {
	challenge models.Challenge
	expiresAt time.Time
}

// InMemoryOTPStore is a map-backed OTPStore for unit tests. Expiry is
// checked lazily on read.
type InMemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]*otpEntry
	now     func() time.Time
}

func NewInMemoryOTPStore() *InMemoryOTPStore {
	return &InMemoryOTPStore{
		entries: make(map[string]*otpEntry),
		now:     time.Now,
	}
}

// SetClock overrides the store's clock, letting tests move time forward.
func (s *InMemoryOTPStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *InMemoryOTPStore) Put(_ context.Context, challenge *models.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[challenge.Phone] = &otpEntry{
		challenge: *challenge,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *InMemoryOTPStore) Get(_ context.Context, phone string) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, phone)
		return nil, sentinel.ErrNotFound
	}
	cp := entry.challenge
	return &cp, nil
}

func (s *InMemoryOTPStore) RecordAttempt(_ context.Context, phone string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	entry.challenge.Attempts++
	return entry.challenge.Attempts, nil
}

func (s *InMemoryOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
	return nil
}
