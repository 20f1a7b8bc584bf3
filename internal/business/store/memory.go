package store

import (
	"context"
	"sync"
	"time"

	"fundready/internal/business/models"
	id "fundready/pkg/domain"
	"fundready/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu         sync.RWMutex
	businesses map[id.BusinessID]*models.Business
	byOwner    map[id.UserID]id.BusinessID
}

func NewInMemory() *InMemory {
	return &InMemory{
		businesses: make(map[id.BusinessID]*models.Business),
		byOwner:    make(map[id.UserID]id.BusinessID),
	}
}

func (s *InMemory) Create(_ context.Context, business *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byOwner[business.OwnerID]; exists {
		return sentinel.ErrConflict
	}
	cp := *business
	s.businesses[business.ID] = &cp
	s.byOwner[business.OwnerID] = business.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, businessID id.BusinessID) (*models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	business, ok := s.businesses[businessID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *business
	return &cp, nil
}

func (s *InMemory) FindByOwner(_ context.Context, ownerID id.UserID) (*models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	businessID, ok := s.byOwner[ownerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.businesses[businessID]
	return &cp, nil
}

func (s *InMemory) Update(_ context.Context, business *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.businesses[business.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *business
	s.businesses[business.ID] = &cp
	return nil
}

func (s *InMemory) SetCompletionPercent(_ context.Context, businessID id.BusinessID, percent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	business, ok := s.businesses[businessID]
	if !ok {
		return sentinel.ErrNotFound
	}
	business.CompletionPercent = percent
	business.UpdatedAt = time.Now()
	return nil
}
