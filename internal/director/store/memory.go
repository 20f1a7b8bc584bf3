package store

import (
	"context"
	"sort"
	"sync"

	"fundready/internal/director/models"
	id "fundready/pkg/domain"
	"fundready/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu        sync.RWMutex
	directors map[id.DirectorID]*models.Director
}

func NewInMemory() *InMemory {
	return &InMemory{directors: make(map[id.DirectorID]*models.Director)}
}

func (s *InMemory) Create(_ context.Context, director *models.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *director
	s.directors[director.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, directorID id.DirectorID) (*models.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	director, ok := s.directors[directorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *director
	return &cp, nil
}

func (s *InMemory) ListByBusiness(_ context.Context, businessID id.BusinessID) ([]models.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Director
	for _, director := range s.directors {
		if director.BusinessID == businessID {
			out = append(out, *director)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) Update(_ context.Context, director *models.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.directors[director.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *director
	s.directors[director.ID] = &cp
	return nil
}

func (s *InMemory) Delete(_ context.Context, directorID id.DirectorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.directors[directorID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.directors, directorID)
	return nil
}

func (s *InMemory) ExistsByPAN(_ context.Context, businessID id.BusinessID, pan string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, director := range s.directors {
		if director.BusinessID == businessID && director.PAN != "" && director.PAN == pan {
			return true, nil
		}
	}
	return false, nil
}
