package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"fundready/internal/funding/models"
	id "fundready/pkg/domain"
	"fundready/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu        sync.RWMutex
	utilities map[id.FundingUtilityID]*models.Utility
}

func NewInMemory() *InMemory {
	return &InMemory{utilities: make(map[id.FundingUtilityID]*models.Utility)}
}

func (s *InMemory) Create(_ context.Context, utility *models.Utility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *utility
	s.utilities[utility.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, utilityID id.FundingUtilityID) (*models.Utility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	utility, ok := s.utilities[utilityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *utility
	return &cp, nil
}

func (s *InMemory) ListByBusiness(_ context.Context, businessID id.BusinessID) ([]models.Utility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Utility
	for _, utility := range s.utilities {
		if utility.BusinessID == businessID {
			out = append(out, *utility)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) Update(_ context.Context, utility *models.Utility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.utilities[utility.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *utility
	s.utilities[utility.ID] = &cp
	return nil
}

func (s *InMemory) SubmitDrafts(_ context.Context, businessID id.BusinessID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	submitted := 0
	now := time.Now()
	for _, utility := range s.utilities {
		if utility.BusinessID == businessID && utility.Status == models.StatusDraft {
			utility.Status = models.StatusSubmitted
			utility.UpdatedAt = now
			submitted++
		}
	}
	return submitted, nil
}

func (s *InMemory) TotalRequestedAmount(_ context.Context, businessID id.BusinessID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, utility := range s.utilities {
		if utility.BusinessID == businessID {
			total += utility.AmountRequested
		}
	}
	return total, nil
}
