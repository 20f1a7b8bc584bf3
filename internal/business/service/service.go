// Package service orchestrates business profile operations: creation seeds
// the five document buckets in the same transaction, and every mutation
// refreshes the cached completion percentage before the response is written.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fundready/internal/business/models"
	"fundready/internal/completion"
	docmodels "fundready/internal/document/models"
	"fundready/internal/platform/metrics"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/sentinel"
	"fundready/pkg/platform/tx"
)

// Store is the persistence port the service needs for businesses.
type Store interface {
	Create(ctx context.Context, business *models.Business) error
	FindByID(ctx context.Context, businessID id.BusinessID) (*models.Business, error)
	FindByOwner(ctx context.Context, ownerID id.UserID) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
}

// GroupStore seeds and lists the per-business document buckets.
type GroupStore interface {
	CreateGroups(ctx context.Context, groups []docmodels.DocumentGroup) error
	ListGroupsByBusiness(ctx context.Context, businessID id.BusinessID) ([]docmodels.DocumentGroup, error)
}

// Service owns the business aggregate's workflows.
type Service struct {
	businesses Store
	groups     GroupStore
	completion *completion.Service
	txRunner   tx.Runner
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(
	businesses Store,
	groups GroupStore,
	completionSvc *completion.Service,
	txRunner tx.Runner,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		businesses: businesses,
		groups:     groups,
		completion: completionSvc,
		txRunner:   txRunner,
		logger:     logger,
		metrics:    m,
	}
}

// Create registers the owner's business profile and seeds its five document
// buckets in one transaction. Each owner gets exactly one business.
func (s *Service) Create(ctx context.Context, ownerID id.UserID, fields models.Fields) (*models.Business, error) {
	business, err := models.NewBusiness(id.NewBusinessID(), ownerID, fields, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.businesses.Create(ctx, business); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "a business profile already exists for this user")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create business")
		}
		if err := s.groups.CreateGroups(ctx, docmodels.NewGroups(business.ID, business.CreatedAt)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed document groups")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BusinessesCreated.Inc()
	}
	s.completion.Recalculate(ctx, business.ID)
	return s.find(ctx, business.ID)
}

// Profile returns the owner's business together with its document groups.
type Profile struct {
	Business *models.Business
	Groups   []docmodels.DocumentGroup
}

// ProfileByOwner fetches the caller's business and its buckets.
func (s *Service) ProfileByOwner(ctx context.Context, ownerID id.UserID) (*Profile, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no business profile for this user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	groups, err := s.groups.ListGroupsByBusiness(ctx, business.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document groups")
	}
	return &Profile{Business: business, Groups: groups}, nil
}

// Get fetches a business by ID, enforcing that the requester owns it.
func (s *Service) Get(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) (*models.Business, error) {
	business, err := s.find(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(business, requesterID); err != nil {
		return nil, err
	}
	return business, nil
}

// Update applies a partial update to the requester's business and recomputes
// the completion percentage.
func (s *Service) Update(ctx context.Context, businessID id.BusinessID, requesterID id.UserID, update models.Update) (*models.Business, error) {
	business, err := s.Get(ctx, businessID, requesterID)
	if err != nil {
		return nil, err
	}
	if err := business.Apply(update, time.Now()); err != nil {
		return nil, err
	}
	if err := s.businesses.Update(ctx, business); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "business not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update business")
	}

	s.completion.Recalculate(ctx, businessID)
	return s.find(ctx, businessID)
}

// Completion serves the full completion view for the requester's business.
func (s *Service) Completion(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) (*completion.Overview, error) {
	business, err := s.find(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(business, requesterID); err != nil {
		return nil, err
	}
	return s.completion.Overview(ctx, businessID)
}

func (s *Service) find(ctx context.Context, businessID id.BusinessID) (*models.Business, error) {
	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "business not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	return business, nil
}

func requireOwner(business *models.Business, requesterID id.UserID) error {
	if business.OwnerID != requesterID {
		return dErrors.New(dErrors.CodeForbidden, "business belongs to another user")
	}
	return nil
}
