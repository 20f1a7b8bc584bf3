// Package service owns director workflows. Every mutation refreshes the
// business's cached completion percentage, since director KYC fields feed
// two of the six scored sections.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	bizmodels "fundready/internal/business/models"
	"fundready/internal/completion"
	"fundready/internal/director/models"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/sentinel"
)

// Store is the persistence port for directors.
type Store interface {
	Create(ctx context.Context, director *models.Director) error
	FindByID(ctx context.Context, directorID id.DirectorID) (*models.Director, error)
	ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Director, error)
	Update(ctx context.Context, director *models.Director) error
	Delete(ctx context.Context, directorID id.DirectorID) error
	ExistsByPAN(ctx context.Context, businessID id.BusinessID, pan string) (bool, error)
}

// BusinessReader resolves businesses for ownership checks.
type BusinessReader interface {
	FindByID(ctx context.Context, businessID id.BusinessID) (*bizmodels.Business, error)
}

// Service owns director CRUD under a business.
type Service struct {
	directors  Store
	businesses BusinessReader
	completion *completion.Service
	logger     *slog.Logger
}

func NewService(directors Store, businesses BusinessReader, completionSvc *completion.Service, logger *slog.Logger) *Service {
	return &Service{
		directors:  directors,
		businesses: businesses,
		completion: completionSvc,
		logger:     logger,
	}
}

// Create registers a director under the requester's business. A PAN already
// registered under the same business is rejected.
func (s *Service) Create(ctx context.Context, businessID id.BusinessID, requesterID id.UserID, fields models.Fields) (*models.Director, error) {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return nil, err
	}
	if err := s.requirePANAvailable(ctx, businessID, fields.PAN); err != nil {
		return nil, err
	}

	director, err := models.NewDirector(id.NewDirectorID(), businessID, fields, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.directors.Create(ctx, director); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create director")
	}

	s.completion.Recalculate(ctx, businessID)
	return director, nil
}

// Listing bundles the directors with the auxiliary KYC field metric.
type Listing struct {
	Directors            []models.Director
	KYCCompletionPercent int
}

// List returns the business's directors in creation order, plus the share of
// filled KYC fields across all of them.
func (s *Service) List(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) (*Listing, error) {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return nil, err
	}
	directors, err := s.directors.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list directors")
	}
	return &Listing{
		Directors:            directors,
		KYCCompletionPercent: completion.KYCFieldCompletionPercent(directors),
	}, nil
}

// Update applies a partial update to a director.
func (s *Service) Update(ctx context.Context, businessID id.BusinessID, directorID id.DirectorID, requesterID id.UserID, update models.Update) (*models.Director, error) {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return nil, err
	}
	director, err := s.findInBusiness(ctx, businessID, directorID)
	if err != nil {
		return nil, err
	}
	if update.PAN != nil && *update.PAN != director.PAN {
		if err := s.requirePANAvailable(ctx, businessID, *update.PAN); err != nil {
			return nil, err
		}
	}
	if err := director.Apply(update, time.Now()); err != nil {
		return nil, err
	}
	if err := s.directors.Update(ctx, director); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "director not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update director")
	}

	s.completion.Recalculate(ctx, businessID)
	return director, nil
}

// Delete removes a director from the business.
func (s *Service) Delete(ctx context.Context, businessID id.BusinessID, directorID id.DirectorID, requesterID id.UserID) error {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return err
	}
	if _, err := s.findInBusiness(ctx, businessID, directorID); err != nil {
		return err
	}
	if err := s.directors.Delete(ctx, directorID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "director not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete director")
	}

	s.completion.Recalculate(ctx, businessID)
	return nil
}

func (s *Service) requireOwnedBusiness(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) error {
	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "business not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	if business.OwnerID != requesterID {
		return dErrors.New(dErrors.CodeForbidden, "business belongs to another user")
	}
	return nil
}

func (s *Service) requirePANAvailable(ctx context.Context, businessID id.BusinessID, pan string) error {
	if pan == "" {
		return nil
	}
	exists, err := s.directors.ExistsByPAN(ctx, businessID, pan)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check PAN")
	}
	if exists {
		return dErrors.New(dErrors.CodeConflict, "a director with this PAN is already registered")
	}
	return nil
}

func (s *Service) findInBusiness(ctx context.Context, businessID id.BusinessID, directorID id.DirectorID) (*models.Director, error) {
	director, err := s.directors.FindByID(ctx, directorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "director not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load director")
	}
	if director.BusinessID != businessID {
		return nil, dErrors.New(dErrors.CodeNotFound, "director not found")
	}
	return director, nil
}
