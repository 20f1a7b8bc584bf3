// Package service owns funding request workflows. Creation re-checks the
// fundability gate server-side against a fresh recomputation of the
// completion percentage, never a cached or client-supplied value.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	bizmodels "fundready/internal/business/models"
	"fundready/internal/completion"
	"fundready/internal/funding/models"
	"fundready/internal/platform/metrics"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/sentinel"
)

// Store is the persistence port for funding requests.
type Store interface {
	Create(ctx context.Context, utility *models.Utility) error
	FindByID(ctx context.Context, utilityID id.FundingUtilityID) (*models.Utility, error)
	ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Utility, error)
	Update(ctx context.Context, utility *models.Utility) error
	SubmitDrafts(ctx context.Context, businessID id.BusinessID) (int, error)
	TotalRequestedAmount(ctx context.Context, businessID id.BusinessID) (int64, error)
}

// BusinessReader resolves the caller's business.
type BusinessReader interface {
	FindByOwner(ctx context.Context, ownerID id.UserID) (*bizmodels.Business, error)
}

// Service owns the funding request lifecycle.
type Service struct {
	utilities  Store
	businesses BusinessReader
	completion *completion.Service
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(utilities Store, businesses BusinessReader, completionSvc *completion.Service, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		utilities:  utilities,
		businesses: businesses,
		completion: completionSvc,
		logger:     logger,
		metrics:    m,
	}
}

// Create opens a draft funding request for the caller's business, gated on a
// freshly recomputed completion percentage.
func (s *Service) Create(ctx context.Context, requesterID id.UserID, fields models.Fields) (*models.Utility, error) {
	business, err := s.businessOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	percent, err := s.completion.Calculate(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	if !completion.IsFundable(percent) {
		if s.metrics != nil {
			s.metrics.FundabilityRejected.Inc()
		}
		s.logger.InfoContext(ctx, "funding request rejected by fundability gate",
			"business_id", business.ID.String(),
			"percent", percent,
		)
		return nil, dErrors.Newf(dErrors.CodeNotFundable,
			"Profile must be at least 70%% complete to access funding options. Current: %d%%", percent)
	}

	utility, err := models.NewUtility(id.NewFundingUtilityID(), business.ID, fields, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.utilities.Create(ctx, utility); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create funding request")
	}
	return utility, nil
}

// Listing bundles the caller's funding requests with their total ask.
type Listing struct {
	Utilities            []models.Utility
	TotalRequestedAmount int64
}

// List returns the caller's funding requests newest first.
func (s *Service) List(ctx context.Context, requesterID id.UserID) (*Listing, error) {
	business, err := s.businessOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	utilities, err := s.utilities.ListByBusiness(ctx, business.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list funding requests")
	}
	total, err := s.utilities.TotalRequestedAmount(ctx, business.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum requested amounts")
	}
	return &Listing{Utilities: utilities, TotalRequestedAmount: total}, nil
}

// Submit flips every DRAFT request of the caller's business to SUBMITTED and
// reports how many changed.
func (s *Service) Submit(ctx context.Context, requesterID id.UserID) (int, error) {
	business, err := s.businessOf(ctx, requesterID)
	if err != nil {
		return 0, err
	}
	submitted, err := s.utilities.SubmitDrafts(ctx, business.ID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to submit funding requests")
	}
	return submitted, nil
}

// UpdateStatus moves one of the caller's funding requests along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, requesterID id.UserID, utilityID id.FundingUtilityID, next models.Status) (*models.Utility, error) {
	business, err := s.businessOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	utility, err := s.utilities.FindByID(ctx, utilityID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "funding request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load funding request")
	}
	if utility.BusinessID != business.ID {
		return nil, dErrors.New(dErrors.CodeNotFound, "funding request not found")
	}

	if err := utility.Transition(next, time.Now()); err != nil {
		return nil, err
	}
	if err := s.utilities.Update(ctx, utility); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update funding request")
	}
	return utility, nil
}

func (s *Service) businessOf(ctx context.Context, requesterID id.UserID) (*bizmodels.Business, error) {
	business, err := s.businesses.FindByOwner(ctx, requesterID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no business profile for this user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business")
	}
	return business, nil
}
