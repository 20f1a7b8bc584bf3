// Package store persists funding requests.
package store

import (
	"context"

	"fundready/internal/funding/models"
	id "fundready/pkg/domain"
)

// Store is the persistence port for funding requests.
type Store interface {
	Create(ctx context.Context, utility *models.Utility) error
	FindByID(ctx context.Context, utilityID id.FundingUtilityID) (*models.Utility, error)
	// ListByBusiness returns requests newest first.
	ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Utility, error)
	Update(ctx context.Context, utility *models.Utility) error
	// SubmitDrafts flips every DRAFT request of the business to SUBMITTED and
	// returns how many changed.
	SubmitDrafts(ctx context.Context, businessID id.BusinessID) (int, error)
	// TotalRequestedAmount sums amount_requested across the business's requests.
	TotalRequestedAmount(ctx context.Context, businessID id.BusinessID) (int64, error)
}
