// Package store persists business profiles.
package store

import (
	"context"

	"fundready/internal/business/models"
	id "fundready/pkg/domain"
)

// Store is the persistence port for business aggregates. Implementations
// return sentinel errors (pkg/platform/sentinel) for not-found and conflict
// so services can translate them.
type Store interface {
	// Create inserts a new business. Returns sentinel.ErrConflict when the
	// owner already has one.
	Create(ctx context.Context, business *models.Business) error
	FindByID(ctx context.Context, businessID id.BusinessID) (*models.Business, error)
	FindByOwner(ctx context.Context, ownerID id.UserID) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	// SetCompletionPercent persists the cached score. The cached value is
	// advisory; the scoring engine can always recompute it from scratch.
	SetCompletionPercent(ctx context.Context, businessID id.BusinessID, percent int) error
}
