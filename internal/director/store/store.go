// Package store persists directors.
package store

import (
	"context"

	"fundready/internal/director/models"
	id "fundready/pkg/domain"
)

// Store is the persistence port for directors.
type Store interface {
	Create(ctx context.Context, director *models.Director) error
	FindByID(ctx context.Context, directorID id.DirectorID) (*models.Director, error)
	// ListByBusiness returns directors in creation order.
	ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Director, error)
	Update(ctx context.Context, director *models.Director) error
	Delete(ctx context.Context, directorID id.DirectorID) error
	// ExistsByPAN reports whether a director with this PAN is already
	// registered under the business.
	ExistsByPAN(ctx context.Context, businessID id.BusinessID, pan string) (bool, error)
}
