// Package store persists document groups and document metadata.
package store

import (
	"context"

	"fundready/internal/document/models"
	id "fundready/pkg/domain"
)

// GroupStore is the persistence port for document groups.
type GroupStore interface {
	// CreateGroups inserts the default buckets for a new business.
	CreateGroups(ctx context.Context, groups []models.DocumentGroup) error
	FindGroupByID(ctx context.Context, groupID id.DocumentGroupID) (*models.DocumentGroup, error)
	FindGroupByType(ctx context.Context, businessID id.BusinessID, groupType models.GroupType) (*models.DocumentGroup, error)
	ListGroupsByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.DocumentGroup, error)
	UpdateGroupStatus(ctx context.Context, groupID id.DocumentGroupID, status models.GroupStatus) error
}

// DocumentStore is the persistence port for document metadata.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	FindDocumentByID(ctx context.Context, docID id.DocumentID) (*models.Document, error)
	ListDocumentsByGroup(ctx context.Context, groupID id.DocumentGroupID) ([]models.Document, error)
	ListDocumentsByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Document, error)
	CountDocumentsByGroup(ctx context.Context, groupID id.DocumentGroupID) (int, error)
	DeleteDocument(ctx context.Context, docID id.DocumentID) error
}

// Store combines both ports; the memory and Postgres implementations
// satisfy it in one type since groups and documents share a schema.
type Store interface {
	GroupStore
	DocumentStore
}
