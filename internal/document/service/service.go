// Package service owns document metadata workflows. Uploads and deletions
// re-derive the owning bucket's status from its document count, then refresh
// the business's cached completion percentage.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	bizmodels "fundready/internal/business/models"
	"fundready/internal/completion"
	"fundready/internal/document/models"
	"fundready/internal/platform/metrics"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/sentinel"
)

// Store is the persistence port for groups and document metadata.
type Store interface {
	FindGroupByType(ctx context.Context, businessID id.BusinessID, groupType models.GroupType) (*models.DocumentGroup, error)
	ListGroupsByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.DocumentGroup, error)
	UpdateGroupStatus(ctx context.Context, groupID id.DocumentGroupID, status models.GroupStatus) error
	CreateDocument(ctx context.Context, doc *models.Document) error
	FindDocumentByID(ctx context.Context, docID id.DocumentID) (*models.Document, error)
	FindGroupByID(ctx context.Context, groupID id.DocumentGroupID) (*models.DocumentGroup, error)
	ListDocumentsByGroup(ctx context.Context, groupID id.DocumentGroupID) ([]models.Document, error)
	CountDocumentsByGroup(ctx context.Context, groupID id.DocumentGroupID) (int, error)
	DeleteDocument(ctx context.Context, docID id.DocumentID) error
}

// BusinessReader resolves businesses for ownership checks.
type BusinessReader interface {
	FindByID(ctx context.Context, businessID id.BusinessID) (*bizmodels.Business, error)
}

// Service owns upload and deletion of document metadata.
type Service struct {
	documents  Store
	businesses BusinessReader
	completion *completion.Service
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(documents Store, businesses BusinessReader, completionSvc *completion.Service, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		documents:  documents,
		businesses: businesses,
		completion: completionSvc,
		logger:     logger,
		metrics:    m,
	}
}

// UploadInput carries the metadata for one uploaded file. The bytes live
// behind FileURL; this service records existence only.
type UploadInput struct {
	GroupType     models.GroupType `json:"group_type"`
	FileName      string           `json:"file_name"`
	FileURL       string           `json:"file_url"`
	MIMEType      string           `json:"mime_type"`
	FileSizeBytes int64            `json:"file_size_bytes"`
}

func (in UploadInput) validate() error {
	if !in.GroupType.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid group_type")
	}
	if in.FileName == "" || in.FileURL == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "file_name and file_url are required")
	}
	if in.FileSizeBytes < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "file_size_bytes cannot be negative")
	}
	return nil
}

// Upload records one document's metadata in the typed bucket and re-derives
// the bucket's status from the new count.
func (s *Service) Upload(ctx context.Context, businessID id.BusinessID, requesterID id.UserID, in UploadInput) (*models.Document, error) {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	group, err := s.documents.FindGroupByType(ctx, businessID, in.GroupType)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document group not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document group")
	}

	doc := &models.Document{
		ID:            id.NewDocumentID(),
		GroupID:       group.ID,
		FileName:      in.FileName,
		FileURL:       in.FileURL,
		MIMEType:      in.MIMEType,
		FileSizeBytes: in.FileSizeBytes,
		UploadedAt:    time.Now(),
	}
	if err := s.documents.CreateDocument(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record document")
	}

	if err := s.refreshGroupStatus(ctx, group.ID); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsUploaded.Inc()
	}

	s.completion.Recalculate(ctx, businessID)
	return doc, nil
}

// GroupListing is one bucket together with its documents.
type GroupListing struct {
	Group     models.DocumentGroup `json:"group"`
	Documents []models.Document    `json:"documents"`
}

// List returns every bucket with its documents, in bucket creation order.
func (s *Service) List(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) ([]GroupListing, error) {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return nil, err
	}

	groups, err := s.documents.ListGroupsByBusiness(ctx, businessID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list document groups")
	}

	listings := make([]GroupListing, 0, len(groups))
	for _, group := range groups {
		docs, err := s.documents.ListDocumentsByGroup(ctx, group.ID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
		}
		listings = append(listings, GroupListing{Group: group, Documents: docs})
	}
	return listings, nil
}

// Delete removes one document's metadata and re-derives the bucket status.
func (s *Service) Delete(ctx context.Context, businessID id.BusinessID, docID id.DocumentID, requesterID id.UserID) error {
	if err := s.requireOwnedBusiness(ctx, businessID, requesterID); err != nil {
		return err
	}

	doc, err := s.documents.FindDocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	group, err := s.documents.FindGroupByID(ctx, doc.GroupID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document group")
	}
	if group.BusinessID != businessID {
		return dErrors.New(dErrors.CodeNotFound, "document not found")
	}

	if err := s.documents.DeleteDocument(ctx, docID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete document")
	}

	if err := s.refreshGroupStatus(ctx, group.ID); err != nil {
		return err
	}

	s.completion.Recalculate(ctx, businessID)
	return nil
}

// refreshGroupStatus re-derives a bucket's status from its current count and
// persists it.
func (s *Service) refreshGroupStatus(ctx context.Context, groupID id.DocumentGroupID) error {
	count, err := s.documents.CountDocumentsByGroup(ctx, groupID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count documents")
	}
	if err := s.documents.UpdateGroupStatus(ctx, groupID, models.StatusForCount(count)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update group status")
	}
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
