package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fundready/internal/document/models"
	id "fundready/pkg/domain"
	"fundready/pkg/platform/sentinel"
	txcontext "fundready/pkg/platform/tx"
)

// Postgres implements Store over database/sql with lib/pq.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const groupColumns = `id, business_id, type, status, created_at, updated_at`

func (s *Postgres) CreateGroups(ctx context.Context, groups []models.DocumentGroup) error {
	query := `
		INSERT INTO document_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, group := range groups {
		_, err := s.execer(ctx).ExecContext(ctx, query,
			uuid.UUID(group.ID),
			uuid.UUID(group.BusinessID),
			string(group.Type),
			string(group.Status),
			group.CreatedAt,
			group.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert document group %s: %w", group.Type, err)
		}
	}
	return nil
}

func (s *Postgres) FindGroupByID(ctx context.Context, groupID id.DocumentGroupID) (*models.DocumentGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM document_groups WHERE id = $1`
	return scanGroup(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(groupID)))
}

func (s *Postgres) FindGroupByType(ctx context.Context, businessID id.BusinessID, groupType models.GroupType) (*models.DocumentGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM document_groups WHERE business_id = $1 AND type = $2`
	return scanGroup(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(businessID), string(groupType)))
}

func scanGroup(row *sql.Row) (*models.DocumentGroup, error) {
	var (
		group      models.DocumentGroup
		groupID    uuid.UUID
		businessID uuid.UUID
		groupType  string
		status     string
	)
	err := row.Scan(&groupID, &businessID, &groupType, &status, &group.CreatedAt, &group.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document group: %w", err)
	}
	group.ID = id.DocumentGroupID(groupID)
	group.BusinessID = id.BusinessID(businessID)
	group.Type = models.GroupType(groupType)
	group.Status = models.GroupStatus(status)
	return &group, nil
}

func (s *Postgres) ListGroupsByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.DocumentGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM document_groups WHERE business_id = $1 ORDER BY type`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(businessID))
	if err != nil {
		return nil, fmt.Errorf("list document groups: %w", err)
	}
	defer rows.Close()

	var out []models.DocumentGroup
	for rows.Next() {
		var (
			group   models.DocumentGroup
			groupID uuid.UUID
			bizID   uuid.UUID
			gType   string
			status  string
		)
		if err := rows.Scan(&groupID, &bizID, &gType, &status, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document group: %w", err)
		}
		group.ID = id.DocumentGroupID(groupID)
		group.BusinessID = id.BusinessID(bizID)
		group.Type = models.GroupType(gType)
		group.Status = models.GroupStatus(status)
		out = append(out, group)
	}
	return out, rows.Err()
}

func (s *Postgres) UpdateGroupStatus(ctx context.Context, groupID id.DocumentGroupID, status models.GroupStatus) error {
	query := `UPDATE document_groups SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := s.execer(ctx).ExecContext(ctx, query, uuid.UUID(groupID), string(status))
	if err != nil {
		return fmt.Errorf("update group status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const documentColumns = `id, document_group_id, file_name, file_url, mime_type, file_size_bytes, uploaded_at`

func (s *Postgres) CreateDocument(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		uuid.UUID(doc.GroupID),
		doc.FileName,
		doc.FileURL,
		doc.MIMEType,
		doc.FileSizeBytes,
		doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *Postgres) FindDocumentByID(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(docID))

	var (
		doc     models.Document
		dID     uuid.UUID
		groupID uuid.UUID
	)
	err := row.Scan(&dID, &groupID, &doc.FileName, &doc.FileURL, &doc.MIMEType, &doc.FileSizeBytes, &doc.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	doc.ID = id.DocumentID(dID)
	doc.GroupID = id.DocumentGroupID(groupID)
	return &doc, nil
}

func (s *Postgres) ListDocumentsByGroup(ctx context.Context, groupID id.DocumentGroupID) ([]models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_group_id = $1 ORDER BY uploaded_at DESC`
	return s.listDocuments(ctx, query, uuid.UUID(groupID))
}

func (s *Postgres) ListDocumentsByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Document, error) {
	query := `
		SELECT d.id, d.document_group_id, d.file_name, d.file_url, d.mime_type, d.file_size_bytes, d.uploaded_at
		FROM documents d
		INNER JOIN document_groups dg ON d.document_group_id = dg.id
		WHERE dg.business_id = $1
		ORDER BY d.uploaded_at DESC
	`
	return s.listDocuments(ctx, query, uuid.UUID(businessID))
}

func (s *Postgres) listDocuments(ctx context.Context, query string, arg any) ([]models.Document, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var (
			doc     models.Document
			docID   uuid.UUID
			groupID uuid.UUID
		)
		if err := rows.Scan(&docID, &groupID, &doc.FileName, &doc.FileURL, &doc.MIMEType, &doc.FileSizeBytes, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ID = id.DocumentID(docID)
		doc.GroupID = id.DocumentGroupID(groupID)
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Postgres) CountDocumentsByGroup(ctx context.Context, groupID id.DocumentGroupID) (int, error) {
	query := `SELECT COUNT(*) FROM documents WHERE document_group_id = $1`
	var count int
	if err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(groupID)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

func (s *Postgres) DeleteDocument(ctx context.Context, docID id.DocumentID) error {
	result, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, uuid.UUID(docID))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
