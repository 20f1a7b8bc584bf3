package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fundready/internal/business/models"
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
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const businessColumns = `id, owner_id, legal_name, business_name, entity_type, pan, gstin, udyam,
	sector, city, state, brief_description, profile_completion_percent, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, business *models.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(business.ID),
		uuid.UUID(business.OwnerID),
		business.LegalName,
		business.BusinessName,
		string(business.EntityType),
		business.PAN,
		business.GSTIN,
		business.Udyam,
		business.Sector,
		business.City,
		business.State,
		business.BriefDescription,
		business.CompletionPercent,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, businessID id.BusinessID) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return s.scanBusiness(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(businessID)))
}

func (s *Postgres) FindByOwner(ctx context.Context, ownerID id.UserID) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE owner_id = $1`
	return s.scanBusiness(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(ownerID)))
}

func (s *Postgres) scanBusiness(row *sql.Row) (*models.Business, error) {
	var (
		business   models.Business
		businessID uuid.UUID
		ownerID    uuid.UUID
		entityType string
	)
	err := row.Scan(
		&businessID,
		&ownerID,
		&business.LegalName,
		&business.BusinessName,
		&entityType,
		&business.PAN,
		&business.GSTIN,
		&business.Udyam,
		&business.Sector,
		&business.City,
		&business.State,
		&business.BriefDescription,
		&business.CompletionPercent,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan business: %w", err)
	}
	business.ID = id.BusinessID(businessID)
	business.OwnerID = id.UserID(ownerID)
	business.EntityType = models.EntityType(entityType)
	return &business, nil
}

func (s *Postgres) Update(ctx context.Context, business *models.Business) error {
	query := `
		UPDATE businesses
		SET legal_name = $2, business_name = $3, entity_type = $4, pan = $5, gstin = $6,
			udyam = $7, sector = $8, city = $9, state = $10, brief_description = $11,
			updated_at = $12
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(business.ID),
		business.LegalName,
		business.BusinessName,
		string(business.EntityType),
		business.PAN,
		business.GSTIN,
		business.Udyam,
		business.Sector,
		business.City,
		business.State,
		business.BriefDescription,
		business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return requireRow(result)
}

func (s *Postgres) SetCompletionPercent(ctx context.Context, businessID id.BusinessID, percent int) error {
	query := `
		UPDATE businesses
		SET profile_completion_percent = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query, uuid.UUID(businessID), percent)
	if err != nil {
		return fmt.Errorf("set completion percent: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
