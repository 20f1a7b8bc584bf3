package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fundready/internal/funding/models"
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

const utilityColumns = `id, business_id, type, status, amount_requested, tenure_months, purpose,
	created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, utility *models.Utility) error {
	query := `
		INSERT INTO funding_utilities (` + utilityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(utility.ID),
		uuid.UUID(utility.BusinessID),
		string(utility.Type),
		string(utility.Status),
		utility.AmountRequested,
		utility.TenureMonths,
		utility.Purpose,
		utility.CreatedAt,
		utility.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert funding utility: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, utilityID id.FundingUtilityID) (*models.Utility, error) {
	query := `SELECT ` + utilityColumns + ` FROM funding_utilities WHERE id = $1`
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(utilityID))
	utility, err := scanUtility(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan funding utility: %w", err)
	}
	return utility, nil
}

func (s *Postgres) ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Utility, error) {
	query := `
		SELECT ` + utilityColumns + `
		FROM funding_utilities
		WHERE business_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(businessID))
	if err != nil {
		return nil, fmt.Errorf("list funding utilities: %w", err)
	}
	defer rows.Close()

	var utilities []models.Utility
	for rows.Next() {
		utility, err := scanUtility(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan funding utility: %w", err)
		}
		utilities = append(utilities, *utility)
	}
	return utilities, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, utility *models.Utility) error {
	query := `
		UPDATE funding_utilities
		SET type = $2, status = $3, amount_requested = $4, tenure_months = $5,
			purpose = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(utility.ID),
		string(utility.Type),
		string(utility.Status),
		utility.AmountRequested,
		utility.TenureMonths,
		utility.Purpose,
		utility.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update funding utility: %w", err)
	}
	return requireRow(result)
}

func (s *Postgres) SubmitDrafts(ctx context.Context, businessID id.BusinessID) (int, error) {
	query := `
		UPDATE funding_utilities
		SET status = $3, updated_at = NOW()
		WHERE business_id = $1 AND status = $2
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(businessID),
		string(models.StatusDraft),
		string(models.StatusSubmitted),
	)
	if err != nil {
		return 0, fmt.Errorf("submit drafts: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

func (s *Postgres) TotalRequestedAmount(ctx context.Context, businessID id.BusinessID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_requested), 0)
		FROM funding_utilities
		WHERE business_id = $1
	`
	var total int64
	if err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(businessID)).Scan(&total); err != nil {
		return 0, fmt.Errorf("total requested amount: %w", err)
	}
	return total, nil
}

func scanUtility(scan func(dest ...any) error) (*models.Utility, error) {
	var (
		utility    models.Utility
		utilityID  uuid.UUID
		businessID uuid.UUID
		kind       string
		status     string
	)
	err := scan(
		&utilityID,
		&businessID,
		&kind,
		&status,
		&utility.AmountRequested,
		&utility.TenureMonths,
		&utility.Purpose,
		&utility.CreatedAt,
		&utility.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	utility.ID = id.FundingUtilityID(utilityID)
	utility.BusinessID = id.BusinessID(businessID)
	utility.Type = models.Type(kind)
	utility.Status = models.Status(status)
	return &utility, nil
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
