package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fundready/internal/director/models"
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

const directorColumns = `id, business_id, name, dob, pan, aadhaar_number, email, phone, address, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, director *models.Director) error {
	query := `
		INSERT INTO directors (` + directorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(director.ID),
		uuid.UUID(director.BusinessID),
		director.Name,
		director.DOB,
		director.PAN,
		director.AadhaarNumber,
		director.Email,
		director.Phone,
		director.Address,
		director.CreatedAt,
		director.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert director: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, directorID id.DirectorID) (*models.Director, error) {
	query := `SELECT ` + directorColumns + ` FROM directors WHERE id = $1`
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(directorID))

	director, err := scanDirector(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan director: %w", err)
	}
	return director, nil
}

func (s *Postgres) ListByBusiness(ctx context.Context, businessID id.BusinessID) ([]models.Director, error) {
	query := `SELECT ` + directorColumns + ` FROM directors WHERE business_id = $1 ORDER BY created_at ASC`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(businessID))
	if err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	defer rows.Close()

	var out []models.Director
	for rows.Next() {
		director, err := scanDirector(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan director: %w", err)
		}
		out = append(out, *director)
	}
	return out, rows.Err()
}

func scanDirector(scan func(dest ...any) error) (*models.Director, error) {
	var (
		director   models.Director
		directorID uuid.UUID
		businessID uuid.UUID
	)
	err := scan(
		&directorID,
		&businessID,
		&director.Name,
		&director.DOB,
		&director.PAN,
		&director.AadhaarNumber,
		&director.Email,
		&director.Phone,
		&director.Address,
		&director.CreatedAt,
		&director.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	director.ID = id.DirectorID(directorID)
	director.BusinessID = id.BusinessID(businessID)
	return &director, nil
}

func (s *Postgres) Update(ctx context.Context, director *models.Director) error {
	query := `
		UPDATE directors
		SET name = $2, dob = $3, pan = $4, aadhaar_number = $5, email = $6, phone = $7,
			address = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(director.ID),
		director.Name,
		director.DOB,
		director.PAN,
		director.AadhaarNumber,
		director.Email,
		director.Phone,
		director.Address,
		director.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update director: %w", err)
	}
	return requireRow(result)
}

func (s *Postgres) Delete(ctx context.Context, directorID id.DirectorID) error {
	result, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM directors WHERE id = $1`, uuid.UUID(directorID))
	if err != nil {
		return fmt.Errorf("delete director: %w", err)
	}
	return requireRow(result)
}

func (s *Postgres) ExistsByPAN(ctx context.Context, businessID id.BusinessID, pan string) (bool, error) {
	query := `SELECT COUNT(*) FROM directors WHERE business_id = $1 AND pan = $2`
	var count int
	if err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(businessID), pan).Scan(&count); err != nil {
		return false, fmt.Errorf("count directors by pan: %w", err)
	}
	return count > 0, nil
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
