package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

// CaseRepository encapsulates support case persistence.
type CaseRepository interface {
	Create(ctx context.Context, sc *domain.SupportCase) error
	Update(ctx context.Context, sc *domain.SupportCase) error
	GetByID(ctx context.Context, id string) (*domain.SupportCase, error)
	Delete(ctx context.Context, id string) error
	// ListByOwner returns the owner's cases, newest opened first. A
	// non-nil openedSince restricts the result to cases opened at or
	// after that instant (scheduled report windows).
	ListByOwner(ctx context.Context, ownerID string, openedSince *time.Time) ([]domain.SupportCase, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

const caseColumns = `id, owner_id, company_name, person, topic, details, status, contact_method,
        opened_at, closed_at, created_at, updated_at`

func (r *caseRepository) Create(ctx context.Context, sc *domain.SupportCase) error {
	const query = `
        INSERT INTO support_cases (owner_id, company_name, person, topic, details, status, contact_method, opened_at, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sc.OwnerID,
		sc.CompanyName,
		sc.Person,
		sc.Topic,
		sc.Details,
		sc.Status,
		sc.ContactMethod,
		sc.OpenedAt,
		sc.ClosedAt,
	).Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, sc *domain.SupportCase) error {
	const query = `
        UPDATE support_cases SET company_name=$1, person=$2, topic=$3, details=$4,
            status=$5, contact_method=$6, closed_at=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		sc.CompanyName,
		sc.Person,
		sc.Topic,
		sc.Details,
		sc.Status,
		sc.ContactMethod,
		sc.ClosedAt,
		sc.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.SupportCase, error) {
	const query = `SELECT ` + caseColumns + ` FROM support_cases WHERE id=$1`
	var sc domain.SupportCase
	if err := scanCase(r.pool.QueryRow(ctx, query, id), &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *caseRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM support_cases WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) ListByOwner(ctx context.Context, ownerID string, openedSince *time.Time) ([]domain.SupportCase, error) {
	query := `SELECT ` + caseColumns + ` FROM support_cases WHERE owner_id=$1`
	args := []any{ownerID}
	if openedSince != nil {
		args = append(args, *openedSince)
		query += ` AND opened_at >= $2`
	}
	query += ` ORDER BY opened_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportCase
	for rows.Next() {
		var sc domain.SupportCase
		if err := scanCase(rows, &sc); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

func scanCase(row pgx.Row, sc *domain.SupportCase) error {
	return row.Scan(
		&sc.ID,
		&sc.OwnerID,
		&sc.CompanyName,
		&sc.Person,
		&sc.Topic,
		&sc.Details,
		&sc.Status,
		&sc.ContactMethod,
		&sc.OpenedAt,
		&sc.ClosedAt,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
}
