package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

// UserRepository defines persistence access for account holders.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByResetTokenHash resolves the user holding a non-expired reset
	// token digest.
	GetByResetTokenHash(ctx context.Context, digest string, now time.Time) (*domain.User, error)
	// ListReportSubscribers returns users whose preference flag for the
	// given report kind is enabled or unset.
	ListReportSubscribers(ctx context.Context, kind domain.ReportKind) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, receive_daily_reports, receive_weekly_reports,
        reset_token_hash, reset_token_expires_at, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, receive_daily_reports, receive_weekly_reports)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.ReceiveDailyReports,
		user.ReceiveWeeklyReports,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, password_hash=$3,
            receive_daily_reports=$4, receive_weekly_reports=$5,
            reset_token_hash=$6, reset_token_expires_at=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.ReceiveDailyReports,
		user.ReceiveWeeklyReports,
		user.ResetTokenHash,
		user.ResetTokenExpiresAt,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) GetByResetTokenHash(ctx context.Context, digest string, now time.Time) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
        WHERE reset_token_hash=$1 AND reset_token_expires_at > $2`
	return r.fetchSingle(ctx, query, digest, now)
}

func (r *userRepository) ListReportSubscribers(ctx context.Context, kind domain.ReportKind) ([]domain.User, error) {
	// NULL flags count as subscribed: accounts created before the
	// preference existed keep receiving reports.
	column := "receive_daily_reports"
	if kind == domain.ReportKindWeekly {
		column = "receive_weekly_reports"
	}
	query := `SELECT ` + userColumns + ` FROM users
        WHERE ` + column + ` IS DISTINCT FROM FALSE
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, args...), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.ReceiveDailyReports,
		&user.ReceiveWeeklyReports,
		&user.ResetTokenHash,
		&user.ResetTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
