package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/makeup-booking/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByAccount(ctx context.Context, account string) (*domain.User, error)
	ListStudents(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (account, password_hash, name, role, class_name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.Account,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.ClassName,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET password_hash=$1, name=$2, class_name=$3, is_suspended=$4, suspended_until=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		user.PasswordHash,
		user.Name,
		user.ClassName,
		user.IsSuspended,
		user.SuspendedUntil,
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
	const query = `
        SELECT id, account, password_hash, name, role, class_name, is_suspended, suspended_until, created_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByAccount(ctx context.Context, account string) (*domain.User, error) {
	const query = `
        SELECT id, account, password_hash, name, role, class_name, is_suspended, suspended_until, created_at
        FROM users WHERE account=$1`
	return r.fetchSingle(ctx, query, account)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Account,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.ClassName,
		&user.IsSuspended,
		&user.SuspendedUntil,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListStudents(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id, account, password_hash, name, role, class_name, is_suspended, suspended_until, created_at
        FROM users WHERE role='student' ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Account,
			&user.PasswordHash,
			&user.Name,
			&user.Role,
			&user.ClassName,
			&user.IsSuspended,
			&user.SuspendedUntil,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
