package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/makeup-booking/internal/domain"
)

// NoShowRepository encapsulates monthly no-show tallies.
type NoShowRepository interface {
	// Increment atomically creates-or-bumps the (user, year_month) counter
	// and returns the resulting count.
	Increment(ctx context.Context, userID, yearMonth string) (int, error)
	GetByUserMonth(ctx context.Context, userID, yearMonth string) (*domain.NoShowRecord, error)
	ListByMonth(ctx context.Context, yearMonth string) ([]domain.NoShowWithStudent, error)
}

type noShowRepository struct {
	pool *pgxpool.Pool
}

// NewNoShowRepository instantiates repository.
func NewNoShowRepository(pool *pgxpool.Pool) NoShowRepository {
	return &noShowRepository{pool: pool}
}

func (r *noShowRepository) Increment(ctx context.Context, userID, yearMonth string) (int, error) {
	// Upsert avoids lost updates under concurrent increments for the same key.
	const query = `
        INSERT INTO no_show_records (user_id, year_month, count)
        VALUES ($1, $2, 1)
        ON CONFLICT (user_id, year_month)
        DO UPDATE SET count = no_show_records.count + 1
        RETURNING count`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, yearMonth).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noShowRepository) GetByUserMonth(ctx context.Context, userID, yearMonth string) (*domain.NoShowRecord, error) {
	const query = `
        SELECT id, user_id, year_month, count
        FROM no_show_records WHERE user_id=$1 AND year_month=$2`

	var record domain.NoShowRecord
	if err := r.pool.QueryRow(ctx, query, userID, yearMonth).Scan(
		&record.ID,
		&record.UserID,
		&record.YearMonth,
		&record.Count,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *noShowRepository) ListByMonth(ctx context.Context, yearMonth string) ([]domain.NoShowWithStudent, error) {
	const query = `
        SELECT n.id, n.user_id, n.year_month, n.count, u.name, u.account
        FROM no_show_records n JOIN users u ON n.user_id = u.id
        WHERE n.year_month=$1 ORDER BY n.count DESC`

	rows, err := r.pool.Query(ctx, query, yearMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NoShowWithStudent
	for rows.Next() {
		var row domain.NoShowWithStudent
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.YearMonth,
			&row.Count,
			&row.StudentName,
			&row.StudentAccount,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
