package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/makeup-booking/internal/domain"
)

// SlotTemplateUpdate carries optional template edits.
type SlotTemplateUpdate struct {
	ComputerCount *int
	IsOpen        *bool
}

// SlotTemplateRepository encapsulates weekly template persistence.
type SlotTemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.SlotTemplate) error
	GetByKey(ctx context.Context, location domain.Location, dayOfWeek int, period domain.Period) (*domain.SlotTemplate, error)
	ListOpenByDay(ctx context.Context, location domain.Location, dayOfWeek int) ([]domain.SlotTemplate, error)
	ListAll(ctx context.Context) ([]domain.SlotTemplate, error)
	UpdateByID(ctx context.Context, id string, update SlotTemplateUpdate) error
}

type slotTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewSlotTemplateRepository instantiates repository.
func NewSlotTemplateRepository(pool *pgxpool.Pool) SlotTemplateRepository {
	return &slotTemplateRepository{pool: pool}
}

func (r *slotTemplateRepository) Create(ctx context.Context, tmpl *domain.SlotTemplate) error {
	const query = `
        INSERT INTO slot_templates (location, day_of_week, period, computer_count, is_open)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		tmpl.Location,
		tmpl.DayOfWeek,
		tmpl.Period,
		tmpl.ComputerCount,
		tmpl.IsOpen,
	).Scan(&tmpl.ID)
}

func (r *slotTemplateRepository) GetByKey(ctx context.Context, location domain.Location, dayOfWeek int, period domain.Period) (*domain.SlotTemplate, error) {
	const query = `
        SELECT id, location, day_of_week, period, computer_count, is_open
        FROM slot_templates WHERE location=$1 AND day_of_week=$2 AND period=$3`

	var tmpl domain.SlotTemplate
	if err := r.pool.QueryRow(ctx, query, location, dayOfWeek, period).Scan(
		&tmpl.ID,
		&tmpl.Location,
		&tmpl.DayOfWeek,
		&tmpl.Period,
		&tmpl.ComputerCount,
		&tmpl.IsOpen,
	); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *slotTemplateRepository) ListOpenByDay(ctx context.Context, location domain.Location, dayOfWeek int) ([]domain.SlotTemplate, error) {
	const query = `
        SELECT id, location, day_of_week, period, computer_count, is_open
        FROM slot_templates
        WHERE location=$1 AND day_of_week=$2 AND is_open
        ORDER BY CASE period WHEN 'morning' THEN 1 WHEN 'afternoon' THEN 2 ELSE 3 END`

	rows, err := r.pool.Query(ctx, query, location, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlotTemplates(rows)
}

func (r *slotTemplateRepository) ListAll(ctx context.Context) ([]domain.SlotTemplate, error) {
	const query = `
        SELECT id, location, day_of_week, period, computer_count, is_open
        FROM slot_templates
        ORDER BY location, day_of_week,
                 CASE period WHEN 'morning' THEN 1 WHEN 'afternoon' THEN 2 ELSE 3 END`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlotTemplates(rows)
}

func (r *slotTemplateRepository) UpdateByID(ctx context.Context, id string, update SlotTemplateUpdate) error {
	sets := []string{}
	args := []any{}

	if update.ComputerCount != nil {
		args = append(args, *update.ComputerCount)
		sets = append(sets, fmt.Sprintf("computer_count=$%d", len(args)))
	}
	if update.IsOpen != nil {
		args = append(args, *update.IsOpen)
		sets = append(sets, fmt.Sprintf("is_open=$%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE slot_templates SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSlotTemplates(rows pgx.Rows) ([]domain.SlotTemplate, error) {
	var result []domain.SlotTemplate
	for rows.Next() {
		var tmpl domain.SlotTemplate
		if err := rows.Scan(
			&tmpl.ID,
			&tmpl.Location,
			&tmpl.DayOfWeek,
			&tmpl.Period,
			&tmpl.ComputerCount,
			&tmpl.IsOpen,
		); err != nil {
			return nil, err
		}
		result = append(result, tmpl)
	}
	return result, rows.Err()
}
