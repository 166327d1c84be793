package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/makeup-booking/internal/domain"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

const uniqueViolation = "23505"

// BookingUpdate carries optional admin edits to a booking row.
type BookingUpdate struct {
	Course     *string
	CourseDate *string
	Status     *domain.BookingStatus
	ClassName  *string
}

// BookingRepository encapsulates booking persistence. CreateWithCapacity is
// the single write path for new bookings: the capacity recount and the
// insert share one serializable transaction so concurrent admissions cannot
// oversell a slot.
type BookingRepository interface {
	CreateWithCapacity(ctx context.Context, booking *domain.Booking, capacity int) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetWithStudent(ctx context.Context, id string) (*domain.BookingWithStudent, error)
	ExistsForUserSlot(ctx context.Context, userID string, date time.Time, period domain.Period) (bool, error)
	CountForSlot(ctx context.Context, location domain.Location, date time.Time, period domain.Period) (int, error)
	ListByUserFromDate(ctx context.Context, userID string, from time.Time) ([]domain.Booking, error)
	ListWithStudents(ctx context.Context, startDate, endDate *time.Time) ([]domain.BookingWithStudent, error)
	ListRoster(ctx context.Context, date time.Time, period *domain.Period) ([]domain.BookingWithStudent, error)
	UpdateFields(ctx context.Context, id string, update BookingUpdate) error
	SetCheckedIn(ctx context.Context, id string, at time.Time) error
	SetPointsAdded(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) CreateWithCapacity(ctx context.Context, booking *domain.Booking, capacity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if capacity != domain.UnlimitedCapacity {
		var booked int
		const countQuery = `
            SELECT COUNT(*) FROM bookings
            WHERE location=$1 AND booking_date=$2 AND period=$3`
		if err := tx.QueryRow(ctx, countQuery, booking.Location, booking.BookingDate, booking.Period).Scan(&booked); err != nil {
			return err
		}
		if booked >= capacity {
			return apperrors.NewCapacityExceeded()
		}
	}

	const insertQuery = `
        INSERT INTO bookings (reference_key, user_id, location, booking_date, period,
                              class_name, course, course_date, attachment_path, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertQuery,
		booking.ReferenceKey,
		booking.UserID,
		booking.Location,
		booking.BookingDate,
		booking.Period,
		booking.ClassName,
		booking.Course,
		booking.CourseDate,
		booking.AttachmentPath,
		booking.Status,
		booking.CreatedBy,
	).Scan(&booking.ID, &booking.CreatedAt); err != nil {
		// The unique (user_id, booking_date, period) constraint backstops
		// the application-level duplicate check under race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.NewDuplicateBooking()
		}
		return err
	}

	return tx.Commit(ctx)
}

const bookingColumns = `
    id, reference_key, user_id, location, booking_date, period, class_name, course,
    course_date, attachment_path, status, points_added, checked_in, checked_in_at,
    created_at, created_by`

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id=$1`, bookingColumns)

	var booking domain.Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(bookingScanTargets(&booking)...); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetWithStudent(ctx context.Context, id string) (*domain.BookingWithStudent, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.account, u.class_name
        FROM bookings b JOIN users u ON b.user_id = u.id
        WHERE b.id=$1`, prefixColumns("b", bookingColumns))

	var row domain.BookingWithStudent
	targets := append(bookingScanTargets(&row.Booking), &row.StudentName, &row.StudentAccount, &row.StudentClass)
	if err := r.pool.QueryRow(ctx, query, id).Scan(targets...); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *bookingRepository) ExistsForUserSlot(ctx context.Context, userID string, date time.Time, period domain.Period) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM bookings WHERE user_id=$1 AND booking_date=$2 AND period=$3
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, date, period).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *bookingRepository) CountForSlot(ctx context.Context, location domain.Location, date time.Time, period domain.Period) (int, error) {
	const query = `
        SELECT COUNT(*) FROM bookings WHERE location=$1 AND booking_date=$2 AND period=$3`
	var count int
	if err := r.pool.QueryRow(ctx, query, location, date, period).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookingRepository) ListByUserFromDate(ctx context.Context, userID string, from time.Time) ([]domain.Booking, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM bookings
        WHERE user_id=$1 AND booking_date >= $2
        ORDER BY booking_date ASC`, bookingColumns)

	rows, err := r.pool.Query(ctx, query, userID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListWithStudents(ctx context.Context, startDate, endDate *time.Time) ([]domain.BookingWithStudent, error) {
	base := fmt.Sprintf(`
        SELECT %s, u.name, u.account, u.class_name
        FROM bookings b JOIN users u ON b.user_id = u.id`, prefixColumns("b", bookingColumns))

	args := []any{}
	if startDate != nil && endDate != nil {
		args = append(args, *startDate, *endDate)
		base += " WHERE b.booking_date BETWEEN $1 AND $2"
	}
	base += " ORDER BY b.booking_date ASC, b.period ASC"

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingsWithStudents(rows)
}

func (r *bookingRepository) ListRoster(ctx context.Context, date time.Time, period *domain.Period) ([]domain.BookingWithStudent, error) {
	base := fmt.Sprintf(`
        SELECT %s, u.name, u.account, u.class_name
        FROM bookings b JOIN users u ON b.user_id = u.id
        WHERE b.booking_date=$1`, prefixColumns("b", bookingColumns))

	args := []any{date}
	if period != nil {
		args = append(args, *period)
		base += fmt.Sprintf(" AND b.period=$%d", len(args))
	}
	base += " ORDER BY b.location, b.period"

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingsWithStudents(rows)
}

func (r *bookingRepository) UpdateFields(ctx context.Context, id string, update BookingUpdate) error {
	sets := []string{}
	args := []any{}

	if update.Course != nil {
		args = append(args, *update.Course)
		sets = append(sets, fmt.Sprintf("course=$%d", len(args)))
	}
	if update.CourseDate != nil {
		args = append(args, *update.CourseDate)
		sets = append(sets, fmt.Sprintf("course_date=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if update.ClassName != nil {
		args = append(args, *update.ClassName)
		sets = append(sets, fmt.Sprintf("class_name=$%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) SetCheckedIn(ctx context.Context, id string, at time.Time) error {
	// The predicate backstops the service's read-then-write check: under a
	// concurrent check-in exactly one UPDATE matches.
	const query = `UPDATE bookings SET checked_in=TRUE, checked_in_at=$1 WHERE id=$2 AND checked_in=FALSE`
	cmd, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return apperrors.NewAlreadyCheckedIn()
	}
	return nil
}

func (r *bookingRepository) SetPointsAdded(ctx context.Context, id string) error {
	const query = `UPDATE bookings SET points_added=TRUE WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	return err
}

func bookingScanTargets(b *domain.Booking) []any {
	return []any{
		&b.ID,
		&b.ReferenceKey,
		&b.UserID,
		&b.Location,
		&b.BookingDate,
		&b.Period,
		&b.ClassName,
		&b.Course,
		&b.CourseDate,
		&b.AttachmentPath,
		&b.Status,
		&b.PointsAdded,
		&b.CheckedIn,
		&b.CheckedInAt,
		&b.CreatedAt,
		&b.CreatedBy,
	}
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(bookingScanTargets(&booking)...); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}

func scanBookingsWithStudents(rows pgx.Rows) ([]domain.BookingWithStudent, error) {
	var result []domain.BookingWithStudent
	for rows.Next() {
		var row domain.BookingWithStudent
		targets := append(bookingScanTargets(&row.Booking), &row.StudentName, &row.StudentAccount, &row.StudentClass)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
