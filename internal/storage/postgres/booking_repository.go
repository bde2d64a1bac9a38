package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Jav1009/community-service-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const joinedSelect = `
SELECT b.id, b.booking_date::text, b.booking_time::text, b.notes,
       b.created_at, b.updated_at,
       u.id, u.name, u.email,
       s.id, s.name, s.price,
       bs.id, bs.status_name
FROM bookings b
JOIN users u ON b.user_id = u.id
JOIN services s ON b.service_id = s.id
JOIN booking_status bs ON b.status_id = bs.id`

func (r *BookingRepository) ListJoined(ctx context.Context) ([]domain.BookingJoined, error) {
	query := joinedSelect + `
ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.BookingJoined
	for rows.Next() {
		b, err := scanBookingJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return bookings, nil
}

// GetJoinedByID returns nil without error when no booking has that id.
func (r *BookingRepository) GetJoinedByID(ctx context.Context, id int64) (*domain.BookingJoined, error) {
	query := joinedSelect + `
WHERE b.id = $1`

	b, err := scanBookingJoined(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking domain.Booking) (int64, error) {
	const stmt = `
INSERT INTO bookings (user_id, service_id, status_id, booking_date, booking_time, notes)
VALUES ($1, $2, $3, $4::date, $5::time, $6)
RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, stmt,
		booking.UserID,
		booking.ServiceID,
		booking.StatusID,
		booking.BookingDate,
		booking.BookingTime,
		booking.Notes,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			// user_id and status_id are resolved before insert; a violation
			// here means the deployment seed rows are gone.
			return 0, domain.Internalf("booking references are not configured")
		}
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return id, nil
}

// ServiceExists reports whether a service row with that id is present.
func (r *BookingRepository) ServiceExists(ctx context.Context, serviceID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM services WHERE id = $1)`, serviceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check service: %w", err)
	}
	return exists, nil
}

// GetStatusByName returns nil without error when the status is not seeded.
func (r *BookingRepository) GetStatusByName(ctx context.Context, name string) (*domain.BookingStatus, error) {
	var status domain.BookingStatus
	err := r.pool.QueryRow(ctx,
		`SELECT id, status_name FROM booking_status WHERE status_name = $1`, name,
	).Scan(&status.ID, &status.StatusName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get status by name: %w", err)
	}
	return &status, nil
}

// GetStatusByID returns nil without error when no status has that id.
func (r *BookingRepository) GetStatusByID(ctx context.Context, id int64) (*domain.BookingStatus, error) {
	var status domain.BookingStatus
	err := r.pool.QueryRow(ctx,
		`SELECT id, status_name FROM booking_status WHERE id = $1`, id,
	).Scan(&status.ID, &status.StatusName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get status by id: %w", err)
	}
	return &status, nil
}

// UpdateStatus overwrites the booking status unconditionally. Reports whether
// a row changed.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID, statusID int64, updatedAt time.Time) (bool, error) {
	const stmt = `
UPDATE bookings
SET status_id = $2, updated_at = $3
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, bookingID, statusID, updatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.NotFoundf("Booking status with ID %d not found", statusID)
		}
		return false, fmt.Errorf("update booking status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// TransitionStatus moves the booking from one named status to another in a
// single conditional update, so concurrent transitions cannot both pass the
// guard. Reports whether a row changed.
func (r *BookingRepository) TransitionStatus(ctx context.Context, bookingID int64, fromName, toName string, updatedAt time.Time) (bool, error) {
	const stmt = `
UPDATE bookings b
SET status_id = bs_to.id, updated_at = $4
FROM booking_status bs_from, booking_status bs_to
WHERE b.id = $1
  AND bs_from.status_name = $2
  AND bs_to.status_name = $3
  AND b.status_id = bs_from.id`

	tag, err := r.pool.Exec(ctx, stmt, bookingID, fromName, toName, updatedAt)
	if err != nil {
		return false, fmt.Errorf("transition booking status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanBookingJoined(row rowScanner) (domain.BookingJoined, error) {
	var b domain.BookingJoined
	err := row.Scan(
		&b.ID,
		&b.BookingDate,
		&b.BookingTime,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.UserID,
		&b.UserName,
		&b.UserEmail,
		&b.ServiceID,
		&b.ServiceName,
		&b.ServicePrice,
		&b.StatusID,
		&b.StatusName,
	)
	return b, err
}
