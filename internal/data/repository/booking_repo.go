package repository

import (
	"context"
	"errors"
	"fmt"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate locks the booking row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter entity.BookingFilter) (int64, error)

	// UpdateState persists the payment fields of booking only if the stored
	// (status, payment_status) pair still equals expected.
	UpdateState(ctx context.Context, booking *entity.Booking, expected entity.BookingState) error
}

type bookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingRepository(db database.DBTX, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	b.id, b.booking_code, b.customer_id, b.parking_space_id, b.date, b.start_time, b.end_time,
	b.duration_minutes, b.amount, b.status, b.payment_status, b.payment_screenshot,
	b.transaction_id, b.verification_reason, b.cancellation_reason,
	b.created_at, b.updated_at, b.modified_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.CustomerID,
		&booking.ParkingSpaceID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Amount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentScreenshot,
		&booking.TransactionID,
		&booking.VerificationReason,
		&booking.CancellationReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_code, customer_id, parking_space_id, date, start_time, end_time,
			duration_minutes, amount, status, payment_status, payment_screenshot, transaction_id,
			verification_reason, cancellation_reason, created_at, updated_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingCode,
		booking.CustomerID,
		booking.ParkingSpaceID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.DurationMinutes,
		booking.Amount,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentScreenshot,
		booking.TransactionID,
		booking.VerificationReason,
		booking.CancellationReason,
		booking.CreatedAt,
		booking.UpdatedAt,
		booking.ModifiedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	return r.findOne(ctx, query, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func bookingFrom(filter entity.BookingFilter) (string, *whereBuilder) {
	from := `FROM bookings b`
	w := &whereBuilder{}
	if filter.OwnerID != nil {
		from += ` JOIN parking_spaces ps ON ps.id = b.parking_space_id`
		w.add("ps.owner_id = $%d", *filter.OwnerID)
	}
	if filter.CustomerID != nil {
		w.add("b.customer_id = $%d", *filter.CustomerID)
	}
	if filter.ParkingSpaceID != nil {
		w.add("b.parking_space_id = $%d", *filter.ParkingSpaceID)
	}
	if filter.Status != nil {
		w.add("b.status = $%d", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		w.add("b.payment_status = $%d", *filter.PaymentStatus)
	}
	return from, w
}

func (r *bookingRepository) List(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	from, w := bookingFrom(filter)
	suffix, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + bookingColumns + ` ` + from + ` ` + w.clause() +
		` ORDER BY b.created_at DESC, b.id DESC ` + suffix

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0, filter.Limit)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	from, w := bookingFrom(filter)
	query := `SELECT COUNT(*) ` + from + ` ` + w.clause()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateState(ctx context.Context, booking *entity.Booking, expected entity.BookingState) error {
	query := `
		UPDATE bookings
		SET status = $4, payment_status = $5, payment_screenshot = $6, transaction_id = $7,
		    verification_reason = $8, cancellation_reason = $9, updated_at = $10, modified_at = $11
		WHERE id = $1 AND status = $2 AND payment_status = $3
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		expected.Status,
		expected.PaymentStatus,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentScreenshot,
		booking.TransactionID,
		booking.VerificationReason,
		booking.CancellationReason,
		booking.UpdatedAt,
		booking.ModifiedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking state",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
			zap.String("payment_status", string(booking.PaymentStatus)),
		)
		return fmt.Errorf("update booking %s state: %w", booking.ID, err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Booking state changed since read",
			zap.String("booking_id", booking.ID.String()),
			zap.String("expected_status", string(expected.Status)),
			zap.String("expected_payment_status", string(expected.PaymentStatus)),
		)
		return entity.ErrConcurrentModification
	}

	return nil
}
