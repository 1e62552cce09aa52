package gormstore

import (
	"context"
	"errors"
	"fmt"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	model := bookingModel(booking)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("Failed to create booking", zap.Error(err), zap.String("booking_code", booking.BookingCode))
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *bookingRepository) find(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var model Booking
	err := db.Where("id = ?", id.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}
	booking, err := model.toEntity()
	if err != nil {
		return nil, fmt.Errorf("decode booking %s: %w", model.ID, err)
	}
	return booking, nil
}

func (r *bookingRepository) filtered(ctx context.Context, filter entity.BookingFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&Booking{})
	if filter.OwnerID != nil {
		db = db.Where("bookings.parking_space_id IN (?)",
			r.db.WithContext(ctx).Model(&ParkingSpace{}).Select("id").Where("owner_id = ?", filter.OwnerID.String()))
	}
	if filter.CustomerID != nil {
		db = db.Where("bookings.customer_id = ?", filter.CustomerID.String())
	}
	if filter.ParkingSpaceID != nil {
		db = db.Where("bookings.parking_space_id = ?", filter.ParkingSpaceID.String())
	}
	if filter.Status != nil {
		db = db.Where("bookings.status = ?", string(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		db = db.Where("bookings.payment_status = ?", string(*filter.PaymentStatus))
	}
	return db
}

func (r *bookingRepository) List(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	var rows []Booking
	err := r.filtered(ctx, filter).
		Order("bookings.created_at DESC").
		Order("bookings.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]*entity.Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("decode booking %s: %w", row.ID, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateState(ctx context.Context, booking *entity.Booking, expected entity.BookingState) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ? AND payment_status = ?",
			booking.ID.String(), string(expected.Status), string(expected.PaymentStatus)).
		Updates(map[string]any{
			"status":              string(booking.Status),
			"payment_status":      string(booking.PaymentStatus),
			"payment_screenshot":  booking.PaymentScreenshot,
			"transaction_id":      booking.TransactionID,
			"verification_reason": booking.VerificationReason,
			"cancellation_reason": booking.CancellationReason,
			"updated_at":          booking.UpdatedAt,
			"modified_at":         booking.ModifiedAt,
		})
	if result.Error != nil {
		r.log.Error("Failed to update booking state", zap.Error(result.Error), zap.String("booking_id", booking.ID.String()))
		return fmt.Errorf("update booking %s state: %w", booking.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrConcurrentModification
	}
	return nil
}
