package usecase

import (
	"context"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, filter entity.BookingFilter) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	store repository.Store
	log   *zap.Logger
}

func NewBookingService(store repository.Store, log *zap.Logger) BookingService {
	return &bookingService{
		store: store,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.store.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		return nil, logFailure(s.log, "Get booking failed", err, zap.String("booking_id", bookingID.String()))
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}
	result := response.BookingToResponse(booking)
	return &result, nil
}

func (s *bookingService) ListBookings(ctx context.Context, filter entity.BookingFilter) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.store.Bookings().List(ctx, filter)
	if err != nil {
		return nil, logFailure(s.log, "List bookings failed", err)
	}
	total, err := s.store.Bookings().Count(ctx, filter)
	if err != nil {
		return nil, logFailure(s.log, "Count bookings failed", err)
	}
	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), filter.Limit, filter.Offset, total), nil
}
