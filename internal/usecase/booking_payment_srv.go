package usecase

import (
	"context"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/dto/request"
	"parking-marketplace/internal/dto/response"
	"parking-marketplace/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingPaymentService drives the (status, paymentStatus) lifecycle of a booking.
type BookingPaymentService interface {
	UploadScreenshot(ctx context.Context, bookingID uuid.UUID, in request.UploadScreenshotInput) (*response.BookingResponse, error)
	VerifyPayment(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	// RejectPayment cancels the booking. With in.Refund the booking's wallet
	// payment is refunded in the same transaction.
	RejectPayment(ctx context.Context, bookingID uuid.UUID, in request.RejectPaymentInput) (*response.BookingTransitionResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, reason entity.Reason) (*response.BookingResponse, error)
}

type bookingPaymentService struct {
	store repository.Store
	now   func() time.Time
	log   *zap.Logger
}

func NewBookingPaymentService(store repository.Store, log *zap.Logger) BookingPaymentService {
	return &bookingPaymentService{
		store: store,
		now:   utcNow,
		log:   log.With(zap.String("service", "booking_payment")),
	}
}

func (s *bookingPaymentService) UploadScreenshot(ctx context.Context, bookingID uuid.UUID, in request.UploadScreenshotInput) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, "upload_screenshot", bookingID, func(ctx context.Context, tx repository.Store, b *entity.Booking, now time.Time) error {
		return b.AttachScreenshot(in.ScreenshotURL, in.TransactionID, now)
	})
	if err != nil {
		return nil, err
	}
	result := response.BookingToResponse(booking)
	return &result, nil
}

func (s *bookingPaymentService) VerifyPayment(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, "verify_payment", bookingID, func(ctx context.Context, tx repository.Store, b *entity.Booking, now time.Time) error {
		return b.VerifyPayment(now)
	})
	if err != nil {
		return nil, err
	}
	result := response.BookingToResponse(booking)
	return &result, nil
}

func (s *bookingPaymentService) RejectPayment(ctx context.Context, bookingID uuid.UUID, in request.RejectPaymentInput) (*response.BookingTransitionResponse, error) {
	var refund *posting
	booking, err := s.transition(ctx, "reject_payment", bookingID, func(ctx context.Context, tx repository.Store, b *entity.Booking, now time.Time) error {
		if err := b.RejectPayment(in.Reason, now); err != nil {
			return err
		}
		if !in.Refund {
			return nil
		}
		var err error
		refund, err = refundBooking(ctx, tx, nil, b.ID, "Refund for rejected payment: "+in.Reason.String(), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &response.BookingTransitionResponse{BookingResponse: response.BookingToResponse(booking)}
	if refund != nil {
		refund.record()
		result.Refund = refund.response()
		s.log.Info("Rejected booking refunded",
			zap.String("booking_id", bookingID.String()),
			zap.String("transaction_id", refund.txn.ID.String()),
			zap.String("amount", refund.txn.Amount.String()),
		)
	}
	return result, nil
}

func (s *bookingPaymentService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason entity.Reason) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, "cancel", bookingID, func(ctx context.Context, tx repository.Store, b *entity.Booking, now time.Time) error {
		return b.Cancel(reason, now)
	})
	if err != nil {
		return nil, err
	}
	result := response.BookingToResponse(booking)
	return &result, nil
}

type bookingMutation func(ctx context.Context, tx repository.Store, b *entity.Booking, now time.Time) error

// transition locks the booking, applies mutate and persists the result
// conditionally on the state that was read, all in one transaction.
func (s *bookingPaymentService) transition(ctx context.Context, name string, bookingID uuid.UUID, mutate bookingMutation) (booking *entity.Booking, err error) {
	defer func() { metrics.RecordBookingTransition(name, err) }()

	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return entity.ErrBookingNotFound
		}

		expected := b.State()
		if err := mutate(ctx, tx, b, s.now()); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateState(ctx, b, expected); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, logFailure(s.log, "Booking "+name+" failed", err, zap.String("booking_id", bookingID.String()))
	}

	s.log.Info("Booking "+name,
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
		zap.String("payment_status", string(booking.PaymentStatus)),
	)
	return booking, nil
}
