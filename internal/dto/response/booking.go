package response

import (
	"time"

	"parking-marketplace/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID                 string               `json:"id"`
	BookingID          string               `json:"bookingId"`
	CustomerID         string               `json:"customerId"`
	ParkingSpaceID     string               `json:"parkingSpaceId"`
	Date               string               `json:"date"`
	StartTime          time.Time            `json:"startTime"`
	EndTime            time.Time            `json:"endTime"`
	Duration           int                  `json:"duration"`
	Amount             decimal.Decimal      `json:"amount"`
	Status             entity.BookingStatus `json:"status"`
	PaymentStatus      entity.PaymentStatus `json:"paymentStatus"`
	PaymentScreenshot  *string              `json:"paymentScreenshot"`
	TransactionID      *string              `json:"transactionId"`
	VerificationReason *string              `json:"verificationReason"`
	CancellationReason *string              `json:"cancellationReason"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	ModifiedAt         time.Time            `json:"modifiedAt"`
}

// BookingTransitionResponse is returned by payment transitions. Refund is set
// only when a rejection refunded the customer's wallet.
type BookingTransitionResponse struct {
	BookingResponse
	Refund *WalletOperationResponse `json:"refund,omitempty"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID.String(),
		BookingID:          b.BookingCode,
		CustomerID:         b.CustomerID.String(),
		ParkingSpaceID:     b.ParkingSpaceID.String(),
		Date:               b.Date.Format(time.DateOnly),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Duration:           b.DurationMinutes,
		Amount:             b.Amount,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentScreenshot:  b.PaymentScreenshot,
		TransactionID:      b.TransactionID,
		VerificationReason: b.VerificationReason,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		ModifiedAt:         b.ModifiedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}
