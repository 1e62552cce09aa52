package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusRejected:
		return true
	}
	return false
}

// BookingState is the (status, paymentStatus) pair driven by the payment flow.
type BookingState struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
}

type Booking struct {
	Base
	BookingCode        string          `db:"booking_code"`
	CustomerID         uuid.UUID       `db:"customer_id"`
	ParkingSpaceID     uuid.UUID       `db:"parking_space_id"`
	Date               time.Time       `db:"date"`
	StartTime          time.Time       `db:"start_time"`
	EndTime            time.Time       `db:"end_time"`
	DurationMinutes    int             `db:"duration_minutes"`
	Amount             decimal.Decimal `db:"amount"`
	Status             BookingStatus   `db:"status"`
	PaymentStatus      PaymentStatus   `db:"payment_status"`
	PaymentScreenshot  *string         `db:"payment_screenshot"`
	TransactionID      *string         `db:"transaction_id"`
	VerificationReason *string         `db:"verification_reason"`
	CancellationReason *string         `db:"cancellation_reason"`
	ModifiedAt         time.Time       `db:"modified_at"`
}

// AcceptsWalletPayment reports whether customerID may pay for b from a wallet.
func (b *Booking) AcceptsWalletPayment(customerID uuid.UUID) error {
	if b.CustomerID != customerID {
		return ErrBookingNotOwned
	}
	if b.Status == BookingStatusCancelled {
		return ErrBookingCancelled.Withf("booking is cancelled, payment is not accepted")
	}
	if b.Status != BookingStatusPending || b.PaymentStatus != PaymentStatusPending {
		return ErrPaymentAlreadyProcessed.Withf("booking is %s with payment %s", b.Status, b.PaymentStatus)
	}
	return nil
}

func (b *Booking) State() BookingState {
	return BookingState{Status: b.Status, PaymentStatus: b.PaymentStatus}
}

func (b *Booking) hasScreenshot() bool {
	return b.PaymentScreenshot != nil && strings.TrimSpace(*b.PaymentScreenshot) != ""
}

func (b *Booking) touch(now time.Time) {
	b.UpdatedAt = now
	b.ModifiedAt = now
}

// AttachScreenshot records proof of payment. Re-uploading overwrites the
// previous screenshot while payment is still pending.
func (b *Booking) AttachScreenshot(url string, transactionID *string, now time.Time) error {
	if b.Status == BookingStatusCancelled {
		return ErrBookingCancelled
	}
	if b.PaymentStatus != PaymentStatusPending {
		return ErrPaymentNotPending.Withf("payment status is %s, screenshot can only be uploaded while pending", b.PaymentStatus)
	}
	b.PaymentScreenshot = &url
	if transactionID != nil {
		b.TransactionID = transactionID
	}
	b.touch(now)
	return nil
}

// VerifyPayment is the only transition into (confirmed, verified).
func (b *Booking) VerifyPayment(now time.Time) error {
	if b.PaymentStatus != PaymentStatusPending {
		return ErrPaymentAlreadyProcessed.Withf("payment already %s", b.PaymentStatus)
	}
	if b.Status != BookingStatusPending {
		return ErrBookingCancelled.Withf("booking is %s, payment can no longer be verified", b.Status)
	}
	if !b.hasScreenshot() {
		return ErrMissingScreenshot
	}
	b.PaymentStatus = PaymentStatusVerified
	b.Status = BookingStatusConfirmed
	b.touch(now)
	return nil
}

// RejectPayment moves a pending payment to (cancelled, rejected).
func (b *Booking) RejectPayment(reason Reason, now time.Time) error {
	if b.PaymentStatus != PaymentStatusPending {
		return ErrPaymentNotPending.Withf("payment status is %s, only pending payments can be rejected", b.PaymentStatus)
	}
	if b.Status == BookingStatusCancelled {
		return ErrBookingCancelled.Withf("booking is cancelled, payment can no longer be rejected")
	}
	value := reason.String()
	b.PaymentStatus = PaymentStatusRejected
	b.Status = BookingStatusCancelled
	b.VerificationReason = &value
	b.touch(now)
	return nil
}

// Cancel is allowed from pending and confirmed and leaves paymentStatus untouched.
func (b *Booking) Cancel(reason Reason, now time.Time) error {
	if b.Status == BookingStatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.Status == BookingStatusCompleted {
		return ErrBookingCompleted.Withf("booking is completed and can no longer be cancelled")
	}
	value := reason.String()
	b.Status = BookingStatusCancelled
	b.CancellationReason = &value
	b.touch(now)
	return nil
}

// BookingFilter selects bookings for listing.
type BookingFilter struct {
	CustomerID     *uuid.UUID
	OwnerID        *uuid.UUID
	ParkingSpaceID *uuid.UUID
	Status         *BookingStatus
	PaymentStatus  *PaymentStatus
	Limit          int
	Offset         int
}
