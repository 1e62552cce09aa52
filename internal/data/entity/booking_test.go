package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func pendingBooking() *Booking {
	return &Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusPending}
}

func strPtr(s string) *string { return &s }

func mustReason(t *testing.T, raw string) Reason {
	t.Helper()
	reason, err := NewReason("reason", raw)
	require.NoError(t, err)
	return reason
}

func TestAttachScreenshotOverwritesWhilePending(t *testing.T) {
	b := pendingBooking()

	require.NoError(t, b.AttachScreenshot("https://cdn/1.png", strPtr("UTR-1"), testNow))
	require.NoError(t, b.AttachScreenshot("https://cdn/2.png", nil, testNow))

	assert.Equal(t, "https://cdn/2.png", *b.PaymentScreenshot)
	assert.Equal(t, "UTR-1", *b.TransactionID)
	assert.Equal(t, BookingState{BookingStatusPending, PaymentStatusPending}, b.State())
	assert.Equal(t, testNow, b.ModifiedAt)
}

func TestAttachScreenshotRequiresPendingPayment(t *testing.T) {
	b := pendingBooking()
	b.PaymentStatus = PaymentStatusVerified
	b.Status = BookingStatusConfirmed

	err := b.AttachScreenshot("https://cdn/1.png", nil, testNow)
	assert.True(t, errors.Is(err, ErrPaymentNotPending))
	assert.Nil(t, b.PaymentScreenshot)
}

func TestVerifyPaymentWithoutScreenshotLeavesStateUnchanged(t *testing.T) {
	b := pendingBooking()
	b.PaymentScreenshot = strPtr("   ")

	err := b.VerifyPayment(testNow)
	assert.True(t, errors.Is(err, ErrMissingScreenshot))
	assert.Equal(t, BookingState{BookingStatusPending, PaymentStatusPending}, b.State())
}

func TestVerifyPaymentConfirmsBooking(t *testing.T) {
	b := pendingBooking()
	b.PaymentScreenshot = strPtr("https://cdn/ok.png")

	require.NoError(t, b.VerifyPayment(testNow))
	assert.Equal(t, BookingState{BookingStatusConfirmed, PaymentStatusVerified}, b.State())

	err := b.VerifyPayment(testNow)
	assert.True(t, errors.Is(err, ErrPaymentAlreadyProcessed))
	err = b.RejectPayment(mustReason(t, "late"), testNow)
	assert.True(t, errors.Is(err, ErrPaymentNotPending))
}

func TestVerifyPaymentOnCancelledBooking(t *testing.T) {
	b := pendingBooking()
	b.PaymentScreenshot = strPtr("https://cdn/ok.png")
	require.NoError(t, b.Cancel(mustReason(t, "plans changed"), testNow))

	err := b.VerifyPayment(testNow)
	assert.True(t, errors.Is(err, ErrBookingCancelled))
	assert.Equal(t, PaymentStatusPending, b.PaymentStatus)
}

func TestRejectPaymentCancelsBooking(t *testing.T) {
	b := pendingBooking()
	b.PaymentScreenshot = strPtr("https://cdn/blurry.png")

	require.NoError(t, b.RejectPayment(mustReason(t, "blurry image"), testNow))
	assert.Equal(t, BookingState{BookingStatusCancelled, PaymentStatusRejected}, b.State())
	assert.Equal(t, "blurry image", *b.VerificationReason)

	err := b.RejectPayment(mustReason(t, "again"), testNow)
	assert.True(t, errors.Is(err, ErrPaymentNotPending))
	err = b.VerifyPayment(testNow)
	assert.True(t, errors.Is(err, ErrPaymentAlreadyProcessed))
}

func TestCancelIsTerminal(t *testing.T) {
	b := pendingBooking()
	require.NoError(t, b.Cancel(mustReason(t, "no longer needed"), testNow))
	assert.Equal(t, BookingStatusCancelled, b.Status)
	assert.Equal(t, PaymentStatusPending, b.PaymentStatus)
	assert.Equal(t, "no longer needed", *b.CancellationReason)

	err := b.Cancel(mustReason(t, "twice"), testNow)
	assert.True(t, errors.Is(err, ErrAlreadyCancelled))

	err = b.AttachScreenshot("https://cdn/x.png", nil, testNow)
	assert.True(t, errors.Is(err, ErrBookingCancelled))

	err = b.RejectPayment(mustReason(t, "late reject"), testNow)
	assert.True(t, errors.Is(err, ErrBookingCancelled))
	assert.Equal(t, PaymentStatusPending, b.PaymentStatus)
	assert.Nil(t, b.VerificationReason)
}

func TestCancelConfirmedBooking(t *testing.T) {
	b := &Booking{Status: BookingStatusConfirmed, PaymentStatus: PaymentStatusVerified}
	require.NoError(t, b.Cancel(mustReason(t, "owner unavailable"), testNow))
	assert.Equal(t, BookingState{BookingStatusCancelled, PaymentStatusVerified}, b.State())
}

func TestCancelCompletedBookingIsRefused(t *testing.T) {
	b := &Booking{Status: BookingStatusCompleted, PaymentStatus: PaymentStatusVerified}
	err := b.Cancel(mustReason(t, "too late"), testNow)
	assert.True(t, errors.Is(err, ErrBookingCompleted))
	assert.Equal(t, BookingStatusCompleted, b.Status)
	assert.Nil(t, b.CancellationReason)
}

func TestAcceptsWalletPayment(t *testing.T) {
	customer := uuid.New()
	b := pendingBooking()
	b.CustomerID = customer

	assert.NoError(t, b.AcceptsWalletPayment(customer))
	assert.True(t, errors.Is(b.AcceptsWalletPayment(uuid.New()), ErrBookingNotOwned))

	b.Status, b.PaymentStatus = BookingStatusConfirmed, PaymentStatusVerified
	assert.True(t, errors.Is(b.AcceptsWalletPayment(customer), ErrPaymentAlreadyProcessed))

	b.Status = BookingStatusCancelled
	assert.True(t, errors.Is(b.AcceptsWalletPayment(customer), ErrBookingCancelled))
}
