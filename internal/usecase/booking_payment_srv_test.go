package usecase

import (
	"context"
	"sync"
	"testing"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReason(t *testing.T, raw string) entity.Reason {
	t.Helper()
	reason, err := entity.NewReason("reason", raw)
	require.NoError(t, err)
	return reason
}

func reloadBooking(t *testing.T, svc *bookingPaymentService, id uuid.UUID) *entity.Booking {
	t.Helper()
	booking, err := svc.store.Bookings().FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, booking)
	return booking
}

func TestVerifyWithoutScreenshotIsRejected(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	booking := seedBooking(t, store, uuid.New())

	_, err := svc.VerifyPayment(context.Background(), booking.ID)
	assert.ErrorIs(t, err, entity.ErrMissingScreenshot)

	got := reloadBooking(t, svc, booking.ID)
	assert.Equal(t, entity.BookingStatusPending, got.Status)
	assert.Equal(t, entity.PaymentStatusPending, got.PaymentStatus)
}

func TestRejectPaymentCancelsBooking(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	booking := seedBooking(t, store, uuid.New(), withScreenshot("https://cdn.example.com/proof.png"))

	resp, err := svc.RejectPayment(context.Background(), booking.ID, request.RejectPaymentInput{Reason: mustReason(t, "blurry image")})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.PaymentStatusRejected, resp.PaymentStatus)
	require.NotNil(t, resp.VerificationReason)
	assert.Equal(t, "blurry image", *resp.VerificationReason)
	assert.Nil(t, resp.Refund)

	got := reloadBooking(t, svc, booking.ID)
	assert.Equal(t, entity.PaymentStatusRejected, got.PaymentStatus)
	assert.True(t, got.ModifiedAt.Equal(testNow))
}

func TestUploadThenVerifyConfirmsBooking(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	ctx := context.Background()
	booking := seedBooking(t, store, uuid.New())

	txnRef := "UPI-88213"
	resp, err := svc.UploadScreenshot(ctx, booking.ID, request.UploadScreenshotInput{
		ScreenshotURL: "https://cdn.example.com/first.png",
		TransactionID: &txnRef,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentScreenshot)

	// re-upload while pending replaces the screenshot
	resp, err = svc.UploadScreenshot(ctx, booking.ID, request.UploadScreenshotInput{ScreenshotURL: "https://cdn.example.com/second.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/second.png", *resp.PaymentScreenshot)
	require.NotNil(t, resp.TransactionID)
	assert.Equal(t, txnRef, *resp.TransactionID)

	verified, err := svc.VerifyPayment(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, verified.Status)
	assert.Equal(t, entity.PaymentStatusVerified, verified.PaymentStatus)

	_, err = svc.VerifyPayment(ctx, booking.ID)
	assert.ErrorIs(t, err, entity.ErrPaymentAlreadyProcessed)
	_, err = svc.RejectPayment(ctx, booking.ID, request.RejectPaymentInput{Reason: mustReason(t, "late")})
	assert.ErrorIs(t, err, entity.ErrPaymentNotPending)
	_, err = svc.UploadScreenshot(ctx, booking.ID, request.UploadScreenshotInput{ScreenshotURL: "https://cdn.example.com/third.png"})
	assert.ErrorIs(t, err, entity.ErrPaymentNotPending)
}

func TestCancelledBookingIsTerminal(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	ctx := context.Background()
	booking := seedBooking(t, store, uuid.New(), withScreenshot("https://cdn.example.com/proof.png"))

	resp, err := svc.CancelBooking(ctx, booking.ID, mustReason(t, "plans changed"))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)

	_, err = svc.CancelBooking(ctx, booking.ID, mustReason(t, "again"))
	assert.ErrorIs(t, err, entity.ErrAlreadyCancelled)
	_, err = svc.VerifyPayment(ctx, booking.ID)
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)
	_, err = svc.UploadScreenshot(ctx, booking.ID, request.UploadScreenshotInput{ScreenshotURL: "https://cdn.example.com/late.png"})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)
	_, err = svc.RejectPayment(ctx, booking.ID, request.RejectPaymentInput{Reason: mustReason(t, "late reject"), Refund: true})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)

	got := reloadBooking(t, svc, booking.ID)
	assert.Equal(t, entity.BookingState{Status: entity.BookingStatusCancelled, PaymentStatus: entity.PaymentStatusPending}, got.State())
	assert.Nil(t, got.VerificationReason)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "plans changed", *got.CancellationReason)
}

func TestCancelCompletedBookingIsRefused(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	booking := seedBooking(t, store, uuid.New(), withState(entity.BookingStatusCompleted, entity.PaymentStatusVerified))

	_, err := svc.CancelBooking(context.Background(), booking.ID, mustReason(t, "too late"))
	assert.ErrorIs(t, err, entity.ErrBookingCompleted)
	assert.Equal(t, entity.BookingStatusCompleted, reloadBooking(t, svc, booking.ID).Status)
}

func TestConcurrentVerifyAndRejectResolveOnce(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	booking := seedBooking(t, store, uuid.New(), withScreenshot("https://cdn.example.com/proof.png"))

	// admins racing on one payment: exactly one decision may stick
	reason := mustReason(t, "duplicate proof")
	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := context.Background()
			if i%2 == 0 {
				_, errs[i] = svc.VerifyPayment(ctx, booking.ID)
				return
			}
			_, errs[i] = svc.RejectPayment(ctx, booking.ID, request.RejectPaymentInput{Reason: reason})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if i%2 == 0 {
			assert.ErrorIs(t, err, entity.ErrPaymentAlreadyProcessed)
		} else {
			assert.ErrorIs(t, err, entity.ErrPaymentNotPending)
		}
	}
	assert.Equal(t, 1, succeeded)

	got := reloadBooking(t, svc, booking.ID)
	assert.Contains(t, []entity.BookingState{
		{Status: entity.BookingStatusConfirmed, PaymentStatus: entity.PaymentStatusVerified},
		{Status: entity.BookingStatusCancelled, PaymentStatus: entity.PaymentStatusRejected},
	}, got.State())
}

func TestCancelConfirmedBookingKeepsPaymentStatus(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	booking := seedBooking(t, store, uuid.New(),
		withScreenshot("https://cdn.example.com/proof.png"),
		withState(entity.BookingStatusConfirmed, entity.PaymentStatusVerified))

	resp, err := svc.CancelBooking(context.Background(), booking.ID, mustReason(t, "space unavailable"))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.PaymentStatusVerified, resp.PaymentStatus)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "space unavailable", *resp.CancellationReason)
}

func TestTransitionsOnUnknownBooking(t *testing.T) {
	svc := newTestBookingPaymentService(newTestStore(t))
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.VerifyPayment(ctx, id)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	_, err = svc.RejectPayment(ctx, id, request.RejectPaymentInput{Reason: mustReason(t, "x")})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	_, err = svc.CancelBooking(ctx, id, mustReason(t, "x"))
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	_, err = svc.UploadScreenshot(ctx, id, request.UploadScreenshotInput{ScreenshotURL: "https://cdn.example.com/a.png"})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestRejectWithRefundCreditsPayer(t *testing.T) {
	store := newTestStore(t)
	wallets := newTestWalletService(store)
	svc := newTestBookingPaymentService(store)
	ctx := context.Background()

	userID := createWallet(t, wallets, "1000")
	booking := seedBooking(t, store, userID, withScreenshot("https://cdn.example.com/proof.png"))
	_, err := wallets.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(userID, "300"), BookingID: &booking.ID})
	require.NoError(t, err)

	resp, err := svc.RejectPayment(ctx, booking.ID, request.RejectPaymentInput{Reason: mustReason(t, "wrong amount"), Refund: true})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRejected, resp.PaymentStatus)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, entity.TransactionRefund, resp.Refund.Transaction.Type)
	assertDecimal(t, "1000", resp.Refund.Wallet.Balance)
	assertDecimal(t, "1000", walletBalance(t, store, userID))
}

func TestRejectWithRefundRollsBackWithoutPayment(t *testing.T) {
	store := newTestStore(t)
	svc := newTestBookingPaymentService(store)
	booking := seedBooking(t, store, uuid.New(), withScreenshot("https://cdn.example.com/proof.png"))

	_, err := svc.RejectPayment(context.Background(), booking.ID, request.RejectPaymentInput{Reason: mustReason(t, "fake"), Refund: true})
	assert.ErrorIs(t, err, entity.ErrNoBookingPayment)

	got := reloadBooking(t, svc, booking.ID)
	assert.Equal(t, entity.BookingStatusPending, got.Status)
	assert.Equal(t, entity.PaymentStatusPending, got.PaymentStatus)
	assert.Nil(t, got.VerificationReason)
}
