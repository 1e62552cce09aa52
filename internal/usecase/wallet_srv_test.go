package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/dto/request"
	"parking-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWalletRejectsSecondWalletForUser(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "0")

	_, err := svc.CreateWallet(context.Background(), request.CreateWalletInput{UserID: userID, Currency: "INR"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrWalletExists)
	assert.Equal(t, apperror.KindConflict, apperror.From(err).Kind())
}

func TestGetWalletNotFound(t *testing.T) {
	svc := newTestWalletService(newTestStore(t))
	_, err := svc.GetWallet(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)
}

func TestDeductForBookingMarksBookingPaid(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "1000")
	booking := seedBooking(t, store, userID)

	resp, err := svc.Deduct(context.Background(), request.DeductInput{
		WalletAmountInput: amountInput(userID, "300"),
		BookingID:         &booking.ID,
	})
	require.NoError(t, err)

	assertDecimal(t, "700", resp.Wallet.Balance)
	assert.Equal(t, entity.TransactionBookingPayment, resp.Transaction.Type)
	assertDecimal(t, "300", resp.Transaction.Amount)
	assert.Equal(t, entity.TransactionCompleted, resp.Transaction.Status)
	require.NotNil(t, resp.Transaction.BookingID)
	assert.Equal(t, booking.ID.String(), *resp.Transaction.BookingID)
	assert.Equal(t, "Booking payment", resp.Transaction.Description)

	page, err := svc.ListTransactions(context.Background(), entity.TransactionFilter{UserID: &userID, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)
}

func TestDeductWithoutBookingIsPlainDebit(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "50")

	resp, err := svc.Deduct(context.Background(), request.DeductInput{WalletAmountInput: amountInput(userID, "20.50")})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionDebit, resp.Transaction.Type)
	assertDecimal(t, "29.50", resp.Wallet.Balance)
}

func TestDeductUnknownBooking(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "100")
	missing := uuid.New()

	_, err := svc.Deduct(context.Background(), request.DeductInput{
		WalletAmountInput: amountInput(userID, "10"),
		BookingID:         &missing,
	})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	assertDecimal(t, "100", walletBalance(t, store, userID))
}

func TestDeductInsufficientBalanceLeavesNoTrace(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "100")

	_, err := svc.Deduct(context.Background(), request.DeductInput{WalletAmountInput: amountInput(userID, "100.01")})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)
	assert.Equal(t, apperror.KindInsufficientResources, apperror.From(err).Kind())
	assert.Contains(t, apperror.From(err).Message(), "available 100.00")

	assertDecimal(t, "100", walletBalance(t, store, userID))
	count, err := store.Transactions().Count(context.Background(), entity.TransactionFilter{UserID: &userID})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOperationsOnMissingWallet(t *testing.T) {
	svc := newTestWalletService(newTestStore(t))
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddMoney(ctx, amountInput(userID, "10"))
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)
	_, err = svc.Credit(ctx, amountInput(userID, "10"))
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)
	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(userID, "10")})
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)
}

func TestBalanceEqualsSumOfSignedTransactions(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	ctx := context.Background()
	userID := createWallet(t, svc, "0")

	_, err := svc.AddMoney(ctx, amountInput(userID, "500"))
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(userID, "120.75")})
	require.NoError(t, err)
	_, err = svc.Credit(ctx, amountInput(userID, "30.25"))
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(userID, "1000")})
	require.Error(t, err)

	txns, err := store.Transactions().List(ctx, entity.TransactionFilter{UserID: &userID, Limit: 100})
	require.NoError(t, err)
	require.Len(t, txns, 3)

	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.SignedAmount())
	}
	assertDecimal(t, "409.50", sum)
	assertDecimal(t, "409.50", walletBalance(t, store, userID))
}

func TestConcurrentDeductsNeverOverdraw(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "1000")

	// two 600 deducts on 1000: exactly one may win
	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Deduct(context.Background(), request.DeductInput{WalletAmountInput: amountInput(userID, "600")})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, apperror.KindInsufficientResources, apperror.From(err).Kind())
	}
	assert.Equal(t, 1, succeeded)
	assertDecimal(t, "400", walletBalance(t, store, userID))
}

func TestConcurrentSmallDeductsStopAtZero(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	userID := createWallet(t, svc, "100")

	const workers = 15
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Deduct(context.Background(), request.DeductInput{WalletAmountInput: amountInput(userID, "10")}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assertDecimal(t, "0", walletBalance(t, store, userID))
}

func TestRefundReturnsBookingPaymentOnce(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	bookings := newTestBookingPaymentService(store)
	ctx := context.Background()
	userID := createWallet(t, svc, "1000")
	booking := seedBooking(t, store, userID)

	_, err := svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(userID, "300"), BookingID: &booking.ID})
	require.NoError(t, err)
	_, err = bookings.CancelBooking(ctx, booking.ID, mustReason(t, "host cancelled"))
	require.NoError(t, err)

	_, err = svc.Refund(ctx, request.RefundInput{UserID: uuid.New(), BookingID: booking.ID})
	assert.ErrorIs(t, err, entity.ErrNoBookingPayment)

	resp, err := svc.Refund(ctx, request.RefundInput{UserID: userID, BookingID: booking.ID, Description: "Host cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionRefund, resp.Transaction.Type)
	assert.Equal(t, "Host cancelled", resp.Transaction.Description)
	assertDecimal(t, "1000", resp.Wallet.Balance)

	_, err = svc.Refund(ctx, request.RefundInput{UserID: userID, BookingID: booking.ID})
	assert.ErrorIs(t, err, entity.ErrAlreadyRefunded)
	assertDecimal(t, "1000", walletBalance(t, store, userID))
}

func TestRefundWithoutPayment(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	ctx := context.Background()
	userID := createWallet(t, svc, "1000")
	booking := seedBooking(t, store, userID, withState(entity.BookingStatusCancelled, entity.PaymentStatusPending))

	_, err := svc.Refund(ctx, request.RefundInput{UserID: userID, BookingID: booking.ID})
	assert.ErrorIs(t, err, entity.ErrNoBookingPayment)

	_, err = svc.Refund(ctx, request.RefundInput{UserID: userID, BookingID: uuid.New()})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestRefundRequiresCancelledBooking(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	bookings := newTestBookingPaymentService(store)
	ctx := context.Background()
	userID := createWallet(t, svc, "1000")
	booking := seedBooking(t, store, userID, withScreenshot("https://cdn.example.com/proof.png"))

	_, err := svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(userID, "300"), BookingID: &booking.ID})
	require.NoError(t, err)

	_, err = svc.Refund(ctx, request.RefundInput{UserID: userID, BookingID: booking.ID})
	assert.ErrorIs(t, err, entity.ErrBookingNotCancelled)

	_, err = bookings.VerifyPayment(ctx, booking.ID)
	require.NoError(t, err)
	_, err = svc.Refund(ctx, request.RefundInput{UserID: userID, BookingID: booking.ID})
	assert.ErrorIs(t, err, entity.ErrBookingNotCancelled)
	assert.Equal(t, apperror.KindInvalidState, apperror.From(err).Kind())

	assertDecimal(t, "700", walletBalance(t, store, userID))
	got := reloadBooking(t, bookings, booking.ID)
	assert.Equal(t, entity.BookingState{Status: entity.BookingStatusConfirmed, PaymentStatus: entity.PaymentStatusVerified}, got.State())
}

func TestDeductForBookingRequiresOwnUnpaidBooking(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	ctx := context.Background()
	owner := createWallet(t, svc, "1000")
	other := createWallet(t, svc, "1000")
	booking := seedBooking(t, store, owner)

	_, err := svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(other, "300"), BookingID: &booking.ID})
	assert.ErrorIs(t, err, entity.ErrBookingNotOwned)
	assertDecimal(t, "1000", walletBalance(t, store, other))

	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(owner, "300"), BookingID: &booking.ID})
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(owner, "300"), BookingID: &booking.ID})
	assert.ErrorIs(t, err, entity.ErrBookingAlreadyPaid)
	assertDecimal(t, "700", walletBalance(t, store, owner))

	cancelled := seedBooking(t, store, owner, withState(entity.BookingStatusCancelled, entity.PaymentStatusPending))
	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(owner, "300"), BookingID: &cancelled.ID})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)

	confirmed := seedBooking(t, store, owner, withState(entity.BookingStatusConfirmed, entity.PaymentStatusVerified))
	_, err = svc.Deduct(ctx, request.DeductInput{WalletAmountInput: amountInput(owner, "300"), BookingID: &confirmed.ID})
	assert.ErrorIs(t, err, entity.ErrPaymentAlreadyProcessed)
	assertDecimal(t, "700", walletBalance(t, store, owner))
}

func TestAddMoneyRejectsBalanceAboveColumnLimit(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	ctx := context.Background()
	userID := createWallet(t, svc, "999999999999.00")

	_, err := svc.AddMoney(ctx, amountInput(userID, "1"))
	assert.ErrorIs(t, err, entity.ErrBalanceLimit)
	assert.Equal(t, apperror.KindValidation, apperror.From(err).Kind())
	assertDecimal(t, "999999999999.00", walletBalance(t, store, userID))

	resp, err := svc.AddMoney(ctx, amountInput(userID, "0.99"))
	require.NoError(t, err)
	assertDecimal(t, "999999999999.99", resp.Wallet.Balance)
	assertDecimal(t, "999999999999.99", walletBalance(t, store, userID))

	page, err := svc.ListTransactions(ctx, entity.TransactionFilter{UserID: &userID, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)
}

func TestListTransactionsNewestFirstWithPagination(t *testing.T) {
	store := newTestStore(t)
	svc := newTestWalletService(store)
	ctx := context.Background()
	userID := createWallet(t, svc, "0")

	for i, amount := range []string{"10", "20", "30"} {
		svc.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Minute) }
		_, err := svc.AddMoney(ctx, amountInput(userID, amount))
		require.NoError(t, err)
	}

	page, err := svc.ListTransactions(ctx, entity.TransactionFilter{UserID: &userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assertDecimal(t, "30", page.Data[0].Amount)
	assertDecimal(t, "20", page.Data[1].Amount)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasMore)
}
