package usecase

import (
	"context"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/dto/response"
	"parking-marketplace/pkg/metrics"

	"github.com/google/uuid"
)

// entry is one balance change to post against a user's wallet.
type entry struct {
	userID      uuid.UUID
	txType      entity.TransactionType
	amount      entity.Amount
	description string
	bookingID   *uuid.UUID
}

type posting struct {
	wallet *entity.Wallet
	txn    *entity.WalletTransaction
}

// record publishes a committed posting to metrics.
func (p *posting) record() {
	amount, _ := p.txn.Amount.Float64()
	metrics.RecordWalletAmount(string(p.txn.Type), amount)
}

func (p *posting) response() *response.WalletOperationResponse {
	return &response.WalletOperationResponse{
		Wallet:      response.WalletToResponse(p.wallet),
		Transaction: response.TransactionToResponse(p.txn),
	}
}

// postEntry must run inside tx. It locks the wallet row, checks the fresh
// balance, writes the new balance conditionally on the one it read and
// appends the matching transaction row.
func postEntry(ctx context.Context, tx repository.Store, e entry, now time.Time) (*posting, error) {
	wallet, err := tx.Wallets().FindByUserIDForUpdate(ctx, e.userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, entity.ErrWalletNotFound
	}

	previous := wallet.Balance
	next := previous.Add(e.amount.Decimal())
	if e.txType.IsDebit() {
		if !wallet.CanCover(e.amount) {
			return nil, entity.ErrInsufficientBalance.Withf(
				"insufficient wallet balance: available %s, requested %s",
				previous.StringFixed(entity.MaxAmountScale), e.amount.String())
		}
		next = previous.Sub(e.amount.Decimal())
	}
	if next.GreaterThan(entity.MaxAmount) {
		return nil, entity.ErrBalanceLimit.Withf(
			"resulting balance %s exceeds the maximum of %s",
			next.StringFixed(entity.MaxAmountScale), entity.MaxAmount.StringFixed(entity.MaxAmountScale))
	}

	if err := tx.Wallets().UpdateBalance(ctx, wallet.ID, previous, next, now); err != nil {
		return nil, err
	}
	wallet.Balance = next
	wallet.UpdatedAt = now

	txn := &entity.WalletTransaction{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		WalletID:    wallet.ID,
		UserID:      wallet.UserID,
		Type:        e.txType,
		Amount:      e.amount.Decimal(),
		Description: e.description,
		BookingID:   e.bookingID,
		Status:      entity.TransactionCompleted,
	}
	if err := tx.Transactions().Create(ctx, txn); err != nil {
		return nil, err
	}

	return &posting{wallet: wallet, txn: txn}, nil
}

// refundBooking returns the completed wallet payment of a cancelled booking to
// the wallet that paid it. When payer is set the payment must belong to that user.
func refundBooking(ctx context.Context, tx repository.Store, payer *uuid.UUID, bookingID uuid.UUID, description string, now time.Time) (*posting, error) {
	booking, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	payment, err := tx.Transactions().FindBookingPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, entity.ErrNoBookingPayment
	}
	if payer != nil && payment.UserID != *payer {
		return nil, entity.ErrNoBookingPayment.Withf("user has no completed wallet payment for booking %s", bookingID)
	}
	if booking.Status != entity.BookingStatusCancelled {
		return nil, entity.ErrBookingNotCancelled.Withf("booking is %s, only cancelled bookings can be refunded", booking.Status)
	}

	refunded, err := tx.Transactions().HasRefund(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if refunded {
		return nil, entity.ErrAlreadyRefunded
	}

	amount, err := entity.NewAmount(payment.Amount)
	if err != nil {
		return nil, err
	}
	return postEntry(ctx, tx, entry{
		userID:      payment.UserID,
		txType:      entity.TransactionRefund,
		amount:      amount,
		description: describe(description, "Refund for booking payment"),
		bookingID:   &bookingID,
	}, now)
}
