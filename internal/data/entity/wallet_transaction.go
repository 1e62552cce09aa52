package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionAddMoney       TransactionType = "add_money"
	TransactionDebit          TransactionType = "debit"
	TransactionBookingPayment TransactionType = "booking_payment"
	TransactionRefund         TransactionType = "refund"
	TransactionCredit         TransactionType = "credit"
)

// IsDebit reports whether the type lowers the balance.
func (t TransactionType) IsDebit() bool {
	return t == TransactionDebit || t == TransactionBookingPayment
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionAddMoney, TransactionDebit, TransactionBookingPayment, TransactionRefund, TransactionCredit:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionCompleted, TransactionPending, TransactionFailed:
		return true
	}
	return false
}

// WalletTransaction is an append-only audit row. Amount is always positive;
// the direction comes from Type.
type WalletTransaction struct {
	BaseSimple
	WalletID    uuid.UUID         `db:"wallet_id"`
	UserID      uuid.UUID         `db:"user_id"`
	Type        TransactionType   `db:"type"`
	Amount      decimal.Decimal   `db:"amount"`
	Description string            `db:"description"`
	BookingID   *uuid.UUID        `db:"booking_id"`
	Status      TransactionStatus `db:"status"`
}

// SignedAmount is the balance delta this row represents.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	if t.Type.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionFilter selects transactions for listing. At least one of
// UserID or WalletID is set by the caller.
type TransactionFilter struct {
	UserID   *uuid.UUID
	WalletID *uuid.UUID
	Type     *TransactionType
	Status   *TransactionStatus
	Limit    int
	Offset   int
}
