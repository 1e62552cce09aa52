package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "INR"

type Wallet struct {
	Base
	UserID   uuid.UUID       `db:"user_id"`
	Balance  decimal.Decimal `db:"balance"`
	Currency string          `db:"currency"`
}

// CanCover reports whether the balance is at least amount.
func (w *Wallet) CanCover(amount Amount) bool {
	return w.Balance.GreaterThanOrEqual(amount.Decimal())
}
