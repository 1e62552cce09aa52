package response

import (
	"time"

	"parking-marketplace/internal/data/entity"

	"github.com/shopspring/decimal"
)

type WalletResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type TransactionResponse struct {
	ID          string                   `json:"id"`
	WalletID    string                   `json:"walletId"`
	UserID      string                   `json:"userId"`
	Type        entity.TransactionType   `json:"type"`
	Amount      decimal.Decimal          `json:"amount"`
	Description string                   `json:"description"`
	BookingID   *string                  `json:"bookingId"`
	Status      entity.TransactionStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
}

// WalletOperationResponse is returned by every balance mutation.
type WalletOperationResponse struct {
	Wallet      WalletResponse      `json:"wallet"`
	Transaction TransactionResponse `json:"transaction"`
}

func WalletToResponse(w *entity.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID.String(),
		UserID:    w.UserID.String(),
		Balance:   w.Balance,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func TransactionToResponse(t *entity.WalletTransaction) TransactionResponse {
	var bookingID *string
	if t.BookingID != nil {
		value := t.BookingID.String()
		bookingID = &value
	}
	return TransactionResponse{
		ID:          t.ID.String(),
		WalletID:    t.WalletID.String(),
		UserID:      t.UserID.String(),
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		BookingID:   bookingID,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

func TransactionsToResponse(txns []*entity.WalletTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionToResponse(t))
	}
	return out
}
