package request

import (
	"strings"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateWalletRequest struct {
	UserID   string           `json:"userId" validate:"required,uuid"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Currency string           `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
}

type CreateWalletInput struct {
	UserID         uuid.UUID
	InitialBalance decimal.Decimal
	Currency       string
}

func (r CreateWalletRequest) ToInput() (CreateWalletInput, error) {
	if err := utils.Validate(r); err != nil {
		return CreateWalletInput{}, err
	}
	userID, err := entity.ParseID("userId", r.UserID)
	if err != nil {
		return CreateWalletInput{}, err
	}
	balance := decimal.Zero
	if r.Balance != nil {
		if balance, err = entity.NewInitialBalance(*r.Balance); err != nil {
			return CreateWalletInput{}, err
		}
	}
	currency, err := entity.NormalizeCurrency(r.Currency)
	if err != nil {
		return CreateWalletInput{}, err
	}
	return CreateWalletInput{UserID: userID, InitialBalance: balance, Currency: currency}, nil
}

// WalletAmountRequest is the body of add-money and credit.
type WalletAmountRequest struct {
	UserID      string           `json:"userId" validate:"required,uuid"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description,omitempty" validate:"max=255"`
}

type WalletAmountInput struct {
	UserID      uuid.UUID
	Amount      entity.Amount
	Description string
}

func (r WalletAmountRequest) ToInput() (WalletAmountInput, error) {
	if err := utils.Validate(r); err != nil {
		return WalletAmountInput{}, err
	}
	return parseWalletAmount(r.UserID, r.Amount, r.Description)
}

func parseWalletAmount(rawUserID string, rawAmount *decimal.Decimal, description string) (WalletAmountInput, error) {
	userID, err := entity.ParseID("userId", rawUserID)
	if err != nil {
		return WalletAmountInput{}, err
	}
	amount, err := entity.NewAmount(*rawAmount)
	if err != nil {
		return WalletAmountInput{}, err
	}
	return WalletAmountInput{
		UserID:      userID,
		Amount:      amount,
		Description: trimDescription(description),
	}, nil
}

type DeductRequest struct {
	UserID      string           `json:"userId" validate:"required,uuid"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description,omitempty" validate:"max=255"`
	BookingID   string           `json:"bookingId,omitempty" validate:"omitempty,uuid"`
}

type DeductInput struct {
	WalletAmountInput
	BookingID *uuid.UUID
}

func (r DeductRequest) ToInput() (DeductInput, error) {
	if err := utils.Validate(r); err != nil {
		return DeductInput{}, err
	}
	base, err := parseWalletAmount(r.UserID, r.Amount, r.Description)
	if err != nil {
		return DeductInput{}, err
	}
	input := DeductInput{WalletAmountInput: base}
	if strings.TrimSpace(r.BookingID) != "" {
		bookingID, err := entity.ParseID("bookingId", r.BookingID)
		if err != nil {
			return DeductInput{}, err
		}
		input.BookingID = &bookingID
	}
	return input, nil
}

type RefundRequest struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	BookingID   string `json:"bookingId" validate:"required,uuid"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

type RefundInput struct {
	UserID      uuid.UUID
	BookingID   uuid.UUID
	Description string
}

func (r RefundRequest) ToInput() (RefundInput, error) {
	if err := utils.Validate(r); err != nil {
		return RefundInput{}, err
	}
	userID, err := entity.ParseID("userId", r.UserID)
	if err != nil {
		return RefundInput{}, err
	}
	bookingID, err := entity.ParseID("bookingId", r.BookingID)
	if err != nil {
		return RefundInput{}, err
	}
	return RefundInput{UserID: userID, BookingID: bookingID, Description: trimDescription(r.Description)}, nil
}

func trimDescription(raw string) string {
	return strings.TrimSpace(raw)
}
