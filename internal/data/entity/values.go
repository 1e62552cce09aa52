package entity

import (
	"strings"

	"parking-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAmountScale is the number of fractional digits a monetary amount may carry.
const MaxAmountScale = 2

// MaxAmount is the largest value a NUMERIC(14,2) money column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

const maxReasonLength = 500

// Amount is a strictly positive monetary value with at most two decimals.
type Amount struct {
	value decimal.Decimal
}

// NewAmount validates a positive amount.
func NewAmount(raw decimal.Decimal) (Amount, error) {
	if !raw.IsPositive() {
		return Amount{}, apperror.Validation("amount must be greater than zero")
	}
	if !raw.Equal(raw.Truncate(MaxAmountScale)) {
		return Amount{}, apperror.Validationf("amount supports at most %d decimal places", MaxAmountScale)
	}
	if raw.GreaterThan(MaxAmount) {
		return Amount{}, apperror.Validationf("amount cannot exceed %s", MaxAmount.StringFixed(MaxAmountScale))
	}
	return Amount{value: raw}, nil
}

// MustAmount parses a literal amount and panics when it is invalid. Intended for tests and constants.
func MustAmount(raw string) Amount {
	amount, err := NewAmount(decimal.RequireFromString(raw))
	if err != nil {
		panic(err)
	}
	return amount
}

func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) String() string { return a.value.StringFixed(MaxAmountScale) }

// NewInitialBalance validates a starting balance, which may be zero.
func NewInitialBalance(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.IsNegative() {
		return decimal.Zero, apperror.Validation("initial balance cannot be negative")
	}
	if !raw.Equal(raw.Truncate(MaxAmountScale)) {
		return decimal.Zero, apperror.Validationf("balance supports at most %d decimal places", MaxAmountScale)
	}
	if raw.GreaterThan(MaxAmount) {
		return decimal.Zero, apperror.Validationf("initial balance cannot exceed %s", MaxAmount.StringFixed(MaxAmountScale))
	}
	return raw, nil
}

// Reason is a trimmed, non-empty free text reason.
type Reason struct {
	value string
}

func NewReason(field, raw string) (Reason, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Reason{}, apperror.Validationf("%s is required", field)
	}
	if len(trimmed) > maxReasonLength {
		return Reason{}, apperror.Validationf("%s must be at most %d characters", field, maxReasonLength)
	}
	return Reason{value: trimmed}, nil
}

func (r Reason) String() string { return r.value }

// ParseID parses a UUID path or query parameter.
func ParseID(field, raw string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.Nil, apperror.Validationf("%s is required", field)
	}
	id, err := uuid.Parse(trimmed)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperror.Validationf("%s must be a valid UUID", field)
	}
	return id, nil
}

// NormalizeCurrency upper-cases an ISO 4217 code, defaulting to INR.
func NormalizeCurrency(raw string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultCurrency, nil
	}
	if len(trimmed) != 3 {
		return "", apperror.Validation("currency must be a 3-letter ISO 4217 code")
	}
	for _, r := range trimmed {
		if r < 'A' || r > 'Z' {
			return "", apperror.Validation("currency must be a 3-letter ISO 4217 code")
		}
	}
	return trimmed, nil
}
