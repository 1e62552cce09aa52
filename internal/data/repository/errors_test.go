package repository

import (
	"errors"
	"fmt"
	"testing"

	"parking-marketplace/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintViolations(t *testing.T) {
	cases := []struct {
		name string
		err  *pgconn.PgError
		want error
	}{
		{"duplicate wallet", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "wallets_user_id_key"}, entity.ErrWalletExists},
		{"second refund", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uniq_wallet_transactions_booking_refund"}, entity.ErrAlreadyRefunded},
		{"unknown booking", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "wallet_transactions_booking_id_fkey"}, entity.ErrBookingNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(fmt.Errorf("exec: %w", tc.err)), tc.want)
		})
	}
}

func TestTranslatePassesOtherErrorsThrough(t *testing.T) {
	other := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "bookings_booking_code_key"}
	assert.Same(t, error(other), translate(other))

	plain := errors.New("connection reset")
	assert.Same(t, plain, translate(plain))
}
