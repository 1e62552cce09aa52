package repository

import (
	"errors"

	"parking-marketplace/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations onto domain errors. Anything else is
// returned unchanged for the caller to wrap.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "wallets_user_id_key":
		return entity.ErrWalletExists
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "uniq_wallet_transactions_booking_refund":
		return entity.ErrAlreadyRefunded
	case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == "wallet_transactions_booking_id_fkey":
		return entity.ErrBookingNotFound
	}
	return err
}
