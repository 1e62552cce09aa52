package entity

import "parking-marketplace/pkg/apperror"

// Ledger and booking failures. Callers compare with errors.Is; messages may be
// specialised with Withf without changing the code.
var (
	ErrWalletNotFound      = apperror.New(apperror.KindNotFound, "wallet_not_found", "wallet not found")
	ErrWalletExists        = apperror.New(apperror.KindConflict, "wallet_already_exists", "wallet already exists for this user")
	ErrInsufficientBalance = apperror.New(apperror.KindInsufficientResources, "insufficient_balance", "insufficient wallet balance")
	ErrNoBookingPayment    = apperror.New(apperror.KindInvalidState, "no_booking_payment", "no completed wallet payment exists for this booking")
	ErrAlreadyRefunded     = apperror.New(apperror.KindConflict, "already_refunded", "booking payment has already been refunded")
	ErrBalanceLimit        = apperror.New(apperror.KindValidation, "balance_limit_exceeded", "resulting wallet balance exceeds the supported maximum")
	ErrBookingAlreadyPaid  = apperror.New(apperror.KindConflict, "booking_already_paid", "booking already has a wallet payment")
	ErrBookingNotOwned     = apperror.New(apperror.KindValidation, "booking_not_owned", "booking does not belong to this user")

	ErrBookingNotFound         = apperror.New(apperror.KindNotFound, "booking_not_found", "booking not found")
	ErrPaymentNotPending       = apperror.New(apperror.KindInvalidState, "payment_not_pending", "payment is not pending")
	ErrPaymentAlreadyProcessed = apperror.New(apperror.KindInvalidState, "payment_already_processed", "payment has already been processed")
	ErrMissingScreenshot       = apperror.New(apperror.KindInvalidState, "missing_screenshot", "payment screenshot is required before verification")
	ErrBookingCancelled        = apperror.New(apperror.KindInvalidState, "booking_cancelled", "booking is cancelled")
	ErrAlreadyCancelled        = apperror.New(apperror.KindConflict, "booking_already_cancelled", "booking is already cancelled")
	ErrBookingNotCancelled     = apperror.New(apperror.KindInvalidState, "booking_not_cancelled", "only cancelled bookings can be refunded")
	ErrBookingCompleted        = apperror.New(apperror.KindInvalidState, "booking_completed", "booking is completed")

	// ErrConcurrentModification is returned when a conditional write finds
	// the row changed since it was read.
	ErrConcurrentModification = apperror.New(apperror.KindConflict, "concurrent_modification", "record was modified concurrently, retry the request")
)
