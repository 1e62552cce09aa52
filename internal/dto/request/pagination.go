package request

import (
	"net/url"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/apperror"
	"parking-marketplace/pkg/utils"

	"github.com/google/uuid"
)

// ParseTransactionQuery builds a transaction filter from query parameters.
// One of userId or walletId is required.
func ParseTransactionQuery(q url.Values) (entity.TransactionFilter, error) {
	var filter entity.TransactionFilter

	limit, offset, err := utils.ParseLimitOffset(q.Get("limit"), q.Get("offset"))
	if err != nil {
		return filter, err
	}
	filter.Limit, filter.Offset = limit, offset

	if filter.UserID, err = optionalID(q, "userId"); err != nil {
		return filter, err
	}
	if filter.WalletID, err = optionalID(q, "walletId"); err != nil {
		return filter, err
	}
	if filter.UserID == nil && filter.WalletID == nil {
		return filter, apperror.Validation("userId or walletId is required")
	}

	if raw := q.Get("type"); raw != "" {
		txType := entity.TransactionType(raw)
		if !txType.Valid() {
			return filter, apperror.Validationf("unknown transaction type %q", raw)
		}
		filter.Type = &txType
	}
	if raw := q.Get("status"); raw != "" {
		status := entity.TransactionStatus(raw)
		if !status.Valid() {
			return filter, apperror.Validationf("unknown transaction status %q", raw)
		}
		filter.Status = &status
	}

	return filter, nil
}

// ParseBookingQuery builds a booking filter from query parameters. All filters are optional.
func ParseBookingQuery(q url.Values) (entity.BookingFilter, error) {
	var filter entity.BookingFilter

	limit, offset, err := utils.ParseLimitOffset(q.Get("limit"), q.Get("offset"))
	if err != nil {
		return filter, err
	}
	filter.Limit, filter.Offset = limit, offset

	if filter.CustomerID, err = optionalID(q, "customerId"); err != nil {
		return filter, err
	}
	if filter.OwnerID, err = optionalID(q, "ownerId"); err != nil {
		return filter, err
	}
	if filter.ParkingSpaceID, err = optionalID(q, "parkingSpaceId"); err != nil {
		return filter, err
	}

	if raw := q.Get("status"); raw != "" {
		status := entity.BookingStatus(raw)
		if !status.Valid() {
			return filter, apperror.Validationf("unknown booking status %q", raw)
		}
		filter.Status = &status
	}
	if raw := q.Get("paymentStatus"); raw != "" {
		status := entity.PaymentStatus(raw)
		if !status.Valid() {
			return filter, apperror.Validationf("unknown payment status %q", raw)
		}
		filter.PaymentStatus = &status
	}

	return filter, nil
}

func optionalID(q url.Values, key string) (*uuid.UUID, error) {
	if !q.Has(key) {
		return nil, nil
	}
	id, err := entity.ParseID(key, q.Get(key))
	if err != nil {
		return nil, err
	}
	return &id, nil
}
