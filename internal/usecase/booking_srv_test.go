package usecase

import (
	"context"
	"testing"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetBooking(t *testing.T) {
	store := newTestStore(t)
	svc := NewBookingService(store, zap.NewNop())
	booking := seedBooking(t, store, uuid.New())

	resp, err := svc.GetBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.BookingCode, resp.BookingID)
	assert.Equal(t, 120, resp.Duration)

	_, err = svc.GetBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestListBookingsByCustomerAndStatus(t *testing.T) {
	store := newTestStore(t)
	svc := NewBookingService(store, zap.NewNop())
	customer := uuid.New()
	seedBooking(t, store, customer)
	seedBooking(t, store, customer, withState(entity.BookingStatusCancelled, entity.PaymentStatusRejected))
	seedBooking(t, store, uuid.New())

	page, err := svc.ListBookings(context.Background(), entity.BookingFilter{CustomerID: &customer, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Pagination.Total)

	cancelled := entity.BookingStatusCancelled
	page, err = svc.ListBookings(context.Background(), entity.BookingFilter{CustomerID: &customer, Status: &cancelled, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, entity.PaymentStatusRejected, page.Data[0].PaymentStatus)
}
