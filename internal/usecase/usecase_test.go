package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/data/gormstore"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/dto/request"
	"parking-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	db, _, err := database.OpenGorm(filepath.Join(t.TempDir(), "usecase.db"), 0, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, gormstore.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gormstore.New(db, zap.NewNop())
}

func newTestWalletService(store repository.Store) *walletService {
	svc := NewWalletService(store, zap.NewNop()).(*walletService)
	svc.now = fixedClock
	return svc
}

func newTestBookingPaymentService(store repository.Store) *bookingPaymentService {
	svc := NewBookingPaymentService(store, zap.NewNop()).(*bookingPaymentService)
	svc.now = fixedClock
	return svc
}

func createWallet(t *testing.T, svc WalletService, balance string) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	_, err := svc.CreateWallet(context.Background(), request.CreateWalletInput{
		UserID:         userID,
		InitialBalance: decimal.RequireFromString(balance),
		Currency:       entity.DefaultCurrency,
	})
	require.NoError(t, err)
	return userID
}

func amountInput(userID uuid.UUID, amount string) request.WalletAmountInput {
	return request.WalletAmountInput{UserID: userID, Amount: entity.MustAmount(amount)}
}

type bookingOption func(*entity.Booking)

func withScreenshot(url string) bookingOption {
	return func(b *entity.Booking) { b.PaymentScreenshot = &url }
}

func withState(status entity.BookingStatus, payment entity.PaymentStatus) bookingOption {
	return func(b *entity.Booking) {
		b.Status = status
		b.PaymentStatus = payment
	}
}

func seedBooking(t *testing.T, store repository.Store, customerID uuid.UUID, opts ...bookingOption) *entity.Booking {
	t.Helper()
	ctx := context.Background()
	space := &entity.ParkingSpace{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Title:      "Covered bay 4",
		Address:    "12 MG Road",
		HourlyRate: decimal.RequireFromString("150"),
		CreatedAt:  testNow,
	}
	require.NoError(t, store.ParkingSpaces().Create(ctx, space))

	start := testNow.Add(24 * time.Hour)
	booking := &entity.Booking{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		BookingCode:     "PRK-" + uuid.NewString()[:8],
		CustomerID:      customerID,
		ParkingSpaceID:  space.ID,
		Date:            start.Truncate(24 * time.Hour),
		StartTime:       start,
		EndTime:         start.Add(2 * time.Hour),
		DurationMinutes: 120,
		Amount:          decimal.RequireFromString("300"),
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		ModifiedAt:      testNow,
	}
	for _, opt := range opts {
		opt(booking)
	}
	require.NoError(t, store.Bookings().Create(ctx, booking))
	return booking
}

func walletBalance(t *testing.T, store repository.Store, userID uuid.UUID) decimal.Decimal {
	t.Helper()
	wallet, err := store.Wallets().FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, wallet)
	return wallet.Balance
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
