package gormstore

import (
	"time"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Wallet mirrors the wallets table.
type Wallet struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	UserID    string          `gorm:"type:uuid;not null;uniqueIndex:wallets_user_id_key"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);not null;check:wallets_balance_non_negative,balance >= 0"`
	Currency  string          `gorm:"type:char(3);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (Wallet) TableName() string { return "wallets" }

// WalletTransaction mirrors the wallet_transactions table.
type WalletTransaction struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	WalletID    string          `gorm:"type:uuid;not null;index:idx_wallet_transactions_wallet_created,priority:1"`
	UserID      string          `gorm:"type:uuid;not null;index:idx_wallet_transactions_user_created,priority:1"`
	Type        string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null;check:wallet_transactions_amount_positive,amount > 0"`
	Description string          `gorm:"not null;default:''"`
	BookingID   *string         `gorm:"type:uuid;index"`
	Status      string          `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null;index:idx_wallet_transactions_wallet_created,priority:2;index:idx_wallet_transactions_user_created,priority:2"`
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }

// ParkingSpace mirrors the parking_spaces table.
type ParkingSpace struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	OwnerID    string          `gorm:"type:uuid;not null;index:idx_parking_spaces_owner"`
	Title      string          `gorm:"not null"`
	Address    string          `gorm:"not null;default:''"`
	HourlyRate decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

func (ParkingSpace) TableName() string { return "parking_spaces" }

// Booking mirrors the bookings table.
type Booking struct {
	ID                 string          `gorm:"type:uuid;primaryKey"`
	BookingCode        string          `gorm:"not null;uniqueIndex"`
	CustomerID         string          `gorm:"type:uuid;not null;index:idx_bookings_customer_created,priority:1"`
	ParkingSpaceID     string          `gorm:"type:uuid;not null;index:idx_bookings_space_created,priority:1"`
	Date               time.Time       `gorm:"type:date;not null"`
	StartTime          time.Time       `gorm:"not null"`
	EndTime            time.Time       `gorm:"not null"`
	DurationMinutes    int             `gorm:"not null"`
	Amount             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status             string          `gorm:"not null;check:bookings_confirmed_requires_verified,status <> 'confirmed' OR payment_status = 'verified'"`
	PaymentStatus      string          `gorm:"not null"`
	PaymentScreenshot  *string
	TransactionID      *string
	VerificationReason *string
	CancellationReason *string
	CreatedAt          time.Time `gorm:"not null;index:idx_bookings_customer_created,priority:2;index:idx_bookings_space_created,priority:2"`
	UpdatedAt          time.Time `gorm:"not null"`
	ModifiedAt         time.Time `gorm:"not null"`
}

func (Booking) TableName() string { return "bookings" }

// RewardProfile mirrors the reward_profiles table.
type RewardProfile struct {
	UserID    string         `gorm:"type:uuid;primaryKey"`
	Points    int64          `gorm:"not null;default:0"`
	Level     int            `gorm:"not null;default:1"`
	Badges    datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (RewardProfile) TableName() string { return "reward_profiles" }

func walletModel(w *entity.Wallet) Wallet {
	return Wallet{
		ID:        w.ID.String(),
		UserID:    w.UserID.String(),
		Balance:   w.Balance,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func (m Wallet) toEntity() (*entity.Wallet, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}
	return &entity.Wallet{
		Base:     entity.Base{ID: id, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		UserID:   userID,
		Balance:  m.Balance,
		Currency: m.Currency,
	}, nil
}

func transactionModel(t *entity.WalletTransaction) WalletTransaction {
	return WalletTransaction{
		ID:          t.ID.String(),
		WalletID:    t.WalletID.String(),
		UserID:      t.UserID.String(),
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		BookingID:   uuidPtrString(t.BookingID),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func (m WalletTransaction) toEntity() (*entity.WalletTransaction, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	walletID, err := uuid.Parse(m.WalletID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}
	bookingID, err := parseUUIDPtr(m.BookingID)
	if err != nil {
		return nil, err
	}
	return &entity.WalletTransaction{
		BaseSimple:  entity.BaseSimple{ID: id, CreatedAt: m.CreatedAt},
		WalletID:    walletID,
		UserID:      userID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		BookingID:   bookingID,
		Status:      entity.TransactionStatus(m.Status),
	}, nil
}

func parkingSpaceModel(p *entity.ParkingSpace) ParkingSpace {
	return ParkingSpace{
		ID:         p.ID.String(),
		OwnerID:    p.OwnerID.String(),
		Title:      p.Title,
		Address:    p.Address,
		HourlyRate: p.HourlyRate,
		CreatedAt:  p.CreatedAt,
	}
}

func (m ParkingSpace) toEntity() (*entity.ParkingSpace, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(m.OwnerID)
	if err != nil {
		return nil, err
	}
	return &entity.ParkingSpace{
		ID:         id,
		OwnerID:    ownerID,
		Title:      m.Title,
		Address:    m.Address,
		HourlyRate: m.HourlyRate,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func bookingModel(b *entity.Booking) Booking {
	return Booking{
		ID:                 b.ID.String(),
		BookingCode:        b.BookingCode,
		CustomerID:         b.CustomerID.String(),
		ParkingSpaceID:     b.ParkingSpaceID.String(),
		Date:               b.Date,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    b.DurationMinutes,
		Amount:             b.Amount,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentScreenshot:  b.PaymentScreenshot,
		TransactionID:      b.TransactionID,
		VerificationReason: b.VerificationReason,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		ModifiedAt:         b.ModifiedAt,
	}
}

func (m Booking) toEntity() (*entity.Booking, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := uuid.Parse(m.CustomerID)
	if err != nil {
		return nil, err
	}
	spaceID, err := uuid.Parse(m.ParkingSpaceID)
	if err != nil {
		return nil, err
	}
	return &entity.Booking{
		Base:               entity.Base{ID: id, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		BookingCode:        m.BookingCode,
		CustomerID:         customerID,
		ParkingSpaceID:     spaceID,
		Date:               m.Date,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		DurationMinutes:    m.DurationMinutes,
		Amount:             m.Amount,
		Status:             entity.BookingStatus(m.Status),
		PaymentStatus:      entity.PaymentStatus(m.PaymentStatus),
		PaymentScreenshot:  m.PaymentScreenshot,
		TransactionID:      m.TransactionID,
		VerificationReason: m.VerificationReason,
		CancellationReason: m.CancellationReason,
		ModifiedAt:         m.ModifiedAt,
	}, nil
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}

func parseUUIDPtr(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
