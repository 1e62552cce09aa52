package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parking-marketplace/internal/data/repository"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	pgUniqueViolationCode = "23505"
	sqliteConstraintCode  = 19

	refundIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_wallet_transactions_booking_refund
		ON wallet_transactions (booking_id) WHERE type = 'refund'`
)

// Store implements repository.Store using GORM.
type Store struct {
	db   *gorm.DB
	inTx bool
	log  *zap.Logger
}

var _ repository.Store = (*Store)(nil)

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log.With(zap.String("repository", "gorm"))}
}

// AutoMigrate creates the ledger schema. It is meant for SQLite; PostgreSQL
// deployments use the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Wallet{}, &ParkingSpace{}, &Booking{}, &WalletTransaction{}, &RewardProfile{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(refundIndexSQL).Error; err != nil {
		return fmt.Errorf("create refund index: %w", err)
	}
	return nil
}

// WithTx executes fn within a transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return s.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(ctx, &Store{db: transaction, inTx: true, log: s.log})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Wallets() repository.WalletRepository {
	return &walletRepository{db: s.db, log: s.log}
}

func (s *Store) Transactions() repository.TransactionRepository {
	return &transactionRepository{db: s.db, log: s.log}
}

func (s *Store) Bookings() repository.BookingRepository {
	return &bookingRepository{db: s.db, log: s.log}
}

func (s *Store) ParkingSpaces() repository.ParkingSpaceRepository {
	return &parkingSpaceRepository{db: s.db, log: s.log}
}

func (s *Store) Rewards() repository.RewardRepository {
	return &rewardRepository{db: s.db, log: s.log}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode && strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
