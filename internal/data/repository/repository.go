package repository

import (
	"context"

	"parking-marketplace/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Store is the ledger's transactional storage. Every repository obtained from
// the Store passed to a WithTx callback runs inside that transaction.
type Store interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Bookings() BookingRepository
	ParkingSpaces() ParkingSpaceRepository
	Rewards() RewardRepository

	// WithTx runs fn in one atomic unit. fn's error rolls everything back.
	// Calling WithTx on a transactional Store joins the outer transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
}

type Repository struct {
	Wallet       WalletRepository
	Transaction  TransactionRepository
	Booking      BookingRepository
	ParkingSpace ParkingSpaceRepository
	Reward       RewardRepository

	pool database.PgxIface
	inTx bool
	log  *zap.Logger
}

// NewRepository builds the PostgreSQL Store on a pgx pool.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newRepository(db, log)
	r.pool = db
	return r
}

func newRepository(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		Wallet:       NewWalletRepository(db, log),
		Transaction:  NewTransactionRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		ParkingSpace: NewParkingSpaceRepository(db, log),
		Reward:       NewRewardRepository(db, log),
		log:          log,
	}
}

func (r *Repository) Wallets() WalletRepository             { return r.Wallet }
func (r *Repository) Transactions() TransactionRepository   { return r.Transaction }
func (r *Repository) Bookings() BookingRepository           { return r.Booking }
func (r *Repository) ParkingSpaces() ParkingSpaceRepository { return r.ParkingSpace }
func (r *Repository) Rewards() RewardRepository             { return r.Reward }

func (r *Repository) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if r.inTx {
		return fn(ctx, r)
	}
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		txRepo := newRepository(tx, r.log)
		txRepo.inTx = true
		return fn(ctx, txRepo)
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	return r.pool.Ping(ctx)
}
