package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *entity.Wallet) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	// FindByUserIDForUpdate locks the wallet row until the surrounding transaction ends.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	// UpdateBalance writes next only if the stored balance still equals expected.
	UpdateBalance(ctx context.Context, walletID uuid.UUID, expected, next decimal.Decimal, updatedAt time.Time) error
}

type walletRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewWalletRepository(db database.DBTX, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet")),
	}
}

const walletColumns = `id, user_id, balance, currency, created_at, updated_at`

func (r *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		wallet.ID,
		wallet.UserID,
		wallet.Balance,
		wallet.Currency,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)
	if err != nil {
		if translated := translate(err); errors.Is(translated, entity.ErrWalletExists) {
			return translated
		}
		r.log.Error("Failed to create wallet",
			zap.Error(err),
			zap.String("user_id", wallet.UserID.String()),
		)
		return fmt.Errorf("create wallet for user %s: %w", wallet.UserID, err)
	}

	return nil
}

func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	return r.findOne(ctx, query, userID)
}

func (r *walletRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	return r.findOne(ctx, query, userID)
}

func (r *walletRepository) findOne(ctx context.Context, query string, userID uuid.UUID) (*entity.Wallet, error) {
	var wallet entity.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.Currency,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wallet by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find wallet by user ID %s: %w", userID, err)
	}

	return &wallet, nil
}

func (r *walletRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, expected, next decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE wallets
		SET balance = $3, updated_at = $4
		WHERE id = $1 AND balance = $2
	`

	result, err := r.db.Exec(ctx, query, walletID, expected, next, updatedAt)
	if err != nil {
		r.log.Error("Failed to update wallet balance",
			zap.Error(err),
			zap.String("wallet_id", walletID.String()),
		)
		return fmt.Errorf("update wallet %s balance: %w", walletID, err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Wallet balance changed since read",
			zap.String("wallet_id", walletID.String()),
			zap.String("expected", expected.String()),
		)
		return entity.ErrConcurrentModification
	}

	return nil
}
