package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	model := walletModel(wallet)
	err := r.db.WithContext(ctx).Create(&model).Error
	if isUniqueViolation(err) {
		return entity.ErrWalletExists
	}
	if err != nil {
		r.log.Error("Failed to create wallet", zap.Error(err), zap.String("user_id", wallet.UserID.String()))
		return fmt.Errorf("create wallet for user %s: %w", wallet.UserID, err)
	}
	return nil
}

func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	return r.find(r.db.WithContext(ctx), userID)
}

func (r *walletRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *walletRepository) find(db *gorm.DB, userID uuid.UUID) (*entity.Wallet, error) {
	var model Wallet
	err := db.Where("user_id = ?", userID.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wallet by user ID", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find wallet by user ID %s: %w", userID, err)
	}
	wallet, err := model.toEntity()
	if err != nil {
		return nil, fmt.Errorf("decode wallet %s: %w", model.ID, err)
	}
	return wallet, nil
}

func (r *walletRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, expected, next decimal.Decimal, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&Wallet{}).
		Where("id = ? AND balance = ?", walletID.String(), expected).
		Updates(map[string]any{"balance": next, "updated_at": updatedAt})
	if result.Error != nil {
		r.log.Error("Failed to update wallet balance", zap.Error(result.Error), zap.String("wallet_id", walletID.String()))
		return fmt.Errorf("update wallet %s balance: %w", walletID, result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrConcurrentModification
	}
	return nil
}
