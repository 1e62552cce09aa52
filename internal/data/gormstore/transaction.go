package gormstore

import (
	"context"
	"errors"
	"fmt"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	model := transactionModel(txn)
	err := r.db.WithContext(ctx).Create(&model).Error
	if isUniqueViolation(err) && txn.Type == entity.TransactionRefund {
		return entity.ErrAlreadyRefunded
	}
	if err != nil {
		r.log.Error("Failed to create wallet transaction",
			zap.Error(err),
			zap.String("wallet_id", txn.WalletID.String()),
			zap.String("type", string(txn.Type)),
		)
		return fmt.Errorf("create %s transaction for wallet %s: %w", txn.Type, txn.WalletID, err)
	}
	return nil
}

func (r *transactionRepository) filtered(ctx context.Context, filter entity.TransactionFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&WalletTransaction{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", filter.UserID.String())
	}
	if filter.WalletID != nil {
		db = db.Where("wallet_id = ?", filter.WalletID.String())
	}
	if filter.Type != nil {
		db = db.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	return db
}

func (r *transactionRepository) List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.WalletTransaction, error) {
	var rows []WalletTransaction
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		r.log.Error("Failed to list wallet transactions", zap.Error(err))
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}

	txns := make([]*entity.WalletTransaction, 0, len(rows))
	for _, row := range rows {
		txn, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("decode wallet transaction %s: %w", row.ID, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (r *transactionRepository) Count(ctx context.Context, filter entity.TransactionFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		r.log.Error("Failed to count wallet transactions", zap.Error(err))
		return 0, fmt.Errorf("count wallet transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) FindBookingPayment(ctx context.Context, bookingID uuid.UUID) (*entity.WalletTransaction, error) {
	var model WalletTransaction
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND type = ? AND status = ?",
			bookingID.String(), string(entity.TransactionBookingPayment), string(entity.TransactionCompleted)).
		Order("created_at DESC").
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking payment", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("find payment for booking %s: %w", bookingID, err)
	}
	txn, err := model.toEntity()
	if err != nil {
		return nil, fmt.Errorf("decode wallet transaction %s: %w", model.ID, err)
	}
	return txn, nil
}

func (r *transactionRepository) HasRefund(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WalletTransaction{}).
		Where("booking_id = ? AND type = ?", bookingID.String(), string(entity.TransactionRefund)).
		Count(&count).Error
	if err != nil {
		r.log.Error("Failed to check booking refund", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return false, fmt.Errorf("check refund for booking %s: %w", bookingID, err)
	}
	return count > 0, nil
}
