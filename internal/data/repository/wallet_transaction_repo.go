package repository

import (
	"context"
	"errors"
	"fmt"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.WalletTransaction) error
	List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.WalletTransaction, error)
	Count(ctx context.Context, filter entity.TransactionFilter) (int64, error)

	// Business queries
	FindBookingPayment(ctx context.Context, bookingID uuid.UUID) (*entity.WalletTransaction, error)
	HasRefund(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type transactionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTransactionRepository(db database.DBTX, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet_transaction")),
	}
}

const transactionColumns = `id, wallet_id, user_id, type, amount, description, booking_id, status, created_at`

func scanTransaction(row pgx.Row) (*entity.WalletTransaction, error) {
	var txn entity.WalletTransaction
	err := row.Scan(
		&txn.ID,
		&txn.WalletID,
		&txn.UserID,
		&txn.Type,
		&txn.Amount,
		&txn.Description,
		&txn.BookingID,
		&txn.Status,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (id, wallet_id, user_id, type, amount, description, booking_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		txn.ID,
		txn.WalletID,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.BookingID,
		txn.Status,
		txn.CreatedAt,
	)
	if err != nil {
		translated := translate(err)
		if errors.Is(translated, entity.ErrAlreadyRefunded) || errors.Is(translated, entity.ErrBookingNotFound) {
			return translated
		}
		r.log.Error("Failed to create wallet transaction",
			zap.Error(err),
			zap.String("wallet_id", txn.WalletID.String()),
			zap.String("type", string(txn.Type)),
		)
		return fmt.Errorf("create %s transaction for wallet %s: %w", txn.Type, txn.WalletID, err)
	}

	return nil
}

func transactionWhere(filter entity.TransactionFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.UserID != nil {
		w.add("user_id = $%d", *filter.UserID)
	}
	if filter.WalletID != nil {
		w.add("wallet_id = $%d", *filter.WalletID)
	}
	if filter.Type != nil {
		w.add("type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	return w
}

func (r *transactionRepository) List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.WalletTransaction, error) {
	w := transactionWhere(filter)
	suffix, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions ` + w.clause() +
		` ORDER BY created_at DESC, id DESC ` + suffix

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list wallet transactions",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]*entity.WalletTransaction, 0, filter.Limit)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			r.log.Error("Failed to scan wallet transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan wallet transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet transactions: %w", err)
	}

	return txns, nil
}

func (r *transactionRepository) Count(ctx context.Context, filter entity.TransactionFilter) (int64, error) {
	w := transactionWhere(filter)
	query := `SELECT COUNT(*) FROM wallet_transactions ` + w.clause()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count wallet transactions", zap.Error(err))
		return 0, fmt.Errorf("count wallet transactions: %w", err)
	}

	return count, nil
}

func (r *transactionRepository) FindBookingPayment(ctx context.Context, bookingID uuid.UUID) (*entity.WalletTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM wallet_transactions
		WHERE booking_id = $1 AND type = $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	txn, err := scanTransaction(r.db.QueryRow(ctx, query,
		bookingID, entity.TransactionBookingPayment, entity.TransactionCompleted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking payment",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment for booking %s: %w", bookingID, err)
	}

	return txn, nil
}

func (r *transactionRepository) HasRefund(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM wallet_transactions WHERE booking_id = $1 AND type = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, bookingID, entity.TransactionRefund).Scan(&exists); err != nil {
		r.log.Error("Failed to check booking refund",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("check refund for booking %s: %w", bookingID, err)
	}

	return exists, nil
}
