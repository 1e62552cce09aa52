package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/dto/request"
	"parking-marketplace/internal/dto/response"
	"parking-marketplace/pkg/apperror"
	"parking-marketplace/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WalletService interface {
	CreateWallet(ctx context.Context, in request.CreateWalletInput) (*response.WalletResponse, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error)

	// Balance mutations. Each writes exactly one completed transaction.
	AddMoney(ctx context.Context, in request.WalletAmountInput) (*response.WalletOperationResponse, error)
	Deduct(ctx context.Context, in request.DeductInput) (*response.WalletOperationResponse, error)
	Credit(ctx context.Context, in request.WalletAmountInput) (*response.WalletOperationResponse, error)
	Refund(ctx context.Context, in request.RefundInput) (*response.WalletOperationResponse, error)

	ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*response.PaginatedResponse[response.TransactionResponse], error)
}

type walletService struct {
	store repository.Store
	now   func() time.Time
	log   *zap.Logger
}

func NewWalletService(store repository.Store, log *zap.Logger) WalletService {
	return &walletService{
		store: store,
		now:   utcNow,
		log:   log.With(zap.String("service", "wallet")),
	}
}

func utcNow() time.Time { return time.Now().UTC() }

func (s *walletService) CreateWallet(ctx context.Context, in request.CreateWalletInput) (resp *response.WalletResponse, err error) {
	defer func() { metrics.RecordWalletOperation("create", err) }()

	now := s.now()
	wallet := &entity.Wallet{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:   in.UserID,
		Balance:  in.InitialBalance,
		Currency: in.Currency,
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		existing, err := tx.Wallets().FindByUserID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return entity.ErrWalletExists
		}
		return tx.Wallets().Create(ctx, wallet)
	})
	if err != nil {
		return nil, s.fail("Create wallet failed", err, zap.String("user_id", in.UserID.String()))
	}

	s.log.Info("Wallet created",
		zap.String("wallet_id", wallet.ID.String()),
		zap.String("user_id", wallet.UserID.String()),
		zap.String("balance", wallet.Balance.String()),
	)
	result := response.WalletToResponse(wallet)
	return &result, nil
}

func (s *walletService) GetWallet(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error) {
	wallet, err := s.store.Wallets().FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail("Get wallet failed", err, zap.String("user_id", userID.String()))
	}
	if wallet == nil {
		return nil, entity.ErrWalletNotFound
	}
	result := response.WalletToResponse(wallet)
	return &result, nil
}

func (s *walletService) AddMoney(ctx context.Context, in request.WalletAmountInput) (*response.WalletOperationResponse, error) {
	return s.post(ctx, "add_money", entry{
		userID:      in.UserID,
		txType:      entity.TransactionAddMoney,
		amount:      in.Amount,
		description: describe(in.Description, "Wallet top-up"),
	})
}

func (s *walletService) Credit(ctx context.Context, in request.WalletAmountInput) (*response.WalletOperationResponse, error) {
	return s.post(ctx, "credit", entry{
		userID:      in.UserID,
		txType:      entity.TransactionCredit,
		amount:      in.Amount,
		description: describe(in.Description, "Wallet credit"),
	})
}

func (s *walletService) Deduct(ctx context.Context, in request.DeductInput) (*response.WalletOperationResponse, error) {
	e := entry{
		userID:      in.UserID,
		txType:      entity.TransactionDebit,
		amount:      in.Amount,
		description: describe(in.Description, "Wallet debit"),
		bookingID:   in.BookingID,
	}
	if in.BookingID != nil {
		e.txType = entity.TransactionBookingPayment
		e.description = describe(in.Description, "Booking payment")
	}
	return s.post(ctx, "deduct", e)
}

func (s *walletService) Refund(ctx context.Context, in request.RefundInput) (resp *response.WalletOperationResponse, err error) {
	defer func() { metrics.RecordWalletOperation("refund", err) }()

	var posted *posting
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		posted, err = refundBooking(ctx, tx, &in.UserID, in.BookingID, in.Description, s.now())
		return err
	})
	if err != nil {
		return nil, s.fail("Refund failed", err,
			zap.String("user_id", in.UserID.String()),
			zap.String("booking_id", in.BookingID.String()),
		)
	}

	s.logPosting(posted)
	return posted.response(), nil
}

func (s *walletService) post(ctx context.Context, operation string, e entry) (resp *response.WalletOperationResponse, err error) {
	defer func() { metrics.RecordWalletOperation(operation, err) }()

	var posted *posting
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if e.bookingID != nil {
			if err := checkBookingPayable(ctx, tx, *e.bookingID, e.userID); err != nil {
				return err
			}
		}
		var err error
		posted, err = postEntry(ctx, tx, e, s.now())
		return err
	})
	if err != nil {
		return nil, s.fail(fmt.Sprintf("Wallet %s failed", operation), err,
			zap.String("user_id", e.userID.String()),
			zap.String("amount", e.amount.String()),
		)
	}

	s.logPosting(posted)
	return posted.response(), nil
}

// checkBookingPayable locks the booking so concurrent payments for it serialize,
// then requires it to be the payer's own unpaid pending booking.
func checkBookingPayable(ctx context.Context, tx repository.Store, bookingID, userID uuid.UUID) error {
	booking, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return entity.ErrBookingNotFound
	}
	if err := booking.AcceptsWalletPayment(userID); err != nil {
		return err
	}
	payment, err := tx.Transactions().FindBookingPayment(ctx, bookingID)
	if err != nil {
		return err
	}
	if payment != nil {
		return entity.ErrBookingAlreadyPaid
	}
	return nil
}

func (s *walletService) ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*response.PaginatedResponse[response.TransactionResponse], error) {
	txns, err := s.store.Transactions().List(ctx, filter)
	if err != nil {
		return nil, s.fail("List transactions failed", err)
	}
	total, err := s.store.Transactions().Count(ctx, filter)
	if err != nil {
		return nil, s.fail("Count transactions failed", err)
	}
	return response.NewPaginatedResponse(response.TransactionsToResponse(txns), filter.Limit, filter.Offset, total), nil
}

func (s *walletService) logPosting(p *posting) {
	p.record()
	s.log.Info("Wallet transaction posted",
		zap.String("wallet_id", p.wallet.ID.String()),
		zap.String("transaction_id", p.txn.ID.String()),
		zap.String("type", string(p.txn.Type)),
		zap.String("amount", p.txn.Amount.String()),
		zap.String("balance", p.wallet.Balance.String()),
	)
}

// fail logs err and converts it for the caller. Domain errors pass through;
// anything else becomes an internal error that keeps the cause for logs.
func (s *walletService) fail(msg string, err error, fields ...zap.Field) error {
	return logFailure(s.log, msg, err, fields...)
}

func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind() != apperror.KindInternal {
		log.Warn(msg, append(fields, zap.String("code", appErr.Code()))...)
		return appErr
	}
	log.Error(msg, append(fields, zap.Error(err))...)
	return apperror.Internal(err)
}

func describe(description, fallback string) string {
	if description == "" {
		return fallback
	}
	return description
}
