package usecase

import (
	"parking-marketplace/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Wallet         WalletService
	BookingPayment BookingPaymentService
	Booking        BookingService
	Reward         RewardService
}

func NewService(store repository.Store, rewardCache RewardCache, log *zap.Logger) *Service {
	return &Service{
		Wallet:         NewWalletService(store, log),
		BookingPayment: NewBookingPaymentService(store, log),
		Booking:        NewBookingService(store, log),
		Reward:         NewRewardService(store, rewardCache, log),
	}
}
