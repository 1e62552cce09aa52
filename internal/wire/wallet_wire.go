package wire

import (
	"parking-marketplace/internal/adaptor"
	"parking-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireWallet(r chi.Router, walletHandler *adaptor.WalletHandler, limiter *middleware.RateLimiter) {
	r.Route("/api/wallets", func(r chi.Router) {
		r.Get("/", walletHandler.GetWallet)
		r.Get("/transactions", walletHandler.ListTransactions)

		// balance mutations are rate limited per client IP
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)

			r.Post("/", walletHandler.CreateWallet)
			r.Post("/add-money", walletHandler.AddMoney)
			r.Post("/deduct", walletHandler.Deduct)
			r.Post("/credit", walletHandler.Credit)
			r.Post("/refund", walletHandler.Refund)
		})
	})
}
