package wire

import (
	"context"
	"net/http"
	"time"

	"parking-marketplace/internal/adaptor"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/usecase"
	"parking-marketplace/pkg/middleware"
	"parking-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers over store. rewardCache may be nil.
// The rate limiter's eviction loop stops when ctx is done.
func Wiring(ctx context.Context, store repository.Store, rewardCache usecase.RewardCache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(store, rewardCache, logger)
	handler := adaptor.NewHandler(service, logger)

	limiter := middleware.NewRateLimiter(ctx, config.RateLimit.RPS, config.RateLimit.Burst, 3*time.Minute)

	return &App{
		Router: setupRouter(handler, store, limiter, config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	store repository.Store,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}

	wireWallet(r, handler.Wallet, limiter)
	wireBooking(r, handler.Booking, limiter)
	wireReward(r, handler.Reward)

	r.Get("/health", healthHandler(store, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}

func healthHandler(store repository.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
