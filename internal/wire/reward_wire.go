package wire

import (
	"parking-marketplace/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReward(r chi.Router, rewardHandler *adaptor.RewardHandler) {
	r.Get("/api/users/{userId}/rewards", rewardHandler.GetRewards)
}
