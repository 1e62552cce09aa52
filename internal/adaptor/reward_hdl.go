package adaptor

import (
	"net/http"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/usecase"
	"parking-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RewardHandler struct {
	service usecase.RewardService
	log     *zap.Logger
}

func NewRewardHandler(service usecase.RewardService, log *zap.Logger) *RewardHandler {
	return &RewardHandler{
		service: service,
		log:     log.With(zap.String("handler", "reward")),
	}
}

// GetRewards handles GET /api/users/{userId}/rewards
func (h *RewardHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	userID, err := entity.ParseID("userId", chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get rewards")
		return
	}

	rewards, err := h.service.GetRewards(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get rewards")
		return
	}

	utils.ResponseSuccess(w, "success", rewards)
}
