package usecase

import (
	"context"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/dto/response"
	"parking-marketplace/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RewardCache is a read-through cache for reward profiles. Get returns nil on a miss.
type RewardCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.RewardProfile, error)
	Set(ctx context.Context, profile *entity.RewardProfile) error
}

type RewardService interface {
	GetRewards(ctx context.Context, userID uuid.UUID) (*response.RewardResponse, error)
}

type rewardService struct {
	store repository.Store
	cache RewardCache
	log   *zap.Logger
}

// NewRewardService returns the gamification read view. cache may be nil.
func NewRewardService(store repository.Store, cache RewardCache, log *zap.Logger) RewardService {
	return &rewardService{
		store: store,
		cache: cache,
		log:   log.With(zap.String("service", "reward")),
	}
}

func (s *rewardService) GetRewards(ctx context.Context, userID uuid.UUID) (*response.RewardResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn("Reward cache read failed", zap.Error(err), zap.String("user_id", userID.String()))
		}
		metrics.RecordRewardCache(cached != nil)
		if cached != nil {
			result := response.RewardToResponse(cached)
			return &result, nil
		}
	}

	profile, err := s.store.Rewards().FindByUserID(ctx, userID)
	if err != nil {
		return nil, logFailure(s.log, "Get rewards failed", err, zap.String("user_id", userID.String()))
	}
	if profile == nil {
		profile = entity.EmptyRewardProfile(userID)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profile); err != nil {
			s.log.Warn("Reward cache write failed", zap.Error(err), zap.String("user_id", userID.String()))
		}
	}

	result := response.RewardToResponse(profile)
	return &result, nil
}
