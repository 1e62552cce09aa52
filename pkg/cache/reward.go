package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rewardKeyPrefix = "rewards:"

// RewardCache keeps serialized reward profiles in Redis for a fixed TTL.
type RewardCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRewardCache(client *redis.Client, ttl time.Duration) *RewardCache {
	return &RewardCache{redis: client, ttl: ttl}
}

// NewRedisClient builds a client from config and checks it answers.
func NewRedisClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type cachedReward struct {
	UserID    string    `json:"userId"`
	Points    int64     `json:"points"`
	Level     int       `json:"level"`
	Badges    []string  `json:"badges"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func rewardKey(userID uuid.UUID) string {
	return rewardKeyPrefix + userID.String()
}

// Get returns nil, nil when the profile is not cached.
func (c *RewardCache) Get(ctx context.Context, userID uuid.UUID) (*entity.RewardProfile, error) {
	data, err := c.redis.Get(ctx, rewardKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached rewards: %w", err)
	}

	var cached cachedReward
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decode cached rewards: %w", err)
	}
	id, err := uuid.Parse(cached.UserID)
	if err != nil {
		return nil, fmt.Errorf("decode cached rewards: %w", err)
	}
	return &entity.RewardProfile{
		UserID:    id,
		Points:    cached.Points,
		Level:     cached.Level,
		Badges:    cached.Badges,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

func (c *RewardCache) Set(ctx context.Context, profile *entity.RewardProfile) error {
	data, err := json.Marshal(cachedReward{
		UserID:    profile.UserID.String(),
		Points:    profile.Points,
		Level:     profile.Level,
		Badges:    profile.Badges,
		UpdatedAt: profile.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode rewards: %w", err)
	}
	if err := c.redis.Set(ctx, rewardKey(profile.UserID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache rewards: %w", err)
	}
	return nil
}

// Invalidate drops a cached profile so the next read goes to the store.
func (c *RewardCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.redis.Del(ctx, rewardKey(userID)).Err()
}
