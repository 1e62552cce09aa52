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

type RewardRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.RewardProfile, error)
	Upsert(ctx context.Context, profile *entity.RewardProfile) error
}

type rewardRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewRewardRepository(db database.DBTX, log *zap.Logger) RewardRepository {
	return &rewardRepository{
		db:  db,
		log: log.With(zap.String("repository", "reward")),
	}
}

func (r *rewardRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.RewardProfile, error) {
	query := `
		SELECT user_id, points, level, badges, updated_at
		FROM reward_profiles
		WHERE user_id = $1
	`

	var profile entity.RewardProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Points,
		&profile.Level,
		&profile.Badges,
		&profile.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reward profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reward profile for user %s: %w", userID, err)
	}
	if profile.Badges == nil {
		profile.Badges = []string{}
	}

	return &profile, nil
}

func (r *rewardRepository) Upsert(ctx context.Context, profile *entity.RewardProfile) error {
	query := `
		INSERT INTO reward_profiles (user_id, points, level, badges, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET points = EXCLUDED.points, level = EXCLUDED.level,
		    badges = EXCLUDED.badges, updated_at = EXCLUDED.updated_at
	`

	badges := profile.Badges
	if badges == nil {
		badges = []string{}
	}

	_, err := r.db.Exec(ctx, query, profile.UserID, profile.Points, profile.Level, badges, profile.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to upsert reward profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("upsert reward profile for user %s: %w", profile.UserID, err)
	}

	return nil
}
