package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rewardRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *rewardRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.RewardProfile, error) {
	var model RewardProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reward profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find reward profile for user %s: %w", userID, err)
	}

	badges := []string{}
	if len(model.Badges) > 0 {
		if err := json.Unmarshal(model.Badges, &badges); err != nil {
			return nil, fmt.Errorf("decode badges for user %s: %w", userID, err)
		}
	}

	return &entity.RewardProfile{
		UserID:    userID,
		Points:    model.Points,
		Level:     model.Level,
		Badges:    badges,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *rewardRepository) Upsert(ctx context.Context, profile *entity.RewardProfile) error {
	badges := profile.Badges
	if badges == nil {
		badges = []string{}
	}
	raw, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("encode badges for user %s: %w", profile.UserID, err)
	}

	model := RewardProfile{
		UserID:    profile.UserID.String(),
		Points:    profile.Points,
		Level:     profile.Level,
		Badges:    datatypes.JSON(raw),
		UpdatedAt: profile.UpdatedAt,
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"points", "level", "badges", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		r.log.Error("Failed to upsert reward profile", zap.Error(err), zap.String("user_id", profile.UserID.String()))
		return fmt.Errorf("upsert reward profile for user %s: %w", profile.UserID, err)
	}
	return nil
}
