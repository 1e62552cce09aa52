package gormstore

import (
	"context"
	"errors"
	"fmt"

	"parking-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type parkingSpaceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (r *parkingSpaceRepository) Create(ctx context.Context, space *entity.ParkingSpace) error {
	model := parkingSpaceModel(space)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("Failed to create parking space", zap.Error(err), zap.String("owner_id", space.OwnerID.String()))
		return fmt.Errorf("create parking space %q: %w", space.Title, err)
	}
	return nil
}

func (r *parkingSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingSpace, error) {
	var model ParkingSpace
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find parking space by ID", zap.Error(err), zap.String("parking_space_id", id.String()))
		return nil, fmt.Errorf("find parking space by ID %s: %w", id, err)
	}
	space, err := model.toEntity()
	if err != nil {
		return nil, fmt.Errorf("decode parking space %s: %w", model.ID, err)
	}
	return space, nil
}
