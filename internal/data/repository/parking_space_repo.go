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

type ParkingSpaceRepository interface {
	Create(ctx context.Context, space *entity.ParkingSpace) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingSpace, error)
}

type parkingSpaceRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewParkingSpaceRepository(db database.DBTX, log *zap.Logger) ParkingSpaceRepository {
	return &parkingSpaceRepository{
		db:  db,
		log: log.With(zap.String("repository", "parking_space")),
	}
}

func (r *parkingSpaceRepository) Create(ctx context.Context, space *entity.ParkingSpace) error {
	query := `
		INSERT INTO parking_spaces (id, owner_id, title, address, hourly_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		space.ID,
		space.OwnerID,
		space.Title,
		space.Address,
		space.HourlyRate,
		space.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create parking space",
			zap.Error(err),
			zap.String("owner_id", space.OwnerID.String()),
		)
		return fmt.Errorf("create parking space %q: %w", space.Title, err)
	}

	return nil
}

func (r *parkingSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingSpace, error) {
	query := `
		SELECT id, owner_id, title, address, hourly_rate, created_at
		FROM parking_spaces
		WHERE id = $1
	`

	var space entity.ParkingSpace
	err := r.db.QueryRow(ctx, query, id).Scan(
		&space.ID,
		&space.OwnerID,
		&space.Title,
		&space.Address,
		&space.HourlyRate,
		&space.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find parking space by ID",
			zap.Error(err),
			zap.String("parking_space_id", id.String()),
		)
		return nil, fmt.Errorf("find parking space by ID %s: %w", id, err)
	}

	return &space, nil
}
