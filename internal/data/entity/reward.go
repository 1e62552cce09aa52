package entity

import (
	"time"

	"github.com/google/uuid"
)

// RewardProfile is the gamification read model. Scoring happens elsewhere.
type RewardProfile struct {
	UserID    uuid.UUID `db:"user_id"`
	Points    int64     `db:"points"`
	Level     int       `db:"level"`
	Badges    []string  `db:"badges"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EmptyRewardProfile is returned for users the scoring side has not seen yet.
func EmptyRewardProfile(userID uuid.UUID) *RewardProfile {
	return &RewardProfile{
		UserID: userID,
		Level:  1,
		Badges: []string{},
	}
}
