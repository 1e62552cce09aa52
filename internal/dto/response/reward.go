package response

import (
	"time"

	"parking-marketplace/internal/data/entity"
)

type RewardResponse struct {
	UserID    string    `json:"userId"`
	Points    int64     `json:"points"`
	Level     int       `json:"level"`
	Badges    []string  `json:"badges"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func RewardToResponse(p *entity.RewardProfile) RewardResponse {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	return RewardResponse{
		UserID:    p.UserID.String(),
		Points:    p.Points,
		Level:     p.Level,
		Badges:    badges,
		UpdatedAt: p.UpdatedAt,
	}
}
