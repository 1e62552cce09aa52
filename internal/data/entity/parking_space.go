package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParkingSpace is owned by the listings side of the marketplace and only read here.
type ParkingSpace struct {
	ID         uuid.UUID       `db:"id"`
	OwnerID    uuid.UUID       `db:"owner_id"`
	Title      string          `db:"title"`
	Address    string          `db:"address"`
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	CreatedAt  time.Time       `db:"created_at"`
}
