package request

import (
	"time"

	"github.com/google/uuid"
)

type PriceRequest struct {
	SpotID    uuid.UUID `json:"spot_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
