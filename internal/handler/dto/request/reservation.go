package request

import (
	"time"

	"smart-parking/internal/domain/reservation"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SpotID    uuid.UUID `json:"spot_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r CreateReservationRequest) ToTimeSlot() (reservation.TimeSlot, error) {
	return reservation.NewTimeSlot(r.StartTime, r.EndTime)
}

type ExtendReservationRequest struct {
	AdditionalHours int `json:"additional_hours" binding:"required,min=1,max=24"`
}
