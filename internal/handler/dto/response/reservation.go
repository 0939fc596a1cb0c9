package response

import (
	"time"

	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	SpotID     uuid.UUID `json:"spotId"`
	SpotName   string    `json:"spotName"`
	UserID     uuid.UUID `json:"userId"`
	UserEmail  string    `json:"userEmail"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	SpotID     uuid.UUID `json:"spotId"`
	SpotName   string    `json:"spotName"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:         v.ID,
		SpotID:     v.SpotID,
		SpotName:   v.SpotName,
		UserID:     v.UserID,
		UserEmail:  v.UserEmail,
		StartTime:  v.StartTime,
		EndTime:    v.EndTime,
		Status:     v.Status,
		TotalPrice: v.TotalPrice.StringFixed(2),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func FromReservationListItem(v *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         v.ID,
		SpotID:     v.SpotID,
		SpotName:   v.SpotName,
		StartTime:  v.StartTime,
		EndTime:    v.EndTime,
		Status:     v.Status,
		TotalPrice: v.TotalPrice.StringFixed(2),
		CreatedAt:  v.CreatedAt,
	}
}
