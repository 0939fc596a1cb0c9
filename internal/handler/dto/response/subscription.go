package response

import (
	"time"

	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PlanResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	DurationDays       int       `json:"durationDays"`
	Price              string    `json:"price"`
	DiscountPercentage string    `json:"discountPercentage"`
}

type SubscriptionResponse struct {
	ID                 uuid.UUID `json:"id"`
	PlanID             uuid.UUID `json:"planId"`
	PlanName           string    `json:"planName"`
	DiscountPercentage string    `json:"discountPercentage"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Status             string    `json:"status"`
	AutoRenew          bool      `json:"autoRenew"`
}

func FromPlanView(v *queries.PlanView) *PlanResponse {
	return &PlanResponse{
		ID:                 v.ID,
		Name:               v.Name,
		DurationDays:       v.DurationDays,
		Price:              v.Price.StringFixed(2),
		DiscountPercentage: v.DiscountPercentage.String(),
	}
}

func FromSubscriptionView(v *queries.SubscriptionView) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:                 v.ID,
		PlanID:             v.PlanID,
		PlanName:           v.PlanName,
		DiscountPercentage: v.DiscountPercentage.String(),
		StartDate:          v.StartDate,
		EndDate:            v.EndDate,
		Status:             v.Status,
		AutoRenew:          v.AutoRenew,
	}
}
