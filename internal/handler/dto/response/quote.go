package response

import (
	"time"

	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PriceResponse struct {
	SpotID                  uuid.UUID `json:"spotId"`
	StartTime               time.Time `json:"startTime"`
	EndTime                 time.Time `json:"endTime"`
	Price                   string    `json:"price"`
	OriginalPrice           string    `json:"originalPrice"`
	HasSubscriptionDiscount bool      `json:"hasSubscriptionDiscount"`
	DiscountPercentage      string    `json:"discountPercentage"`
	Hours                   int       `json:"hours"`
}

func FromQuoteView(v *queries.QuoteView) *PriceResponse {
	return &PriceResponse{
		SpotID:                  v.SpotID,
		StartTime:               v.StartTime,
		EndTime:                 v.EndTime,
		Price:                   v.Price.StringFixed(2),
		OriginalPrice:           v.OriginalPrice.StringFixed(2),
		HasSubscriptionDiscount: v.HasSubscriptionDiscount,
		DiscountPercentage:      v.DiscountPercentage.String(),
		Hours:                   v.Hours,
	}
}
