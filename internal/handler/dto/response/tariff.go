package response

import (
	"time"

	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ZoneResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"isActive"`
}

type RuleResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	ZoneID          uuid.UUID  `json:"zoneId"`
	SpotID          *uuid.UUID `json:"spotId,omitempty"`
	PricePerHour    string     `json:"pricePerHour"`
	Priority        int        `json:"priority"`
	IsActive        bool       `json:"isActive"`
	ValidFrom       time.Time  `json:"validFrom"`
	ValidTo         *time.Time `json:"validTo,omitempty"`
	DayType         string     `json:"dayType"`
	CustomDays      []int      `json:"customDays,omitempty"`
	TimePeriod      string     `json:"timePeriod"`
	CustomStartTime *string    `json:"customStartTime,omitempty"`
	CustomEndTime   *string    `json:"customEndTime,omitempty"`
}

type SpotResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ZoneID    uuid.UUID `json:"zoneId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsLocked  bool      `json:"isLocked"`
}

func FromZoneView(v *queries.ZoneView) *ZoneResponse {
	return &ZoneResponse{ID: v.ID, Name: v.Name, IsActive: v.IsActive}
}

func FromRuleView(v *queries.RuleView) *RuleResponse {
	return &RuleResponse{
		ID:              v.ID,
		Name:            v.Name,
		ZoneID:          v.ZoneID,
		SpotID:          v.SpotID,
		PricePerHour:    v.PricePerHour.StringFixed(2),
		Priority:        v.Priority,
		IsActive:        v.IsActive,
		ValidFrom:       v.ValidFrom,
		ValidTo:         v.ValidTo,
		DayType:         v.DayType,
		CustomDays:      v.CustomDays,
		TimePeriod:      v.TimePeriod,
		CustomStartTime: v.CustomStartTime,
		CustomEndTime:   v.CustomEndTime,
	}
}

func FromSpotView(v *queries.SpotView) *SpotResponse {
	return &SpotResponse{
		ID:        v.ID,
		Name:      v.Name,
		ZoneID:    v.ZoneID,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		IsLocked:  v.IsLocked,
	}
}
