package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

type QuoteView struct {
	SpotID                  uuid.UUID       `json:"spot_id"`
	StartTime               time.Time       `json:"start_time"`
	EndTime                 time.Time       `json:"end_time"`
	Price                   decimal.Decimal `json:"price"`
	OriginalPrice           decimal.Decimal `json:"original_price"`
	HasSubscriptionDiscount bool            `json:"has_subscription_discount"`
	DiscountPercentage      decimal.Decimal `json:"discount_percentage"`
	Hours                   int             `json:"hours"`
}

type ZoneView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RuleView struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	ZoneID          uuid.UUID       `json:"zone_id"`
	SpotID          *uuid.UUID      `json:"spot_id,omitempty"`
	PricePerHour    decimal.Decimal `json:"price_per_hour"`
	Priority        int             `json:"priority"`
	IsActive        bool            `json:"is_active"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidTo         *time.Time      `json:"valid_to,omitempty"`
	DayType         string          `json:"day_type"`
	CustomDays      []int           `json:"custom_days,omitempty"`
	TimePeriod      string          `json:"time_period"`
	CustomStartTime *string         `json:"custom_start_time,omitempty"`
	CustomEndTime   *string         `json:"custom_end_time,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type RuleFilter struct {
	ZoneID *uuid.UUID
	SpotID *uuid.UUID
}

type SpotView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ZoneID    uuid.UUID `json:"zone_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsLocked  bool      `json:"is_locked"`
	CreatedAt time.Time `json:"created_at"`
}

type PlanView struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	DurationDays       int             `json:"duration_days"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
}

type SubscriptionView struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	PlanID             uuid.UUID       `json:"plan_id"`
	PlanName           string          `json:"plan_name"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	Status             string          `json:"status"`
	AutoRenew          bool            `json:"auto_renew"`
	CreatedAt          time.Time       `json:"created_at"`
}

type ReservationView struct {
	ID         uuid.UUID       `json:"id"`
	SpotID     uuid.UUID       `json:"spot_id"`
	SpotName   string          `json:"spot_name"`
	UserID     uuid.UUID       `json:"user_id"`
	UserEmail  string          `json:"user_email"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID       `json:"id"`
	SpotID     uuid.UUID       `json:"spot_id"`
	SpotName   string          `json:"spot_name"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}
