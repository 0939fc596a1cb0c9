package request

import (
	"github.com/google/uuid"
)

type PurchaseSubscriptionRequest struct {
	PlanID    uuid.UUID `json:"plan_id" binding:"required"`
	AutoRenew bool      `json:"auto_renew"`
}
