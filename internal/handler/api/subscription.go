package api

import (
	"errors"
	"net/http"

	reqdto "smart-parking/internal/handler/dto/request"
	resdto "smart-parking/internal/handler/dto/response"
	"smart-parking/internal/handler/middleware"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/usecase/commands"
	"smart-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	subscriptionCommands commands.SubscriptionCommands
	subscriptionQueries  queries.SubscriptionQueries
}

func NewSubscriptionHandler(subscriptionCommands commands.SubscriptionCommands, subscriptionQueries queries.SubscriptionQueries) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionCommands: subscriptionCommands,
		subscriptionQueries:  subscriptionQueries,
	}
}

// @Summary List plans
// @Description List active subscription plans
// @Tags subscriptions
// @Produce json
// @Success 200 {array} resdto.PlanResponse
// @Router /plans [get]
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionQueries.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.PlanResponse, len(plans))
	for i, p := range plans {
		result[i] = resdto.FromPlanView(p)
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Purchase subscription
// @Description Purchase a subscription plan for the authenticated user
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PurchaseSubscriptionRequest true "Purchase request"
// @Success 201 {object} resdto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.PurchaseSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.subscriptionCommands.Purchase(c.Request.Context(), userID, req.PlanID, req.AutoRenew)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Subscription plan not found",
			})
		case errors.Is(err, errs.ErrActiveSubscriptionHeld):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An active subscription already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSubscriptionView(view))
}

// @Summary Active subscription
// @Description Get the authenticated user's currently active subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Router /subscriptions/active [get]
func (h *SubscriptionHandler) GetActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.subscriptionQueries.GetActive(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, queries.ErrNoActiveSubscription) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active subscription",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSubscriptionView(view))
}

// @Summary List subscriptions
// @Description List the authenticated user's subscriptions, newest first
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SubscriptionResponse
// @Router /subscriptions [get]
func (h *SubscriptionHandler) ListByUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	subs, err := h.subscriptionQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.SubscriptionResponse, len(subs))
	for i, s := range subs {
		result[i] = resdto.FromSubscriptionView(s)
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Cancel subscription
// @Description Cancel an active subscription; the discount stops applying immediately
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID",
		})
		return
	}

	if err := h.subscriptionCommands.Cancel(c.Request.Context(), id, userID); err != nil {
		h.writeSubscriptionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Renew subscription
// @Description Roll an active subscription forward by one plan period
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} resdto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID",
		})
		return
	}

	view, err := h.subscriptionCommands.Renew(c.Request.Context(), id, userID)
	if err != nil {
		h.writeSubscriptionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubscriptionView(view))
}

func (h *SubscriptionHandler) writeSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Subscription not found",
		})
	case errors.Is(err, errs.ErrSubscriptionNotActive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Subscription is not active",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
