package api

import (
	"errors"
	"net/http"

	reqdto "smart-parking/internal/handler/dto/request"
	resdto "smart-parking/internal/handler/dto/response"
	"smart-parking/internal/handler/middleware"
	"smart-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteQueries queries.QuoteQueries
}

func NewQuoteHandler(quoteQueries queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{quoteQueries: quoteQueries}
}

// @Summary Price a parking interval
// @Description Compute the price for parking on a spot over a time interval, including any subscription discount
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PriceRequest true "Pricing request"
// @Success 200 {object} resdto.PriceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spots/price [post]
func (h *QuoteHandler) GetPrice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.quoteQueries.GetPrice(c.Request.Context(), userID, req.SpotID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Parking spot not found",
			})
		case errors.Is(err, queries.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "End time must be after start time",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}
