package api

import (
	"net/http"

	resdto "smart-parking/internal/handler/dto/response"
	"smart-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TariffHandler struct {
	tariffQueries queries.TariffQueries
}

func NewTariffHandler(tariffQueries queries.TariffQueries) *TariffHandler {
	return &TariffHandler{tariffQueries: tariffQueries}
}

// @Summary List zones
// @Description List tariff zones
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ZoneResponse
// @Router /tariffs/zones [get]
func (h *TariffHandler) ListZones(c *gin.Context) {
	zones, err := h.tariffQueries.ListZones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.ZoneResponse, len(zones))
	for i, z := range zones {
		result[i] = resdto.FromZoneView(z)
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List rules
// @Description List tariff rules, optionally filtered by zone or spot
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Param zone_id query string false "Zone ID"
// @Param spot_id query string false "Spot ID"
// @Success 200 {array} resdto.RuleResponse
// @Router /tariffs/rules [get]
func (h *TariffHandler) ListRules(c *gin.Context) {
	var filter queries.RuleFilter
	if raw := c.Query("zone_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid zone ID",
			})
			return
		}
		filter.ZoneID = &id
	}
	if raw := c.Query("spot_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid spot ID",
			})
			return
		}
		filter.SpotID = &id
	}

	rules, err := h.tariffQueries.ListRules(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.RuleResponse, len(rules))
	for i, r := range rules {
		result[i] = resdto.FromRuleView(r)
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List spots in a zone
// @Description List parking spots belonging to a zone
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Success 200 {array} resdto.SpotResponse
// @Router /tariffs/zones/{id}/spots [get]
func (h *TariffHandler) ListZoneSpots(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid zone ID",
		})
		return
	}

	spots, err := h.tariffQueries.ListSpotsByZone(c.Request.Context(), zoneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	result := make([]*resdto.SpotResponse, len(spots))
	for i, s := range spots {
		result[i] = resdto.FromSpotView(s)
	}
	c.JSON(http.StatusOK, result)
}
