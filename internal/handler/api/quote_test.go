//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-parking/internal/handler/api"
	resdto "smart-parking/internal/handler/dto/response"
	"smart-parking/internal/usecase/queries"
	"smart-parking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type stubQuoteQueries struct {
	view *queries.QuoteView
	err  error
}

func (s *stubQuoteQueries) GetPrice(_ context.Context, _, spotID uuid.UUID, start, end time.Time) (*queries.QuoteView, error) {
	if s.err != nil {
		return nil, s.err
	}
	v := *s.view
	v.SpotID = spotID
	v.StartTime = start
	v.EndTime = end
	return &v, nil
}

type QuoteHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	stub   *stubQuoteQueries
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.stub = &stubQuoteQueries{}
	handler := api.NewQuoteHandler(s.stub)

	s.router.POST("/spots/price", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		handler.GetPrice(c)
	})
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) TestGetPrice() {
	url := "/spots/price"
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	body := map[string]any{
		"spot_id":    uuid.New().String(),
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(2 * time.Hour).Format(time.RFC3339),
	}

	s.Run("success: returns the priced quote", func() {
		s.stub.err = nil
		s.stub.view = &queries.QuoteView{
			Price:                   decimal.RequireFromString("240.00"),
			OriginalPrice:           decimal.RequireFromString("300.00"),
			HasSubscriptionDiscount: true,
			DiscountPercentage:      decimal.RequireFromString("20"),
			Hours:                   2,
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.PriceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("240.00", response.Price)
		s.Equal("300.00", response.OriginalPrice)
		s.True(response.HasSubscriptionDiscount)
		s.Equal(2, response.Hours)
	})

	s.Run("error: 404 when the spot is unknown", func() {
		s.stub.err = queries.ErrSpotNotFound

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Parking spot not found")
	})

	s.Run("error: 400 for inverted intervals", func() {
		s.stub.err = queries.ErrInvalidInterval

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "End time must be after start time")
	})

	s.Run("error: 400 on missing fields", func() {
		s.stub.err = nil
		s.stub.view = &queries.QuoteView{}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"spot_id": uuid.New().String()}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}
