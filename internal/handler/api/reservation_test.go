//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-parking/internal/handler/api"
	reqdto "smart-parking/internal/handler/dto/request"
	resdto "smart-parking/internal/handler/dto/response"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/usecase/commands"
	"smart-parking/internal/usecase/queries"
	"smart-parking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type stubReservationCommands struct {
	createResult *commands.CreateReservationResult
	createErr    error
	extendView   *queries.ReservationView
	extendErr    error
	cancelErr    error

	gotIdempotencyKey uuid.UUID
}

func (s *stubReservationCommands) CreateReservation(_ context.Context, _ reqdto.CreateReservationRequest, _, idempotencyKey uuid.UUID) (*commands.CreateReservationResult, error) {
	s.gotIdempotencyKey = idempotencyKey
	return s.createResult, s.createErr
}

func (s *stubReservationCommands) ExtendReservation(_ context.Context, _, _ uuid.UUID, _ int) (*queries.ReservationView, error) {
	return s.extendView, s.extendErr
}

func (s *stubReservationCommands) CancelReservation(_ context.Context, _, _ uuid.UUID) error {
	return s.cancelErr
}

type stubReservationQueries struct {
	view    *queries.ReservationView
	viewErr error
	items   []*queries.ReservationListItem
}

func (s *stubReservationQueries) GetByID(_ context.Context, _, _ uuid.UUID) (*queries.ReservationView, error) {
	return s.view, s.viewErr
}

func (s *stubReservationQueries) GetByIDSystem(_ context.Context, _ uuid.UUID) (*queries.ReservationView, error) {
	return s.view, s.viewErr
}

func (s *stubReservationQueries) ListByUser(_ context.Context, _ uuid.UUID, _ int) ([]*queries.ReservationListItem, error) {
	return s.items, nil
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	stubCommands *stubReservationCommands
	stubQueries  *stubReservationQueries
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()
	s.stubCommands = &stubReservationCommands{}
	s.stubQueries = &stubReservationQueries{}
	handler := api.NewReservationHandler(s.stubCommands, s.stubQueries)

	withUser := func(next gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			next(c)
		}
	}
	s.router.POST("/reservations", withUser(handler.CreateReservation))
	s.router.GET("/reservations/:id", withUser(handler.GetReservation))
	s.router.GET("/reservations", withUser(handler.GetUserReservations))
	s.router.POST("/reservations/:id/extend", withUser(handler.ExtendReservation))
	s.router.DELETE("/reservations/:id", withUser(handler.CancelReservation))
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) reservationView() *queries.ReservationView {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return &queries.ReservationView{
		ID:         uuid.New(),
		SpotID:     uuid.New(),
		SpotName:   "A-01",
		UserID:     s.userID,
		UserEmail:  "driver@example.com",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Status:     "pending",
		TotalPrice: decimal.RequireFromString("200.00"),
	}
}

func (s *ReservationHandlerTestSuite) createBody() map[string]any {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return map[string]any{
		"spot_id":    uuid.New().String(),
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(2 * time.Hour).Format(time.RFC3339),
	}
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"
	key := uuid.New()
	headers := map[string]string{"Idempotency-Key": key.String()}

	s.Run("success: 201 for a fresh reservation", func() {
		view := s.reservationView()
		s.stubCommands.createErr = nil
		s.stubCommands.createResult = &commands.CreateReservationResult{Reservation: view}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, s.createBody(), headers)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("200.00", response.TotalPrice)
		s.Equal(key, s.stubCommands.gotIdempotencyKey)
	})

	s.Run("success: 200 when the key replays a completed request", func() {
		s.stubCommands.createErr = nil
		s.stubCommands.createResult = &commands.CreateReservationResult{
			Reservation: s.reservationView(),
			IsReplayed:  true,
		}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, s.createBody(), headers)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	})

	s.Run("error: 400 without an Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 for a malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, s.createBody(),
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: command failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "spot not found", err: errs.ErrSpotNotFound, expectCode: http.StatusNotFound},
			{name: "spot locked", err: errs.ErrSpotLocked, expectCode: http.StatusConflict},
			{name: "invalid time slot", err: errs.ErrInvalidTimeSlot, expectCode: http.StatusBadRequest},
			{name: "slot conflict", err: errs.ErrReservationConflict, expectCode: http.StatusConflict},
			{name: "duplicate with different parameters", err: errs.ErrDuplicateReservation, expectCode: http.StatusConflict},
			{name: "request in progress", err: errs.ErrIdempotencyInProgress, expectCode: http.StatusConflict},
			{name: "domain validation", err: errs.ErrDomainValidation, expectCode: http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.stubCommands.createResult = nil
				s.stubCommands.createErr = tc.err

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, s.createBody(), headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: returns the owned reservation", func() {
		view := s.reservationView()
		s.stubQueries.viewErr = nil
		s.stubQueries.view = view

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.SpotName, response.SpotName)
	})

	s.Run("error: access denial is indistinguishable from not found", func() {
		for _, err := range []error{queries.ErrReservationNotFound, queries.ErrReservationAccess} {
			s.stubQueries.view = nil
			s.stubQueries.viewErr = err

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+uuid.NewString(), nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
		}
	})

	s.Run("error: 400 for a malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})
}

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	s.stubQueries.items = []*queries.ReservationListItem{
		{
			ID:         uuid.New(),
			SpotID:     uuid.New(),
			SpotName:   "A-01",
			Status:     "active",
			TotalPrice: decimal.RequireFromString("150.00"),
		},
	}

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?limit=10", nil, "")

	var response []resdto.ReservationListResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Len(response, 1)
	s.Equal("150.00", response[0].TotalPrice)
}

func (s *ReservationHandlerTestSuite) TestExtendReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/extend"
	body := map[string]any{"additional_hours": 2}

	s.Run("success: returns the extended reservation", func() {
		view := s.reservationView()
		view.EndTime = view.EndTime.Add(2 * time.Hour)
		view.TotalPrice = decimal.RequireFromString("400.00")
		s.stubCommands.extendErr = nil
		s.stubCommands.extendView = view

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("400.00", response.TotalPrice)
	})

	s.Run("error: 400 for hours outside 1..24", func() {
		for _, hours := range []int{0, 25} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"additional_hours": hours}, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: 409 when the extension collides", func() {
		s.stubCommands.extendView = nil
		s.stubCommands.extendErr = errs.ErrReservationConflict

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 422 when the reservation cannot be extended", func() {
		s.stubCommands.extendView = nil
		s.stubCommands.extendErr = errs.ErrDomainValidation

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	url := "/reservations/" + uuid.NewString()

	s.Run("success: 204 No Content", func() {
		s.stubCommands.cancelErr = nil
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for an unknown reservation", func() {
		s.stubCommands.cancelErr = errs.ErrReservationNotFound
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
