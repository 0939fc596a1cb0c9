package queries

import (
	"context"
	"time"

	"smart-parking/internal/domain/spot"
	"smart-parking/internal/domain/tariff"
	"smart-parking/internal/infra"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrSpotNotFound    = errs.New("parking spot not found")
	ErrInvalidInterval = errs.New("end time must be after start time")
)

// QuoteQueries prices a parking interval without creating anything.
type QuoteQueries interface {
	GetPrice(ctx context.Context, userID, spotID uuid.UUID, start, end time.Time) (*QuoteView, error)
}

type SpotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error)
}

type quoteQueriesImpl struct {
	calculator *tariff.Calculator
	spots      SpotReadStore
}

func NewQuoteQueries(calculator *tariff.Calculator, spots SpotReadStore) QuoteQueries {
	return &quoteQueriesImpl{
		calculator: calculator,
		spots:      spots,
	}
}

func (q *quoteQueriesImpl) GetPrice(ctx context.Context, userID, spotID uuid.UUID, start, end time.Time) (*QuoteView, error) {
	began := time.Now()

	if !end.After(start) {
		metrics.ObserveQuote(began, "invalid_interval")
		return nil, ErrInvalidInterval
	}
	if _, err := q.spots.FindByID(ctx, spotID); err != nil {
		metrics.ObserveQuote(began, "spot_not_found")
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	quote, err := q.calculator.CalculatePrice(ctx, userID, spotID, start, end)
	if err != nil {
		metrics.ObserveQuote(began, "error")
		return nil, err
	}

	metrics.ObserveQuote(began, "ok")
	return &QuoteView{
		SpotID:                  spotID,
		StartTime:               start,
		EndTime:                 end,
		Price:                   quote.Total,
		OriginalPrice:           quote.BaseTotal,
		HasSubscriptionDiscount: quote.HasDiscount,
		DiscountPercentage:      quote.DiscountPercent,
		Hours:                   quote.Hours,
	}, nil
}
