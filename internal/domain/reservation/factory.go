package reservation

import (
	"context"
	"time"

	"smart-parking/internal/domain/tariff"

	"github.com/google/uuid"
)

// PriceCalculator is satisfied by the tariff engine's Calculator.
type PriceCalculator interface {
	CalculatePrice(ctx context.Context, userID, spotID uuid.UUID, start, end time.Time) (tariff.Quote, error)
}

type Factory struct {
	calculator PriceCalculator
}

func NewFactory(calculator PriceCalculator) *Factory {
	return &Factory{calculator: calculator}
}

// CreateReservation prices the slot through the tariff engine and
// builds a pending reservation carrying the computed total.
func (f *Factory) CreateReservation(ctx context.Context, spotID, userID uuid.UUID, slot TimeSlot) (*Reservation, error) {
	quote, err := f.calculator.CalculatePrice(ctx, userID, spotID, slot.Start(), slot.End())
	if err != nil {
		return nil, err
	}
	return NewReservation(spotID, userID, slot, quote.Total)
}

// PriceExtension prices only the added sub-interval [oldEnd, newEnd).
func (f *Factory) PriceExtension(ctx context.Context, res *Reservation, newSlot TimeSlot) (tariff.Quote, error) {
	return f.calculator.CalculatePrice(ctx, res.UserID(), res.SpotID(), res.TimeSlot().End(), newSlot.End())
}
