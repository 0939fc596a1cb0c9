package queries

import (
	"context"

	"github.com/google/uuid"
)

type TariffQueries interface {
	ListZones(ctx context.Context) ([]*ZoneView, error)
	ListRules(ctx context.Context, filter RuleFilter) ([]*RuleView, error)
	ListSpotsByZone(ctx context.Context, zoneID uuid.UUID) ([]*SpotView, error)
}

type TariffViewStore interface {
	ListZones(ctx context.Context) ([]*ZoneView, error)
	ListRules(ctx context.Context, filter RuleFilter) ([]*RuleView, error)
}

type SpotListStore interface {
	ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*SpotView, error)
}

type tariffQueriesImpl struct {
	tariffs TariffViewStore
	spots   SpotListStore
}

func NewTariffQueries(tariffs TariffViewStore, spots SpotListStore) TariffQueries {
	return &tariffQueriesImpl{
		tariffs: tariffs,
		spots:   spots,
	}
}

func (q *tariffQueriesImpl) ListZones(ctx context.Context) ([]*ZoneView, error) {
	return q.tariffs.ListZones(ctx)
}

func (q *tariffQueriesImpl) ListRules(ctx context.Context, filter RuleFilter) ([]*RuleView, error) {
	return q.tariffs.ListRules(ctx, filter)
}

func (q *tariffQueriesImpl) ListSpotsByZone(ctx context.Context, zoneID uuid.UUID) ([]*SpotView, error) {
	return q.spots.ListByZone(ctx, zoneID)
}
