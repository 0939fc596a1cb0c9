package queries

import (
	"context"
	"time"

	"smart-parking/internal/infra"
	"smart-parking/internal/pkg/clock"
	"smart-parking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNoActiveSubscription = errs.New("no active subscription")

type SubscriptionQueries interface {
	ListPlans(ctx context.Context) ([]*PlanView, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*SubscriptionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*SubscriptionView, error)
}

type SubscriptionViewStore interface {
	FindActiveView(ctx context.Context, userID uuid.UUID, at time.Time) (*SubscriptionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*SubscriptionView, error)
	ListPlans(ctx context.Context) ([]*PlanView, error)
}

type subscriptionQueriesImpl struct {
	store SubscriptionViewStore
	clock clock.Clock
}

func NewSubscriptionQueries(store SubscriptionViewStore, clock clock.Clock) SubscriptionQueries {
	return &subscriptionQueriesImpl{
		store: store,
		clock: clock,
	}
}

func (q *subscriptionQueriesImpl) ListPlans(ctx context.Context) ([]*PlanView, error) {
	return q.store.ListPlans(ctx)
}

func (q *subscriptionQueriesImpl) GetActive(ctx context.Context, userID uuid.UUID) (*SubscriptionView, error) {
	view, err := q.store.FindActiveView(ctx, userID, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActiveSubscription
		}
		return nil, err
	}
	return view, nil
}

func (q *subscriptionQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*SubscriptionView, error) {
	return q.store.ListByUser(ctx, userID)
}
