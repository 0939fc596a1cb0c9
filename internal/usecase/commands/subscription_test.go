//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"smart-parking/internal/domain/subscription"
	"smart-parking/internal/infra"
	"smart-parking/internal/pkg/clock"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/usecase/commands"
	"smart-parking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionRepo struct {
	created       *subscription.Subscription
	updatedStatus *subscription.Status
	updatedPeriod *subscription.Subscription
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, sub *subscription.Subscription) error {
	f.created = sub
	return nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status subscription.Status, _ bool) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeSubscriptionRepo) UpdatePeriod(_ context.Context, sub *subscription.Subscription) error {
	f.updatedPeriod = sub
	return nil
}

type fakeSubscriptionStore struct {
	active  *subscription.Subscription
	byID    *subscription.Subscription
	byIDErr error
	plan    *subscription.Plan
	planErr error
}

func (f *fakeSubscriptionStore) FindActiveSubscription(_ context.Context, _ uuid.UUID, _ time.Time) (*subscription.Subscription, error) {
	return f.active, nil
}

func (f *fakeSubscriptionStore) FindDomainByID(_ context.Context, _ uuid.UUID) (*subscription.Subscription, error) {
	return f.byID, f.byIDErr
}

func (f *fakeSubscriptionStore) FindPlanByID(_ context.Context, _ uuid.UUID) (*subscription.Plan, error) {
	return f.plan, f.planErr
}

var purchaseNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestPurchaseSubscription(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("opens a period starting now", func(t *testing.T) {
		repo := &fakeSubscriptionRepo{}
		store := &fakeSubscriptionStore{plan: builder.NewPlanBuilder().Build()}
		uc := commands.NewSubscriptionUseCase(repo, store, clock.NewMockClock(purchaseNow))

		view, err := uc.Purchase(ctx, userID, store.plan.ID(), true)
		require.NoError(t, err)
		require.NotNil(t, repo.created)
		assert.Equal(t, purchaseNow, view.StartDate)
		assert.Equal(t, purchaseNow.AddDate(0, 0, 30), view.EndDate)
		assert.Equal(t, "active", view.Status)
		assert.True(t, view.AutoRenew)
	})

	t.Run("unknown plan", func(t *testing.T) {
		store := &fakeSubscriptionStore{planErr: infra.WrapRepoErr("plan not found", nil, infra.KindNotFound)}
		uc := commands.NewSubscriptionUseCase(&fakeSubscriptionRepo{}, store, clock.NewMockClock(purchaseNow))

		_, err := uc.Purchase(ctx, userID, uuid.New(), false)
		assert.ErrorIs(t, err, errs.ErrPlanNotFound)
	})

	t.Run("inactive plan behaves as unknown", func(t *testing.T) {
		plan := builder.NewPlanBuilder().With(func(b *builder.PlanBuilder) { b.IsActive = false }).Build()
		store := &fakeSubscriptionStore{plan: plan}
		uc := commands.NewSubscriptionUseCase(&fakeSubscriptionRepo{}, store, clock.NewMockClock(purchaseNow))

		_, err := uc.Purchase(ctx, userID, plan.ID(), false)
		assert.ErrorIs(t, err, errs.ErrPlanNotFound)
	})

	t.Run("one active subscription per user", func(t *testing.T) {
		store := &fakeSubscriptionStore{
			plan:   builder.NewPlanBuilder().Build(),
			active: builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) { b.UserID = userID }).Build(),
		}
		uc := commands.NewSubscriptionUseCase(&fakeSubscriptionRepo{}, store, clock.NewMockClock(purchaseNow))

		_, err := uc.Purchase(ctx, userID, store.plan.ID(), false)
		assert.ErrorIs(t, err, errs.ErrActiveSubscriptionHeld)
	})
}

func TestCancelSubscription(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("owner cancels an active subscription", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.UserID = userID
		}).Build()
		repo := &fakeSubscriptionRepo{}
		uc := commands.NewSubscriptionUseCase(repo, &fakeSubscriptionStore{byID: sub}, clock.NewMockClock(purchaseNow))

		require.NoError(t, uc.Cancel(ctx, sub.ID(), userID))
		require.NotNil(t, repo.updatedStatus)
		assert.Equal(t, subscription.StatusCancelled, *repo.updatedStatus)
	})

	t.Run("other users see not found", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().Build()
		uc := commands.NewSubscriptionUseCase(&fakeSubscriptionRepo{}, &fakeSubscriptionStore{byID: sub}, clock.NewMockClock(purchaseNow))

		err := uc.Cancel(ctx, sub.ID(), userID)
		assert.ErrorIs(t, err, errs.ErrSubscriptionNotFound)
	})

	t.Run("cancelled subscriptions do not cancel again", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.UserID = userID
			b.Status = subscription.StatusCancelled
		}).Build()
		uc := commands.NewSubscriptionUseCase(&fakeSubscriptionRepo{}, &fakeSubscriptionStore{byID: sub}, clock.NewMockClock(purchaseNow))

		err := uc.Cancel(ctx, sub.ID(), userID)
		assert.ErrorIs(t, err, errs.ErrSubscriptionNotActive)
	})
}

func TestRenewSubscription(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rolls the period forward from the current end", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.UserID = userID
		}).Build()
		oldEnd := sub.EndDate()
		repo := &fakeSubscriptionRepo{}
		uc := commands.NewSubscriptionUseCase(repo, &fakeSubscriptionStore{byID: sub}, clock.NewMockClock(purchaseNow))

		view, err := uc.Renew(ctx, sub.ID(), userID)
		require.NoError(t, err)
		require.NotNil(t, repo.updatedPeriod)
		assert.Equal(t, oldEnd, view.StartDate)
		assert.Equal(t, oldEnd.Add(sub.Plan().Duration()), view.EndDate)
	})

	t.Run("expired subscriptions do not renew", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.UserID = userID
			b.Status = subscription.StatusExpired
		}).Build()
		uc := commands.NewSubscriptionUseCase(&fakeSubscriptionRepo{}, &fakeSubscriptionStore{byID: sub}, clock.NewMockClock(purchaseNow))

		_, err := uc.Renew(ctx, sub.ID(), userID)
		assert.ErrorIs(t, err, errs.ErrSubscriptionNotActive)
	})
}
