package commands

import (
	"context"
	"time"

	"smart-parking/internal/domain/subscription"
	"smart-parking/internal/infra"
	"smart-parking/internal/pkg/clock"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *subscription.Subscription) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status subscription.Status, autoRenew bool) error
	UpdatePeriod(ctx context.Context, sub *subscription.Subscription) error
}

type SubscriptionReadStore interface {
	FindActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (*subscription.Subscription, error)
	FindDomainByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error)
	FindPlanByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error)
}

type SubscriptionCommands interface {
	Purchase(ctx context.Context, userID, planID uuid.UUID, autoRenew bool) (*queries.SubscriptionView, error)
	Cancel(ctx context.Context, subscriptionID, userID uuid.UUID) error
	Renew(ctx context.Context, subscriptionID, userID uuid.UUID) (*queries.SubscriptionView, error)
}

type subscriptionUseCaseImpl struct {
	repo  SubscriptionRepository
	store SubscriptionReadStore
	clock clock.Clock
}

func NewSubscriptionUseCase(repo SubscriptionRepository, store SubscriptionReadStore, clock clock.Clock) SubscriptionCommands {
	return &subscriptionUseCaseImpl{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

func (s *subscriptionUseCaseImpl) Purchase(ctx context.Context, userID, planID uuid.UUID, autoRenew bool) (*queries.SubscriptionView, error) {
	plan, err := s.store.FindPlanByID(ctx, planID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPlanNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !plan.IsActive() {
		return nil, errs.ErrPlanNotFound
	}

	now := s.clock.Now()
	existing, err := s.store.FindActiveSubscription(ctx, userID, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing != nil {
		return nil, errs.ErrActiveSubscriptionHeld
	}

	sub, err := subscription.NewSubscription(userID, plan, now, autoRenew)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return subscriptionToView(sub), nil
}

func (s *subscriptionUseCaseImpl) Cancel(ctx context.Context, subscriptionID, userID uuid.UUID) error {
	sub, err := s.findOwned(ctx, subscriptionID, userID)
	if err != nil {
		return err
	}
	if err := sub.Cancel(); err != nil {
		return errs.Mark(err, errs.ErrSubscriptionNotActive)
	}
	if err := s.repo.UpdateStatus(ctx, sub.ID(), sub.Status(), sub.AutoRenew()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *subscriptionUseCaseImpl) Renew(ctx context.Context, subscriptionID, userID uuid.UUID) (*queries.SubscriptionView, error) {
	sub, err := s.findOwned(ctx, subscriptionID, userID)
	if err != nil {
		return nil, err
	}
	if err := sub.Renew(); err != nil {
		return nil, errs.Mark(err, errs.ErrSubscriptionNotActive)
	}
	if err := s.repo.UpdatePeriod(ctx, sub); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return subscriptionToView(sub), nil
}

func (s *subscriptionUseCaseImpl) findOwned(ctx context.Context, subscriptionID, userID uuid.UUID) (*subscription.Subscription, error) {
	sub, err := s.store.FindDomainByID(ctx, subscriptionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSubscriptionNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if sub.UserID() != userID {
		return nil, errs.ErrSubscriptionNotFound
	}
	return sub, nil
}

func subscriptionToView(sub *subscription.Subscription) *queries.SubscriptionView {
	return &queries.SubscriptionView{
		ID:                 sub.ID(),
		UserID:             sub.UserID(),
		PlanID:             sub.Plan().ID(),
		PlanName:           sub.Plan().Name(),
		DiscountPercentage: sub.Plan().DiscountPercentage(),
		StartDate:          sub.StartDate(),
		EndDate:            sub.EndDate(),
		Status:             sub.Status().String(),
		AutoRenew:          sub.AutoRenew(),
		CreatedAt:          sub.CreatedAt(),
	}
}
