package repository

import (
	"context"
	"errors"

	"smart-parking/internal/domain/subscription"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *subscription.Subscription) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status subscription.Status, autoRenew bool) error
	UpdatePeriod(ctx context.Context, sub *subscription.Subscription) error
}

type SubscriptionWriteRepository struct {
	db db.DBTX
}

func NewSubscriptionRepository(db db.DBTX) *SubscriptionWriteRepository {
	return &SubscriptionWriteRepository{db: db}
}

const insertSubscriptionSQL = `
INSERT INTO user_subscriptions (id, user_id, plan_id, start_date, end_date, status, auto_renew)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *SubscriptionWriteRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	_, err := r.db.Exec(ctx, insertSubscriptionSQL,
		sub.ID(), sub.UserID(), sub.Plan().ID(),
		sub.StartDate(), sub.EndDate(), sub.Status().String(), sub.AutoRenew(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return infra.WrapRepoErr("subscription plan does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create subscription", err)
	}
	return nil
}

const updateSubscriptionStatusSQL = `
UPDATE user_subscriptions
SET status = $2, auto_renew = $3, updated_at = now()
WHERE id = $1
`

func (r *SubscriptionWriteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status subscription.Status, autoRenew bool) error {
	tag, err := r.db.Exec(ctx, updateSubscriptionStatusSQL, id, status.String(), autoRenew)
	if err != nil {
		return infra.WrapRepoErr("failed to update subscription status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateSubscriptionPeriodSQL = `
UPDATE user_subscriptions
SET start_date = $2, end_date = $3, status = $4, updated_at = now()
WHERE id = $1
`

func (r *SubscriptionWriteRepository) UpdatePeriod(ctx context.Context, sub *subscription.Subscription) error {
	tag, err := r.db.Exec(ctx, updateSubscriptionPeriodSQL,
		sub.ID(), sub.StartDate(), sub.EndDate(), sub.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update subscription period", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}
