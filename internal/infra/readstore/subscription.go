package readstore

import (
	"context"
	"time"

	"smart-parking/internal/domain/subscription"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type SubscriptionStore interface {
	FindActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (*subscription.Subscription, error)
	FindDomainByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error)
	FindActiveView(ctx context.Context, userID uuid.UUID, at time.Time) (*queries.SubscriptionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.SubscriptionView, error)
	ListPlans(ctx context.Context) ([]*queries.PlanView, error)
	FindPlanByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error)
}

type SubscriptionReadStore struct {
	db db.DBTX
}

func NewSubscriptionReadStore(db db.DBTX) *SubscriptionReadStore {
	return &SubscriptionReadStore{db: db}
}

const subscriptionColumns = `
s.id, s.user_id, s.start_date, s.end_date, s.status, s.auto_renew,
s.created_at, s.updated_at,
p.id, p.name, p.duration_days, p.price, p.discount_percentage, p.is_active,
p.created_at, p.updated_at
`

const activeSubscriptionSQL = `
SELECT ` + subscriptionColumns + `
FROM user_subscriptions s
JOIN subscription_plans p ON p.id = s.plan_id
WHERE s.user_id = $1 AND s.status = 'active'
  AND s.start_date <= $2 AND s.end_date >= $2
ORDER BY s.start_date DESC, s.id
LIMIT 1
`

// FindActiveSubscription picks the subscription whose period covers
// the instant; with overlapping periods the most recently started one
// wins, id as the final tie-break to keep the choice deterministic.
func (s *SubscriptionReadStore) FindActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (*subscription.Subscription, error) {
	row := s.db.QueryRow(ctx, activeSubscriptionSQL, userID, at)
	sub, err := scanSubscription(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active subscription", err)
	}
	return sub, nil
}

const subscriptionByIDSQL = `
SELECT ` + subscriptionColumns + `
FROM user_subscriptions s
JOIN subscription_plans p ON p.id = s.plan_id
WHERE s.id = $1
`

func (s *SubscriptionReadStore) FindDomainByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	row := s.db.QueryRow(ctx, subscriptionByIDSQL, id)
	sub, err := scanSubscription(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription by ID", err)
	}
	return sub, nil
}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var (
		id, userID, planID     uuid.UUID
		startDate, endDate     pgtype.Timestamptz
		status                 string
		autoRenew              bool
		createdAt, updatedAt   pgtype.Timestamptz
		planName               string
		durationDays           int
		price, discount        pgtype.Numeric
		planActive             bool
		planCreated, planUpdated pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &userID, &startDate, &endDate, &status, &autoRenew,
		&createdAt, &updatedAt,
		&planID, &planName, &durationDays, &price, &discount, &planActive,
		&planCreated, &planUpdated,
	); err != nil {
		return nil, err
	}

	planPrice, err := pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, err
	}
	planDiscount, err := pgconv.DecimalFromNumeric(discount)
	if err != nil {
		return nil, err
	}
	plan := subscription.ReconstructPlan(
		planID, planName, durationDays, planPrice, planDiscount, planActive,
		pgconv.TimeFromPgtype(planCreated), pgconv.TimeFromPgtype(planUpdated),
	)
	return subscription.ReconstructSubscription(
		id, userID, plan,
		pgconv.TimeFromPgtype(startDate), pgconv.TimeFromPgtype(endDate),
		subscription.Status(status), autoRenew,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (s *SubscriptionReadStore) FindActiveView(ctx context.Context, userID uuid.UUID, at time.Time) (*queries.SubscriptionView, error) {
	sub, err := s.FindActiveSubscription(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, infra.WrapRepoErr("no active subscription", pgx.ErrNoRows, infra.KindNotFound)
	}
	return toSubscriptionView(sub), nil
}

const subscriptionsByUserSQL = `
SELECT ` + subscriptionColumns + `
FROM user_subscriptions s
JOIN subscription_plans p ON p.id = s.plan_id
WHERE s.user_id = $1
ORDER BY s.start_date DESC, s.id
`

func (s *SubscriptionReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.SubscriptionView, error) {
	rows, err := s.db.Query(ctx, subscriptionsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query subscriptions", err)
	}
	defer rows.Close()

	var result []*queries.SubscriptionView
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan subscription", err)
		}
		result = append(result, toSubscriptionView(sub))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read subscriptions", err)
	}
	return result, nil
}

func toSubscriptionView(sub *subscription.Subscription) *queries.SubscriptionView {
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

const listPlansSQL = `
SELECT id, name, duration_days, price, discount_percentage, is_active, created_at
FROM subscription_plans
WHERE is_active
ORDER BY duration_days
`

func (s *SubscriptionReadStore) ListPlans(ctx context.Context) ([]*queries.PlanView, error) {
	rows, err := s.db.Query(ctx, listPlansSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query subscription plans", err)
	}
	defer rows.Close()

	var result []*queries.PlanView
	for rows.Next() {
		var (
			v               queries.PlanView
			price, discount pgtype.Numeric
			createdAt       pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.DurationDays, &price, &discount, &v.IsActive, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan subscription plan", err)
		}
		v.Price, err = pgconv.DecimalFromNumeric(price)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid plan price value", err)
		}
		v.DiscountPercentage, err = pgconv.DecimalFromNumeric(discount)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid plan discount value", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read subscription plans", err)
	}
	return result, nil
}

const planByIDSQL = `
SELECT id, name, duration_days, price, discount_percentage, is_active, created_at, updated_at
FROM subscription_plans
WHERE id = $1
`

func (s *SubscriptionReadStore) FindPlanByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	var (
		planID               uuid.UUID
		name                 string
		durationDays         int
		price, discount      pgtype.Numeric
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, planByIDSQL, id).Scan(
		&planID, &name, &durationDays, &price, &discount, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription plan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription plan", err)
	}

	planPrice, err := pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid plan price value", err)
	}
	planDiscount, err := pgconv.DecimalFromNumeric(discount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid plan discount value", err)
	}
	return subscription.ReconstructPlan(
		planID, name, durationDays, planPrice, planDiscount, isActive,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
