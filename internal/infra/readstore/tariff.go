package readstore

import (
	"context"

	"smart-parking/internal/domain/tariff"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type TariffStore interface {
	tariff.RuleSource
	ListZones(ctx context.Context) ([]*queries.ZoneView, error)
	ListRules(ctx context.Context, filter queries.RuleFilter) ([]*queries.RuleView, error)
}

type TariffReadStore struct {
	db db.DBTX
}

func NewTariffReadStore(db db.DBTX) *TariffReadStore {
	return &TariffReadStore{db: db}
}

const candidateRulesSQL = `
SELECT r.id, r.name, r.zone_id, r.spot_id, r.price_per_hour, r.priority,
       r.is_active, r.valid_from, r.valid_to, r.day_type, r.custom_days,
       r.time_period, r.custom_start_time, r.custom_end_time,
       r.created_at, r.updated_at
FROM tariff_rules r
JOIN tariff_zones z ON z.id = r.zone_id
WHERE r.is_active AND z.is_active
  AND (r.spot_id = $1 OR r.spot_id IS NULL)
ORDER BY r.priority DESC, r.id
`

// FindCandidateRules loads the two candidate pools for one spot:
// rules bound to the spot itself and zone-wide rules of every active
// zone. Scope precedence between the pools is the resolver's job.
func (s *TariffReadStore) FindCandidateRules(ctx context.Context, spotID uuid.UUID) ([]*tariff.Rule, []*tariff.Rule, error) {
	rows, err := s.db.Query(ctx, candidateRulesSQL, spotID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to query candidate rules", err)
	}
	defer rows.Close()

	var spotRules, zoneRules []*tariff.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, nil, infra.WrapRepoErr("failed to scan tariff rule", err)
		}
		if rule.IsSpotScoped() {
			spotRules = append(spotRules, rule)
		} else {
			zoneRules = append(zoneRules, rule)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, infra.WrapRepoErr("failed to read candidate rules", err)
	}
	return spotRules, zoneRules, nil
}

func scanRule(row pgx.Row) (*tariff.Rule, error) {
	var (
		id, zoneID           uuid.UUID
		name                 string
		spotID               pgtype.UUID
		price                pgtype.Numeric
		priority             int
		isActive             bool
		validFrom            pgtype.Timestamptz
		validTo              pgtype.Timestamptz
		dayType, timePeriod  string
		customDays           []int
		custStart, custEnd   pgtype.Time
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &name, &zoneID, &spotID, &price, &priority,
		&isActive, &validFrom, &validTo, &dayType, &customDays,
		&timePeriod, &custStart, &custEnd, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	pricePerHour, err := pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, err
	}
	return tariff.ReconstructRule(tariff.RuleParams{
		ID:           id,
		Name:         name,
		ZoneID:       zoneID,
		SpotID:       pgconv.UUIDPtrFromPgtype(spotID),
		PricePerHour: pricePerHour,
		Priority:     priority,
		IsActive:     isActive,
		ValidFrom:    pgconv.TimeFromPgtype(validFrom),
		ValidTo:      pgconv.TimePtrFromPgtype(validTo),
		DayType:      tariff.DayType(dayType),
		CustomDays:   customDays,
		TimePeriod:   tariff.TimePeriod(timePeriod),
		CustomStart:  timeOfDayPtr(custStart),
		CustomEnd:    timeOfDayPtr(custEnd),
		CreatedAt:    pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:    pgconv.TimeFromPgtype(updatedAt),
	}), nil
}

func timeOfDayPtr(pt pgtype.Time) *tariff.TimeOfDay {
	if !pt.Valid {
		return nil
	}
	minutes := int(pt.Microseconds / 60_000_000)
	tod, err := tariff.NewTimeOfDay(minutes/60, minutes%60)
	if err != nil {
		return nil
	}
	return &tod
}

const listZonesSQL = `
SELECT id, name, is_active, created_at, updated_at
FROM tariff_zones
ORDER BY name
`

func (s *TariffReadStore) ListZones(ctx context.Context) ([]*queries.ZoneView, error) {
	rows, err := s.db.Query(ctx, listZonesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query tariff zones", err)
	}
	defer rows.Close()

	var result []*queries.ZoneView
	for rows.Next() {
		var (
			v                    queries.ZoneView
			createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tariff zone", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tariff zones", err)
	}
	return result, nil
}

const listRulesSQL = `
SELECT id, name, zone_id, spot_id, price_per_hour, priority, is_active,
       valid_from, valid_to, day_type, custom_days, time_period,
       custom_start_time, custom_end_time, created_at
FROM tariff_rules
WHERE ($1::uuid IS NULL OR zone_id = $1)
  AND ($2::uuid IS NULL OR spot_id = $2)
ORDER BY priority DESC, created_at
`

func (s *TariffReadStore) ListRules(ctx context.Context, filter queries.RuleFilter) ([]*queries.RuleView, error) {
	rows, err := s.db.Query(ctx, listRulesSQL,
		pgconv.UUIDPtrToPgtype(filter.ZoneID), pgconv.UUIDPtrToPgtype(filter.SpotID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query tariff rules", err)
	}
	defer rows.Close()

	var result []*queries.RuleView
	for rows.Next() {
		var (
			v                  queries.RuleView
			spotID             pgtype.UUID
			price              pgtype.Numeric
			validFrom          pgtype.Timestamptz
			validTo            pgtype.Timestamptz
			custStart, custEnd pgtype.Time
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(
			&v.ID, &v.Name, &v.ZoneID, &spotID, &price, &v.Priority, &v.IsActive,
			&validFrom, &validTo, &v.DayType, &v.CustomDays, &v.TimePeriod,
			&custStart, &custEnd, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tariff rule row", err)
		}
		v.SpotID = pgconv.UUIDPtrFromPgtype(spotID)
		v.PricePerHour, err = pgconv.DecimalFromNumeric(price)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid price_per_hour value", err)
		}
		v.ValidFrom = pgconv.TimeFromPgtype(validFrom)
		v.ValidTo = pgconv.TimePtrFromPgtype(validTo)
		v.CustomStartTime = timeOfDayString(custStart)
		v.CustomEndTime = timeOfDayString(custEnd)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tariff rules", err)
	}
	return result, nil
}

func timeOfDayString(pt pgtype.Time) *string {
	tod := timeOfDayPtr(pt)
	if tod == nil {
		return nil
	}
	s := tod.String()
	return &s
}
