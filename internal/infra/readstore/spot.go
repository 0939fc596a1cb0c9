package readstore

import (
	"context"

	"smart-parking/internal/domain/spot"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SpotStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error)
	ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*queries.SpotView, error)
}

type SpotReadStore struct {
	db db.DBTX
}

func NewSpotReadStore(db db.DBTX) *SpotReadStore {
	return &SpotReadStore{db: db}
}

const spotByIDSQL = `
SELECT id, name, zone_id, latitude, longitude, is_locked, created_at
FROM parking_spots
WHERE id = $1
`

func (s *SpotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error) {
	var (
		spotID, zoneID uuid.UUID
		name           string
		lat, lon       float64
		isLocked       bool
		createdAt      pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, spotByIDSQL, id).Scan(
		&spotID, &name, &zoneID, &lat, &lon, &isLocked, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("parking spot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find parking spot", err)
	}
	return spot.ReconstructSpot(spotID, name, zoneID, lat, lon, isLocked, pgconv.TimeFromPgtype(createdAt)), nil
}

const spotsByZoneSQL = `
SELECT id, name, zone_id, latitude, longitude, is_locked, created_at
FROM parking_spots
WHERE zone_id = $1
ORDER BY name
`

func (s *SpotReadStore) ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*queries.SpotView, error) {
	rows, err := s.db.Query(ctx, spotsByZoneSQL, zoneID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query parking spots", err)
	}
	defer rows.Close()

	var result []*queries.SpotView
	for rows.Next() {
		var (
			v         queries.SpotView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.ZoneID, &v.Latitude, &v.Longitude, &v.IsLocked, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan parking spot", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read parking spots", err)
	}
	return result, nil
}
