package spot

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySpotName = errors.New("spot name cannot be empty")
	ErrNoZone        = errors.New("spot must belong to a zone")
)

// Spot is a single parking place tracked by a ground sensor. The
// pricing engine reads spots but never mutates them; lock state is
// owned by the hardware integration.
type Spot struct {
	id        uuid.UUID
	name      string
	zoneID    uuid.UUID
	latitude  float64
	longitude float64
	isLocked  bool
	createdAt time.Time
}

func NewSpot(id uuid.UUID, name string, zoneID uuid.UUID, latitude, longitude float64) (*Spot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySpotName
	}
	if zoneID == uuid.Nil {
		return nil, ErrNoZone
	}
	return &Spot{
		id:        id,
		name:      name,
		zoneID:    zoneID,
		latitude:  latitude,
		longitude: longitude,
	}, nil
}

func ReconstructSpot(id uuid.UUID, name string, zoneID uuid.UUID, latitude, longitude float64, isLocked bool, createdAt time.Time) *Spot {
	return &Spot{
		id:        id,
		name:      name,
		zoneID:    zoneID,
		latitude:  latitude,
		longitude: longitude,
		isLocked:  isLocked,
		createdAt: createdAt,
	}
}

func (s *Spot) ID() uuid.UUID        { return s.id }
func (s *Spot) Name() string         { return s.name }
func (s *Spot) ZoneID() uuid.UUID    { return s.zoneID }
func (s *Spot) Latitude() float64    { return s.latitude }
func (s *Spot) Longitude() float64   { return s.longitude }
func (s *Spot) IsLocked() bool       { return s.isLocked }
func (s *Spot) CreatedAt() time.Time { return s.createdAt }
