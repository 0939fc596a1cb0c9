package tariff

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyZoneName = errors.New("zone name cannot be empty")

// Zone groups parking spots by geography. Zones can be toggled off
// independently of the rules they own.
type Zone struct {
	id        uuid.UUID
	name      string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewZone(id uuid.UUID, name string, isActive bool) (*Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyZoneName
	}
	return &Zone{
		id:       id,
		name:     name,
		isActive: isActive,
	}, nil
}

func ReconstructZone(id uuid.UUID, name string, isActive bool, createdAt, updatedAt time.Time) *Zone {
	return &Zone{
		id:        id,
		name:      name,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (z *Zone) ID() uuid.UUID        { return z.id }
func (z *Zone) Name() string         { return z.name }
func (z *Zone) IsActive() bool       { return z.isActive }
func (z *Zone) CreatedAt() time.Time { return z.createdAt }
func (z *Zone) UpdatedAt() time.Time { return z.updatedAt }
