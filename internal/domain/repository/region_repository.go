package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
)

// ErrRegionNotFound is returned when the requested id does not resolve to a stored region.
var ErrRegionNotFound = errors.New("region not found")

// RegionRepository defines the interface for region-related database operations.
// Every call goes straight to the store; implementations keep no state between calls.
type RegionRepository interface {
	GetAll(ctx context.Context) ([]entity.Region, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Region, error)
	// Create persists r and returns the stored row; the store assigns the id.
	Create(ctx context.Context, r *entity.Region) (*entity.Region, error)
	// Update overwrites code, name and image url of the region with the given id.
	Update(ctx context.Context, id uuid.UUID, r *entity.Region) (*entity.Region, error)
	// Delete removes the region and returns the row as it was before removal.
	Delete(ctx context.Context, id uuid.UUID) (*entity.Region, error)
}
