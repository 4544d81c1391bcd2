// Package repositorytest provides an in-memory RegionRepository for tests.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
	"github.com/oksasatya/nz-walks-api/internal/domain/repository"
)

// RegionRepository keeps regions in insertion order. Setting Err makes every
// call fail with it, which stands in for a store outage.
type RegionRepository struct {
	mu      sync.Mutex
	order   []uuid.UUID
	regions map[uuid.UUID]entity.Region
	Err     error
}

func NewRegionRepository(seed ...entity.Region) *RegionRepository {
	r := &RegionRepository{regions: make(map[uuid.UUID]entity.Region)}
	for _, reg := range seed {
		r.order = append(r.order, reg.ID)
		r.regions[reg.ID] = reg
	}
	return r
}

func (r *RegionRepository) GetAll(_ context.Context) ([]entity.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Region, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.regions[id])
	}
	return out, nil
}

func (r *RegionRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	reg, ok := r.regions[id]
	if !ok {
		return nil, repository.ErrRegionNotFound
	}
	return &reg, nil
}

func (r *RegionRepository) Create(_ context.Context, in *entity.Region) (*entity.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	now := time.Now().UTC()
	reg := *in
	reg.ID = uuid.New()
	reg.CreatedAt, reg.UpdatedAt = now, now
	r.order = append(r.order, reg.ID)
	r.regions[reg.ID] = reg
	return &reg, nil
}

func (r *RegionRepository) Update(_ context.Context, id uuid.UUID, in *entity.Region) (*entity.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	reg, ok := r.regions[id]
	if !ok {
		return nil, repository.ErrRegionNotFound
	}
	reg.Code = in.Code
	reg.Name = in.Name
	reg.RegionImageURL = in.RegionImageURL
	reg.UpdatedAt = time.Now().UTC()
	r.regions[id] = reg
	return &reg, nil
}

func (r *RegionRepository) Delete(_ context.Context, id uuid.UUID) (*entity.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	reg, ok := r.regions[id]
	if !ok {
		return nil, repository.ErrRegionNotFound
	}
	delete(r.regions, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &reg, nil
}

// Len reports how many regions are stored.
func (r *RegionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regions)
}

var _ repository.RegionRepository = (*RegionRepository)(nil)
