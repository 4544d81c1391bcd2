package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
	"github.com/oksasatya/nz-walks-api/internal/domain/repository"
)

const regionColumns = `id, code, name, region_image_url, created_at, updated_at`

type RegionRepository struct {
	pool *pgxpool.Pool
}

func NewRegionRepository(pool *pgxpool.Pool) *RegionRepository {
	return &RegionRepository{pool: pool}
}

func scanRegion(row pgx.Row) (*entity.Region, error) {
	r := &entity.Region{}
	if err := row.Scan(&r.ID, &r.Code, &r.Name, &r.RegionImageURL, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrRegionNotFound
		}
		return nil, err
	}
	return r, nil
}

func (r *RegionRepository) GetAll(ctx context.Context) ([]entity.Region, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+regionColumns+` FROM regions`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	regions := make([]entity.Region, 0)
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return regions, nil
}

func (r *RegionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+regionColumns+`
		FROM regions
		WHERE id = $1
	`, id)
	return wrapRow(scanRegion(row))
}

func (r *RegionRepository) Create(ctx context.Context, reg *entity.Region) (*entity.Region, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO regions (code, name, region_image_url)
		VALUES ($1, $2, $3)
		RETURNING `+regionColumns, reg.Code, reg.Name, reg.RegionImageURL)
	created, err := scanRegion(row)
	if err != nil {
		return nil, fmt.Errorf("insert region: %w", err)
	}
	return created, nil
}

func (r *RegionRepository) Update(ctx context.Context, id uuid.UUID, reg *entity.Region) (*entity.Region, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE regions
		SET code = $1, name = $2, region_image_url = $3, updated_at = now()
		WHERE id = $4
		RETURNING `+regionColumns, reg.Code, reg.Name, reg.RegionImageURL, id)
	return wrapRow(scanRegion(row))
}

func (r *RegionRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM regions
		WHERE id = $1
		RETURNING `+regionColumns, id)
	return wrapRow(scanRegion(row))
}

// wrapRow keeps ErrRegionNotFound bare so callers can match it with errors.Is
// without digging through store detail.
func wrapRow(reg *entity.Region, err error) (*entity.Region, error) {
	if err == nil || errors.Is(err, repository.ErrRegionNotFound) {
		return reg, err
	}
	return nil, fmt.Errorf("region row: %w", err)
}

var _ repository.RegionRepository = (*RegionRepository)(nil)
