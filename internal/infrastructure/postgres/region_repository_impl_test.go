package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
	"github.com/oksasatya/nz-walks-api/internal/domain/repository"
)

// newTestRepository connects to the database named by NZWALKS_TEST_DATABASE_URL,
// applies the schema and empties the regions table. The database is wiped, so
// never point it at anything but a throwaway instance.
func newTestRepository(t *testing.T) *RegionRepository {
	t.Helper()
	dsn := os.Getenv("NZWALKS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("NZWALKS_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "db", "migrations", "000001_create_regions_table.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE regions`)
	require.NoError(t, err)

	return NewRegionRepository(pool)
}

func strPtr(s string) *string { return &s }

func TestRegionRepository_EmptyStore(t *testing.T) {
	repo := newTestRepository(t)

	regions, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)
}

func TestRegionRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Region{Code: "AKL", Name: "Auckland"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Nil(t, created.RegionImageURL)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "AKL", got.Code)
	assert.Equal(t, "Auckland", got.Name)
	assert.Nil(t, got.RegionImageURL)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegionRepository_CreateIgnoresCallerID(t *testing.T) {
	repo := newTestRepository(t)
	supplied := uuid.New()

	created, err := repo.Create(context.Background(), &entity.Region{ID: supplied, Code: "WGN", Name: "Wellington"})
	require.NoError(t, err)
	assert.NotEqual(t, supplied, created.ID)
}

func TestRegionRepository_UpdateKeepsID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Region{Code: "NSN", Name: "Nelson", RegionImageURL: strPtr("https://img.test/nelson.jpg")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, &entity.Region{ID: uuid.New(), Code: "NSN", Name: "Nelson Tasman"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Nelson Tasman", updated.Name)
	assert.Nil(t, updated.RegionImageURL)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestRegionRepository_UnknownIDLeavesStoreUnchanged(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	existing, err := repo.Create(ctx, &entity.Region{Code: "STL", Name: "Southland"})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)
	_, err = repo.Update(ctx, missing, &entity.Region{Code: "X", Name: "X"})
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)
	_, err = repo.Delete(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, existing.ID, all[0].ID)
	assert.Equal(t, "Southland", all[0].Name)
}

func TestRegionRepository_DeleteTwice(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Region{Code: "BOP", Name: "Bay Of Plenty"})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Bay Of Plenty", deleted.Name)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)
}
