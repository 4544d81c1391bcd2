package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
)

func TestRegionMapper_ToEntityFromAdd(t *testing.T) {
	img := "https://img.test/akl.jpg"
	m := NewRegionMapper()

	r := m.ToEntityFromAdd(AddRegionRequest{Code: "AKL", Name: "Auckland", RegionImageURL: &img})

	assert.Equal(t, uuid.Nil, r.ID)
	assert.Equal(t, "AKL", r.Code)
	assert.Equal(t, "Auckland", r.Name)
	require.NotNil(t, r.RegionImageURL)
	assert.Equal(t, img, *r.RegionImageURL)
	assert.NotSame(t, &img, r.RegionImageURL)
}

func TestRegionMapper_ToEntityFromUpdateWithoutImage(t *testing.T) {
	r := NewRegionMapper().ToEntityFromUpdate(UpdateRegionRequest{Code: "WGN", Name: "Wellington"})

	assert.Equal(t, uuid.Nil, r.ID)
	assert.Nil(t, r.RegionImageURL)
}

func TestRegionMapper_ToResponseRendersNullImage(t *testing.T) {
	id := uuid.MustParse("906cb139-415a-4bbb-a174-1a1faf9fb1f6")
	resp := NewRegionMapper().ToResponse(&entity.Region{ID: id, Code: "AKL", Name: "Auckland"})

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"906cb139-415a-4bbb-a174-1a1faf9fb1f6","code":"AKL","name":"Auckland","regionImageUrl":null}`, string(b))
}

func TestRegionMapper_ToResponsesNeverNil(t *testing.T) {
	m := NewRegionMapper()

	empty := m.ToResponses(nil)
	require.NotNil(t, empty)
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	regions := []entity.Region{
		{ID: uuid.New(), Code: "NTL", Name: "Northland"},
		{ID: uuid.New(), Code: "STL", Name: "Southland"},
	}
	out := m.ToResponses(regions)
	require.Len(t, out, 2)
	assert.Equal(t, regions[0].ID, out[0].ID)
	assert.Equal(t, "Southland", out[1].Name)
}
