// Package dto holds the request and response shapes of the region API and the
// explicit conversions between them and entity.Region.
package dto

import (
	"github.com/google/uuid"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
)

// AddRegionRequest carries no id; the store assigns one.
type AddRegionRequest struct {
	Code           string  `json:"code" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	RegionImageURL *string `json:"regionImageUrl"`
}

type UpdateRegionRequest struct {
	Code           string  `json:"code" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	RegionImageURL *string `json:"regionImageUrl"`
}

// RegionResponse renders regionImageUrl as null when unset.
type RegionResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	RegionImageURL *string   `json:"regionImageUrl"`
}

// RegionURI binds the :id path parameter. uuid.Parse decides validity, so
// ids in any hex case are accepted.
type RegionURI struct {
	ID string `uri:"id" binding:"required"`
}

// RegionMapper converts between entity.Region and the transfer objects.
type RegionMapper struct{}

func NewRegionMapper() RegionMapper { return RegionMapper{} }

func (RegionMapper) ToEntityFromAdd(req AddRegionRequest) *entity.Region {
	return &entity.Region{
		Code:           req.Code,
		Name:           req.Name,
		RegionImageURL: cloneString(req.RegionImageURL),
	}
}

func (RegionMapper) ToEntityFromUpdate(req UpdateRegionRequest) *entity.Region {
	return &entity.Region{
		Code:           req.Code,
		Name:           req.Name,
		RegionImageURL: cloneString(req.RegionImageURL),
	}
}

func (RegionMapper) ToResponse(r *entity.Region) RegionResponse {
	return RegionResponse{
		ID:             r.ID,
		Code:           r.Code,
		Name:           r.Name,
		RegionImageURL: cloneString(r.RegionImageURL),
	}
}

func (m RegionMapper) ToResponses(regions []entity.Region) []RegionResponse {
	out := make([]RegionResponse, 0, len(regions))
	for i := range regions {
		out = append(out, m.ToResponse(&regions[i]))
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
