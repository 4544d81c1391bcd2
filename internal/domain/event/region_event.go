package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
)

type RegionEventType string

const (
	RegionCreated RegionEventType = "region.created"
	RegionUpdated RegionEventType = "region.updated"
	RegionDeleted RegionEventType = "region.deleted"
)

// RegionSnapshot is the region as carried on the wire.
type RegionSnapshot struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	RegionImageURL *string   `json:"regionImageUrl"`
}

// RegionEvent is published after a region change has been committed.
type RegionEvent struct {
	Type       RegionEventType `json:"type"`
	Region     RegionSnapshot  `json:"region"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewRegionEvent(t RegionEventType, r *entity.Region, at time.Time) RegionEvent {
	return RegionEvent{
		Type: t,
		Region: RegionSnapshot{
			ID:             r.ID,
			Code:           r.Code,
			Name:           r.Name,
			RegionImageURL: r.RegionImageURL,
		},
		OccurredAt: at.UTC(),
	}
}
