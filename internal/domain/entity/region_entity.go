package entity

import (
	"time"

	"github.com/google/uuid"
)

// Region is a walking-trail region of New Zealand.
// ID is assigned by the store on insert and never changes afterwards.
// RegionImageURL is nil when no image is set.
type Region struct {
	ID             uuid.UUID
	Code           string
	Name           string
	RegionImageURL *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
