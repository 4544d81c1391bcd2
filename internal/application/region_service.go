package application

import (
	"context"
	"errors"
	"expvar"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
	"github.com/oksasatya/nz-walks-api/internal/domain/event"
	repo "github.com/oksasatya/nz-walks-api/internal/domain/repository"
)

var (
	regionsCreated = expvar.NewInt("regions_created")
	regionsUpdated = expvar.NewInt("regions_updated")
	regionsDeleted = expvar.NewInt("regions_deleted")
)

const publishTimeout = 3 * time.Second

// EventPublisher is satisfied by helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RegionService wraps a RegionRepository with logging, counters and change
// events. It is itself a RegionRepository so handlers stay unaware of it.
type RegionService struct {
	Repo      repo.RegionRepository
	Publisher EventPublisher
	Logger    *logrus.Logger
	now       func() time.Time
}

// NewRegionService builds the service; publisher may be nil to disable events.
func NewRegionService(r repo.RegionRepository, pub EventPublisher, logger *logrus.Logger) *RegionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RegionService{Repo: r, Publisher: pub, Logger: logger, now: time.Now}
}

func (s *RegionService) GetAll(ctx context.Context) ([]entity.Region, error) {
	regions, err := s.Repo.GetAll(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("list regions failed")
		return nil, err
	}
	return regions, nil
}

func (s *RegionService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		s.logFailure(err, "get region failed", id)
		return nil, err
	}
	return r, nil
}

func (s *RegionService) Create(ctx context.Context, r *entity.Region) (*entity.Region, error) {
	created, err := s.Repo.Create(ctx, r)
	if err != nil {
		s.Logger.WithError(err).WithField("code", r.Code).Error("create region failed")
		return nil, err
	}
	regionsCreated.Add(1)
	s.Logger.WithFields(logrus.Fields{"region_id": created.ID, "code": created.Code}).Info("region created")
	s.publish(ctx, event.RegionCreated, created)
	return created, nil
}

func (s *RegionService) Update(ctx context.Context, id uuid.UUID, r *entity.Region) (*entity.Region, error) {
	updated, err := s.Repo.Update(ctx, id, r)
	if err != nil {
		s.logFailure(err, "update region failed", id)
		return nil, err
	}
	regionsUpdated.Add(1)
	s.Logger.WithFields(logrus.Fields{"region_id": updated.ID, "code": updated.Code}).Info("region updated")
	s.publish(ctx, event.RegionUpdated, updated)
	return updated, nil
}

func (s *RegionService) Delete(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		s.logFailure(err, "delete region failed", id)
		return nil, err
	}
	regionsDeleted.Add(1)
	s.Logger.WithFields(logrus.Fields{"region_id": deleted.ID, "code": deleted.Code}).Info("region deleted")
	s.publish(ctx, event.RegionDeleted, deleted)
	return deleted, nil
}

// logFailure keeps not-found at debug; it is an ordinary outcome, not a fault.
func (s *RegionService) logFailure(err error, msg string, id uuid.UUID) {
	entry := s.Logger.WithField("region_id", id)
	if errors.Is(err, repo.ErrRegionNotFound) {
		entry.Debug("region not found")
		return
	}
	entry.WithError(err).Error(msg)
}

// publish runs after the row change is committed, so a broker failure is only
// logged and the request still succeeds.
func (s *RegionService) publish(ctx context.Context, t event.RegionEventType, r *entity.Region) {
	if s.Publisher == nil {
		return
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.Publisher.PublishJSON(c, event.NewRegionEvent(t, r, s.now())); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"region_id": r.ID, "event": t}).Warn("publish region event failed")
	}
}

var _ repo.RegionRepository = (*RegionService)(nil)
