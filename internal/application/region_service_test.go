package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/nz-walks-api/internal/domain/entity"
	"github.com/oksasatya/nz-walks-api/internal/domain/event"
	"github.com/oksasatya/nz-walks-api/internal/domain/repository"
	"github.com/oksasatya/nz-walks-api/internal/domain/repository/repositorytest"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.RegionEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, body.(event.RegionEvent))
	return nil
}

func newService(t *testing.T, pub EventPublisher) (*RegionService, *repositorytest.RegionRepository, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	store := repositorytest.NewRegionRepository()
	svc := NewRegionService(store, pub, logger)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc, store, hook
}

func TestRegionService_CreatePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _, _ := newService(t, pub)
	before := regionsCreated.Value()

	created, err := svc.Create(context.Background(), &entity.Region{Code: "AKL", Name: "Auckland"})
	require.NoError(t, err)

	assert.Equal(t, before+1, regionsCreated.Value())
	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, event.RegionCreated, ev.Type)
	assert.Equal(t, created.ID, ev.Region.ID)
	assert.Equal(t, "Auckland", ev.Region.Name)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), ev.OccurredAt)
}

func TestRegionService_UpdateAndDeletePublish(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _, _ := newService(t, pub)
	ctx := context.Background()

	created, err := svc.Create(ctx, &entity.Region{Code: "WGN", Name: "Wellington"})
	require.NoError(t, err)
	updated, err := svc.Update(ctx, created.ID, &entity.Region{Code: "WGN", Name: "Greater Wellington"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	require.Len(t, pub.events, 3)
	assert.Equal(t, event.RegionUpdated, pub.events[1].Type)
	assert.Equal(t, "Greater Wellington", pub.events[1].Region.Name)
	assert.Equal(t, event.RegionDeleted, pub.events[2].Type)
}

func TestRegionService_NotFoundPublishesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _, hook := newService(t, pub)
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.New(), &entity.Region{Code: "X", Name: "X"})
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)
	_, err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrRegionNotFound)

	assert.Empty(t, pub.events)
	for _, e := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, e.Level)
	}
}

func TestRegionService_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, store, hook := newService(t, pub)

	created, err := svc.Create(context.Background(), &entity.Region{Code: "NTL", Name: "Northland"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 1, store.Len())

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "publish region event failed", last.Message)
}

func TestRegionService_NilPublisher(t *testing.T) {
	svc, _, _ := newService(t, nil)

	_, err := svc.Create(context.Background(), &entity.Region{Code: "STL", Name: "Southland"})
	assert.NoError(t, err)
}

func TestRegionService_StoreFailureIsLoggedAndReturned(t *testing.T) {
	svc, store, hook := newService(t, nil)
	store.Err = errors.New("connection refused")

	_, err := svc.GetAll(context.Background())
	assert.EqualError(t, err, "connection refused")
	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.EqualError(t, err, "connection refused")

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
}
