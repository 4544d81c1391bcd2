package router

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/nz-walks-api/internal/application"
	"github.com/oksasatya/nz-walks-api/internal/domain/repository"
	handlers "github.com/oksasatya/nz-walks-api/internal/interface/http"
	"github.com/oksasatya/nz-walks-api/internal/interface/http/dto"
	"github.com/oksasatya/nz-walks-api/internal/router/modules"
)

// Deps is everything the modules need, built once in main and passed down.
// Redis and Publisher may be nil; rate limiting and region events are then off.
type Deps struct {
	Logger    *logrus.Logger
	DB        handlers.Pinger
	Regions   repository.RegionRepository
	Publisher application.EventPublisher
	Redis     *redis.Client

	RateLimitMax    int
	RateLimitWindow time.Duration
	DebugMetrics    bool
}

// InitModules builds the module graph from deps and adds it to the registry.
func InitModules(r *Registry, deps Deps) {
	service := application.NewRegionService(deps.Regions, deps.Publisher, deps.Logger)
	regionHandler := handlers.NewRegionHandler(service, dto.NewRegionMapper(), deps.Logger)

	r.Add(modules.NewRegionModule(regionHandler, deps.Redis, deps.RateLimitMax, deps.RateLimitWindow))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(deps.DB, deps.Logger), deps.Redis))
	if deps.DebugMetrics {
		r.Add(modules.NewDebugModule(deps.Redis))
	}
}
