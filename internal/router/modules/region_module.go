package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/nz-walks-api/internal/interface/http"
	"github.com/oksasatya/nz-walks-api/internal/interface/middleware"
)

// RegionModule wires the region CRUD handlers:
// GET/POST /regions, GET/PUT/DELETE /regions/:id
type RegionModule struct {
	Handler *handlers.RegionHandler
	Redis   *redis.Client
	Max     int
	Window  time.Duration
}

func NewRegionModule(h *handlers.RegionHandler, rdb *redis.Client, max int, window time.Duration) *RegionModule {
	return &RegionModule{Handler: h, Redis: rdb, Max: max, Window: window}
}

func (m *RegionModule) Register(rg *gin.RouterGroup) {
	regions := rg.Group("/regions")
	regions.Use(middleware.RateLimit(m.Redis, m.Max, m.Window, middleware.KeyByIP(), nil))
	{
		regions.GET("", m.Handler.GetAll)
		regions.POST("", m.Handler.Create)
		regions.GET("/:id", m.Handler.GetByID)
		regions.PUT("/:id", m.Handler.Update)
		regions.DELETE("/:id", m.Handler.Delete)
	}
}
