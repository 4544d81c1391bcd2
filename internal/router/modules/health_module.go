package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/nz-walks-api/internal/interface/http"
	"github.com/oksasatya/nz-walks-api/internal/interface/middleware"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
	Redis   *redis.Client
}

func NewHealthModule(h *handlers.HealthHandler, rdb *redis.Client) *HealthModule {
	return &HealthModule{Handler: h, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	// probes from inside the network are never limited
	rl := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/health", rl, m.Handler.Check)
}
