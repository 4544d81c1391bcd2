package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/nz-walks-api/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB     Pinger
	Logger *logrus.Logger
}

func NewHealthHandler(db Pinger, logger *logrus.Logger) *HealthHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HealthHandler{DB: db, Logger: logger}
}

type healthStatus struct {
	Database string `json:"database"`
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		// ping errors carry host and user names; they stay in the log
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("health check: database ping failed")
		resp := response.Error[healthStatus](c, http.StatusServiceUnavailable, "database unreachable", nil)
		resp.Data = healthStatus{Database: "down"}
		response.JSON(c, resp)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, healthStatus{Database: "up"}, "healthy", nil))
}
