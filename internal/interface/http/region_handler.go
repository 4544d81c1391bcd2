package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/nz-walks-api/internal/domain/repository"
	"github.com/oksasatya/nz-walks-api/internal/interface/http/dto"
	"github.com/oksasatya/nz-walks-api/pkg/response"
	"github.com/oksasatya/nz-walks-api/pkg/validation"
)

// RegionHandler serves the region resource. Success bodies are the bare
// transfer objects; an absent region is a 404 with no body.
type RegionHandler struct {
	Repo   repository.RegionRepository
	Mapper dto.RegionMapper
	Logger *logrus.Logger
}

func NewRegionHandler(repo repository.RegionRepository, mapper dto.RegionMapper, logger *logrus.Logger) *RegionHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RegionHandler{Repo: repo, Mapper: mapper, Logger: logger}
}

// GetAll handles GET /regions
func (h *RegionHandler) GetAll(c *gin.Context) {
	regions, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Mapper.ToResponses(regions))
}

// GetByID handles GET /regions/:id
func (h *RegionHandler) GetByID(c *gin.Context) {
	id, ok := h.regionID(c)
	if !ok {
		return
	}
	region, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Mapper.ToResponse(region))
}

// Create handles POST /regions
func (h *RegionHandler) Create(c *gin.Context) {
	var req dto.AddRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	region, err := h.Repo.Create(c.Request.Context(), h.Mapper.ToEntityFromAdd(req))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", strings.TrimSuffix(c.FullPath(), "/")+"/"+region.ID.String())
	c.JSON(http.StatusCreated, h.Mapper.ToResponse(region))
}

// Update handles PUT /regions/:id
func (h *RegionHandler) Update(c *gin.Context) {
	id, ok := h.regionID(c)
	if !ok {
		return
	}
	var req dto.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	region, err := h.Repo.Update(c.Request.Context(), id, h.Mapper.ToEntityFromUpdate(req))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Mapper.ToResponse(region))
}

// Delete handles DELETE /regions/:id and returns the removed region.
func (h *RegionHandler) Delete(c *gin.Context) {
	id, ok := h.regionID(c)
	if !ok {
		return
	}
	region, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Mapper.ToResponse(region))
}

func (h *RegionHandler) regionID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.RegionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid region id", validation.ToDetails(err))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid region id", map[string]string{"id": "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *RegionHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrRegionNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	h.Logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	}).Error("region request failed")
	response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
}
