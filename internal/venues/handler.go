package venues

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hayumabar/backend/internal/middleware"
	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/pkg/response"
)

// VenueRequest is the body for POST and PUT /api/v1/venues.
type VenueRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// Handler handles venue HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a venues handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/v1/venues.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list venues")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/v1/venues (owner only).
func (h *Handler) Create(c *gin.Context) {
	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}

	v := &models.Venue{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		UserID:  middleware.UserID(c),
	}
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		response.Internal(c, "failed to create venue")
		return
	}
	response.Created(c, v)
}

// GetByID handles GET /api/v1/venues/:id. Returns the venue with fields and bookings.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	v, err := h.repo.GetWithFields(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "venue not found")
			return
		}
		response.Internal(c, "failed to get venue")
		return
	}
	response.OK(c, v)
}

// Update handles PUT /api/v1/venues/:id (owning user only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "venue not found")
			return
		}
		response.Internal(c, "failed to get venue")
		return
	}
	if !middleware.RequireResourceOwner(c, v.UserID) {
		return
	}

	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}
	v.Name, v.Address, v.Phone = req.Name, req.Address, req.Phone
	if err := h.repo.Update(c.Request.Context(), v); err != nil {
		response.Internal(c, "failed to update venue")
		return
	}
	response.OK(c, v)
}

// Delete handles DELETE /api/v1/venues/:id (owning user only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "venue not found")
			return
		}
		response.Internal(c, "failed to get venue")
		return
	}
	if !middleware.RequireResourceOwner(c, v.UserID) {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete venue")
		return
	}
	response.OK(c, gin.H{"id": id})
}
