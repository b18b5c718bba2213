package fields

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hayumabar/backend/internal/middleware"
	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/internal/venues"
	"github.com/hayumabar/backend/pkg/response"
)

// FieldRequest is the body for POST and PUT under /api/v1/venues/:id/fields.
type FieldRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// Handler handles field HTTP endpoints nested under a venue.
type Handler struct {
	repo      *Repository
	venueRepo *venues.Repository
}

// NewHandler creates a fields handler.
func NewHandler(repo *Repository, venueRepo *venues.Repository) *Handler {
	return &Handler{repo: repo, venueRepo: venueRepo}
}

// venueFromRoute resolves the :id venue param, writing 400/404 on failure.
func (h *Handler) venueFromRoute(c *gin.Context) *models.Venue {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return nil
	}
	v, err := h.venueRepo.GetByID(c.Request.Context(), venueID)
	if err != nil {
		if errors.Is(err, venues.ErrNotFound) {
			response.NotFound(c, "venue not found")
			return nil
		}
		response.Internal(c, "failed to get venue")
		return nil
	}
	return v
}

// List handles GET /api/v1/venues/:id/fields.
func (h *Handler) List(c *gin.Context) {
	v := h.venueFromRoute(c)
	if v == nil {
		return
	}
	list, err := h.repo.ListByVenue(c.Request.Context(), v.ID)
	if err != nil {
		response.Internal(c, "failed to list fields")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /api/v1/venues/:id/fields/:fieldId. Returns the field
// with its venue and bookings.
func (h *Handler) GetByID(c *gin.Context) {
	v := h.venueFromRoute(c)
	if v == nil {
		return
	}
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.BadRequest(c, "invalid field id")
		return
	}
	f, err := h.repo.GetWithBookings(c.Request.Context(), v.ID, fieldID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "field not in this venue")
			return
		}
		response.Internal(c, "failed to get field")
		return
	}
	response.OK(c, gin.H{"field": f, "venue": v})
}

// Create handles POST /api/v1/venues/:id/fields (venue owner only).
func (h *Handler) Create(c *gin.Context) {
	v := h.venueFromRoute(c)
	if v == nil {
		return
	}
	if !middleware.RequireResourceOwner(c, v.UserID) {
		return
	}

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}
	fieldType, err := models.ParseFieldType(req.Type)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	f := &models.Field{Name: req.Name, Type: fieldType, VenueID: v.ID}
	if err := h.repo.Create(c.Request.Context(), f); err != nil {
		response.Internal(c, "failed to create field")
		return
	}
	response.Created(c, f)
}

// Update handles PUT /api/v1/venues/:id/fields/:fieldId (venue owner only).
func (h *Handler) Update(c *gin.Context) {
	v := h.venueFromRoute(c)
	if v == nil {
		return
	}
	if !middleware.RequireResourceOwner(c, v.UserID) {
		return
	}
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.BadRequest(c, "invalid field id")
		return
	}

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}
	fieldType, err := models.ParseFieldType(req.Type)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	f := &models.Field{ID: fieldID, Name: req.Name, Type: fieldType, VenueID: v.ID}
	if err := h.repo.Update(c.Request.Context(), f); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "field not in this venue")
			return
		}
		response.Internal(c, "failed to update field")
		return
	}
	response.OK(c, f)
}

// Delete handles DELETE /api/v1/venues/:id/fields/:fieldId (venue owner only).
func (h *Handler) Delete(c *gin.Context) {
	v := h.venueFromRoute(c)
	if v == nil {
		return
	}
	if !middleware.RequireResourceOwner(c, v.UserID) {
		return
	}
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.BadRequest(c, "invalid field id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), v.ID, fieldID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "field not in this venue")
			return
		}
		response.Internal(c, "failed to delete field")
		return
	}
	response.OK(c, gin.H{"id": fieldID})
}
