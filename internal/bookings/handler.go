package bookings

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hayumabar/backend/internal/fields"
	"github.com/hayumabar/backend/internal/middleware"
	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/pkg/response"
)

// CreateRequest is the body for POST /api/v1/venues/:id/bookings.
type CreateRequest struct {
	FieldID       string `json:"field_id" binding:"required,uuid"`
	PlayDateStart string `json:"play_date_start" binding:"required"`
	PlayDateEnd   string `json:"play_date_end" binding:"required"`
	TotalPlayers  int    `json:"total_players" binding:"required,min=2,max=50"`
}

// UpdateRequest is the body for PUT /api/v1/bookings/:id.
type UpdateRequest struct {
	PlayDateStart string `json:"play_date_start" binding:"required"`
	PlayDateEnd   string `json:"play_date_end" binding:"required"`
	TotalPlayers  int    `json:"total_players" binding:"required,min=2,max=50"`
}

// Handler handles booking HTTP endpoints.
type Handler struct {
	repo      *Repository
	fieldRepo *fields.Repository
	logger    *zap.Logger
}

// NewHandler creates a bookings handler.
func NewHandler(repo *Repository, fieldRepo *fields.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, fieldRepo: fieldRepo, logger: logger}
}

func parseWindow(startStr, endStr string) (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return start, end, errors.New("invalid play_date_start")
	}
	end, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		return start, end, errors.New("invalid play_date_end")
	}
	return start, end, nil
}

// Create handles POST /api/v1/venues/:id/bookings.
func (h *Handler) Create(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}

	start, end, err := parseWindow(req.PlayDateStart, req.PlayDateEnd)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := ValidateWindow(start, end, time.Now()); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fieldID := uuid.MustParse(req.FieldID)
	if _, err := h.fieldRepo.GetByVenueAndID(c.Request.Context(), venueID, fieldID); err != nil {
		if errors.Is(err, fields.ErrNotFound) {
			response.NotFound(c, "field not in this venue")
			return
		}
		response.Internal(c, "failed to get field")
		return
	}

	b := &models.Booking{
		PlayDateStart: start,
		PlayDateEnd:   end,
		TotalPlayers:  req.TotalPlayers,
		UserID:        middleware.UserID(c),
		FieldID:       fieldID,
	}
	if err := h.repo.Create(c.Request.Context(), b); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			response.Conflict(c, ErrSlotTaken.Error())
			return
		}
		h.logger.Error("create booking failed", zap.Error(err), zap.String("field_id", fieldID.String()))
		response.Internal(c, "failed to create booking")
		return
	}
	response.Created(c, b)
}

// List handles GET /api/v1/bookings.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list bookings")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /api/v1/bookings/:id. Returns booking with roster and players_count.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	b, err := h.repo.GetWithPlayers(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "booking not found")
			return
		}
		response.Internal(c, "failed to get booking")
		return
	}
	response.OK(c, b)
}

// Update handles PUT /api/v1/bookings/:id (creator only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "booking not found")
			return
		}
		response.Internal(c, "failed to get booking")
		return
	}
	if !middleware.RequireResourceOwner(c, b.UserID) {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}
	start, end, err := parseWindow(req.PlayDateStart, req.PlayDateEnd)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := ValidateWindow(start, end, time.Now()); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b.PlayDateStart, b.PlayDateEnd, b.TotalPlayers = start, end, req.TotalPlayers
	if err := h.repo.Update(c.Request.Context(), b); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			response.Conflict(c, ErrSlotTaken.Error())
			return
		}
		response.Internal(c, "failed to update booking")
		return
	}
	response.OK(c, b)
}

// Delete handles DELETE /api/v1/bookings/:id (creator only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "booking not found")
			return
		}
		response.Internal(c, "failed to get booking")
		return
	}
	if !middleware.RequireResourceOwner(c, b.UserID) {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete booking")
		return
	}
	response.OK(c, gin.H{"id": id})
}

// Join handles PUT /api/v1/bookings/:id/join.
func (h *Handler) Join(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	count, err := h.repo.Join(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "booking not found")
		case errors.Is(err, ErrBookingFull):
			response.BadRequest(c, ErrBookingFull.Error())
		case errors.Is(err, ErrAlreadyJoined):
			response.Conflict(c, ErrAlreadyJoined.Error())
		default:
			h.logger.Error("join booking failed", zap.Error(err), zap.String("booking_id", id.String()))
			response.Internal(c, "failed to join booking")
		}
		return
	}
	response.OK(c, gin.H{"booking_id": id, "players_count": count})
}

// Unjoin handles PUT /api/v1/bookings/:id/unjoin.
func (h *Handler) Unjoin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	if err := h.repo.Unjoin(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "booking not found")
			return
		}
		response.Internal(c, "failed to unjoin booking")
		return
	}
	response.OK(c, gin.H{"booking_id": id})
}

// Schedules handles GET /api/v1/schedules. Lists the caller's created bookings.
func (h *Handler) Schedules(c *gin.Context) {
	list, err := h.repo.ListByCreator(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Internal(c, "failed to list schedules")
		return
	}
	response.OK(c, list)
}
