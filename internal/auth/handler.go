package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hayumabar/backend/internal/emaillog"
	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/pkg/queue"
	"github.com/hayumabar/backend/pkg/response"
	"github.com/hayumabar/backend/pkg/utils"
)

// RegisterRequest is the body for POST /api/v1/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=owner user"` // defaults to user
}

// LoginRequest is the body for POST /api/v1/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOtpRequest is the body for POST /api/v1/otp-verification.
type VerifyOtpRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OtpCode string `json:"otp_code" binding:"required,len=6,numeric"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo       *Repository
	emailLogs  *emaillog.Repository
	jwt        *JWTService
	jobs       *queue.Queue
	otpExpires time.Duration
	logger     *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, emailLogs *emaillog.Repository, jwt *JWTService, jobs *queue.Queue, otpExpireMinutes int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:       repo,
		emailLogs:  emailLogs,
		jwt:        jwt,
		jobs:       jobs,
		otpExpires: time.Duration(otpExpireMinutes) * time.Minute,
		logger:     logger,
	}
}

// Register handles POST /api/v1/register. Creates an unverified user and queues
// the OTP email; delivery happens in the background worker.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}

	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		role = parsed
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Name, req.Email, hash, role)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err), zap.String("email", req.Email))
		response.Internal(c, "failed to create user")
		return
	}

	code, err := GenerateOtpCode()
	if err != nil {
		response.Internal(c, "failed to generate otp")
		return
	}
	if _, err := h.repo.CreateOtp(c.Request.Context(), user.ID, code, time.Now().Add(h.otpExpires)); err != nil {
		h.logger.Error("store otp failed", zap.Error(err), zap.String("user_id", user.ID.String()))
		response.Internal(c, "failed to store otp")
		return
	}

	logEntry, err := h.emailLogs.Create(c.Request.Context(), user.ID, emaillog.TypeOtpVerification, user.Email, "Your verification code")
	if err != nil {
		h.logger.Warn("email log create failed", zap.Error(err))
	}
	payload := queue.OtpEmailPayload{
		UserID:         user.ID,
		RecipientEmail: user.Email,
		RecipientName:  user.Name,
		OtpCode:        code,
	}
	if logEntry != nil {
		payload.EmailLogID = logEntry.ID
	}
	if err := h.jobs.EnqueueOtpEmail(c.Request.Context(), payload); err != nil {
		h.logger.Error("enqueue otp email failed", zap.Error(err), zap.String("user_id", user.ID.String()))
		response.Internal(c, "failed to queue verification email")
		return
	}

	response.Created(c, user.ToPublic())
}

// VerifyOtp handles POST /api/v1/otp-verification. Consumes the code and marks
// the account verified.
func (h *Handler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.Internal(c, "failed to look up user")
		return
	}

	if err := h.repo.VerifyOtp(c.Request.Context(), user.ID, req.OtpCode); err != nil {
		if errors.Is(err, ErrOtpMismatch) {
			response.BadRequest(c, "otp code invalid or expired")
			return
		}
		h.logger.Error("verify otp failed", zap.Error(err), zap.String("user_id", user.ID.String()))
		response.Internal(c, "failed to verify otp")
		return
	}

	response.OK(c, gin.H{"email": user.Email, "is_verified": true})
}

// Login handles POST /api/v1/login. Only verified accounts may log in.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	// Verified gate sits before the credential check.
	if !user.IsVerified {
		response.Unauthorized(c, "account not verified")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}
