package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayumabar/backend/internal/auth"
	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/pkg/response"
)

func newTestRouter(jwtService *auth.JWTService, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("", JWT(jwtService))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/me", func(c *gin.Context) {
		response.OK(c, gin.H{"user_id": UserID(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWT_MissingHeader(t *testing.T) {
	r := newTestRouter(auth.NewJWTService("secret", 1))
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWT_BadScheme(t *testing.T) {
	r := newTestRouter(auth.NewJWTService("secret", 1))
	w := doRequest(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWT_InvalidToken(t *testing.T) {
	r := newTestRouter(auth.NewJWTService("secret", 1))
	w := doRequest(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWT_ValidToken(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	userID := uuid.New()
	token, err := svc.Generate(userID, "a@x.com", "user")
	require.NoError(t, err)

	r := newTestRouter(svc)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRequireRole_Mismatch(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate(uuid.New(), "a@x.com", "user")
	require.NoError(t, err)

	r := newTestRouter(svc, models.RoleOwner)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Match(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate(uuid.New(), "o@x.com", "owner")
	require.NoError(t, err)

	r := newTestRouter(svc, models.RoleOwner)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_UnknownRoleInToken(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate(uuid.New(), "a@x.com", "admin")
	require.NoError(t, err)

	r := newTestRouter(svc, models.RoleOwner, models.RoleUser)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireResourceOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := auth.NewJWTService("secret", 1)
	actorID := uuid.New()
	ownerID := uuid.New()

	r := gin.New()
	r.Use(JWT(svc))
	r.GET("/mine", func(c *gin.Context) {
		if !RequireResourceOwner(c, actorID) {
			return
		}
		response.OK(c, nil)
	})
	r.GET("/theirs", func(c *gin.Context) {
		if !RequireResourceOwner(c, ownerID) {
			return
		}
		response.OK(c, nil)
	})

	token, err := svc.Generate(actorID, "a@x.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/theirs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("*"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowedOriginList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3000"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
