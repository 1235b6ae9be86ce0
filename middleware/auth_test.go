package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	utils "github.com/ethvolunteer/volunteer-backend-go/utils"
)

func newTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/admin-only", AuthMiddleware(cfg), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newTestRouter(&config.Config{JWTSecret: "secret"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newTestRouter(&config.Config{JWTSecret: "secret"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	r := newTestRouter(cfg)

	token, err := utils.NewAccessToken(cfg.JWTSecret, -time.Minute, "abc", "", "volunteer")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	r := newTestRouter(cfg)

	token, err := utils.NewAccessToken(cfg.JWTSecret, time.Hour, "abc", "v@x.org", "volunteer")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	r := newTestRouter(cfg)

	volunteerToken, err := utils.NewAccessToken(cfg.JWTSecret, time.Hour, "abc", "", "volunteer")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+volunteerToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for volunteer, got %d", w.Code)
	}

	adminToken, err := utils.NewAccessToken(cfg.JWTSecret, time.Hour, "abc", "", "admin")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}
