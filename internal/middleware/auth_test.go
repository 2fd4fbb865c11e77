package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trading_edu_backend/internal/config"
	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{
		BaseModel: model.BaseModel{ID: 7},
		Email:     "t@example.com",
		Role:      role,
	}
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() failed: %v", err)
	}
	return token
}

func newProtectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/", AuthMiddleware(cfg))
	auth.GET("/me", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	author := auth.Group("/", RoleMiddleware(model.Teacher))
	author.POST("/write", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := newProtectedRouter(cfg)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		viaQuery bool
		want     int
	}{
		{"no token", http.MethodGet, "/me", "", false, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/me", "not-a-jwt", false, http.StatusUnauthorized},
		{"valid bearer token", http.MethodGet, "/me", tokenFor(t, model.Student), false, http.StatusOK},
		{"valid query token", http.MethodGet, "/me", tokenFor(t, model.Student), true, http.StatusOK},
		{"student blocked from author route", http.MethodPost, "/write", tokenFor(t, model.Student), false, http.StatusForbidden},
		{"teacher allowed on author route", http.MethodPost, "/write", tokenFor(t, model.Teacher), false, http.StatusOK},
		{"admin passes role gate", http.MethodPost, "/write", tokenFor(t, model.Admin), false, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := tc.path
			if tc.viaQuery {
				path += "?token=" + tc.token
			}
			req := httptest.NewRequest(tc.method, path, nil)
			if tc.token != "" && !tc.viaQuery {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("code = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testConfig()
	r := newProtectedRouter(cfg)

	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Student}
	token, err := util.GenerateJWT(user, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: code = %d, want 401", w.Code)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	cfg := testConfig()
	r := newProtectedRouter(cfg)

	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Student}
	token, err := util.GenerateJWT(user, "another-secret-another-secret-xx", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("foreign token: code = %d, want 401", w.Code)
	}
}
