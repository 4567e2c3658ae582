package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/studysphere/backend/internal/app/auth"
	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/pkg/auth"
)

func newTestAuthSetup(t *testing.T, role models.RoleType) (*AuthMiddleware, string) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "studysphere.test",
	})

	access, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       5,
		Email:    "u@college.edu",
		RoleType: role,
		Branch:   "Computer Science",
	})
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	return NewAuthMiddleware(jwtService), access
}

func TestJWTAuthAcceptsBearerHeader(t *testing.T) {
	m, token := newTestAuthSetup(t, models.RoleStudent)

	router := gin.New()
	router.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		userID := c.GetInt64("userID")
		branch := c.GetString("branch")
		if userID != 5 || branch != "Computer Science" {
			t.Errorf("context userID=%d branch=%q, want 5 and Computer Science", userID, branch)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestJWTAuthAcceptsQueryTokenFallback(t *testing.T) {
	m, token := newTestAuthSetup(t, models.RoleStudent)

	router := gin.New()
	router.GET("/ws", m.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for query token", w.Code)
	}
}

func TestJWTAuthRejectsRequests(t *testing.T) {
	m, _ := newTestAuthSetup(t, models.RoleStudent)

	router := gin.New()
	router.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "Bearer"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       models.RoleType
		capability appauth.Capability
		wantStatus int
	}{
		{name: "student views resources", role: models.RoleStudent, capability: appauth.CapViewResources, wantStatus: http.StatusOK},
		{name: "student cannot upload", role: models.RoleStudent, capability: appauth.CapUploadResources, wantStatus: http.StatusForbidden},
		{name: "teacher uploads", role: models.RoleTeacher, capability: appauth.CapUploadResources, wantStatus: http.StatusOK},
		{name: "teacher cannot manage users", role: models.RoleTeacher, capability: appauth.CapManageUsers, wantStatus: http.StatusForbidden},
		{name: "admin manages users", role: models.RoleAdmin, capability: appauth.CapManageUsers, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, token := newTestAuthSetup(t, tt.role)

			router := gin.New()
			router.GET("/guarded", m.JWTAuth(), m.RequireCapability(tt.capability), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
