package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: apperrors.NewValidationError("email", "invalid email format"), wantStatus: http.StatusBadRequest},
		{name: "bad request", err: apperrors.NewBadRequestError("bad"), wantStatus: http.StatusBadRequest},
		{name: "prompt too large", err: apperrors.ErrPromptTooLarge, wantStatus: http.StatusBadRequest},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "token expired", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized},
		{name: "token revoked", err: apperrors.ErrTokenRevoked, wantStatus: http.StatusUnauthorized},
		{name: "token not found", err: apperrors.ErrTokenNotFound, wantStatus: http.StatusUnauthorized},
		{name: "account disabled", err: apperrors.ErrAccountDisabled, wantStatus: http.StatusForbidden},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden},
		{name: "resource not found", err: apperrors.ErrResourceNotFound, wantStatus: http.StatusNotFound},
		{name: "user not found", err: apperrors.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "announcement not found", err: apperrors.ErrAnnouncementNotFound, wantStatus: http.StatusNotFound},
		{name: "email exists", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict},
		{name: "roll number exists", err: apperrors.ErrRollNoExists, wantStatus: http.StatusConflict},
		{name: "reset token invalid", err: apperrors.ErrInvalidPasswordResetToken, wantStatus: http.StatusBadRequest},
		{name: "reset token used", err: apperrors.ErrPasswordResetTokenUsed, wantStatus: http.StatusBadRequest},
		{name: "assistant unavailable", err: apperrors.ErrAssistantUnavailable, wantStatus: http.StatusBadGateway},
		{name: "unknown error", err: errors.New("pgx: connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body dto.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if body.Error == nil {
				t.Fatal("response has no error detail")
			}
		})
	}
}

func TestHandleAPIErrorNeverLeaksInternals(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error.Message != "Internal server error" {
		t.Errorf("message = %q, must not expose the underlying error", body.Error.Message)
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 2) // 1/sec, burst of 2

	router := gin.New()
	router.GET("/ask", func(c *gin.Context) {
		c.Set("userID", int64(1))
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ask", nil)
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s within burst", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}
}

func TestRateLimiterRequiresAuthentication(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	router := gin.New()
	router.GET("/ask", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ask", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when userID is missing", w.Code)
	}
}

func TestRateLimiterIsolatesUsers(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	router := gin.New()
	router.GET("/ask/:user", func(c *gin.Context) {
		if c.Param("user") == "a" {
			c.Set("userID", int64(1))
		} else {
			c.Set("userID", int64(2))
		}
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ask/"+user, nil)
		router.ServeHTTP(w, req)
		return w.Code
	}

	if got := do("a"); got != http.StatusOK {
		t.Fatalf("user a first request = %d, want 200", got)
	}
	if got := do("a"); got != http.StatusTooManyRequests {
		t.Fatalf("user a second request = %d, want 429", got)
	}
	// A different user has an independent bucket.
	if got := do("b"); got != http.StatusOK {
		t.Errorf("user b first request = %d, want 200", got)
	}
}
