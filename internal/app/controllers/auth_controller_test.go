package controllers

import (
	"bytes"
	"context"
	"encoding/json"
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

// fakeAuthService records calls and returns canned results.
type fakeAuthService struct {
	registerCalls int
	loginCalls    int
	resetCalls    int
	lastReset     *dto.ResetPasswordRequest
	err           error
}

func (f *fakeAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	f.registerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, _ string) error { return nil }

func (f *fakeAuthService) GetProfile(_ context.Context, _ int64) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: 1}, nil
}

func (f *fakeAuthService) ForgotPassword(_ context.Context, _ string) error { return nil }

func (f *fakeAuthService) ResetPassword(_ context.Context, req *dto.ResetPasswordRequest) error {
	f.resetCalls++
	f.lastReset = req
	return f.err
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	c := NewAuthController(svc)
	router := gin.New()
	router.POST("/auth/register", c.Register)
	router.POST("/auth/login", c.Login)
	router.POST("/auth/reset-password", c.ResetPassword)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/register", dto.RegisterRequest{
		Name:            "Priya Sharma",
		Email:           "priya@college.edu",
		Phone:           "9876543210",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
		Branch:          "Computer Science",
		RollNo:          "CS2001",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	if svc.registerCalls != 1 {
		t.Errorf("service called %d times, want 1", svc.registerCalls)
	}
}

func TestRegisterBindingFailureSkipsService(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	tests := []struct {
		name    string
		payload dto.RegisterRequest
	}{
		{
			name: "invalid email",
			payload: dto.RegisterRequest{
				Name: "P", Email: "not-an-email", Phone: "9876543210",
				Password: "Passw0rd!", ConfirmPassword: "Passw0rd!", Branch: "CS",
			},
		},
		{
			name: "password mismatch",
			payload: dto.RegisterRequest{
				Name: "Priya Sharma", Email: "priya@college.edu", Phone: "9876543210",
				Password: "Passw0rd!", ConfirmPassword: "Different1!", Branch: "CS",
			},
		},
		{
			name:    "empty payload",
			payload: dto.RegisterRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/auth/register", tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}

	if svc.registerCalls != 0 {
		t.Errorf("service called %d times for invalid payloads, want 0", svc.registerCalls)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{err: apperrors.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/login", dto.LoginRequest{
		Email:    "priya@college.edu",
		Password: "wrong-password1",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var body dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error == nil || body.Error.Code != dto.ErrorCodeInvalidCredentials {
		t.Errorf("error = %+v, want code %s", body.Error, dto.ErrorCodeInvalidCredentials)
	}
}

func TestResetPasswordForwardsOnce(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/reset-password", dto.ResetPasswordRequest{
		UserID:          7,
		Secret:          "one-time-secret",
		NewPassword:     "NewPassw0rd",
		ConfirmPassword: "NewPassw0rd",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if svc.resetCalls != 1 {
		t.Errorf("ResetPassword called %d times, want exactly 1", svc.resetCalls)
	}
	if svc.lastReset == nil || svc.lastReset.UserID != 7 || svc.lastReset.Secret != "one-time-secret" {
		t.Errorf("forwarded request = %+v, want userId 7 with the submitted secret", svc.lastReset)
	}
}

func TestResetPasswordMismatchReturnsFieldError(t *testing.T) {
	svc := &fakeAuthService{err: apperrors.NewValidationError("confirmPassword", "passwords do not match")}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/reset-password", dto.ResetPasswordRequest{
		UserID:          7,
		Secret:          "one-time-secret",
		NewPassword:     "NewPassw0rd",
		ConfirmPassword: "Other1Passw0rd",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error == nil || body.Error.Code != dto.ErrorCodeValidationFailed {
		t.Errorf("error = %+v, want validation failure", body.Error)
	}
}
