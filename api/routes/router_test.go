package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/internal/auth"
	"github.com/Aman2975/hugli-backend/internal/users"
	"github.com/Aman2975/hugli-backend/pkg/config"
	"github.com/Aman2975/hugli-backend/pkg/logger"
)

type stubAuthService struct {
	lastLogin *auth.LoginRequest
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.lastLogin = &req
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (s *stubAuthService) AdminLogin(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (s *stubAuthService) Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req auth.UpdateProfileRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req auth.ChangePasswordRequest) error {
	return nil
}

func (s *stubAuthService) SendOTP(ctx context.Context, req auth.SendOTPRequest) error {
	return nil
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	return nil
}

func (s *stubAuthService) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	return nil
}

func testRouter(t *testing.T, svc *stubAuthService) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 30},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(Deps{
		Config: cfg,
		Logger: logg,
		Auth:   svc,
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Hugli-Env") != "test" {
		t.Fatalf("missing env header")
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRouterLoginDispatches(t *testing.T) {
	svc := &stubAuthService{}
	router := testRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"identifier":"aman@example.com","password":"hunter2pass"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastLogin == nil || svc.lastLogin.Identifier != "aman@example.com" {
		t.Fatalf("login not dispatched: %+v", svc.lastLogin)
	}
}

func TestRouterCartRequiresSession(t *testing.T) {
	router := testRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRouterProtectedRoutesRejectAnonymous(t *testing.T) {
	router := testRouter(t, &stubAuthService{})

	paths := []string{"/api/orders", "/api/auth/profile", "/api/admin/orders"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, resp.Code)
		}
	}
}

func TestRouterBusinessInfoIsPublic(t *testing.T) {
	router := testRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/business", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := testRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
