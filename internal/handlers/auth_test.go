package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"promptforge-backend/internal/models"
	"promptforge-backend/internal/services"
)

type stubAuthService struct {
	user      *models.User
	tokens    *models.AuthTokens
	err       error
	loggedOut bool
}

func (s *stubAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	s.loggedOut = true
	return nil
}

func (s *stubAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

func TestRegisterHandler_Success(t *testing.T) {
	svc := &stubAuthService{user: &models.User{
		ID:    uuid.New(),
		Email: "test@example.com",
		Name:  "Test User",
	}}
	h := NewAuthHandler(svc)

	body := `{"name": "Test User", "email": "test@example.com", "password": "StrongPass123"}`
	rr := postJSON(t, h.Register, "/api/v1/auth/register", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rr.Code)
	}

	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected email in response, got %q", user.Email)
	}
}

func TestRegisterHandler_ValidationError(t *testing.T) {
	svc := &stubAuthService{err: &services.ValidationError{Message: "Invalid email format"}}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Register, "/api/v1/auth/register", `{"name": "T", "email": "bad", "password": "StrongPass123"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: &services.UnauthorizedError{Message: "Invalid email or password"}}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Login, "/api/v1/auth/login", `{"email": "test@example.com", "password": "wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if resp.Error != "Invalid email or password" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}

func TestLoginHandler_Success(t *testing.T) {
	svc := &stubAuthService{tokens: &models.AuthTokens{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    900,
	}}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Login, "/api/v1/auth/login", `{"email": "test@example.com", "password": "StrongPass123"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var tokens models.AuthTokens
	if err := json.NewDecoder(rr.Body).Decode(&tokens); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if tokens.AccessToken != "access" || tokens.RefreshToken != "refresh" {
		t.Errorf("Unexpected tokens: %+v", tokens)
	}
}

func TestLogoutHandler(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Logout, "/api/v1/auth/logout", `{"refresh_token": "abc"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !svc.loggedOut {
		t.Error("Expected logout to reach the service")
	}
}

func TestMeHandler_NotFound(t *testing.T) {
	svc := &stubAuthService{err: &services.NotFoundError{Message: "User not found"}}
	h := NewAuthHandler(svc)

	req := authedRequest(t, http.MethodGet, "/api/v1/auth/me", "", uuid.New())
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}
