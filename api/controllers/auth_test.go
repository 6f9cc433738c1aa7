package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/kamaukinuthia/irrigo-backend/internal/auth"
	pkgauth "github.com/kamaukinuthia/irrigo-backend/pkg/auth"
	"github.com/kamaukinuthia/irrigo-backend/pkg/auth/session"
	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"

	"github.com/google/uuid"
)

type stubAuthService struct {
	user       *models.User
	pair       *authsvc.TokenPair
	err        error
	revokedJTI string
}

func (s *stubAuthService) Login(context.Context, string, string) (*models.User, *authsvc.TokenPair, error) {
	return s.user, s.pair, s.err
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.revokedJTI = accessID
	return s.err
}

func (s *stubAuthService) Refresh(context.Context, string, string) (*authsvc.TokenPair, error) {
	return s.pair, s.err
}

func controllerJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "irrigo-test", ExpirationMinutes: 15, RefreshTokenTTLMinutes: 60}
}

func TestLoginReturnsTokenPair(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "jane@irrigo.example", FirstName: "Jane", LastName: "W", Role: enums.StaffRoleAdmin}
	stub := &stubAuthService{user: user, pair: &authsvc.TokenPair{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email": "jane@irrigo.example", "password": "pw"}`))
	rec := httptest.NewRecorder()
	Login(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"access_token":"at"`) || !strings.Contains(body, `"role":"admin"`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if strings.Contains(body, "password") {
		t.Fatal("response must not echo credentials")
	}
}

func TestLoginBadCredentialsReturns401(t *testing.T) {
	stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email": "jane@irrigo.example", "password": "bad"}`))
	rec := httptest.NewRecorder()
	Login(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutRevokesTokenSession(t *testing.T) {
	cfg := controllerJWTConfig()
	jti := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.StaffRoleStaff,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	stub := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Logout(stub, cfg, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.revokedJTI != jti {
		t.Fatalf("expected revoke of %s, got %s", jti, stub.revokedJTI)
	}
}

func TestLogoutWithoutTokenReturns401(t *testing.T) {
	stub := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	Logout(stub, controllerJWTConfig(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshRequiresBody(t *testing.T) {
	cfg := controllerJWTConfig()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.StaffRoleStaff,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	stub := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Refresh(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
