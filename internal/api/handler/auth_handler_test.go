package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/invensys/inventory-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn      func(ctx context.Context, username, password string) (string, error)
	assignRoleFn func(ctx context.Context, username, roleName string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) AssignRole(ctx context.Context, username, roleName string) (*domain.User, error) {
	return s.assignRoleFn(ctx, username, roleName)
}

func newAuthContext(e *echo.Echo, body string, rec *httptest.ResponseRecorder) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, rec)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "1", Username: username, Roles: []string{domain.RoleUser}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := newAuthContext(e, `{"username":"alice","password":"secret1"}`, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	c := newAuthContext(e, `{"username":"alice","password":"abc"}`, rec)

	err := handler.Register(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "signed-token", nil
		},
	})

	rec := httptest.NewRecorder()
	c := newAuthContext(e, `{"username":"alice","password":"secret1"}`, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	})

	rec := httptest.NewRecorder()
	c := newAuthContext(e, `{"username":"alice","password":"wrong99"}`, rec)

	err := handler.Login(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected domain error to propagate, got %v", err)
	}
}

func TestAuthHandler_AssignRole_Success(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		assignRoleFn: func(ctx context.Context, username, roleName string) (*domain.User, error) {
			if username != "bob" || roleName != domain.RoleAdmin {
				t.Fatalf("unexpected args: %s %s", username, roleName)
			}
			return &domain.User{ID: "2", Username: username, Roles: []string{domain.RoleUser, domain.RoleAdmin}}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := newAuthContext(e, `{"username":"bob","roleName":"ROLE_ADMIN"}`, rec)

	if err := handler.AssignRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_AssignRole_InvalidRole(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		assignRoleFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidRole
		},
	})

	rec := httptest.NewRecorder()
	c := newAuthContext(e, `{"username":"bob","roleName":"ROLE_ROOT"}`, rec)

	if err := handler.AssignRole(c); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole to propagate, got %v", err)
	}
}
