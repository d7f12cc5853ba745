package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, email, password string) (*domain.User, string, error)
	login    func(ctx context.Context, email, password string) (*domain.User, string, error)
	logout   func(ctx context.Context, userID, rawToken string) error
}

func (f *fakeAuthUsecase) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.register(ctx, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, userID, rawToken string) error {
	return f.logout(ctx, userID, rawToken)
}

// setIdentity stands in for the auth middleware on protected routes.
func setIdentity(user *domain.User, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUser, user)
		c.Set(middleware.ContextToken, token)
	}
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	testUser := &domain.User{ID: "user-1", Email: "a@b.com"}

	r := gin.New()
	r.POST("/users", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/users/me", setIdentity(testUser, "tok-1"), h.Me)
	r.DELETE("/users/me/token", setIdentity(testUser, "tok-1"), h.Logout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---- Register ----

func TestRegister_Success_SetsTokenHeaderAndHidesHash(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: "bcrypt$secret"}, "signed-token", nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/users", `{"email":"a@b.com","password":"123456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("x-auth"); got != "signed-token" {
		t.Errorf("x-auth header = %q, want %q", got, "signed-token")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["email"] != "a@b.com" {
		t.Errorf("email = %v, want a@b.com", body["email"])
	}
	lower := strings.ToLower(w.Body.String())
	if strings.Contains(lower, "password") || strings.Contains(lower, "hash") {
		t.Errorf("response leaks password material: %s", w.Body.String())
	}
}

func TestRegister_InvalidEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc), "/users", `{"email":"not-an-email","password":"123456"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_ShortPassword_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc), "/users", `{"email":"a@b.com","password":"12345"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrDuplicateEmail
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/users", `{"email":"a@b.com","password":"123456"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_StoreError_ReturnsOpaque400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", errors.New("pool exhausted: secret internals")
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/users", `{"email":"a@b.com","password":"123456"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret internals") {
		t.Errorf("response leaks internal error detail: %s", w.Body.String())
	}
}

// ---- Login ----

func TestLogin_Success_SetsTokenHeader(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email}, "fresh-token", nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/users/login", `{"email":"a@b.com","password":"123456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("x-auth"); got != "fresh-token" {
		t.Errorf("x-auth header = %q, want %q", got, "fresh-token")
	}
}

func TestLogin_InvalidCredentials_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/users/login", `{"email":"a@b.com","password":"wrong1"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Me ----

func TestMe_ReturnsAuthenticatedUser(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["email"] != "a@b.com" {
		t.Errorf("email = %v, want a@b.com", body["email"])
	}
}

// ---- Logout ----

func TestLogout_RemovesTheRequestToken(t *testing.T) {
	var gotUser, gotToken string
	uc := &fakeAuthUsecase{
		logout: func(_ context.Context, userID, rawToken string) error {
			gotUser, gotToken = userID, rawToken
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
	if gotUser != "user-1" || gotToken != "tok-1" {
		t.Errorf("logout(%q, %q), want (user-1, tok-1)", gotUser, gotToken)
	}
}

func TestLogout_StoreError_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		logout: func(_ context.Context, _, _ string) error {
			return errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
