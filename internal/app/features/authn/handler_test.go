package authn_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/features/authn"
	"github.com/dalemusser/coursehub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func newHandler(t *testing.T, db *mongo.Database) *authn.Handler {
	t.Helper()
	if err := auth.InitTokenManager("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop()); err != nil {
		t.Fatalf("InitTokenManager: %v", err)
	}
	return authn.NewHandler(
		db,
		userstore.New(db),
		oauthstate.New(db),
		"", "", // Google not configured in tests
		"http://localhost:8080",
		"http://localhost:5173",
		zap.NewNop(),
	)
}

type authResponse struct {
	Data struct {
		User struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	} `json:"data"`
}

func postJSON(h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	rec := postJSON(h.HandleRegister, "/auth/register",
		`{"name":"Ada Lovelace","email":"Ada@Example.com","password":"secret1"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.User.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized lowercase", resp.Data.User.Email)
	}
	if resp.Data.User.Role != "student" {
		t.Errorf("role = %q, want default student", resp.Data.User.Role)
	}
	if resp.Data.Token == "" {
		t.Error("expected a token")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password material")
	}
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	rec := postJSON(h.HandleRegister, "/auth/register",
		`{"name":"A","email":"A@x.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(h.HandleRegister, "/auth/register",
		`{"name":"B","email":"a@x.com","password":"secret2"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("second register: status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	rec := postJSON(h.HandleRegister, "/auth/register",
		`{"name":"","email":"not-an-email","password":"123","role":"admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Errors) != 4 {
		t.Errorf("expected 4 field errors, got %d: %s", len(resp.Errors), rec.Body.String())
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	rec := postJSON(h.HandleRegister, "/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", rec.Code)
	}

	rec = postJSON(h.HandleLogin, "/auth/login",
		`{"email":"ADA@example.com","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Error("expected a token")
	}

	// wrong password
	rec = postJSON(h.HandleLogin, "/auth/login",
		`{"email":"ada@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", rec.Code)
	}

	// unknown account gives the same message
	rec = postJSON(h.HandleLogin, "/auth/login",
		`{"email":"nobody@example.com","password":"secret1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: status = %d, want 401", rec.Code)
	}
}

func TestLogin_OAuthOnlyAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// user created via Google has no password hash
	fx.CreateUser(ctx, "Gus", "gus@example.com", "student")

	rec := postJSON(h.HandleLogin, "/auth/login",
		`{"email":"gus@example.com","password":"anything"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestServeMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	user := testutil.StudentUser()
	req := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/auth/me"), user)
	rec := httptest.NewRecorder()
	h.ServeMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			User struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.User.ID != user.ID {
		t.Errorf("id = %q, want %q", resp.Data.User.ID, user.ID)
	}
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "http://localhost:5173/login?error=google-disabled" {
		t.Errorf("unexpected redirect: %s", loc)
	}
}

func TestGoogleCallback_InvalidState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	h.ClientID = "client"
	h.ClientSecret = "secret"

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=bogus&code=abc", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "http://localhost:5173/login?error=google" {
		t.Errorf("unexpected redirect: %s", loc)
	}
}
