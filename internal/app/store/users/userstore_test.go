package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func TestCreate_NormalizesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		Name:  "  Ada Lovelace  ",
		Email: "  Ada@Example.COM  ",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if u.Email != "ada@example.com" {
		t.Errorf("email = %q, want ada@example.com", u.Email)
	}
	if u.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want Ada Lovelace", u.Name)
	}
	if u.Role != "student" {
		t.Errorf("role = %q, want default student", u.Role)
	}
}

func TestCreate_DuplicateEmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "A", Email: "A@x.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{Name: "B", Email: "a@x.com"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "X", Email: "x@x.com", Role: "admin"}); err == nil {
		t.Error("expected error for invalid role")
	}
}

func TestGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{Name: "Grace", Email: "grace@example.com", Role: "faculty"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "GRACE@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got id %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestLinkGoogleID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{Name: "Linus", Email: "linus@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.LinkGoogleID(ctx, created.ID, "google-123"); err != nil {
		t.Fatalf("LinkGoogleID failed: %v", err)
	}

	got, err := store.GetByGoogleID(ctx, "google-123")
	if err != nil {
		t.Fatalf("GetByGoogleID failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got id %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestFetcher_GetTokenUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u, err := fetcher.GetTokenUser(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("GetTokenUser failed: %v", err)
	}
	if u == nil {
		t.Fatal("expected user, got nil")
	}
	if u.Email != "ada@example.com" || u.Role != "student" {
		t.Errorf("unexpected token user: %+v", u)
	}
}

func TestFetcher_GetTokenUser_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := fetcher.GetTokenUser(ctx, "64f000000000000000000000")
	if err != nil {
		t.Fatalf("GetTokenUser error: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}

	u, err = fetcher.GetTokenUser(ctx, "not-a-hex-id")
	if err != nil || u != nil {
		t.Errorf("expected nil,nil for malformed id, got %+v, %v", u, err)
	}
}
