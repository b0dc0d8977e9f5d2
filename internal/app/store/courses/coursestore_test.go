package coursestore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func TestEnsureSeeded_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureSeeded(ctx, zap.NewNop()); err != nil {
		t.Fatalf("first EnsureSeeded failed: %v", err)
	}

	first, err := store.List(ctx, coursestore.ListParams{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected seeded courses")
	}

	if err := store.EnsureSeeded(ctx, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureSeeded failed: %v", err)
	}

	second, err := store.List(ctx, coursestore.ListParams{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("reseed changed count: %d -> %d", len(first), len(second))
	}
}

func TestList_SortedByTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateCourse(ctx, "Zebra Studies", "edX", "Biology")
	fx.CreateCourse(ctx, "apple Farming", "Coursera", "Agriculture")
	fx.CreateCourse(ctx, "Mango Cultivation", "Coursera", "Agriculture")

	courses, err := store.List(ctx, coursestore.ListParams{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(courses))
	}
	if courses[0].Title != "apple Farming" || courses[2].Title != "Zebra Studies" {
		t.Errorf("unexpected order: %s, %s, %s", courses[0].Title, courses[1].Title, courses[2].Title)
	}
}

func TestList_SearchAndFacets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateCourse(ctx, "Intro to Go", "Coursera", "Programming")
	fx.CreateCourse(ctx, "Advanced Go", "Udemy", "Programming")
	fx.CreateCourse(ctx, "Watercolor Painting", "Udemy", "Art")

	// case-insensitive substring search on title
	got, err := store.List(ctx, coursestore.ListParams{Search: "gO"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("search: expected 2 courses, got %d", len(got))
	}

	// exact provider facet
	got, err = store.List(ctx, coursestore.ListParams{Provider: "Udemy"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("provider: expected 2 courses, got %d", len(got))
	}

	// combined
	got, err = store.List(ctx, coursestore.ListParams{Search: "go", Provider: "Udemy", Category: "Programming"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Advanced Go" {
		t.Errorf("combined: unexpected result %+v", got)
	}
}

func TestCompare(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateCourse(ctx, "Course A", "Coursera", "Programming")
	b := fx.CreateCourse(ctx, "Course B", "Udemy", "Programming")
	fx.CreateCourse(ctx, "Course C", "Udemy", "Art")

	got, err := store.Compare(ctx, coursestore.CompareParams{
		IDs: []primitive.ObjectID{a.ID, b.ID},
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 courses, got %d", len(got))
	}

	got, err = store.Compare(ctx, coursestore.CompareParams{
		IDs:      []primitive.ObjectID{a.ID, b.ID},
		Provider: "Udemy",
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Course B" {
		t.Errorf("facet: unexpected result %+v", got)
	}
}
