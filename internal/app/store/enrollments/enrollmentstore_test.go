package enrollmentstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	enrollmentstore "github.com/dalemusser/coursehub/internal/app/store/enrollments"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestEnroll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	first, created, err := store.Enroll(ctx, userID, courseID)
	if err != nil {
		t.Fatalf("first Enroll failed: %v", err)
	}
	if !created {
		t.Error("expected first enroll to create a record")
	}
	if first.Status != models.StatusEnrolled || first.Progress != 0 {
		t.Errorf("unexpected new enrollment: %+v", first)
	}
	if first.StartedAt == nil {
		t.Error("expected StartedAt to be stamped")
	}

	second, created, err := store.Enroll(ctx, userID, courseID)
	if err != nil {
		t.Fatalf("second Enroll failed: %v", err)
	}
	if created {
		t.Error("expected second enroll to reuse the record")
	}
	if second.ID != first.ID {
		t.Errorf("enrollment id changed: %s -> %s", first.ID.Hex(), second.ID.Hex())
	}

	all, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 enrollment, got %d", len(all))
	}
}

func TestUpdateProgress_CompletionRule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, _, err := store.Enroll(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	// partial progress moves to in-progress via the status field
	got, err := store.UpdateProgress(ctx, e.ID, enrollmentstore.ProgressUpdate{
		Progress: ptr(50.0),
		Status:   ptr(models.StatusInProgress),
	})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if got.Status != models.StatusInProgress || got.Progress != 50 {
		t.Errorf("unexpected enrollment: %+v", got)
	}
	if got.CompletedAt != nil {
		t.Error("CompletedAt should not be set below 100")
	}

	// reaching 100 forces completed and stamps CompletedAt
	got, err = store.UpdateProgress(ctx, e.ID, enrollmentstore.ProgressUpdate{Progress: ptr(100.0)})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("expected CompletedAt to be stamped")
	}
	completedAt := *got.CompletedAt

	// regression does not clear or overwrite CompletedAt
	got, err = store.UpdateProgress(ctx, e.ID, enrollmentstore.ProgressUpdate{
		Progress: ptr(50.0),
		Status:   ptr(models.StatusInProgress),
	})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if got.CompletedAt == nil {
		t.Fatal("CompletedAt was cleared by a regression")
	}
	if !got.CompletedAt.Equal(completedAt) {
		t.Error("CompletedAt was overwritten by a regression")
	}

	// completing again keeps the original stamp
	got, err = store.UpdateProgress(ctx, e.ID, enrollmentstore.ProgressUpdate{Progress: ptr(100.0)})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if !got.CompletedAt.Equal(completedAt) {
		t.Error("CompletedAt changed on re-completion")
	}
}

func TestUpdateProgress_ClampsAbove100(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, _, err := store.Enroll(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	got, err := store.UpdateProgress(ctx, e.ID, enrollmentstore.ProgressUpdate{Progress: ptr(150.0)})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if got.Progress != 100 || got.Status != models.StatusCompleted {
		t.Errorf("unexpected enrollment: %+v", got)
	}
}
