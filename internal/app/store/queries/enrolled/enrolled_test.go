package enrolled_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/coursehub/internal/app/store/queries/enrolled"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func TestListForUser_JoinsCourseAndCertificate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Ada", "ada@example.com", "student")
	course1 := fx.CreateCourse(ctx, "Go Basics", "Coursera", "Programming")
	course2 := fx.CreateCourse(ctx, "Advanced Go", "Udemy", "Programming")

	e1 := fx.CreateEnrollment(ctx, user.ID, course1.ID, 100, models.StatusCompleted)
	fx.CreateEnrollment(ctx, user.ID, course2.ID, 40, models.StatusInProgress)
	fx.CreateCertificate(ctx, e1.ID, "Go Basics Certificate")

	rows, err := enrolled.ListForUser(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	byCourse := map[string]enrolled.Row{}
	for _, r := range rows {
		byCourse[r.Course.Title] = r
	}

	completed, ok := byCourse["Go Basics"]
	if !ok {
		t.Fatal("missing Go Basics row")
	}
	if completed.Certificate == nil || completed.Certificate.Title != "Go Basics Certificate" {
		t.Errorf("expected joined certificate, got %+v", completed.Certificate)
	}

	inProgress, ok := byCourse["Advanced Go"]
	if !ok {
		t.Fatal("missing Advanced Go row")
	}
	if inProgress.Certificate != nil {
		t.Errorf("expected nil certificate, got %+v", inProgress.Certificate)
	}
}

func TestListForUser_DropsDanglingCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Ada", "ada@example.com", "student")
	course := fx.CreateCourse(ctx, "Go Basics", "Coursera", "Programming")
	fx.CreateEnrollment(ctx, user.ID, course.ID, 10, models.StatusInProgress)
	// enrollment pointing at a course that no longer exists
	fx.CreateEnrollment(ctx, user.ID, primitive.NewObjectID(), 10, models.StatusInProgress)

	rows, err := enrolled.ListForUser(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected dangling enrollment dropped, got %d rows", len(rows))
	}
}

func TestListForUsers_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rows, err := enrolled.ListForUsers(ctx, db, nil)
	if err != nil {
		t.Fatalf("ListForUsers failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
