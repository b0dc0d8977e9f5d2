package enrollments_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/features/enrollments"
	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	enrollmentstore "github.com/dalemusser/coursehub/internal/app/store/enrollments"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func newHandler(t *testing.T) (*enrollments.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := enrollments.NewHandler(db, enrollmentstore.New(db), coursestore.New(db), zap.NewNop())
	return h, fx
}

type enrollmentResponse struct {
	Data enrollments.EnrollmentDTO `json:"data"`
}

type mineResponse struct {
	Data []enrollments.EnrolledRowDTO `json:"data"`
}

func postEnroll(t *testing.T, h *enrollments.Handler, user testutil.TestUser, courseID string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"courseId":"` + courseID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/enrollments", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleEnroll(rec, testutil.WithUser(req, user))
	return rec
}

func TestHandleEnroll_Idempotent(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateUser(ctx, "Ada", "ada@test.com", "student")
	course := fx.CreateCourse(ctx, "Intro to Go", "Coursera", "Programming")
	user := testutil.UserFor(student.ID, student.Name, student.Email, student.Role)

	rec := postEnroll(t, h, user, course.ID.Hex())
	if rec.Code != http.StatusCreated {
		t.Fatalf("first enroll: status = %d: %s", rec.Code, rec.Body.String())
	}
	var first enrollmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if first.Data.Status != models.StatusEnrolled || first.Data.Progress != 0 {
		t.Errorf("unexpected new enrollment: %+v", first.Data)
	}

	rec = postEnroll(t, h, user, course.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("second enroll: status = %d, want 200", rec.Code)
	}
	var second enrollmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if second.Data.ID != first.Data.ID {
		t.Errorf("second enroll returned a different record: %s vs %s", second.Data.ID, first.Data.ID)
	}
}

func TestHandleEnroll_CourseNotFound(t *testing.T) {
	h, _ := newHandler(t)
	user := testutil.StudentUser()

	rec := postEnroll(t, h, user, primitive.NewObjectID().Hex())
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown course: status = %d, want 404", rec.Code)
	}

	rec = postEnroll(t, h, user, "not-a-course-id")
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed course id: status = %d, want 404", rec.Code)
	}
}

func TestServeMine_JoinsCourseAndCertificate(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateUser(ctx, "Ada", "ada@test.com", "student")
	course := fx.CreateCourse(ctx, "Intro to Go", "Coursera", "Programming")
	e := fx.CreateEnrollment(ctx, student.ID, course.ID, 100, models.StatusCompleted)
	fx.CreateCertificate(ctx, e.ID, "Go Certificate")

	req := httptest.NewRequest(http.MethodGet, "/enrollments/mine", nil)
	rec := httptest.NewRecorder()
	h.ServeMine(rec, testutil.WithUser(req, testutil.UserFor(student.ID, student.Name, student.Email, student.Role)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp mineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("got %d rows, want 1", len(resp.Data))
	}
	row := resp.Data[0]
	if row.Course.Title != "Intro to Go" {
		t.Errorf("course title = %q", row.Course.Title)
	}
	if row.Certificate == nil || row.Certificate.Title != "Go Certificate" {
		t.Errorf("certificate = %+v", row.Certificate)
	}
}

func TestServeMine_Empty(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/enrollments/mine", nil)
	rec := httptest.NewRecorder()
	h.ServeMine(rec, testutil.WithUser(req, testutil.StudentUser()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp mineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("expected empty array, got %+v", resp.Data)
	}
}

func patchEnrollment(t *testing.T, h *enrollments.Handler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.WithChiURLParam(
		httptest.NewRequest(http.MethodPatch, "/enrollments/"+id, strings.NewReader(body)),
		"id", id)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, testutil.WithUser(req, testutil.StudentUser()))
	return rec
}

func TestHandleUpdate(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateUser(ctx, "Ada", "ada@test.com", "student")
	course := fx.CreateCourse(ctx, "Intro to Go", "Coursera", "Programming")
	e := fx.CreateEnrollment(ctx, student.ID, course.ID, 0, models.StatusEnrolled)

	rec := patchEnrollment(t, h, e.ID.Hex(), `{"progress":50,"status":"in-progress"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp enrollmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Progress != 50 || resp.Data.Status != models.StatusInProgress {
		t.Errorf("after update: %+v", resp.Data)
	}
	if resp.Data.CompletedAt != nil {
		t.Error("completedAt should not be set at 50%")
	}

	rec = patchEnrollment(t, h, e.ID.Hex(), `{"progress":100}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("completion: status = %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Status != models.StatusCompleted || resp.Data.CompletedAt == nil {
		t.Errorf("100%% should mark completed with a timestamp: %+v", resp.Data)
	}
}

func TestHandleUpdate_Validation(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateUser(ctx, "Ada", "ada@test.com", "student")
	course := fx.CreateCourse(ctx, "Intro to Go", "Coursera", "Programming")
	e := fx.CreateEnrollment(ctx, student.ID, course.ID, 0, models.StatusEnrolled)

	rec := patchEnrollment(t, h, e.ID.Hex(), `{"progress":150}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("progress 150: status = %d, want 400", rec.Code)
	}

	rec = patchEnrollment(t, h, e.ID.Hex(), `{"status":"abandoned"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdate_NotFound(t *testing.T) {
	h, _ := newHandler(t)

	rec := patchEnrollment(t, h, primitive.NewObjectID().Hex(), `{"progress":10}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}

	rec = patchEnrollment(t, h, "nope", `{"progress":10}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed id: status = %d, want 404", rec.Code)
	}
}
