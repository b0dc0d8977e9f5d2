package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls stack, so routes with multiple parameters can chain them.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCourse creates a test course with the given title, provider, and category.
func (f *Fixtures) CreateCourse(ctx context.Context, title, provider, category string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Provider:    provider,
		Category:    category,
		Description: "A test course about " + title,
		Level:       "beginner",
		URL:         "https://example.com/courses/test",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

// CreateEnrollment creates a test enrollment with the given progress and status.
func (f *Fixtures) CreateEnrollment(ctx context.Context, userID, courseID primitive.ObjectID, progress float64, status string) models.Enrollment {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Enrollment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CourseID:  courseID,
		Progress:  progress,
		Status:    status,
		StartedAt: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == models.StatusCompleted {
		e.CompletedAt = &now
	}

	if _, err := f.db.Collection("enrollments").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test enrollment: %v", err)
	}
	return e
}

// CreateCertificate creates a test certificate for the given enrollment.
func (f *Fixtures) CreateCertificate(ctx context.Context, enrollmentID primitive.ObjectID, title string) models.Certificate {
	f.t.Helper()

	now := time.Now().UTC()
	cert := models.Certificate{
		ID:           primitive.NewObjectID(),
		EnrollmentID: enrollmentID,
		Title:        title,
		URL:          "/uploads/" + title + ".pdf",
		IssuedOn:     &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("certificates").InsertOne(ctx, cert); err != nil {
		f.t.Fatalf("failed to create test certificate: %v", err)
	}
	return cert
}

// CreateClassroom creates a test classroom owned by the given user.
func (f *Fixtures) CreateClassroom(ctx context.Context, ownerID primitive.ObjectID, name, code string, memberIDs ...primitive.ObjectID) models.Classroom {
	f.t.Helper()

	now := time.Now().UTC()
	room := models.Classroom{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Code:      code,
		OwnerID:   ownerID,
		MemberIDs: memberIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("classrooms").InsertOne(ctx, room); err != nil {
		f.t.Fatalf("failed to create test classroom: %v", err)
	}
	return room
}
