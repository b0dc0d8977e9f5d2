package enrollmentstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enrollments")}
}

// Enroll returns the existing enrollment for (user, course) or creates a
// new one. The bool reports whether a record was created. A duplicate-key
// race against the unique index falls back to re-reading the winner, so
// concurrent enrolls converge on the same record.
func (s *Store) Enroll(ctx context.Context, userID, courseID primitive.ObjectID) (*models.Enrollment, bool, error) {
	existing, err := s.getByPair(ctx, userID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	now := time.Now()
	e := models.Enrollment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CourseID:  courseID,
		Progress:  0,
		Status:    models.StatusEnrolled,
		StartedAt: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			winner, err2 := s.getByPair(ctx, userID, courseID)
			if err2 != nil {
				return nil, false, err2
			}
			return winner, false, nil
		}
		return nil, false, err
	}
	return &e, true, nil
}

func (s *Store) getByPair(ctx context.Context, userID, courseID primitive.ObjectID) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID loads an enrollment. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ProgressUpdate carries the optional fields of a progress patch; nil
// means "leave unchanged".
type ProgressUpdate struct {
	Progress *float64
	Status   *string
}

// UpdateProgress applies the provided fields and enforces the completion
// rule: progress reaching 100 forces status to completed and stamps
// CompletedAt if it is not already set. CompletedAt is never cleared, so
// a later regression below 100 leaves the original completion time.
func (s *Store) UpdateProgress(ctx context.Context, id primitive.ObjectID, upd ProgressUpdate) (*models.Enrollment, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Progress != nil {
		e.Progress = *upd.Progress
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}

	if e.Progress >= 100 {
		e.Progress = 100
		e.Status = models.StatusCompleted
		if e.CompletedAt == nil {
			now := time.Now()
			e.CompletedAt = &now
		}
	}
	e.UpdatedAt = time.Now()

	set := bson.M{
		"progress":   e.Progress,
		"status":     e.Status,
		"updated_at": e.UpdatedAt,
	}
	if e.CompletedAt != nil {
		set["completed_at"] = e.CompletedAt
	}

	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByUser returns the user's raw enrollment records, newest first.
// Joined views go through the queries package instead.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Enrollment, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Enrollment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
