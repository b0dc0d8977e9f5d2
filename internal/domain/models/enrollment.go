// internal/domain/models/enrollment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment status values.
const (
	StatusEnrolled   = "enrolled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Enrollment tracks one user's progress through one course.
// Exactly one document per (user_id, course_id); enforced by a unique index.
//
// Completion is monotonic: once CompletedAt is stamped it is never cleared,
// even if a later update lowers the progress again.
type Enrollment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	CourseID primitive.ObjectID `bson:"course_id" json:"course_id"`
	Progress float64            `bson:"progress" json:"progress"` // 0..100
	Status   string             `bson:"status" json:"status"`     // enrolled | in-progress | completed

	StartedAt   *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
