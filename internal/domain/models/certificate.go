// internal/domain/models/certificate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Certificate is the completion record attached to an enrollment.
// At most one per enrollment (unique index on enrollment_id); a re-upload
// replaces the previous record in place.
type Certificate struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollment_id" json:"enrollment_id"`
	Title        string             `bson:"title" json:"title"`
	URL          string             `bson:"url" json:"url"`
	PublicID     *string            `bson:"public_id,omitempty" json:"public_id,omitempty"`
	IssuedOn     *time.Time         `bson:"issued_on,omitempty" json:"issued_on,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
