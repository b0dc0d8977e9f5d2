// internal/domain/models/classroom.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classroom is a faculty-owned group that aggregates member progress and
// carries an owner-curated recommendation list.
//
// NOTE:
//   - The owner is never stored in MemberIDs. Access checks must treat
//     the owner as a participant; see policy/classroompolicy.
//   - Code is a 6-character uppercase hex join code, globally unique.
type Classroom struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Description string             `bson:"description" json:"description"`
	Code        string             `bson:"code" json:"code"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	MemberIDs       []primitive.ObjectID `bson:"member_ids" json:"member_ids"`
	Recommendations []Recommendation     `bson:"recommendations" json:"recommendations"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Recommendation is an owner-curated link embedded in a classroom. Its
// lifetime is the classroom's; it is not tied to the course catalog.
type Recommendation struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	URL       string             `bson:"url" json:"url"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
