// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is one catalog entry. The catalog is seeded once at startup and
// is immutable afterward — there is no update or delete path.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"title_ci"`
	Provider    string             `bson:"provider" json:"provider"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Level       string             `bson:"level,omitempty" json:"level,omitempty"`
	URL         string             `bson:"url,omitempty" json:"url,omitempty"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
