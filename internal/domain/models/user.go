// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents students and faculty.
//
// NOTE:
//   - A single document covers both local (password) and Google-linked
//     accounts. PasswordHash is nil for accounts that only ever signed
//     in through Google; GoogleID is nil until the first federated login.
//   - Email is stored normalized (lowercase) and carries a unique index,
//     so uniqueness is case-insensitive.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"password_hash,omitempty" json:"password_hash,omitempty"`
	Role         string             `bson:"role" json:"role"` // student | faculty
	GoogleID     *string            `bson:"google_id,omitempty" json:"google_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
