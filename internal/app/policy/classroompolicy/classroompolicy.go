// internal/app/policy/classroompolicy/classroompolicy.go
package classroompolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// IsOwner reports whether the given user owns the classroom.
func IsOwner(c *models.Classroom, userID primitive.ObjectID) bool {
	return c.OwnerID == userID
}

// IsMember reports whether the given user has joined the classroom.
// Owners are not implicitly members; use IsParticipant for access checks.
func IsMember(c *models.Classroom, userID primitive.ObjectID) bool {
	for _, id := range c.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsParticipant reports whether the user may view the classroom detail,
// which requires being the owner or a joined member.
func IsParticipant(c *models.Classroom, userID primitive.ObjectID) bool {
	return IsOwner(c, userID) || IsMember(c, userID)
}
