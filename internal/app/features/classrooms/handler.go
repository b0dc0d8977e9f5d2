// internal/app/features/classrooms/handler.go
package classrooms

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	classroomstore "github.com/dalemusser/coursehub/internal/app/store/classrooms"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
)

// Handler serves classroom creation, membership, detail, and the owner's
// recommendation list.
type Handler struct {
	DB         *mongo.Database
	Classrooms *classroomstore.Store
	Users      *userstore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, classrooms *classroomstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Classrooms: classrooms, Users: users, Log: logger}
}
