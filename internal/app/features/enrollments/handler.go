// internal/app/features/enrollments/handler.go
package enrollments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	enrollmentstore "github.com/dalemusser/coursehub/internal/app/store/enrollments"
	"github.com/dalemusser/coursehub/internal/app/store/queries/enrolled"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/normalize"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// Handler serves enrollment creation, listing, and progress updates.
type Handler struct {
	DB          *mongo.Database
	Enrollments *enrollmentstore.Store
	Courses     *coursestore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, enrollments *enrollmentstore.Store, courses *coursestore.Store, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Enrollments: enrollments, Courses: courses, Log: logger}
}

// HandleEnroll handles POST /enrollments. Re-enrolling in the same course
// returns the existing record with a 200 instead of creating a duplicate.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Course not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Courses.GetByID(ctx, courseID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Course not found")
			return
		}
		h.Log.Error("course lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not enroll")
		return
	}

	e, created, err := h.Enrollments.Enroll(ctx, userID, courseID)
	if err != nil {
		h.Log.Error("enroll failed", zap.Error(err),
			zap.String("user_id", user.ID),
			zap.String("course_id", courseID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not enroll")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.Log.Info("user enrolled",
			zap.String("user_id", user.ID),
			zap.String("course_id", courseID.Hex()))
	}
	httpjson.Data(w, status, toEnrollmentDTO(*e))
}

// ServeMine handles GET /enrollments/mine.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := enrolled.ListForUser(ctx, h.DB, userID)
	if err != nil {
		h.Log.Error("list enrollments failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load enrollments")
		return
	}

	out := make([]EnrolledRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRowDTO(row))
	}
	httpjson.Data(w, http.StatusOK, out)
}

// HandleUpdate handles PATCH /enrollments/{id}. Only the provided fields
// are applied; the store enforces the completion rule.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Enrollment not found")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs inputval.Errors
	if req.Progress != nil {
		errs.Range("progress", *req.Progress, 0, 100, "Progress must be between 0 and 100")
	}
	if req.Status != nil {
		*req.Status = normalize.Status(*req.Status)
		errs.OneOf("status", *req.Status,
			models.StatusEnrolled, models.StatusInProgress, models.StatusCompleted)
	}
	if !errs.Ok() {
		httpjson.ValidationFailed(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	e, err := h.Enrollments.UpdateProgress(ctx, id, enrollmentstore.ProgressUpdate{
		Progress: req.Progress,
		Status:   req.Status,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Enrollment not found")
			return
		}
		h.Log.Error("update enrollment failed", zap.Error(err), zap.String("enrollment_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not update enrollment")
		return
	}

	httpjson.Data(w, http.StatusOK, toEnrollmentDTO(*e))
}
