// internal/app/features/classrooms/recommendations.go
package classrooms

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/policy/classroompolicy"
	classroomstore "github.com/dalemusser/coursehub/internal/app/store/classrooms"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// loadOwnedClassroom resolves {id} and checks that the requester owns the
// classroom. It writes the error response itself when the check fails.
func (h *Handler) loadOwnedClassroom(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Classroom, primitive.ObjectID, bool) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return nil, primitive.NilObjectID, false
	}

	roomID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Classroom not found")
		return nil, primitive.NilObjectID, false
	}

	room, err := h.Classrooms.GetByID(ctx, roomID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Classroom not found")
			return nil, primitive.NilObjectID, false
		}
		h.Log.Error("classroom lookup failed", zap.Error(err), zap.String("classroom_id", roomID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load classroom")
		return nil, primitive.NilObjectID, false
	}

	if !classroompolicy.IsOwner(room, userID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied")
		return nil, primitive.NilObjectID, false
	}
	return room, userID, true
}

// HandleAddRecommendation handles POST /classrooms/{id}/recommendations.
// Owner only. Responds with the refreshed classroom detail.
func (h *Handler) HandleAddRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	room, userID, ok := h.loadOwnedClassroom(ctx, w, r)
	if !ok {
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs inputval.Errors
	errs.Require("title", req.Title, "Title is required")
	errs.Require("url", req.URL, "URL is required")
	if !errs.Ok() {
		httpjson.ValidationFailed(w, errs)
		return
	}

	rec := models.Recommendation{
		ID:        primitive.NewObjectID(),
		Title:     strings.TrimSpace(req.Title),
		URL:       strings.TrimSpace(req.URL),
		Notes:     htmlsanitize.Sanitize(req.Notes),
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := h.Classrooms.AddRecommendation(ctx, room.ID, rec); err != nil {
		h.Log.Error("add recommendation failed", zap.Error(err), zap.String("classroom_id", room.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not add recommendation")
		return
	}
	room.Recommendations = append(room.Recommendations, rec)

	detail, err := h.buildDetail(ctx, room, userID)
	if err != nil {
		h.Log.Error("build classroom detail failed", zap.Error(err), zap.String("classroom_id", room.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not add recommendation")
		return
	}
	httpjson.Data(w, http.StatusOK, detail)
}

// HandleRemoveRecommendation handles
// DELETE /classrooms/{id}/recommendations/{recId}. Owner only.
func (h *Handler) HandleRemoveRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	room, userID, ok := h.loadOwnedClassroom(ctx, w, r)
	if !ok {
		return
	}

	recID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "recId"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Recommendation not found")
		return
	}

	if err := h.Classrooms.RemoveRecommendation(ctx, room.ID, recID); err != nil {
		switch err {
		case mongo.ErrNoDocuments:
			httpjson.Error(w, http.StatusNotFound, "Classroom not found")
		case classroomstore.ErrRecommendationNotFound:
			httpjson.Error(w, http.StatusNotFound, "Recommendation not found")
		default:
			h.Log.Error("remove recommendation failed", zap.Error(err),
				zap.String("classroom_id", room.ID.Hex()),
				zap.String("recommendation_id", recID.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "Could not remove recommendation")
		}
		return
	}

	kept := room.Recommendations[:0]
	for _, rec := range room.Recommendations {
		if rec.ID != recID {
			kept = append(kept, rec)
		}
	}
	room.Recommendations = kept

	detail, err := h.buildDetail(ctx, room, userID)
	if err != nil {
		h.Log.Error("build classroom detail failed", zap.Error(err), zap.String("classroom_id", room.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not remove recommendation")
		return
	}
	httpjson.Data(w, http.StatusOK, detail)
}
