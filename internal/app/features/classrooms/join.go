// internal/app/features/classrooms/join.go
package classrooms

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/policy/classroompolicy"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
)

// HandleJoin handles POST /classrooms/join. Joining a classroom you
// already participate in is a no-op that returns the classroom again.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs inputval.Errors
	errs.Require("code", req.Code, "Join code is required")
	if !errs.Ok() {
		httpjson.ValidationFailed(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Classrooms.GetByCode(ctx, req.Code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Classroom not found")
			return
		}
		h.Log.Error("classroom lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join classroom")
		return
	}

	if classroompolicy.IsParticipant(room, userID) {
		httpjson.DataMessage(w, http.StatusOK, "Already a member of this classroom",
			toSummary(room, classroompolicy.IsOwner(room, userID)))
		return
	}

	if err := h.Classrooms.AddMember(ctx, room.ID, userID); err != nil {
		h.Log.Error("add classroom member failed", zap.Error(err),
			zap.String("classroom_id", room.ID.Hex()),
			zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "Could not join classroom")
		return
	}
	room.MemberIDs = append(room.MemberIDs, userID)

	h.Log.Info("classroom joined",
		zap.String("classroom_id", room.ID.Hex()),
		zap.String("user_id", user.ID))
	httpjson.Data(w, http.StatusOK, toSummary(room, false))
}
