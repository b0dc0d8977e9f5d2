// internal/app/features/classrooms/create.go
package classrooms

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
)

// HandleCreate handles POST /classrooms. The route is restricted to
// faculty; the description may carry markup and is sanitized before it
// is stored.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs inputval.Errors
	errs.Require("name", req.Name, "Name is required")
	if !errs.Ok() {
		httpjson.ValidationFailed(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Classrooms.Create(ctx, ownerID, req.Name, htmlsanitize.Sanitize(req.Description))
	if err != nil {
		h.Log.Error("create classroom failed", zap.Error(err), zap.String("owner_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "Could not create classroom")
		return
	}

	h.Log.Info("classroom created",
		zap.String("classroom_id", room.ID.Hex()),
		zap.String("owner_id", user.ID))
	httpjson.Data(w, http.StatusCreated, toSummary(room, true))
}
