// internal/app/features/classrooms/list.go
package classrooms

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
)

type listPayload struct {
	Owned  []ClassroomSummary `json:"owned"`
	Joined []ClassroomSummary `json:"joined"`
}

// ServeList handles GET /classrooms. Owned classrooms include the join
// code; joined ones do not.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owned, err := h.Classrooms.ListOwned(ctx, userID)
	if err != nil {
		h.Log.Error("list owned classrooms failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load classrooms")
		return
	}
	joined, err := h.Classrooms.ListJoined(ctx, userID)
	if err != nil {
		h.Log.Error("list joined classrooms failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load classrooms")
		return
	}

	payload := listPayload{
		Owned:  make([]ClassroomSummary, 0, len(owned)),
		Joined: make([]ClassroomSummary, 0, len(joined)),
	}
	for i := range owned {
		payload.Owned = append(payload.Owned, toSummary(&owned[i], true))
	}
	for i := range joined {
		payload.Joined = append(payload.Joined, toSummary(&joined[i], false))
	}
	httpjson.Data(w, http.StatusOK, payload)
}
