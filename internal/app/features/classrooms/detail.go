// internal/app/features/classrooms/detail.go
package classrooms

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/policy/classroompolicy"
	"github.com/dalemusser/coursehub/internal/app/store/queries/memberstats"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ServeDetail handles GET /classrooms/{id}. Only participants may view a
// classroom; all of them see the join code, but only the owner can manage.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	roomID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Classroom not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	room, err := h.Classrooms.GetByID(ctx, roomID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Classroom not found")
			return
		}
		h.Log.Error("classroom lookup failed", zap.Error(err), zap.String("classroom_id", roomID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load classroom")
		return
	}

	if !classroompolicy.IsParticipant(room, userID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	detail, err := h.buildDetail(ctx, room, userID)
	if err != nil {
		h.Log.Error("build classroom detail failed", zap.Error(err), zap.String("classroom_id", roomID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load classroom")
		return
	}
	httpjson.Data(w, http.StatusOK, detail)
}

// buildDetail assembles the participant view of a classroom: members with
// their progress statistics, the recommendation list with each curator
// resolved, and the owner summary. Members come back sorted by name so the
// roster is stable across requests. The owner, members, and recommendation
// curators are loaded in a single query.
func (h *Handler) buildDetail(ctx context.Context, room *models.Classroom, viewerID primitive.ObjectID) (*ClassroomDetail, error) {
	canManage := classroompolicy.IsOwner(room, viewerID)

	memberSet := make(map[primitive.ObjectID]struct{}, len(room.MemberIDs))
	for _, id := range room.MemberIDs {
		memberSet[id] = struct{}{}
	}

	lookup := make([]primitive.ObjectID, 0, len(room.MemberIDs)+len(room.Recommendations)+1)
	lookup = append(lookup, room.OwnerID)
	lookup = append(lookup, room.MemberIDs...)
	for _, rec := range room.Recommendations {
		lookup = append(lookup, rec.CreatedBy)
	}

	users, err := h.Users.GetByIDs(ctx, lookup)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	members := make([]models.User, 0, len(room.MemberIDs))
	for _, u := range users {
		byID[u.ID] = u
		if _, ok := memberSet[u.ID]; ok {
			members = append(members, u)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].NameCI < members[j].NameCI })

	ids := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	stats, err := memberstats.ForUsers(ctx, h.DB, ids)
	if err != nil {
		return nil, err
	}

	detail := &ClassroomDetail{
		ClassroomSummary: toSummary(room, true),
		Owner:            userSummary(room.OwnerID, byID),
		Recommendations:  toRecommendationDTOs(room.Recommendations, byID),
		Members:          make([]MemberDTO, 0, len(members)),
		CanManage:        canManage,
	}
	for _, m := range members {
		detail.Members = append(detail.Members, MemberDTO{
			ID:    m.ID.Hex(),
			Name:  m.Name,
			Email: m.Email,
			Role:  m.Role,
			Stats: toMemberStatsDTO(stats[m.ID]),
		})
	}
	return detail, nil
}
