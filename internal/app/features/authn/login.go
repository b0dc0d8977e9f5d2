package authn

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleLogin handles POST /auth/login. A missing account, an OAuth-only
// account with no password, and a wrong password all produce the same 401
// so the response does not leak which emails exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs inputval.Errors
	errs.Require("email", req.Email, "Email is required")
	errs.Require("password", req.Password, "Password is required")
	if !errs.Ok() {
		httpjson.ValidationFailed(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.Log.Error("login lookup failed", zap.Error(err))
		}
		httpjson.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.PasswordHash == nil {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID.Hex(), user.Role)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not sign in")
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	httpjson.Data(w, http.StatusOK, authPayload{User: toUserDTO(*user), Token: token})
}
