package authn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
 | GET /auth/google                                                            |
 | Initiates the Google OAuth flow by redirecting to Google's consent screen.  |
 *─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		h.redirectToLogin(w, r, "google-disabled")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	state, err := h.StateStore.Issue(ctx)
	if err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		h.redirectToLogin(w, r, "google")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | GET /auth/google/callback                                                   |
 | Exchanges the code, fetches the Google profile, reconciles it with the      |
 | user store, and hands the browser back to the frontend with a token.        |
 *─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.redirectToLogin(w, r, "google")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		h.redirectToLogin(w, r, "google")
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		h.redirectToLogin(w, r, "google")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		h.redirectToLogin(w, r, "google")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		h.redirectToLogin(w, r, "google")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		h.redirectToLogin(w, r, "google")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		h.redirectToLogin(w, r, "google")
		return
	}

	user, err := h.resolveGoogleUser(ctxTimeout, googleUser)
	if err != nil {
		h.Log.Error("failed to resolve Google user", zap.Error(err),
			zap.String("google_id", googleUser.ID))
		h.redirectToLogin(w, r, "google")
		return
	}

	bearer, err := auth.IssueToken(user.ID.Hex(), user.Role)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		h.redirectToLogin(w, r, "google")
		return
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", user.ID.Hex()))

	dest := h.FrontendURL + "/oauth-success?token=" + url.QueryEscape(bearer)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | User reconciliation                                                         |
 *─────────────────────────────────────────────────────────────────────────────*/

// resolveGoogleUser maps a Google profile to a user record: by linked
// google_id first, then by email (linking the google_id on first use),
// and finally by creating a student account. An existing non-empty name
// is never overwritten by the profile name.
func (h *Handler) resolveGoogleUser(ctx context.Context, gu *googleUserInfo) (*models.User, error) {
	user, err := h.Users.GetByGoogleID(ctx, gu.ID)
	if err == nil {
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	user, err = h.Users.GetByEmail(ctx, gu.Email)
	if err == nil {
		if err := h.Users.LinkGoogleID(ctx, user.ID, gu.ID); err != nil {
			h.Log.Warn("failed to link google_id",
				zap.Error(err), zap.String("user_id", user.ID.Hex()))
		}
		if user.Name == "" {
			if err := h.Users.SetNameIfEmpty(ctx, user.ID, gu.Name); err != nil {
				h.Log.Warn("failed to backfill name",
					zap.Error(err), zap.String("user_id", user.ID.Hex()))
			}
		}
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	googleID := gu.ID
	created, err := h.Users.Create(ctx, models.User{
		Name:     gu.Name,
		Email:    gu.Email,
		Role:     "student",
		GoogleID: &googleID,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// redirectToLogin sends the browser back to the frontend login page with
// an error flag. OAuth failures never surface as 5xx to the browser.
func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, h.FrontendURL+"/login?error="+errorCode, http.StatusSeeOther)
}
