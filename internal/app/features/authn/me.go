package authn

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
)

// ServeMe handles GET /auth/me. The middleware already re-fetched the
// user, so the context copy is current.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	httpjson.Data(w, http.StatusOK, struct {
		User UserDTO `json:"user"`
	}{User: tokenUserDTO(u)})
}
