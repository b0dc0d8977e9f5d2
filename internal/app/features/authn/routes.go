// internal/app/features/authn/routes.go
package authn

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// Routes returns the subrouter mounted at /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Get("/google", h.ServeGoogleLogin)
	r.Get("/google/callback", h.ServeGoogleCallback)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
	})

	return r
}
