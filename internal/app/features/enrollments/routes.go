// internal/app/features/enrollments/routes.go
package enrollments

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// Routes returns the subrouter mounted at /enrollments. Everything here
// requires authentication.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleEnroll)
		pr.Get("/mine", h.ServeMine)
		pr.Patch("/{id}", h.HandleUpdate)
	})

	return r
}
