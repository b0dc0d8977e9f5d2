// internal/app/features/certificates/routes.go
package certificates

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// Routes returns the subrouter mounted at /certificates.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/mine", h.ServeMine)
		pr.Post("/{enrollmentId}", h.HandleUpload)
	})

	return r
}
