// internal/app/features/classrooms/routes.go
package classrooms

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// Routes returns the subrouter mounted at /classrooms. Creation is
// faculty-only; everything else just needs a signed-in user, with
// ownership checked in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/join", h.HandleJoin)
		pr.Get("/{id}", h.ServeDetail)
		pr.Post("/{id}/recommendations", h.HandleAddRecommendation)
		pr.Delete("/{id}/recommendations/{recId}", h.HandleRemoveRecommendation)

		pr.Group(func(fr chi.Router) {
			fr.Use(auth.RequireRole("faculty"))
			fr.Post("/", h.HandleCreate)
		})
	})

	return r
}
