// internal/app/features/courses/routes.go
package courses

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted at /courses. The catalog is public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	// compare must be registered before the id route so "compare" is not
	// parsed as a course id
	r.Get("/compare", h.ServeCompare)
	r.Get("/{id}", h.ServeCourse)

	return r
}
