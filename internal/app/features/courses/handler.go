// internal/app/features/courses/handler.go
package courses

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
)

// Handler serves the course catalog.
type Handler struct {
	Courses *coursestore.Store
	Log     *zap.Logger
}

func NewHandler(courses *coursestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Courses: courses, Log: logger}
}

// ServeList handles GET /courses?search&provider&category. With
// platform=external the built-in external catalog is served instead of the
// database; that path additionally honors a level filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if query.Get(r, "platform") == "external" {
		list := coursestore.ListExternal(coursestore.ExternalListParams{
			Search:   query.Get(r, "search"),
			Provider: query.Get(r, "provider"),
			Category: query.Get(r, "category"),
			Level:    query.Get(r, "level"),
		})
		httpjson.Data(w, http.StatusOK, list)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Courses.List(ctx, coursestore.ListParams{
		Search:   query.Get(r, "search"),
		Provider: query.Get(r, "provider"),
		Category: query.Get(r, "category"),
	})
	if err != nil {
		h.Log.Error("list courses failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load courses")
		return
	}

	httpjson.Data(w, http.StatusOK, toCourseDTOs(list))
}

// ServeCourse handles GET /courses/{id}.
func (h *Handler) ServeCourse(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Course not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, http.StatusNotFound, "Course not found")
			return
		}
		h.Log.Error("get course failed", zap.Error(err), zap.String("course_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load course")
		return
	}

	httpjson.Data(w, http.StatusOK, toCourseDTO(*course))
}

// ServeCompare handles GET /courses/compare?ids=a,b&provider&category&title.
// Unparseable ids are skipped rather than rejected. With platform=external
// the ids are matched against the external catalog and the facet filters do
// not apply.
func (h *Handler) ServeCompare(w http.ResponseWriter, r *http.Request) {
	var raw []string
	for _, part := range strings.Split(query.Get(r, "ids"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			raw = append(raw, part)
		}
	}

	if query.Get(r, "platform") == "external" {
		httpjson.Data(w, http.StatusOK, coursestore.CompareExternal(raw))
		return
	}

	var ids []primitive.ObjectID
	for _, part := range raw {
		if id, err := primitive.ObjectIDFromHex(part); err == nil {
			ids = append(ids, id)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Courses.Compare(ctx, coursestore.CompareParams{
		IDs:      ids,
		Provider: query.Get(r, "provider"),
		Category: query.Get(r, "category"),
		Title:    query.Get(r, "title"),
	})
	if err != nil {
		h.Log.Error("compare courses failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not compare courses")
		return
	}

	httpjson.Data(w, http.StatusOK, toCourseDTOs(list))
}
