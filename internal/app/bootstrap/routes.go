// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authnfeature "github.com/dalemusser/coursehub/internal/app/features/authn"
	certificatesfeature "github.com/dalemusser/coursehub/internal/app/features/certificates"
	classroomsfeature "github.com/dalemusser/coursehub/internal/app/features/classrooms"
	coursesfeature "github.com/dalemusser/coursehub/internal/app/features/courses"
	enrollmentsfeature "github.com/dalemusser/coursehub/internal/app/features/enrollments"
	healthfeature "github.com/dalemusser/coursehub/internal/app/features/health"
	certificatestore "github.com/dalemusser/coursehub/internal/app/store/certificates"
	classroomstore "github.com/dalemusser/coursehub/internal/app/store/classrooms"
	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	enrollmentstore "github.com/dalemusser/coursehub/internal/app/store/enrollments"
	"github.com/dalemusser/coursehub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CourseHub mounts one feature router per
// API area plus a static file route for uploaded certificates.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CourseHubMongoDatabase

	users := userstore.New(db)
	courses := coursestore.New(db)
	enrollments := enrollmentstore.New(db)
	certificates := certificatestore.New(db)
	classrooms := classroomstore.New(db)
	states := oauthstate.New(db)

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token into a TokenUser in
	// the request context. Handlers read it via auth.CurrentUser(r).
	r.Use(auth.LoadBearerUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CourseHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: local accounts and Google OAuth
	authnHandler := authnfeature.NewHandler(db, users, states,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.FrontendURL, logger)
	r.Mount("/auth", authnfeature.Routes(authnHandler))

	// Course catalog (public)
	coursesHandler := coursesfeature.NewHandler(courses, logger)
	r.Mount("/courses", coursesfeature.Routes(coursesHandler))

	// Enrollments and progress
	enrollmentsHandler := enrollmentsfeature.NewHandler(db, enrollments, courses, logger)
	r.Mount("/enrollments", enrollmentsfeature.Routes(enrollmentsHandler))

	// Certificate uploads
	certificatesHandler := certificatesfeature.NewHandler(db, enrollments, certificates,
		appCfg.UploadDir, appCfg.UploadURL, logger)
	r.Mount("/certificates", certificatesfeature.Routes(certificatesHandler))

	// Classrooms
	classroomsHandler := classroomsfeature.NewHandler(db, classrooms, users, logger)
	r.Mount("/classrooms", classroomsfeature.Routes(classroomsHandler))

	// Uploaded certificate files, served with pre-compressed file support
	uploadPrefix := strings.TrimSuffix(appCfg.UploadURL, "/")
	r.Handle(uploadPrefix+"/*", fileserver.Handler(uploadPrefix, appCfg.UploadDir))

	return r, nil
}
