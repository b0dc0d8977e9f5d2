// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to CourseHub lives: database connection details,
// token signing, OAuth credentials, and upload storage paths.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer token configuration
	JWTSecret string        // Secret for signing API tokens (must be strong in production)
	JWTExpiry time.Duration // Token lifetime (default: 168h)

	// Google OAuth configuration (blank disables Google sign-in)
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is this API's externally reachable URL, used to build the
	// OAuth callback address.
	BaseURL string
	// FrontendURL is where OAuth flows redirect the browser afterwards.
	FrontendURL string

	// Certificate upload storage
	UploadDir string // Local directory for uploaded certificate files
	UploadURL string // URL prefix the files are served back under
}
