// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/app/system/auth"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. CourseHub
// uses it to arm the token manager, seed the course catalog, and make sure
// the upload directory exists.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := auth.InitTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger); err != nil {
		return fmt.Errorf("init token manager: %w", err)
	}

	// Fresh user data is fetched on every request so role changes and
	// deleted accounts take effect immediately.
	auth.SetUserFetcher(userstore.NewFetcher(deps.CourseHubMongoDatabase))

	if err := coursestore.New(deps.CourseHubMongoDatabase).EnsureSeeded(ctx, logger); err != nil {
		return fmt.Errorf("seed course catalog: %w", err)
	}

	// The TTL index reaps expired OAuth states on its own schedule; this
	// sweep just keeps a long-stopped instance from carrying stale ones.
	if n, err := oauthstate.New(deps.CourseHubMongoDatabase).CleanupExpired(ctx); err != nil {
		logger.Warn("oauth state cleanup failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("removed expired oauth states", zap.Int64("count", n))
	}

	if err := os.MkdirAll(appCfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload directory %s: %w", appCfg.UploadDir, err)
	}

	return nil
}
