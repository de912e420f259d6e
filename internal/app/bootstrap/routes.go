// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"sync"

	announcementsfeature "github.com/dalemusser/announcehub/internal/app/features/announcements"
	auditlogfeature "github.com/dalemusser/announcehub/internal/app/features/auditlog"
	healthfeature "github.com/dalemusser/announcehub/internal/app/features/health"
	loginfeature "github.com/dalemusser/announcehub/internal/app/features/login"
	announcementstore "github.com/dalemusser/announcehub/internal/app/store/announcements"
	"github.com/dalemusser/announcehub/internal/app/store/audit"
	teacherstore "github.com/dalemusser/announcehub/internal/app/store/teachers"
	"github.com/dalemusser/announcehub/internal/app/system/auditlog"
	"github.com/dalemusser/announcehub/internal/app/system/auth"
	"github.com/dalemusser/announcehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	bgMu     sync.Mutex
	bgCancel context.CancelFunc
)

// stopBackground cancels goroutines started by BuildHandler.
func stopBackground() {
	bgMu.Lock()
	defer bgMu.Unlock()
	if bgCancel != nil {
		bgCancel()
		bgCancel = nil
	}
}

// BuildHandler constructs the root router.
//
// Session middleware runs on every request so both the /auth endpoints and
// the session gate see the signed-in teacher. Announcement reads are public;
// writes resolve identity through the configured gate. /audit requires a
// signed-in teacher.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	gate, err := auth.NewGate(appCfg.AuthGate)
	if err != nil {
		return nil, err
	}
	logger.Info("auth gate selected", zap.String("gate", appCfg.AuthGate))

	limiter := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	ctx, cancel := context.WithCancel(context.Background())
	bgMu.Lock()
	if bgCancel != nil {
		bgCancel()
	}
	bgCancel = cancel
	bgMu.Unlock()
	go limiter.Run(ctx)

	auditLog := auditlog.New(audit.New(deps.MongoDatabase), logger, appCfg.auditConfig())

	return newRouter(deps, sessionMgr, gate, limiter, auditLog, logger), nil
}

func newRouter(deps DBDeps, sessionMgr *auth.SessionManager, gate auth.Gate, limiter *ratelimit.LoginLimiter, auditLog *auditlog.Logger, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	loginHandler := loginfeature.NewHandler(teacherstore.New(deps.MongoDatabase), sessionMgr, limiter, auditLog, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	annHandler := announcementsfeature.NewHandler(announcementstore.New(deps.MongoDatabase), gate, auditLog, logger)
	r.Mount("/announcements", announcementsfeature.Routes(annHandler))

	auditHandler := auditlogfeature.NewHandler(audit.New(deps.MongoDatabase), logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	return r
}
