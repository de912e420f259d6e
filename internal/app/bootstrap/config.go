// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/announcehub/internal/app/system/auditlog"
	"github.com/dalemusser/announcehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for announcehub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: ANNOUNCEHUB_MONGO_URI, ANNOUNCEHUB_AUTH_GATE, etc.
//   - Command-line flags: --mongo_uri, --auth_gate, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mergington_high", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "announcehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 24h, 30m)"},

	{Name: "auth_gate", Default: auth.GateSession, Desc: "Identity source for announcement writes: 'session' or 'query'"},

	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts allowed per IP and per username in each window"},
	{Name: "login_rate_window", Default: "15m", Desc: "Login rate limit window"},

	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_announcements", Default: "all", Desc: "Announcement write logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "bootstrap_teacher_username", Default: "", Desc: "Teacher account created or reset on startup"},
	{Name: "bootstrap_teacher_password", Default: "", Desc: "Password for the bootstrap teacher"},
	{Name: "bootstrap_teacher_name", Default: "", Desc: "Display name for the bootstrap teacher"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence is flags > env > files > defaults; app keys read from
// ANNOUNCEHUB_* environment variables.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ANNOUNCEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		AuthGate: appValues.String("auth_gate"),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", 15*time.Minute),

		AuditLogAuth:          appValues.String("audit_log_auth"),
		AuditLogAnnouncements: appValues.String("audit_log_announcements"),

		BootstrapTeacherUsername: appValues.String("bootstrap_teacher_username"),
		BootstrapTeacherPassword: appValues.String("bootstrap_teacher_password"),
		BootstrapTeacherName:     appValues.String("bootstrap_teacher_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that cannot start.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if _, err := auth.NewGate(appCfg.AuthGate); err != nil {
		return err
	}
	if appCfg.AuthGate == auth.GateQuery {
		logger.Warn("auth_gate=query trusts the username query parameter; use only behind a proxy that sets it")
	}
	if appCfg.LoginRateLimit <= 0 || appCfg.LoginRateWindow <= 0 {
		return fmt.Errorf("login_rate_limit and login_rate_window must be positive")
	}
	if err := appCfg.auditConfig().Validate(); err != nil {
		return err
	}
	if appCfg.BootstrapTeacherUsername != "" && appCfg.BootstrapTeacherPassword == "" {
		return fmt.Errorf("bootstrap_teacher_password is required when bootstrap_teacher_username is set")
	}
	return nil
}

func (c AppConfig) auditConfig() auditlog.Config {
	return auditlog.Config{Auth: c.AuditLogAuth, Announcements: c.AuditLogAnnouncements}
}
