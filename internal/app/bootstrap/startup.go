// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	announcementstore "github.com/dalemusser/announcehub/internal/app/store/announcements"
	teacherstore "github.com/dalemusser/announcehub/internal/app/store/teachers"
	"github.com/dalemusser/announcehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup applies timeout overrides, seeds the bootstrap teacher and logs
// how many announcements are stored.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts configured from environment",
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium))
	}

	if err := ensureBootstrapTeacher(ctx, deps, appCfg, logger); err != nil {
		return err
	}

	countCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	n, err := announcementstore.New(deps.MongoDatabase).Count(countCtx)
	if err != nil {
		logger.Warn("could not count announcements", zap.Error(err))
		return nil
	}
	logger.Info("announcements loaded", zap.Int64("count", n))
	return nil
}

// ensureBootstrapTeacher creates the configured teacher, or resets its
// password if it already exists. A blank username skips it.
func ensureBootstrapTeacher(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.BootstrapTeacherUsername == "" {
		return nil
	}

	t, err := teacherstore.New(deps.MongoDatabase).Upsert(ctx,
		appCfg.BootstrapTeacherUsername,
		appCfg.BootstrapTeacherName,
		"",
		appCfg.BootstrapTeacherPassword)
	if err != nil {
		return fmt.Errorf("bootstrap teacher: %w", err)
	}
	logger.Info("bootstrap teacher ready",
		zap.String("username", t.Username),
		zap.String("id", t.ID.Hex()))
	return nil
}
