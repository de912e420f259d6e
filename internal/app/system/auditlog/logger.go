// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/announcehub/internal/app/store/audit"
	"github.com/dalemusser/announcehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destination modes for a category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// Config picks a destination mode per category.
type Config struct {
	Auth          string
	Announcements string
}

// ValidMode reports whether m is one of the destination modes.
func ValidMode(m string) bool {
	switch m {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Validate checks both modes.
func (c Config) Validate() error {
	if !ValidMode(c.Auth) {
		return fmt.Errorf("audit_log_auth: unknown mode %q", c.Auth)
	}
	if !ValidMode(c.Announcements) {
		return fmt.Errorf("audit_log_announcements: unknown mode %q", c.Announcements)
	}
	return nil
}

// EventStore persists audit events.
type EventStore interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger records audit events to an EventStore and to zap.
// A nil *Logger is a no-op.
type Logger struct {
	store  EventStore
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store EventStore, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log routes event according to its category's mode. Unknown categories
// go everywhere.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	mode := ModeAll
	switch event.Category {
	case audit.CategoryAuth:
		mode = l.config.Auth
	case audit.CategoryAnnouncements:
		mode = l.config.Announcements
	}
	if mode == ModeOff {
		return
	}

	if mode == ModeAll || mode == ModeLog {
		l.logToZap(event)
	}
	if (mode == ModeAll || mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func requestEvent(r *http.Request, category, eventType, actor string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		Actor:     actor,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, username string) {
	l.Log(ctx, requestEvent(r, audit.CategoryAuth, audit.EventLoginSuccess, username))
}

// LoginFailedUserNotFound logs a login for an unknown username.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attempted string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedUserNotFound, attempted)
	e.Success = false
	e.FailureReason = "user not found"
	l.Log(ctx, e)
}

// LoginFailedWrongPassword logs a login with a bad password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, username string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedWrongPassword, username)
	e.Success = false
	e.FailureReason = "wrong password"
	l.Log(ctx, e)
}

// LoginRateLimited logs a throttled login attempt.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attempted string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedRateLimit, attempted)
	e.Success = false
	e.FailureReason = "rate limited"
	l.Log(ctx, e)
}

// Logout logs a sign-out. username may be empty for an anonymous logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, username string) {
	l.Log(ctx, requestEvent(r, audit.CategoryAuth, audit.EventLogout, username))
}

// --- Announcement Events ---

// AnnouncementCreated logs a new announcement.
func (l *Logger) AnnouncementCreated(ctx context.Context, r *http.Request, actor, id string) {
	e := requestEvent(r, audit.CategoryAnnouncements, audit.EventAnnouncementCreated, actor)
	e.Details = map[string]string{"announcement_id": id}
	l.Log(ctx, e)
}

// AnnouncementUpdated logs an update; fields lists the keys that were set.
func (l *Logger) AnnouncementUpdated(ctx context.Context, r *http.Request, actor, id string, fields []string) {
	e := requestEvent(r, audit.CategoryAnnouncements, audit.EventAnnouncementUpdated, actor)
	e.Details = map[string]string{"announcement_id": id}
	if len(fields) > 0 {
		e.Details["fields"] = strings.Join(fields, ",")
	}
	l.Log(ctx, e)
}

// AnnouncementDeleted logs a delete request.
func (l *Logger) AnnouncementDeleted(ctx context.Context, r *http.Request, actor, id string) {
	e := requestEvent(r, audit.CategoryAnnouncements, audit.EventAnnouncementDeleted, actor)
	e.Details = map[string]string{"announcement_id": id}
	l.Log(ctx, e)
}
