package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/announcehub/internal/app/store/audit"
	"github.com/dalemusser/announcehub/internal/app/system/auditlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memStore struct {
	events []audit.Event
	err    error
}

func (m *memStore) Log(ctx context.Context, e audit.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func newLogger(cfg auditlog.Config) (*auditlog.Logger, *memStore, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &memStore{}
	return auditlog.New(store, zap.New(core), cfg), store, logs
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	req := httptest.NewRequest("POST", "/auth/login", nil)

	logger.Log(context.Background(), audit.Event{EventType: "test"})
	logger.LoginSuccess(context.Background(), req, "alice")
	logger.AnnouncementDeleted(context.Background(), req, "alice", "a1")
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		mode      string
		wantDB    int
		wantLines int
	}{
		{auditlog.ModeAll, 1, 1},
		{auditlog.ModeDB, 1, 0},
		{auditlog.ModeLog, 0, 1},
		{auditlog.ModeOff, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			logger, store, logs := newLogger(auditlog.Config{Auth: tt.mode, Announcements: auditlog.ModeOff})
			logger.LoginSuccess(context.Background(), httptest.NewRequest("POST", "/auth/login", nil), "alice")

			if len(store.events) != tt.wantDB {
				t.Errorf("stored: got %d, want %d", len(store.events), tt.wantDB)
			}
			if logs.Len() != tt.wantLines {
				t.Errorf("log lines: got %d, want %d", logs.Len(), tt.wantLines)
			}
		})
	}
}

func TestLogger_CategoriesAreIndependent(t *testing.T) {
	logger, store, _ := newLogger(auditlog.Config{Auth: auditlog.ModeOff, Announcements: auditlog.ModeDB})
	req := httptest.NewRequest("PUT", "/announcements/a1", nil)

	logger.LoginSuccess(context.Background(), req, "alice")
	logger.AnnouncementUpdated(context.Background(), req, "alice", "a1", []string{"message", "start_date"})

	if len(store.events) != 1 {
		t.Fatalf("expected only the announcement event, got %+v", store.events)
	}
	e := store.events[0]
	if e.EventType != audit.EventAnnouncementUpdated || e.Actor != "alice" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Details["announcement_id"] != "a1" || e.Details["fields"] != "message,start_date" {
		t.Errorf("unexpected details: %v", e.Details)
	}
}

func TestLogger_FailedLoginIsWarn(t *testing.T) {
	logger, store, logs := newLogger(auditlog.Config{Auth: auditlog.ModeAll, Announcements: auditlog.ModeAll})
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	logger.LoginFailedWrongPassword(context.Background(), req, "alice")

	if len(store.events) != 1 || store.events[0].Success || store.events[0].IP != "203.0.113.7" {
		t.Errorf("unexpected event: %+v", store.events)
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Errorf("expected one warn entry, got %+v", entries)
	}
}

func TestLogger_StoreErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &memStore{err: errors.New("write failed")}
	logger := auditlog.New(store, zap.New(core), auditlog.Config{Auth: auditlog.ModeDB, Announcements: auditlog.ModeDB})

	logger.Logout(context.Background(), httptest.NewRequest("POST", "/auth/logout", nil), "alice")

	if logs.FilterMessage("failed to store audit event").Len() != 1 {
		t.Errorf("expected a store failure log line, got %+v", logs.All())
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (auditlog.Config{Auth: "all", Announcements: "off"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (auditlog.Config{Auth: "loud", Announcements: "off"}).Validate(); err == nil {
		t.Error("expected error for unknown auth mode")
	}
	if err := (auditlog.Config{Auth: "all", Announcements: ""}).Validate(); err == nil {
		t.Error("expected error for empty announcements mode")
	}
}
