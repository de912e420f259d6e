// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	"github.com/dalemusser/announcehub/internal/app/store/audit"
	"go.uber.org/zap"
)

// Events reads audit records.
type Events interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	GetRecent(ctx context.Context, limit int64) ([]audit.Event, error)
}

type Handler struct {
	Events Events
	Log    *zap.Logger
}

// NewHandler constructs an audit log feature handler.
func NewHandler(events Events, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		Log:    logger,
	}
}
