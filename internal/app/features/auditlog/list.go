// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/announcehub/internal/app/store/audit"
	"github.com/dalemusser/announcehub/internal/app/system/httpjson"
	"github.com/dalemusser/announcehub/internal/app/system/timeouts"
	"github.com/dalemusser/announcehub/internal/domain/models"
	"go.uber.org/zap"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// ServeList handles GET /audit/ and returns matching events, newest first.
//
// Query parameters: category, event_type, actor, since (timestamp) and
// limit (1 to 500, default 100).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := audit.QueryFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		EventType: strings.TrimSpace(q.Get("event_type")),
		Actor:     strings.TrimSpace(q.Get("actor")),
		Limit:     defaultLimit,
	}

	if s := strings.TrimSpace(q.Get("limit")); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 || n > maxLimit {
			httpjson.Error(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		filter.Limit = n
	}
	if s := strings.TrimSpace(q.Get("since")); s != "" {
		t, err := models.ParseTimestamp(s)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "since must be a timestamp")
			return
		}
		filter.Since = &t
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit log list")
	defer cancel()

	var (
		events []audit.Event
		err    error
	)
	if filter.Category == "" && filter.EventType == "" && filter.Actor == "" && filter.Since == nil {
		events, err = h.Events.GetRecent(ctx, filter.Limit)
	} else {
		events, err = h.Events.Query(ctx, filter)
	}
	if err != nil {
		h.Log.Error("audit log list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httpjson.Write(w, http.StatusOK, events)
}
