// internal/app/features/announcements/handler.go
package announcements

import (
	"errors"
	"net/http"

	"github.com/dalemusser/announcehub/internal/app/system/auditlog"
	"github.com/dalemusser/announcehub/internal/app/system/auth"
	"github.com/dalemusser/announcehub/internal/app/system/httpjson"
	"github.com/dalemusser/announcehub/internal/app/system/timeouts"
	"github.com/dalemusser/announcehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the announcements JSON API.
type Handler struct {
	Service  *Service
	Gate     auth.Gate
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs an announcements Handler. auditLog may be nil.
func NewHandler(store Store, gate auth.Gate, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Service:  NewService(store),
		Gate:     gate,
		AuditLog: auditLog,
		Log:      logger,
	}
}

// List handles GET /announcements/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list announcements")
	defer cancel()

	list, err := h.Service.List(ctx)
	if err != nil {
		h.fail(w, err, "list")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// Create handles POST /announcements/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Gate.Identity(r)
	if !ok {
		h.fail(w, ErrUnauthenticated, "create")
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create announcement")
	defer cancel()

	ann, err := h.Service.Create(ctx, in, identity)
	if err != nil {
		h.fail(w, err, "create")
		return
	}
	h.AuditLog.AnnouncementCreated(ctx, r, identity, ann.ID)
	httpjson.Write(w, http.StatusOK, ann)
}

// Update handles PUT /announcements/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity, ok := h.Gate.Identity(r)
	if !ok {
		h.fail(w, ErrUnauthenticated, "update")
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update announcement")
	defer cancel()

	echo, err := h.Service.Update(ctx, id, in, identity)
	if err != nil {
		h.fail(w, err, "update")
		return
	}
	h.AuditLog.AnnouncementUpdated(ctx, r, identity, id, in.Fields())
	httpjson.Write(w, http.StatusOK, echo)
}

// Delete handles DELETE /announcements/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity, ok := h.Gate.Identity(r)
	if !ok {
		h.fail(w, ErrUnauthenticated, "delete")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete announcement")
	defer cancel()

	if err := h.Service.Delete(ctx, id, identity); err != nil {
		h.fail(w, err, "delete")
		return
	}
	h.AuditLog.AnnouncementDeleted(ctx, r, identity, id)
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}

// decode reads the request body. On failure it has already written a 413
// or 422.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (models.AnnouncementInput, bool) {
	var in models.AnnouncementInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		if httpjson.IsTooLarge(err) {
			httpjson.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
		} else {
			httpjson.Error(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		}
		return models.AnnouncementInput{}, false
	}
	return in, true
}

// fail maps service errors to responses.
func (h *Handler) fail(w http.ResponseWriter, err error, op string) {
	var inputErr *InputError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
	case errors.As(err, &inputErr):
		httpjson.Error(w, http.StatusBadRequest, inputErr.Detail)
	default:
		h.Log.Error("announcements: store call failed",
			zap.String("op", op),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
