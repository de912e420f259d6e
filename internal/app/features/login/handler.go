// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	teacherstore "github.com/dalemusser/announcehub/internal/app/store/teachers"
	"github.com/dalemusser/announcehub/internal/app/system/auditlog"
	"github.com/dalemusser/announcehub/internal/app/system/auth"
	"github.com/dalemusser/announcehub/internal/app/system/httpjson"
	"github.com/dalemusser/announcehub/internal/app/system/ratelimit"
	"github.com/dalemusser/announcehub/internal/app/system/timeouts"
	"github.com/dalemusser/announcehub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Teachers looks up teacher accounts by username.
type Teachers interface {
	GetByUsername(ctx context.Context, username string) (*models.Teacher, error)
}

// Handler issues and clears teacher sessions.
type Handler struct {
	Teachers   Teachers
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	AuditLog   *auditlog.Logger
	Log        *zap.Logger

	validate *validator.Validate
}

// NewHandler constructs a login Handler. limiter may be nil to disable
// throttling; auditLog may be nil.
func NewHandler(teachers Teachers, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Teachers:   teachers,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		AuditLog:   auditLog,
		Log:        logger,
		validate:   newValidator(),
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=256"`
}

// profile is the signed-in teacher as returned to the client.
type profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		if httpjson.IsTooLarge(err) {
			httpjson.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
		} else {
			httpjson.Error(w, http.StatusUnprocessableEntity, "Invalid request body")
		}
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, req.Username); !ok {
			h.AuditLog.LoginRateLimited(r.Context(), r, req.Username)
			httpjson.Error(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Teachers.GetByUsername(ctx, req.Username)
	switch {
	case errors.Is(err, teacherstore.ErrNotFound):
		h.AuditLog.LoginFailedUserNotFound(ctx, r, req.Username)
		httpjson.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	case err != nil:
		h.Log.Error("login: find teacher", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if !teacherstore.CheckPassword(req.Password, t.PasswordHash) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, t.Username)
		httpjson.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	u := auth.SessionUser{Username: t.Username, Name: t.DisplayName, Role: t.Role}
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("login: save session", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetUser(req.Username)
	}

	h.AuditLog.LoginSuccess(ctx, r, t.Username)
	httpjson.Write(w, http.StatusOK, profileOf(&u))
}

// HandleLogout handles POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	username := ""
	if u, ok := auth.CurrentUser(r); ok {
		username = u.Username
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	h.AuditLog.Logout(r.Context(), r, username)
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}

// ServeCheckSession handles GET /auth/check-session. It is mounted behind
// RequireSignedIn.
func (h *Handler) ServeCheckSession(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	httpjson.Write(w, http.StatusOK, profileOf(u))
}

func profileOf(u *auth.SessionUser) profile {
	return profile{Username: u.Username, DisplayName: u.Name, Role: u.Role}
}
