// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the /auth router. The parent router must run
// LoadSessionUser.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.With(h.SessionMgr.RequireSignedIn).Get("/check-session", h.ServeCheckSession)
	return r
}
