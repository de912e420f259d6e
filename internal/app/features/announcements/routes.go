// internal/app/features/announcements/routes.go
package announcements

import "github.com/go-chi/chi/v5"

// Routes returns the announcements router. Reads are public; writes
// consult the handler's Gate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
