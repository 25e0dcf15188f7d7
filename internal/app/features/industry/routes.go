// internal/app/features/industry/routes.go
package industry

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/add", h.Add)
	r.Get("/search", h.Search)
	r.Delete("/delete", h.Delete)
	r.Put("/update", h.Update)
	return r
}
