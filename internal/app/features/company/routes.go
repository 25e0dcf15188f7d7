// internal/app/features/company/routes.go
package company

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/add", h.Add)
	r.Get("/search", h.Search)
	r.Delete("/delete", h.Delete)
	r.Put("/update", h.Update)
	return r
}
