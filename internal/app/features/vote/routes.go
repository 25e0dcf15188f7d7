// internal/app/features/vote/routes.go
package vote

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/details", h.Details)
	r.Post("/add", h.Add)
	return r
}
