package accounts

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts", h.List)
	r.Post("/accounts", h.Create)
	r.Get("/accounts/{id}", h.Show)
	r.Patch("/accounts/{id}", h.Update)
	r.Get("/accounts/{id}/snapshot", h.Snapshot)
}
