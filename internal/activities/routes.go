package activities

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/activities", h.List)
	r.Get("/activities/agenda", h.Agenda)
	r.Post("/activities", h.Create)
	r.Get("/activities/{id}", h.Show)
	r.Patch("/activities/{id}", h.Update)
	r.Post("/activities/{id}/complete", h.Complete)
	r.Delete("/activities/{id}", h.Delete)
}
