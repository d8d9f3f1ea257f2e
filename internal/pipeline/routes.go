package pipeline

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/pipeline/board", h.Board)
	r.Get("/opportunities", h.List)
	r.Post("/opportunities", h.Create)
	r.Get("/opportunities/{id}", h.Show)
	r.Patch("/opportunities/{id}", h.Update)
	r.Post("/opportunities/{id}/stage", h.MoveStage)
	r.Delete("/opportunities/{id}", h.Delete)
}
