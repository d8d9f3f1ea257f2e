package orders

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Post("/orders", h.Create)
	r.Post("/orders/quick", h.QuickCreate)
	r.Get("/orders/{id}", h.Show)
	r.Patch("/orders/{id}", h.Update)
	r.Delete("/orders/{id}", h.Delete)
}
