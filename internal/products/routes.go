package products

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Get("/products/{id}", h.Show)
	r.Patch("/products/{id}", h.Update)
	r.Get("/accounts/{id}/prices", h.ListClientPrices)
	r.Put("/client-prices", h.SetClientPrice)
	r.Delete("/accounts/{id}/prices/{productID}", h.DeleteClientPrice)
}
