package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/venueops/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервера venueops.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.Logger(h.logger))
	if h.rateLimit != nil {
		r.Use(h.rateLimit)
	}
	r.Use(custommiddleware.GzipMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})

		r.Get("/public/drinks/{tenantID}", h.PublicDrinks)

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.Tenant)

			r.Get("/tabs", h.ListTabs)
			r.Post("/tabs", h.CreateTab)
			r.Put("/tabs/{id}", h.ReplaceTab)
			r.Delete("/tabs/{id}", h.DeleteTab)

			r.Get("/rooms", h.ListRooms)
			r.Post("/rooms", h.CreateRoom)
			r.Patch("/rooms/{id}/finalize", h.FinalizeRoom)
			r.Patch("/rooms/{id}/cancel", h.CancelRoom)
			r.Delete("/rooms/{id}", h.DeleteRoom)

			r.Get("/drinks", h.ListDrinks)
			r.Post("/drinks", h.CreateDrink)
			r.Patch("/drinks/{id}", h.PatchDrink)
			r.Patch("/drinks/{id}/add", h.AddDrinkUnit)
			r.Patch("/drinks/{id}/remove", h.RemoveDrinkUnit)
			r.Delete("/drinks/{id}", h.DeleteDrink)

			r.Get("/reports/tabs", h.TabsReport)
			r.Get("/reports/summary", h.Summary)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
