package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

// ListProducts возвращает каталог товаров.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.writeError(w, r, "list products", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	h.writeJSON(w, http.StatusOK, products)
}

// CreateProduct добавляет товар в каталог.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := decodeJSON(r, &p); err != nil {
		h.writeError(w, r, "create product", err)
		return
	}

	created, err := h.service.CreateProduct(r.Context(), p)
	if err != nil {
		h.writeError(w, r, "create product", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// DeleteProduct удаляет товар из каталога.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
