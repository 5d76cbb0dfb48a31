package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

// ListTabs возвращает счета арендатора.
func (h *Handler) ListTabs(w http.ResponseWriter, r *http.Request) {
	tabs, err := h.service.ListTabs(r.Context(), tenantID(r))
	if err != nil {
		h.writeError(w, r, "list tabs", err)
		return
	}
	if tabs == nil {
		tabs = []model.Tab{}
	}
	h.writeJSON(w, http.StatusOK, tabs)
}

// CreateTab создаёт счёт.
func (h *Handler) CreateTab(w http.ResponseWriter, r *http.Request) {
	var t model.Tab
	if err := decodeJSON(r, &t); err != nil {
		h.writeError(w, r, "create tab", err)
		return
	}

	created, err := h.service.CreateTab(r.Context(), tenantID(r), t)
	if err != nil {
		h.writeError(w, r, "create tab", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// ReplaceTab заменяет счёт целиком.
func (h *Handler) ReplaceTab(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var t model.Tab
	if err := decodeJSON(r, &t); err != nil {
		h.writeError(w, r, "replace tab", err)
		return
	}
	if t.ID != "" && t.ID != id {
		h.writeError(w, r, "replace tab", fmt.Errorf("%w: %w", model.ErrValidation, errIDMismatch))
		return
	}
	t.ID = id

	saved, err := h.service.ReplaceTab(r.Context(), tenantID(r), t)
	if err != nil {
		h.writeError(w, r, "replace tab", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// DeleteTab удаляет счёт.
func (h *Handler) DeleteTab(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTab(r.Context(), tenantID(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, "delete tab", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
