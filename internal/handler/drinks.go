package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

type publicDrinksResponse struct {
	Records []model.DrinkRecord `json:"records"`
	Totals  model.DrinkTotals   `json:"totals"`
}

// ListDrinks возвращает записи напитков по параметрам from, to и employee.
func (h *Handler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	f, err := parseDrinkFilter(r)
	if err != nil {
		h.writeError(w, r, "list drinks", err)
		return
	}

	records, err := h.service.ListDrinks(r.Context(), tenantID(r), f)
	if err != nil {
		h.writeError(w, r, "list drinks", err)
		return
	}
	if records == nil {
		records = []model.DrinkRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

// PublicDrinks публичная выборка записей арендатора с итогами, без изменения данных.
func (h *Handler) PublicDrinks(w http.ResponseWriter, r *http.Request) {
	f, err := parseDrinkFilter(r)
	if err != nil {
		h.writeError(w, r, "public drinks", err)
		return
	}

	records, totals, err := h.service.PublicDrinks(r.Context(), chi.URLParam(r, "tenantID"), f)
	if err != nil {
		h.writeError(w, r, "public drinks", err)
		return
	}
	if records == nil {
		records = []model.DrinkRecord{}
	}
	h.writeJSON(w, http.StatusOK, publicDrinksResponse{Records: records, Totals: totals})
}

// CreateDrink создаёт недельную запись.
func (h *Handler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	var d model.DrinkRecord
	if err := decodeJSON(r, &d); err != nil {
		h.writeError(w, r, "create drink", err)
		return
	}

	created, err := h.service.CreateDrink(r.Context(), tenantID(r), d)
	if err != nil {
		h.writeError(w, r, "create drink", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// PatchDrink частично обновляет запись.
func (h *Handler) PatchDrink(w http.ResponseWriter, r *http.Request) {
	var p model.DrinkPatch
	if err := decodeJSON(r, &p); err != nil {
		h.writeError(w, r, "patch drink", err)
		return
	}

	saved, err := h.service.PatchDrink(r.Context(), tenantID(r), chi.URLParam(r, "id"), p)
	if err != nil {
		h.writeError(w, r, "patch drink", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// AddDrinkUnit добавляет один напиток.
func (h *Handler) AddDrinkUnit(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.AddDrinkUnit(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "add drink unit", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// RemoveDrinkUnit убирает один напиток.
func (h *Handler) RemoveDrinkUnit(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.RemoveDrinkUnit(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "remove drink unit", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// DeleteDrink удаляет запись.
func (h *Handler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDrink(r.Context(), tenantID(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, "delete drink", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
