package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

// ListRooms возвращает сеансы арендатора.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListRooms(r.Context(), tenantID(r))
	if err != nil {
		h.writeError(w, r, "list rooms", err)
		return
	}
	if sessions == nil {
		sessions = []model.RoomSession{}
	}
	h.writeJSON(w, http.StatusOK, sessions)
}

// CreateRoom создаёт сеанс в свободной комнате.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var s model.RoomSession
	if err := decodeJSON(r, &s); err != nil {
		h.writeError(w, r, "create room", err)
		return
	}

	created, err := h.service.CreateRoom(r.Context(), tenantID(r), s)
	if err != nil {
		h.writeError(w, r, "create room", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// FinalizeRoom завершает сеанс.
func (h *Handler) FinalizeRoom(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.FinalizeRoom(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "finalize room", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// CancelRoom отменяет завершённый сеанс.
func (h *Handler) CancelRoom(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.CancelRoom(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "cancel room", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// DeleteRoom удаляет сеанс.
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteRoom(r.Context(), tenantID(r), chi.URLParam(r, "id"), r.URL.Query().Get("room"))
	if err != nil {
		h.writeError(w, r, "delete room", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
