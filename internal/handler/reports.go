package handler

import (
	"net/http"
)

// TabsReport возвращает итоги закрытых счетов за даты from..to.
func (h *Handler) TabsReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		h.writeError(w, r, "tabs report", err)
		return
	}

	report, err := h.service.TabsReport(r.Context(), tenantID(r), from, to)
	if err != nil {
		h.writeError(w, r, "tabs report", err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// Summary возвращает сводный отчёт за даты from..to.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		h.writeError(w, r, "summary", err)
		return
	}

	summary, err := h.service.Summary(r.Context(), tenantID(r), from, to)
	if err != nil {
		h.writeError(w, r, "summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}
