package handlers

import (
	"net/http"

	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/store"
)

// DashboardHandler собирает служебные эндпоинты администратора.
type DashboardHandler struct {
	dashboardService services.DashboardService
	store            *store.Store
}

func NewDashboardHandler(s services.DashboardService, st *store.Store) *DashboardHandler {
	return &DashboardHandler{dashboardService: s, store: st}
}

// Status обрабатывает GET /api/admin/status
func (h *DashboardHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.dashboardService.GetStatus(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TableCounts обрабатывает GET /api/admin/status/tables
func (h *DashboardHandler) TableCounts(w http.ResponseWriter, r *http.Request) {
	tables, err := h.dashboardService.ListTableCounts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tables": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportReports обрабатывает POST /api/admin/reports/export
func (h *DashboardHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.ExportSnapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"key": res.Key, "url": res.Location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearNotifications обрабатывает DELETE /api/admin/notifications
func (h *DashboardHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.store.ClearNotifications()
	w.WriteHeader(http.StatusNoContent)
}
