package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HomeHandler struct {
	render       *render.Render
	db           *gorm.DB
	dashboardSvc *services.DashboardService
}

func NewHomeHandler(r *render.Render, db *gorm.DB, dashboardSvc *services.DashboardService) *HomeHandler {
	return &HomeHandler{
		render:       r,
		db:           db,
		dashboardSvc: dashboardSvc,
	}
}

// Health reports 503 when the database does not answer a ping.
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	_ = h.render.JSON(w, code, map[string]string{"status": status})
}

func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardSvc.Get(r.Context(), currentUser(r))
	if err != nil {
		writeError(h.render, w, "HomeHandler.Dashboard", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, dashboard)
}
