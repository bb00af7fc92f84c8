package handlers

import (
	"net/http"

	"github.com/sitewatch/sitewatch-backend/internal/application/dashboard"
	"github.com/sitewatch/sitewatch-backend/internal/metrics"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/response"
)

type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.SetCamerasOnline(sum.CamerasOnline)
	response.OK(w, sum)
}
