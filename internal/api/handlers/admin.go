package handlers

import (
	"fmt"
	"net/http"

	"github.com/smartewaste/ewaste-backend/internal/api/httpx"
	"github.com/smartewaste/ewaste-backend/internal/metrics"
	"github.com/smartewaste/ewaste-backend/internal/middleware"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/services"
)

type AdminHandler struct {
	Users   *services.UserService
	Stats   *services.StatsService
	Reports *services.ReportService
}

func NewAdminHandler(users *services.UserService, stats *services.StatsService, reports *services.ReportService) *AdminHandler {
	return &AdminHandler{Users: users, Stats: stats, Reports: reports}
}

func (h *AdminHandler) Collectors(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	collectors, err := h.Users.ListCollectors(r.Context(), actor)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	if collectors == nil {
		collectors = []models.UserRef{}
	}
	httpx.WriteJSON(w, http.StatusOK, collectors)
}

func (h *AdminHandler) RegisterCollector(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var in services.RegisterInput
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	u, p, err := h.Users.RegisterCollector(r.Context(), actor, in)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":   "Collector account created",
		"collector": accountOf(u, p),
	})
}

func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	stats, err := h.Stats.Stats(r.Context(), actor)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) MonthlyReportPDF(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	// the header carries the admin's display name
	generatedBy := actor.ID
	if u, _, err := h.Users.Me(r.Context(), actor.ID); err == nil {
		generatedBy = u.Username
	}

	pdf, filename, err := h.Reports.MonthlyPDF(r.Context(), actor, generatedBy, r.URL.Query().Get("month"))
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	metrics.ReportsRendered.Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
