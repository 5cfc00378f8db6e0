package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/smartewaste/ewaste-backend/internal/api/handlers"
	"github.com/smartewaste/ewaste-backend/internal/auth"
	"github.com/smartewaste/ewaste-backend/internal/config"
	"github.com/smartewaste/ewaste-backend/internal/metrics"
	"github.com/smartewaste/ewaste-backend/internal/middleware"
	"github.com/smartewaste/ewaste-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	UserSvc    *services.UserService
	RequestSvc *services.RequestService
	StatsSvc   *services.StatsService
	ReportSvc  *services.ReportService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return d.Cfg.OriginAllowed(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	ah := handlers.NewAuthHandler(d.UserSvc)
	rh := handlers.NewRequestHandler(d.RequestSvc)
	adh := handlers.NewAdminHandler(d.UserSvc, d.StatsSvc, d.ReportSvc)
	authmw := middleware.NewAuthMiddleware(d.TM)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/forgot-password", ah.ForgotPassword)
		r.Post("/auth/logout", ah.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authmw.Require)

			r.Get("/me", ah.Me)
			r.Get("/profile", ah.GetProfile)
			r.Patch("/profile", ah.PatchProfile)

			r.Get("/requests", rh.List)
			r.Post("/requests", rh.Create)
			r.Get("/requests/{id}", rh.Get)
			r.Patch("/requests/{id}", rh.Patch)
			r.Post("/requests/{id}/assign", rh.Assign)
			r.Post("/requests/{id}/status", rh.UpdateStatus)

			r.Get("/collectors", adh.Collectors)
			r.Post("/collectors/register", adh.RegisterCollector)
			r.Get("/dashboard/stats", adh.DashboardStats)
			r.Get("/reports/monthly-pdf", adh.MonthlyReportPDF)
		})
	})

	return r
}
