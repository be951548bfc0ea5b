package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterConfig holds all dependencies needed to build the router.
type RouterConfig struct {
	Health   *HealthHandler
	Password *PasswordHandler
	Email    *EmailHandler
	Scan     *ScanHandler
	Logger   *zap.Logger
}

// NewRouter creates the chi router with middleware and all routes.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(WithRequestLogging(cfg.Logger))
	}
	r.Use(CORSMiddleware)
	r.Use(securityHeaders)

	r.Get("/", cfg.Health.Root)
	r.Get("/api/health", cfg.Health.Health)

	r.Route("/api/security", func(r chi.Router) {
		// Limit request body size to 1MB
		r.Use(MaxBodySize(1 << 20))

		r.Post("/check-password", cfg.Password.Check)
		r.Post("/check-email", cfg.Email.Check)
		r.Post("/scan-domain", cfg.Scan.ScanDomain)

		r.Get("/my-ip", cfg.Scan.MyIP)
		r.Get("/security-news", cfg.Scan.SecurityNews)
		r.Get("/api-usage", cfg.Scan.APIUsage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Error: "Not found"})
	})

	return r
}
