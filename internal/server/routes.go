package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uuidy/internal/classify"
	"uuidy/internal/db"
	"uuidy/internal/handlers/api"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, svc *classify.Service) {
	classifyHandler := api.NewClassifyHandler(svc)
	probeHandler := api.NewProbeHandler(database)

	// Service info
	s.App.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "uuidy",
			"status":  "ok",
		})
	})

	// Classification API
	s.App.Get("/api/classify/:uuid", classifyHandler.Get)
	s.App.Post("/api/classify", classifyHandler.Post)

	// Probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Prometheus scrape endpoint
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
