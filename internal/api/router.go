package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cryptotax-micro/backend/internal/api/handlers"
	custommiddleware "github.com/cryptotax-micro/backend/internal/api/middleware"
	"github.com/cryptotax-micro/backend/internal/config"
	"github.com/cryptotax-micro/backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	taxService *service.TaxService,
	reportService *service.ReportService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		calculateHandler := handlers.NewCalculateHandler(taxService)
		r.Post("/calculate", calculateHandler.Calculate)
		r.Post("/calculate/compare", calculateHandler.Compare)
		r.Post("/upload-csv", calculateHandler.UploadCSV)
		r.Get("/sample-csv", calculateHandler.SampleCSV)

		r.Route("/report", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(reportService)
			r.Post("/", reportHandler.CreateReport)
			r.Get("/", reportHandler.ListReports)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", reportHandler.GetReport)
				r.Delete("/", reportHandler.DeleteReport)
			})
		})
	})

	return r
}
