package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/promptnest/promptnest-api/internal/api"
	apiMiddleware "github.com/promptnest/promptnest-api/internal/api/middleware"
)

// setupRouter creates the application router with its middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	api.RegisterRoutes(r,
		api.NewGenerationHandler(app.generationService, app.logger),
		api.NewCatalogHandler(app.catalogService, app.logger),
		apiMiddleware.NewRateLimiter(app.config.Server.GenerateRPS, app.config.Server.GenerateBurst),
	)

	return r
}
