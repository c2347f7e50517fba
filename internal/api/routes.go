package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the API endpoints under /api on r. generateLimit
// guards the generation endpoints; nil leaves them unguarded.
func RegisterRoutes(
	r chi.Router,
	generationHandler *GenerationHandler,
	catalogHandler *CatalogHandler,
	generateLimit func(http.Handler) http.Handler,
) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", catalogHandler.Health)

		r.Group(func(r chi.Router) {
			if generateLimit != nil {
				r.Use(generateLimit)
			}
			r.Post("/generate", generationHandler.Generate)
			r.Post("/generate/single", generationHandler.GenerateSingle)
		})
		r.Get("/generations/recent", generationHandler.RecentGenerations)

		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/platforms", catalogHandler.ListPlatforms)

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", catalogHandler.ListPrompts)
			r.Get("/trending", catalogHandler.TrendingPrompts)
			r.Get("/featured", catalogHandler.FeaturedPrompts)
			r.Get("/search", catalogHandler.SearchPrompts)
			r.Get("/platform/{platformId}", catalogHandler.PromptsByPlatform)
			r.Get("/category/{categoryId}", catalogHandler.PromptsByCategory)
			r.Get("/{id}", catalogHandler.GetPrompt)
		})

		r.Post("/analytics", catalogHandler.RecordAnalytics)
		r.Get("/stats", catalogHandler.Stats)
	})
}
