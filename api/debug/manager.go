package debug

import (
	"konigfood_server/catalog"
	"konigfood_server/config"

	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	cache *catalog.Cache
}

func NewDebugRoutesManager(cache *catalog.Cache) *DebugRoutesManager {
	return &DebugRoutesManager{
		cache: cache,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !config.IsProduction() {
		r.Route("/debug", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Post("/catalog/invalidate", drm.InvalidateCatalog)
				r.Post("/catalog/refresh", drm.RefreshCatalog)
			})
		})
	}
}
