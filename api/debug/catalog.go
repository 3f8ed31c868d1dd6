package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (drm *DebugRoutesManager) InvalidateCatalog(w http.ResponseWriter, r *http.Request) {
	drm.cache.Invalidate()

	gecho.Success(w,
		gecho.WithMessage("Catalog cache invalidated"),
		gecho.Send(),
	)
}

func (drm *DebugRoutesManager) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := drm.cache.Refresh(r.Context()); err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Catalog refresh failed"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Catalog refreshed"),
		gecho.Send(),
	)
}
