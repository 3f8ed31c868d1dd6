package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	healthStatus := hrm.healthService.GetServerHealthStatus()
	gecho.Success(w,
		gecho.WithData(healthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetStorageHealth(w http.ResponseWriter, r *http.Request) {
	kvStatus, err := hrm.healthService.GetStorageHealthStatus(r.Context())
	if err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Storage health check failed"),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(kvStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetCatalogHealth(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(hrm.healthService.GetCatalogHealthStatus()),
		gecho.Send(),
	)
}
