package services

import (
	"context"
	"runtime"
	"time"

	"konigfood_server/catalog"
	"konigfood_server/storage"

	"github.com/MonkyMars/gecho"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"` // in seconds
	CurrentTime  time.Time `json:"current_time"`
	ServiceAlive bool      `json:"service_alive"`
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type storageHealthStatus struct {
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

type catalogHealthStatus struct {
	Cached     bool    `json:"cached"`
	AgeSeconds float64 `json:"age_seconds"`
}

type HealthService struct {
	logger *gecho.Logger
	kv     storage.KV
	cache  *catalog.Cache
	status serverHealthStatus
}

func NewHealthService(logger *gecho.Logger, kv storage.KV, cache *catalog.Cache) *HealthService {
	return &HealthService{
		logger: logger,
		kv:     kv,
		cache:  cache,
		status: serverHealthStatus{
			Uptime:       0,
			CurrentTime:  time.Now(),
			ServiceAlive: true,
			RamStats:     getRamStats(),
		},
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	hs.status.Uptime = time.Since(uptimeStart).Seconds()
	hs.status.CurrentTime = time.Now()
	hs.status.RamStats = getRamStats()
	return hs.status
}

func (hs *HealthService) GetStorageHealthStatus(ctx context.Context) (storageHealthStatus, error) {
	start := time.Now()
	err := hs.kv.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()

	kvStatus := storageHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: elapsed,
	}

	if err != nil {
		hs.logger.Error("Storage health check failed", gecho.Field("error", err))
	}

	return kvStatus, err
}

func (hs *HealthService) GetCatalogHealthStatus() catalogHealthStatus {
	age, ok := hs.cache.Age()
	return catalogHealthStatus{
		Cached:     ok,
		AgeSeconds: age.Seconds(),
	}
}
