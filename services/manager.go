package services

import (
	"konigfood_server/catalog"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService         *AuthService
	EmailService        *EmailService
	HealthService       *HealthService
	CatalogService      *CatalogService
	AdminCatalogService *AdminCatalogService
	CartService         *CartService
	TableService        *TableService
	OrderService        *OrderService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, kv storage.KV, store catalog.Store, cache *catalog.Cache) *ServiceManager {
	authService := NewAuthService(logger, cfg, kv)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, kv, cache)
	catalogService := NewCatalogService(logger, cache)
	adminCatalogService := NewAdminCatalogService(logger, cfg, store, cache)
	cartService := NewCartService(logger, cfg, kv)
	tableService := NewTableService(logger, cfg, kv)
	orderService := NewOrderService(logger, cfg, catalogService, emailService)

	return &ServiceManager{
		AuthService:         authService,
		EmailService:        emailService,
		HealthService:       healthService,
		CatalogService:      catalogService,
		AdminCatalogService: adminCatalogService,
		CartService:         cartService,
		TableService:        tableService,
		OrderService:        orderService,
	}
}
