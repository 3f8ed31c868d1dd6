package admin

import (
	"konigfood_server/services"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger              *gecho.Logger
	cfg                 *structs.Config
	adminCatalogService *services.AdminCatalogService
	tableService        *services.TableService
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	adminCatalogService *services.AdminCatalogService,
	tableService *services.TableService,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:              logger,
		cfg:                 cfg,
		adminCatalogService: adminCatalogService,
		tableService:        tableService,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/admin/products", arm.ListProducts)
	r.Put("/admin/products", arm.ReplaceProducts)
	r.Post("/admin/products", arm.CreateProduct)
	r.Put("/admin/products/{id}", arm.UpdateProduct)
	r.Delete("/admin/products/{id}", arm.DeleteProduct)
	r.Post("/admin/products/bulk-delete", arm.BulkDeleteProducts)

	r.Get("/admin/products/table", arm.GetTableView)
	r.Get("/admin/products/table-state", arm.GetTableState)
	r.Put("/admin/products/table-state", arm.SaveTableState)
	r.Post("/admin/products/table-state/reset", arm.ResetTableState)

	r.Post("/admin/products/selection/{id}/toggle", arm.ToggleSelection)
	r.Post("/admin/products/selection/toggle-page", arm.ToggleSelectPage)
	r.Delete("/admin/products/selection", arm.ClearSelection)
}
