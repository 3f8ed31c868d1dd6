package admin

import (
	"net/http"

	"konigfood_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// DeleteProduct handles DELETE /admin/products/{id}.
func (arm *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		gecho.BadRequest(w, gecho.WithMessage("Product id is required"), gecho.Send())
		return
	}

	if err := arm.adminCatalogService.Delete(r.Context(), id); err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// BulkDeleteProducts handles POST /admin/products/bulk-delete: the selected
// rows go out in a single catalog commit.
func (arm *AdminRoutesManager) BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[bulkDeleteRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid bulk delete payload"), gecho.Send())
		return
	}

	if err := arm.adminCatalogService.DeleteMany(r.Context(), body.IDs); err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Products deleted"),
		gecho.WithData(map[string]any{
			"requested": len(body.IDs),
		}),
		gecho.Send(),
	)
}
