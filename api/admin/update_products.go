package admin

import (
	"net/http"

	"konigfood_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// UpdateProduct handles PUT /admin/products/{id}.
func (arm *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		gecho.BadRequest(w, gecho.WithMessage("Product id is required"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[productInput](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid product payload"), gecho.Send())
		return
	}

	product, err := arm.adminCatalogService.Update(r.Context(), id, body.toProduct())
	if err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
