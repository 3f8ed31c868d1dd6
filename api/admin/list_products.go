package admin

import (
	"net/http"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// ListProducts handles GET /admin/products: the full catalog including hidden
// and disabled products.
func (arm *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := arm.adminCatalogService.List(r.Context())
	if err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}

type replaceProductsRequest struct {
	Products []structs.Product `json:"products" validate:"required,dive"`
}

// ReplaceProducts handles PUT /admin/products: a wholesale replacement of the
// catalog file. Last writer wins.
func (arm *AdminRoutesManager) ReplaceProducts(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[replaceProductsRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid catalog payload"), gecho.Send())
		return
	}

	if err := arm.adminCatalogService.SaveAll(r.Context(), body.Products); err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Catalog saved"),
		gecho.WithData(map[string]any{
			"count": len(body.Products),
		}),
		gecho.Send(),
	)
}
