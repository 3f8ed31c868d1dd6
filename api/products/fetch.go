package products

import (
	"errors"
	"net/http"

	"konigfood_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchVisibleProducts handles GET /products: the storefront catalog, only
// enabled and catalog-visible products.
func (prm *ProductRoutesManager) FetchVisibleProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := prm.catalogService.VisibleProducts(ctx)
	if err != nil {
		prm.logger.Error("Failed to fetch catalog", gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Catalog is temporarily unavailable"),
			gecho.Send(),
		)
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

// FetchProductBySlug handles GET /products/{slug} for the product page.
func (prm *ProductRoutesManager) FetchProductBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if slug == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("Product slug is required"),
			gecho.Send(),
		)
		return
	}

	product, err := prm.catalogService.ProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("Product not found"),
				gecho.Send(),
			)
			return
		}

		prm.logger.Error("Failed to fetch product by slug", gecho.Field("slug", slug), gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Catalog is temporarily unavailable"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// FetchCategories handles GET /products/categories for the storefront filter.
func (prm *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := prm.catalogService.Categories(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Catalog is temporarily unavailable"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": categories,
		}),
		gecho.Send(),
	)
}
