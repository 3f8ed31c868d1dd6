package admin

import (
	"net/http"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// productInput is what the panel submits; id, slug and timestamps are
// server-assigned.
type productInput struct {
	Title          string `json:"Title" validate:"required"`
	Slug           string `json:"Slug"`
	Enabled        bool   `json:"Enabled"`
	CatalogVisible bool   `json:"CatalogVisible"`

	PortionWeight float64 `json:"PortionWeight" validate:"gte=0"`
	PortionUnit   string  `json:"PortionUnit"`

	ProductCategories []string `json:"ProductCategories"`

	FeatureImageURL     string   `json:"FeatureImageURL"`
	ProductImageGallery []string `json:"ProductImageGallery" validate:"max=5"`

	ShortDescription string `json:"ShortDescription"`
	LongDescription  string `json:"LongDescription"`

	RegularPrice string `json:"RegularPrice"`
	SalePrice    string `json:"SalePrice"`

	Currency string `json:"Currency"`
}

func (pi *productInput) toProduct() *structs.Product {
	return &structs.Product{
		Title:               pi.Title,
		Slug:                pi.Slug,
		Enabled:             pi.Enabled,
		CatalogVisible:      pi.CatalogVisible,
		PortionWeight:       pi.PortionWeight,
		PortionUnit:         pi.PortionUnit,
		ProductCategories:   pi.ProductCategories,
		FeatureImageURL:     pi.FeatureImageURL,
		ProductImageGallery: pi.ProductImageGallery,
		ShortDescription:    pi.ShortDescription,
		LongDescription:     pi.LongDescription,
		RegularPrice:        pi.RegularPrice,
		SalePrice:           pi.SalePrice,
		Currency:            pi.Currency,
	}
}

// CreateProduct handles POST /admin/products.
func (arm *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[productInput](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid product payload"), gecho.Send())
		return
	}

	product, err := arm.adminCatalogService.Create(r.Context(), body.toProduct())
	if err != nil {
		arm.writeCatalogError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
