package structs

import (
	"github.com/shopspring/decimal"
)

// Field names follow the catalog file layout exactly: the products JSON in the
// content repository is shared with the storefront, so the casing is part of
// the wire format and must not drift.
type Product struct {
	ID             string `json:"ID" validate:"required"`
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

	CreatedAt string `json:"CreatedAt"`
	UpdatedAt string `json:"UpdatedAt"`
}

const (
	// The site sells in a single currency.
	DefaultCurrency = "RUR"

	// Shown for products without a feature image.
	PlaceholderImageURL = "/placeholder.png"

	// A product gallery carries at most this many images.
	MaxGalleryImages = 5
)

// ParsePrice parses a decimal price string; malformed or empty values are
// treated as zero so filters, sorts and totals never fail on dirty data.
func ParsePrice(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// EffectivePrice is what the customer pays: the sale price when set,
// otherwise the regular price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != "" {
		return ParsePrice(p.SalePrice)
	}
	return ParsePrice(p.RegularPrice)
}
