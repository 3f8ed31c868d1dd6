package services

import (
	"context"
	"sort"
	"time"

	"konigfood_server/catalog"
	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// CatalogService serves the public storefront: only products that are both
// enabled and catalog-visible exist as far as customers are concerned.
type CatalogService struct {
	logger *gecho.Logger
	cache  *catalog.Cache
}

func NewCatalogService(logger *gecho.Logger, cache *catalog.Cache) *CatalogService {
	return &CatalogService{
		logger: logger,
		cache:  cache,
	}
}

// VisibleProducts returns the storefront catalog.
func (cs *CatalogService) VisibleProducts(ctx context.Context) ([]structs.Product, error) {
	startTime := time.Now()

	products, err := cs.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]structs.Product, 0, len(products))
	for i := range products {
		if products[i].Enabled && products[i].CatalogVisible {
			visible = append(visible, products[i])
		}
	}

	cs.logger.Debug("Storefront catalog assembled",
		gecho.Field("visible", len(visible)),
		gecho.Field("total", len(products)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return visible, nil
}

// ProductBySlug finds a single storefront product. Hidden and disabled
// products are not found, regardless of whether the catalog file has them.
func (cs *CatalogService) ProductBySlug(ctx context.Context, slug string) (*structs.Product, error) {
	visible, err := cs.VisibleProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range visible {
		if visible[i].Slug == slug {
			return &visible[i], nil
		}
	}
	return nil, lib.ErrNotFound
}

// ProductByID resolves a storefront product by id, used when a cart line item
// references it.
func (cs *CatalogService) ProductByID(ctx context.Context, id string) (*structs.Product, error) {
	visible, err := cs.VisibleProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range visible {
		if visible[i].ID == id {
			return &visible[i], nil
		}
	}
	return nil, lib.ErrNotFound
}

// Categories lists the distinct categories of the visible catalog, sorted.
func (cs *CatalogService) Categories(ctx context.Context) ([]string, error) {
	visible, err := cs.VisibleProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for i := range visible {
		for _, c := range visible[i].ProductCategories {
			if c != "" && !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}

	collator := newTitleCollator()
	sort.SliceStable(categories, func(i, j int) bool {
		return collator.CompareString(categories[i], categories[j]) < 0
	})
	return categories, nil
}

// AllProducts returns the raw catalog for the cart reconciler, which needs to
// distinguish a product that went hidden from one that was deleted only in how
// it logs, not in outcome.
func (cs *CatalogService) AllProducts(ctx context.Context) ([]structs.Product, error) {
	return cs.cache.Get(ctx)
}
