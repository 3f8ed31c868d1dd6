package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"konigfood_server/catalog"
	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// AdminCatalogService is the write path of the catalog. Every mutation follows
// the same flow: take the current snapshot, apply the change in memory,
// replace the remote file wholesale, then invalidate and reload the cache so
// the next read reflects the commit.
type AdminCatalogService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  catalog.Store
	cache  *catalog.Cache
}

func NewAdminCatalogService(logger *gecho.Logger, cfg *structs.Config, store catalog.Store, cache *catalog.Cache) *AdminCatalogService {
	return &AdminCatalogService{
		logger: logger,
		cfg:    cfg,
		store:  store,
		cache:  cache,
	}
}

// List returns the full catalog, hidden and disabled products included.
func (as *AdminCatalogService) List(ctx context.Context) ([]structs.Product, error) {
	return as.cache.Get(ctx)
}

// SaveAll replaces the whole catalog with the given list. Last writer wins;
// there is no concurrency token between admins.
func (as *AdminCatalogService) SaveAll(ctx context.Context, products []structs.Product) error {
	if products == nil {
		products = []structs.Product{}
	}
	return as.replace(ctx, products)
}

// Create prepares and appends a new product.
func (as *AdminCatalogService) Create(ctx context.Context, product *structs.Product) (*structs.Product, error) {
	products, err := as.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog before create: %w", err)
	}

	prepared := *product
	now := time.Now().UTC().Format(time.RFC3339)
	prepared.ID = uuid.NewString()
	prepared.CreatedAt = now
	prepared.UpdatedAt = now

	if err := as.prepare(&prepared, products); err != nil {
		return nil, err
	}

	updated := append(append([]structs.Product{}, products...), prepared)
	if err := as.replace(ctx, updated); err != nil {
		return nil, err
	}

	as.logger.Info("Product created",
		gecho.Field("id", prepared.ID),
		gecho.Field("slug", prepared.Slug),
	)
	return &prepared, nil
}

// Update rewrites an existing product in place. CreatedAt is preserved from
// the stored row; UpdatedAt always moves forward.
func (as *AdminCatalogService) Update(ctx context.Context, id string, product *structs.Product) (*structs.Product, error) {
	products, err := as.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog before update: %w", err)
	}

	index := -1
	for i := range products {
		if products[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, lib.ErrNotFound
	}

	prepared := *product
	prepared.ID = id
	prepared.CreatedAt = products[index].CreatedAt
	prepared.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	others := make([]structs.Product, 0, len(products)-1)
	others = append(others, products[:index]...)
	others = append(others, products[index+1:]...)
	if err := as.prepare(&prepared, others); err != nil {
		return nil, err
	}

	updated := append([]structs.Product{}, products...)
	updated[index] = prepared
	if err := as.replace(ctx, updated); err != nil {
		return nil, err
	}

	as.logger.Info("Product updated", gecho.Field("id", id))
	return &prepared, nil
}

// Delete removes one product.
func (as *AdminCatalogService) Delete(ctx context.Context, id string) error {
	return as.DeleteMany(ctx, []string{id})
}

// DeleteMany removes a batch of products in a single commit. Unknown ids in
// the batch are ignored, but a batch that matches nothing is an error.
func (as *AdminCatalogService) DeleteMany(ctx context.Context, ids []string) error {
	products, err := as.cache.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog before delete: %w", err)
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]structs.Product, 0, len(products))
	for i := range products {
		if !drop[products[i].ID] {
			kept = append(kept, products[i])
		}
	}
	if len(kept) == len(products) {
		return lib.ErrNotFound
	}

	if err := as.replace(ctx, kept); err != nil {
		return err
	}

	as.logger.Info("Products deleted",
		gecho.Field("requested", len(ids)),
		gecho.Field("removed", len(products)-len(kept)),
	)
	return nil
}

// prepare normalizes and validates a product before it enters the catalog.
// others is the rest of the catalog, for slug uniqueness.
func (as *AdminCatalogService) prepare(p *structs.Product, others []structs.Product) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return errors.New("title is required")
	}

	if p.Currency == "" {
		p.Currency = structs.DefaultCurrency
	}

	p.RegularPrice = lib.SanitizeNumericString(p.RegularPrice)
	p.SalePrice = lib.SanitizeNumericString(p.SalePrice)
	if p.SalePrice != "" {
		sale := structs.ParsePrice(p.SalePrice)
		regular := structs.ParsePrice(p.RegularPrice)
		if sale.GreaterThan(regular) {
			return errors.New("sale price cannot exceed regular price")
		}
	}

	if len(p.ProductImageGallery) > structs.MaxGalleryImages {
		return fmt.Errorf("gallery holds at most %d images", structs.MaxGalleryImages)
	}

	if p.Slug == "" {
		p.Slug = lib.SlugifyTitle(p.Title)
	}
	if p.Slug == "" {
		p.Slug = strings.ToLower(p.ID)
	}
	p.Slug = uniqueSlug(p.Slug, others)

	if p.ProductCategories == nil {
		p.ProductCategories = []string{}
	}
	if p.ProductImageGallery == nil {
		p.ProductImageGallery = []string{}
	}
	return nil
}

// uniqueSlug appends a numeric suffix until the slug collides with nothing.
func uniqueSlug(slug string, others []structs.Product) string {
	taken := make(map[string]bool, len(others))
	for i := range others {
		taken[others[i].Slug] = true
	}

	if !taken[slug] {
		return slug
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// replace guards the payload size locally, commits the new catalog and brings
// the cache back in sync with what was just written.
func (as *AdminCatalogService) replace(ctx context.Context, products []structs.Product) error {
	startTime := time.Now()

	size, err := lib.JSONPayloadSize(products)
	if err != nil {
		return err
	}
	if size > as.cfg.Catalog.SafePayloadBytes {
		as.logger.Warn("Catalog write rejected for size",
			gecho.Field("bytes", size),
			gecho.Field("safe_limit", as.cfg.Catalog.SafePayloadBytes),
		)
		return fmt.Errorf("%w: catalog is %s, the limit is %s",
			lib.ErrPayloadTooLarge, lib.FormatBytes(size), lib.FormatBytes(as.cfg.Catalog.SafePayloadBytes))
	}

	if err := as.store.Replace(ctx, products); err != nil {
		return err
	}

	as.cache.Invalidate()
	if err := as.cache.Refresh(ctx); err != nil {
		// The commit landed; the next read will fetch fresh data anyway.
		as.logger.Warn("Catalog cache reload after write failed", gecho.Field("error", err))
	}

	as.logger.Debug("Catalog replaced",
		gecho.Field("count", len(products)),
		gecho.Field("bytes", size),
		gecho.Field("duration", time.Since(startTime)),
	)
	return nil
}
