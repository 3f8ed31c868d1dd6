package services

import (
	"context"
	"net/http"
	"testing"

	"konigfood_server/catalog"
	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps the catalog in memory and can be told to fail writes.
type fakeStore struct {
	products   []structs.Product
	loads      int
	replaces   int
	replaceErr error
}

func (fs *fakeStore) Load(ctx context.Context) ([]structs.Product, error) {
	fs.loads++
	snapshot := make([]structs.Product, len(fs.products))
	copy(snapshot, fs.products)
	return snapshot, nil
}

func (fs *fakeStore) Replace(ctx context.Context, products []structs.Product) error {
	fs.replaces++
	if fs.replaceErr != nil {
		return fs.replaceErr
	}
	fs.products = make([]structs.Product, len(products))
	copy(fs.products, products)
	return nil
}

func newAdminFixture(t *testing.T, seed []structs.Product) (*AdminCatalogService, *fakeStore) {
	t.Helper()
	logger := gecho.NewDefaultLogger()
	store := &fakeStore{products: seed}
	cache := catalog.NewCache(logger, store, newTestConfig().Catalog.CacheTTL)
	return NewAdminCatalogService(logger, newTestConfig(), store, cache), store
}

func TestAdminCreateAssignsServerFields(t *testing.T) {
	as, store := newAdminFixture(t, nil)
	ctx := context.Background()

	created, err := as.Create(ctx, &structs.Product{
		Title:        "Котлеты по-киевски",
		RegularPrice: "650",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "kotlety-po-kievski", created.Slug)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, structs.DefaultCurrency, created.Currency)

	require.Len(t, store.products, 1)
	assert.Equal(t, created.ID, store.products[0].ID)
}

func TestAdminCreateSlugCollisionGetsSuffix(t *testing.T) {
	as, _ := newAdminFixture(t, []structs.Product{
		{ID: "p1", Title: "Борщ", Slug: "borsch"},
	})

	created, err := as.Create(context.Background(), &structs.Product{Title: "Борщ"})
	require.NoError(t, err)
	assert.Equal(t, "borsch-2", created.Slug)
}

func TestAdminCreateRejectsSaleAboveRegular(t *testing.T) {
	as, store := newAdminFixture(t, nil)

	_, err := as.Create(context.Background(), &structs.Product{
		Title:        "Борщ",
		RegularPrice: "450",
		SalePrice:    "500",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sale price")
	assert.Zero(t, store.replaces)
}

func TestAdminUpdatePreservesCreatedAt(t *testing.T) {
	as, store := newAdminFixture(t, []structs.Product{
		{ID: "p1", Title: "Борщ", Slug: "borsch", CreatedAt: "2024-01-01T10:00:00Z", UpdatedAt: "2024-01-01T10:00:00Z"},
	})

	updated, err := as.Update(context.Background(), "p1", &structs.Product{
		Title:        "Борщ украинский",
		RegularPrice: "480",
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, "2024-01-01T10:00:00Z", updated.CreatedAt)
	assert.NotEqual(t, updated.CreatedAt, updated.UpdatedAt)
	assert.Equal(t, "Борщ украинский", store.products[0].Title)
}

func TestAdminUpdateUnknownProduct(t *testing.T) {
	as, _ := newAdminFixture(t, nil)

	_, err := as.Update(context.Background(), "ghost", &structs.Product{Title: "Борщ"})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestAdminDeleteMany(t *testing.T) {
	as, store := newAdminFixture(t, []structs.Product{
		{ID: "p1", Title: "Борщ"},
		{ID: "p2", Title: "Пельмени"},
		{ID: "p3", Title: "Окрошка"},
	})
	ctx := context.Background()

	// Unknown ids in the batch are ignored.
	require.NoError(t, as.DeleteMany(ctx, []string{"p1", "p3", "ghost"}))
	require.Len(t, store.products, 1)
	assert.Equal(t, "p2", store.products[0].ID)

	// A batch matching nothing is an error.
	assert.ErrorIs(t, as.DeleteMany(ctx, []string{"ghost"}), lib.ErrNotFound)
}

func TestAdminSaveAllGuardsPayloadSize(t *testing.T) {
	as, store := newAdminFixture(t, nil)
	as.cfg.Catalog.SafePayloadBytes = 64

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}

	err := as.SaveAll(context.Background(), []structs.Product{
		{ID: "p1", Title: "Борщ", LongDescription: string(long)},
	})
	require.ErrorIs(t, err, lib.ErrPayloadTooLarge)
	assert.Contains(t, err.Error(), "KiB")
	assert.Zero(t, store.replaces, "the write must be rejected before any network call")
}

func TestAdminWriteForwardsRemoteError(t *testing.T) {
	as, store := newAdminFixture(t, nil)
	store.replaceErr = &catalog.RemoteError{
		StatusCode: http.StatusRequestEntityTooLarge,
		Message:    "payload exceeds limit",
	}

	err := as.SaveAll(context.Background(), []structs.Product{{ID: "p1", Title: "Борщ"}})
	require.Error(t, err)

	var remoteErr *catalog.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.True(t, remoteErr.IsPayloadTooLarge())
	assert.Equal(t, "payload exceeds limit", remoteErr.Message)
}

func TestAdminWriteReloadsCache(t *testing.T) {
	as, store := newAdminFixture(t, []structs.Product{{ID: "p1", Title: "Борщ"}})
	ctx := context.Background()

	_, err := as.List(ctx)
	require.NoError(t, err)
	loadsBefore := store.loads

	require.NoError(t, as.SaveAll(ctx, []structs.Product{{ID: "p2", Title: "Пельмени"}}))
	assert.Greater(t, store.loads, loadsBefore, "a write must refetch the catalog")

	products, err := as.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)
}
