package services

import (
	"testing"

	"konigfood_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDropsUnavailableProducts(t *testing.T) {
	products := []structs.Product{
		*testProduct("p1", "Борщ"),
		{ID: "p2", Title: "Пельмени", Enabled: false, CatalogVisible: true},
		{ID: "p3", Title: "Окрошка", Enabled: true, CatalogVisible: false},
	}
	items := []structs.CartItem{
		{ID: "p1", Title: "Борщ", Quantity: 2, RegularPrice: "450", FeatureImageURL: structs.PlaceholderImageURL, Currency: structs.DefaultCurrency},
		{ID: "p2", Title: "Пельмени", Quantity: 1},
		{ID: "p3", Title: "Окрошка", Quantity: 1},
		{ID: "p4", Title: "Удалённый товар", Quantity: 1},
	}

	reconciled, result := ReconcileCartItems(items, products)

	require.Len(t, reconciled, 1)
	assert.Equal(t, "p1", reconciled[0].ID)
	assert.Equal(t, 2, reconciled[0].Quantity)

	assert.True(t, result.Changed)
	assert.ElementsMatch(t, []string{"Пельмени", "Окрошка", "Удалённый товар"}, result.RemovedTitles)
}

func TestReconcileRefreshesCatalogFields(t *testing.T) {
	product := testProduct("p1", "Борщ")
	product.RegularPrice = "500"
	product.SalePrice = "420"

	items := []structs.CartItem{
		{ID: "p1", Title: "Борщ (старое название)", Quantity: 3, RegularPrice: "450", FeatureImageURL: structs.PlaceholderImageURL, Currency: structs.DefaultCurrency},
	}

	reconciled, result := ReconcileCartItems(items, []structs.Product{*product})

	require.Len(t, reconciled, 1)
	assert.True(t, result.Changed)
	assert.Equal(t, "Борщ", reconciled[0].Title)
	assert.Equal(t, "500", reconciled[0].RegularPrice)
	assert.Equal(t, "420", reconciled[0].SalePrice)
	assert.Equal(t, 3, reconciled[0].Quantity, "quantity is the only field the cart owns")
}

func TestReconcileStableCartUnchanged(t *testing.T) {
	product := testProduct("p1", "Борщ")
	item := structs.ToCartItem(product)
	item.Quantity = 2

	reconciled, result := ReconcileCartItems([]structs.CartItem{item}, []structs.Product{*product})

	require.Len(t, reconciled, 1)
	assert.False(t, result.Changed)
	assert.Empty(t, result.RemovedTitles)
}

func TestReconcileEmptyCart(t *testing.T) {
	reconciled, result := ReconcileCartItems(nil, []structs.Product{*testProduct("p1", "Борщ")})

	assert.Empty(t, reconciled)
	assert.False(t, result.Changed)
}
