package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTableFixture(t *testing.T) (*TableService, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	return NewTableService(gecho.NewDefaultLogger(), newTestConfig(), kv), kv
}

func tableProducts() []structs.Product {
	return []structs.Product{
		{
			ID: "p1", Title: "Борщ", Enabled: true, CatalogVisible: true,
			ProductCategories: []string{"Супы"}, Currency: "RUR", PortionUnit: "г",
			RegularPrice: "450",
			CreatedAt:    "2024-01-01T10:00:00Z", UpdatedAt: "2024-03-01T10:00:00Z",
		},
		{
			ID: "p2", Title: "Пельмени", Enabled: true, CatalogVisible: false,
			ProductCategories: []string{"Горячее"}, Currency: "RUR", PortionUnit: "г",
			RegularPrice: "600", SalePrice: "500",
			CreatedAt: "2024-02-01T10:00:00Z", UpdatedAt: "2024-02-15T10:00:00Z",
		},
		{
			ID: "p3", Title: "Окрошка", Enabled: false, CatalogVisible: true,
			ProductCategories: []string{"Супы"}, Currency: "RUR", PortionUnit: "мл",
			RegularPrice: "300",
			CreatedAt:    "2024-03-01T10:00:00Z", UpdatedAt: "not-a-date",
		},
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	state := structs.DefaultTableState()
	state.Search = "  борщ "

	filtered := FilterAndSortProducts(tableProducts(), &state)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestFilterTriStates(t *testing.T) {
	products := tableProducts()

	state := structs.DefaultTableState()
	state.Enabled = structs.EnabledDisabled
	filtered := FilterAndSortProducts(products, &state)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p3", filtered[0].ID)

	state = structs.DefaultTableState()
	state.Visible = structs.VisibleHidden
	filtered = FilterAndSortProducts(products, &state)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)

	state = structs.DefaultTableState()
	state.Enabled = structs.EnabledOnly
	state.Visible = structs.VisibleOnly
	filtered = FilterAndSortProducts(products, &state)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestFilterCategoryAndUnit(t *testing.T) {
	state := structs.DefaultTableState()
	state.Category = "Супы"

	filtered := FilterAndSortProducts(tableProducts(), &state)
	assert.Len(t, filtered, 2)

	state.PortionUnit = "мл"
	filtered = FilterAndSortProducts(tableProducts(), &state)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p3", filtered[0].ID)
}

func TestFilterPriceBoundsUseRegularPrice(t *testing.T) {
	state := structs.DefaultTableState()
	// Comma decimal separator and currency noise come straight from the input
	// field and are sanitized.
	state.MinPrice = "400,00 ₽"
	state.MaxPrice = "550"

	filtered := FilterAndSortProducts(tableProducts(), &state)
	require.Len(t, filtered, 1)
	// p2 is out even though its sale price is 500: bounds compare the regular
	// price.
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestFilterSearchSpansDescriptionsAndCategories(t *testing.T) {
	products := tableProducts()
	products[1].ShortDescription = "Домашние, со сметаной"

	state := structs.DefaultTableState()
	state.Search = "сметан"
	filtered := FilterAndSortProducts(products, &state)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)

	state.Search = "супы"
	filtered = FilterAndSortProducts(products, &state)
	assert.Len(t, filtered, 2, "category names are searchable")
}

func TestSortOrders(t *testing.T) {
	products := tableProducts()

	state := structs.DefaultTableState()
	state.SortBy = structs.SortTitleAsc
	filtered := FilterAndSortProducts(products, &state)
	require.Len(t, filtered, 3)
	assert.Equal(t, []string{"Борщ", "Окрошка", "Пельмени"},
		[]string{filtered[0].Title, filtered[1].Title, filtered[2].Title})

	state.SortBy = structs.SortPriceAsc
	filtered = FilterAndSortProducts(products, &state)
	assert.Equal(t, []string{"p3", "p1", "p2"},
		[]string{filtered[0].ID, filtered[1].ID, filtered[2].ID})

	// Default sort: freshest update first; an unparsable date sorts last.
	state.SortBy = structs.SortUpdatedDesc
	filtered = FilterAndSortProducts(products, &state)
	assert.Equal(t, []string{"p1", "p2", "p3"},
		[]string{filtered[0].ID, filtered[1].ID, filtered[2].ID})
}

func TestLoadStateFallsBackOnMalformedBlob(t *testing.T) {
	ts, kv := newTableFixture(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "admin_products_table_state_v1:sid", "{not json", 0))

	state := ts.LoadState(ctx, "sid")
	assert.Equal(t, structs.DefaultTableState(), state)
}

func TestLoadStateNormalizesFields(t *testing.T) {
	ts, kv := newTableFixture(t)
	ctx := context.Background()

	blob := `{"search":"борщ","enabled":"bogus","sortBy":"nope","currentPage":-4}`
	require.NoError(t, kv.Set(ctx, "admin_products_table_state_v1:sid", blob, 0))

	state := ts.LoadState(ctx, "sid")
	assert.Equal(t, "борщ", state.Search)
	assert.Equal(t, structs.EnabledAll, state.Enabled)
	assert.Equal(t, structs.SortUpdatedDesc, state.SortBy)
	assert.Equal(t, 1, state.CurrentPage)
	assert.NotNil(t, state.SelectedProductIDs)
}

func TestSaveStateResetsPageOnFilterChange(t *testing.T) {
	ts, _ := newTableFixture(t)
	ctx := context.Background()

	initial := structs.DefaultTableState()
	initial.CurrentPage = 3
	saved, err := ts.SaveState(ctx, "sid", initial)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.CurrentPage, "a page flip alone keeps the page")

	changed := saved
	changed.Search = "борщ"
	changed.CurrentPage = 3
	saved, err = ts.SaveState(ctx, "sid", changed)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.CurrentPage, "a filter change resets to page 1")

	// Saving the same filters again keeps the page.
	samePage := saved
	samePage.CurrentPage = 2
	saved, err = ts.SaveState(ctx, "sid", samePage)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.CurrentPage)
}

func TestViewClampsPageAndPrunesSelection(t *testing.T) {
	ts, _ := newTableFixture(t)
	ctx := context.Background()

	products := make([]structs.Product, 0, 25)
	for i := 1; i <= 25; i++ {
		products = append(products, structs.Product{
			ID:        fmt.Sprintf("p%d", i),
			Title:     fmt.Sprintf("Товар %02d", i),
			UpdatedAt: time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}

	state := structs.DefaultTableState()
	state.CurrentPage = 99
	state.SelectedProductIDs = []string{"p1", "ghost"}
	_, err := ts.SaveState(ctx, "sid", state)
	require.NoError(t, err)

	view, err := ts.View(ctx, "sid", products)
	require.NoError(t, err)

	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 3, view.State.CurrentPage, "out-of-range page clamps to the last page")
	assert.Len(t, view.Products, 5)
	assert.Equal(t, 25, view.TotalFiltered)
	assert.Equal(t, []string{"p1"}, view.State.SelectedProductIDs, "selection drops deleted products")
}

func TestToggleSelectAllPageIsPageScoped(t *testing.T) {
	ts, _ := newTableFixture(t)
	ctx := context.Background()

	products := make([]structs.Product, 0, 15)
	for i := 1; i <= 15; i++ {
		products = append(products, structs.Product{
			ID:        fmt.Sprintf("p%d", i),
			Title:     fmt.Sprintf("Товар %02d", i),
			UpdatedAt: time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}

	// Select one row on page 2, then select-all on page 1.
	state := structs.DefaultTableState()
	state.SortBy = structs.SortCreatedAsc
	state.SelectedProductIDs = []string{"p15"}
	_, err := ts.SaveState(ctx, "sid", state)
	require.NoError(t, err)

	updated, err := ts.ToggleSelectAllPage(ctx, "sid", products)
	require.NoError(t, err)
	assert.Len(t, updated.SelectedProductIDs, 11, "page rows added, other pages untouched")
	assert.Contains(t, updated.SelectedProductIDs, "p15")

	// A second toggle deselects only the page rows.
	updated, err = ts.ToggleSelectAllPage(ctx, "sid", products)
	require.NoError(t, err)
	assert.Equal(t, []string{"p15"}, updated.SelectedProductIDs)
}

func TestToggleSelection(t *testing.T) {
	ts, _ := newTableFixture(t)
	ctx := context.Background()

	state, err := ts.ToggleSelection(ctx, "sid", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, state.SelectedProductIDs)

	state, err = ts.ToggleSelection(ctx, "sid", "p1")
	require.NoError(t, err)
	assert.Empty(t, state.SelectedProductIDs)
}
