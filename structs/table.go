package structs

// Admin product table state. The whole blob is persisted per admin session and
// rehydrated on mount; every field falls back to its default individually so a
// malformed stored blob never breaks the panel.

type EnabledFilter string

const (
	EnabledAll      EnabledFilter = "all"
	EnabledOnly     EnabledFilter = "enabled"
	EnabledDisabled EnabledFilter = "disabled"
)

type VisibleFilter string

const (
	VisibleAll    VisibleFilter = "all"
	VisibleOnly   VisibleFilter = "visible"
	VisibleHidden VisibleFilter = "hidden"
)

type SortBy string

const (
	SortUpdatedDesc SortBy = "updated_desc"
	SortUpdatedAsc  SortBy = "updated_asc"
	SortCreatedDesc SortBy = "created_desc"
	SortCreatedAsc  SortBy = "created_asc"
	SortTitleAsc    SortBy = "title_asc"
	SortTitleDesc   SortBy = "title_desc"
	SortPriceAsc    SortBy = "price_asc"
	SortPriceDesc   SortBy = "price_desc"
)

const TablePageSize = 10

type TableState struct {
	Search             string        `json:"search"`
	Category           string        `json:"category"`
	Currency           string        `json:"currency"`
	PortionUnit        string        `json:"portionUnit"`
	Enabled            EnabledFilter `json:"enabled"`
	Visible            VisibleFilter `json:"visible"`
	MinPrice           string        `json:"minPrice"`
	MaxPrice           string        `json:"maxPrice"`
	SortBy             SortBy        `json:"sortBy"`
	CurrentPage        int           `json:"currentPage"`
	SelectedProductIDs []string      `json:"selectedProductIds"`
}

func DefaultTableState() TableState {
	return TableState{
		Search:             "",
		Category:           "all",
		Currency:           "all",
		PortionUnit:        "all",
		Enabled:            EnabledAll,
		Visible:            VisibleAll,
		MinPrice:           "",
		MaxPrice:           "",
		SortBy:             SortUpdatedDesc,
		CurrentPage:        1,
		SelectedProductIDs: []string{},
	}
}

// Normalize substitutes defaults field-by-field for out-of-range values.
func (ts *TableState) Normalize() {
	defaults := DefaultTableState()
	if ts.Category == "" {
		ts.Category = defaults.Category
	}
	if ts.Currency == "" {
		ts.Currency = defaults.Currency
	}
	if ts.PortionUnit == "" {
		ts.PortionUnit = defaults.PortionUnit
	}
	switch ts.Enabled {
	case EnabledAll, EnabledOnly, EnabledDisabled:
	default:
		ts.Enabled = defaults.Enabled
	}
	switch ts.Visible {
	case VisibleAll, VisibleOnly, VisibleHidden:
	default:
		ts.Visible = defaults.Visible
	}
	switch ts.SortBy {
	case SortUpdatedDesc, SortUpdatedAsc, SortCreatedDesc, SortCreatedAsc,
		SortTitleAsc, SortTitleDesc, SortPriceAsc, SortPriceDesc:
	default:
		ts.SortBy = defaults.SortBy
	}
	if ts.CurrentPage < 1 {
		ts.CurrentPage = defaults.CurrentPage
	}
	if ts.SelectedProductIDs == nil {
		ts.SelectedProductIDs = []string{}
	}
}

// HasActiveFilters reports whether any filter deviates from the defaults.
// Pagination and selection are not filters.
func (ts *TableState) HasActiveFilters() bool {
	defaults := DefaultTableState()
	return ts.Search != defaults.Search ||
		ts.Category != defaults.Category ||
		ts.Currency != defaults.Currency ||
		ts.PortionUnit != defaults.PortionUnit ||
		ts.Enabled != defaults.Enabled ||
		ts.Visible != defaults.Visible ||
		ts.MinPrice != defaults.MinPrice ||
		ts.MaxPrice != defaults.MaxPrice ||
		ts.SortBy != defaults.SortBy
}

// FiltersEqual reports whether the filter portion (everything except
// pagination and selection) matches the other state. A filter change resets
// the table to page 1.
func (ts *TableState) FiltersEqual(other *TableState) bool {
	return ts.Search == other.Search &&
		ts.Category == other.Category &&
		ts.Currency == other.Currency &&
		ts.PortionUnit == other.PortionUnit &&
		ts.Enabled == other.Enabled &&
		ts.Visible == other.Visible &&
		ts.MinPrice == other.MinPrice &&
		ts.MaxPrice == other.MaxPrice &&
		ts.SortBy == other.SortBy
}
