package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"konigfood_server/lib"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const tableStateKeyPrefix = "admin_products_table_state_v1:"

// newTitleCollator orders product titles the way a Russian-speaking admin
// expects instead of by code point. Collators are not safe for concurrent use,
// so each sort builds its own.
func newTitleCollator() *collate.Collator {
	return collate.New(language.Russian, collate.IgnoreCase)
}

// TableService owns the admin product table: the persisted filter/sort/page
// state per admin session and the pure pipeline that turns the full catalog
// into one page of rows.
type TableService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	kv     storage.KV
}

func NewTableService(logger *gecho.Logger, cfg *structs.Config, kv storage.KV) *TableService {
	return &TableService{
		logger: logger,
		cfg:    cfg,
		kv:     kv,
	}
}

// TableView is one rendered page of the admin table.
type TableView struct {
	Products      []structs.Product  `json:"products"`
	State         structs.TableState `json:"state"`
	TotalFiltered int                `json:"total_filtered"`
	TotalPages    int                `json:"total_pages"`
	PageSize      int                `json:"page_size"`
	HasFilters    bool               `json:"has_filters"`
}

func tableStateKey(sessionID string) string {
	return tableStateKeyPrefix + sessionID
}

// LoadState rehydrates the stored table state for a session. Missing or
// malformed blobs fall back to the defaults rather than failing; every field
// is normalized individually.
func (ts *TableService) LoadState(ctx context.Context, sessionID string) structs.TableState {
	state := structs.DefaultTableState()

	raw, err := ts.kv.Get(ctx, tableStateKey(sessionID))
	if err != nil {
		ts.logger.Warn("Failed to read table state from storage", gecho.Field("error", err))
		return state
	}
	if raw == "" {
		return state
	}

	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		ts.logger.Warn("Discarding malformed table state", gecho.Field("error", err))
		return structs.DefaultTableState()
	}

	state.Normalize()
	return state
}

// SaveState persists the incoming state. When the filter portion differs from
// the stored one the page resets to 1; a page flip alone keeps the filters.
func (ts *TableService) SaveState(ctx context.Context, sessionID string, incoming structs.TableState) (structs.TableState, error) {
	incoming.Normalize()

	current := ts.LoadState(ctx, sessionID)
	if !incoming.FiltersEqual(&current) {
		incoming.CurrentPage = 1
	}

	if err := ts.persistState(ctx, sessionID, incoming); err != nil {
		return incoming, err
	}
	return incoming, nil
}

// ResetState drops the stored state back to the defaults.
func (ts *TableService) ResetState(ctx context.Context, sessionID string) (structs.TableState, error) {
	state := structs.DefaultTableState()
	if err := ts.persistState(ctx, sessionID, state); err != nil {
		return state, err
	}
	return state, nil
}

func (ts *TableService) persistState(ctx context.Context, sessionID string, state structs.TableState) error {
	serialized, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize table state: %w", err)
	}
	if err := ts.kv.Set(ctx, tableStateKey(sessionID), string(serialized), ts.cfg.Cart.SessionTTL); err != nil {
		return fmt.Errorf("failed to store table state: %w", err)
	}
	return nil
}

// View runs the full pipeline: filter, sort, prune the selection to surviving
// products, clamp the page and slice it out. The clamped page and pruned
// selection are persisted back so the stored state never points at rows that
// no longer exist.
func (ts *TableService) View(ctx context.Context, sessionID string, products []structs.Product) (*TableView, error) {
	state := ts.LoadState(ctx, sessionID)

	filtered := FilterAndSortProducts(products, &state)

	state.SelectedProductIDs = PruneSelection(state.SelectedProductIDs, products)

	totalPages := (len(filtered) + structs.TablePageSize - 1) / structs.TablePageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if state.CurrentPage > totalPages {
		state.CurrentPage = totalPages
	}

	if err := ts.persistState(ctx, sessionID, state); err != nil {
		ts.logger.Warn("Failed to persist clamped table state", gecho.Field("error", err))
	}

	page := paginate(filtered, state.CurrentPage, structs.TablePageSize)

	return &TableView{
		Products:      page,
		State:         state,
		TotalFiltered: len(filtered),
		TotalPages:    totalPages,
		PageSize:      structs.TablePageSize,
		HasFilters:    state.HasActiveFilters(),
	}, nil
}

// ToggleSelection flips one product in or out of the selection.
func (ts *TableService) ToggleSelection(ctx context.Context, sessionID, productID string) (structs.TableState, error) {
	state := ts.LoadState(ctx, sessionID)

	found := false
	kept := state.SelectedProductIDs[:0]
	for _, id := range state.SelectedProductIDs {
		if id == productID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	state.SelectedProductIDs = kept
	if !found {
		state.SelectedProductIDs = append(state.SelectedProductIDs, productID)
	}

	if err := ts.persistState(ctx, sessionID, state); err != nil {
		return state, err
	}
	return state, nil
}

// ToggleSelectAllPage selects or deselects the rows of the current page only.
// When every row on the page is already selected the page is deselected;
// selections on other pages are never touched.
func (ts *TableService) ToggleSelectAllPage(ctx context.Context, sessionID string, products []structs.Product) (structs.TableState, error) {
	view, err := ts.View(ctx, sessionID, products)
	if err != nil {
		return structs.DefaultTableState(), err
	}
	state := view.State

	selected := make(map[string]bool, len(state.SelectedProductIDs))
	for _, id := range state.SelectedProductIDs {
		selected[id] = true
	}

	allSelected := len(view.Products) > 0
	for i := range view.Products {
		if !selected[view.Products[i].ID] {
			allSelected = false
			break
		}
	}

	if allSelected {
		for i := range view.Products {
			delete(selected, view.Products[i].ID)
		}
	} else {
		for i := range view.Products {
			selected[view.Products[i].ID] = true
		}
	}

	ids := make([]string, 0, len(selected))
	for _, id := range state.SelectedProductIDs {
		if selected[id] {
			ids = append(ids, id)
			delete(selected, id)
		}
	}
	// Newly selected ids in page order.
	for i := range view.Products {
		if selected[view.Products[i].ID] {
			ids = append(ids, view.Products[i].ID)
		}
	}
	state.SelectedProductIDs = ids

	if err := ts.persistState(ctx, sessionID, state); err != nil {
		return state, err
	}
	return state, nil
}

// ClearSelection empties the selection without touching filters or paging.
func (ts *TableService) ClearSelection(ctx context.Context, sessionID string) (structs.TableState, error) {
	state := ts.LoadState(ctx, sessionID)
	state.SelectedProductIDs = []string{}

	if err := ts.persistState(ctx, sessionID, state); err != nil {
		return state, err
	}
	return state, nil
}

// PruneSelection drops selected ids whose product no longer exists.
func PruneSelection(selected []string, products []structs.Product) []string {
	existing := make(map[string]bool, len(products))
	for i := range products {
		existing[products[i].ID] = true
	}

	pruned := make([]string, 0, len(selected))
	for _, id := range selected {
		if existing[id] {
			pruned = append(pruned, id)
		}
	}
	return pruned
}

// FilterAndSortProducts applies every table filter and the configured sort
// order to the full catalog. Pure; the input slice is not modified.
func FilterAndSortProducts(products []structs.Product, state *structs.TableState) []structs.Product {
	minPrice, hasMin := parsePriceBound(state.MinPrice)
	maxPrice, hasMax := parsePriceBound(state.MaxPrice)
	search := strings.ToLower(strings.TrimSpace(state.Search))

	filtered := make([]structs.Product, 0, len(products))
	for i := range products {
		p := &products[i]

		if search != "" && !strings.Contains(searchHaystack(p), search) {
			continue
		}
		if state.Category != "all" && !hasCategory(p, state.Category) {
			continue
		}
		if state.Currency != "all" && p.Currency != state.Currency {
			continue
		}
		if state.PortionUnit != "all" && p.PortionUnit != state.PortionUnit {
			continue
		}
		if state.Enabled == structs.EnabledOnly && !p.Enabled {
			continue
		}
		if state.Enabled == structs.EnabledDisabled && p.Enabled {
			continue
		}
		if state.Visible == structs.VisibleOnly && !p.CatalogVisible {
			continue
		}
		if state.Visible == structs.VisibleHidden && p.CatalogVisible {
			continue
		}

		price := structs.ParsePrice(p.RegularPrice)
		if hasMin && price.LessThan(minPrice) {
			continue
		}
		if hasMax && price.GreaterThan(maxPrice) {
			continue
		}

		filtered = append(filtered, *p)
	}

	sortProducts(filtered, state.SortBy)
	return filtered
}

// searchHaystack is the lowercased text the search box matches against:
// title, slug, both descriptions and the categories.
func searchHaystack(p *structs.Product) string {
	return strings.ToLower(strings.Join([]string{
		p.Title,
		p.Slug,
		p.ShortDescription,
		p.LongDescription,
		strings.Join(p.ProductCategories, " "),
	}, " "))
}

func hasCategory(p *structs.Product, category string) bool {
	for _, c := range p.ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func parsePriceBound(value string) (decimal.Decimal, bool) {
	sanitized := lib.SanitizeNumericString(value)
	if sanitized == "" {
		return decimal.Zero, false
	}
	bound, err := decimal.NewFromString(sanitized)
	if err != nil {
		return decimal.Zero, false
	}
	return bound, true
}

// parseProductTime treats unparsable or missing timestamps as the epoch so
// dirty catalog rows sort to a deterministic end instead of erroring.
func parseProductTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func sortProducts(products []structs.Product, sortBy structs.SortBy) {
	switch sortBy {
	case structs.SortUpdatedDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return parseProductTime(products[i].UpdatedAt).After(parseProductTime(products[j].UpdatedAt))
		})
	case structs.SortUpdatedAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return parseProductTime(products[i].UpdatedAt).Before(parseProductTime(products[j].UpdatedAt))
		})
	case structs.SortCreatedDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return parseProductTime(products[i].CreatedAt).After(parseProductTime(products[j].CreatedAt))
		})
	case structs.SortCreatedAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return parseProductTime(products[i].CreatedAt).Before(parseProductTime(products[j].CreatedAt))
		})
	case structs.SortTitleAsc:
		collator := newTitleCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Title, products[j].Title) < 0
		})
	case structs.SortTitleDesc:
		collator := newTitleCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Title, products[j].Title) > 0
		})
	case structs.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return structs.ParsePrice(products[i].RegularPrice).LessThan(structs.ParsePrice(products[j].RegularPrice))
		})
	case structs.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return structs.ParsePrice(products[i].RegularPrice).GreaterThan(structs.ParsePrice(products[j].RegularPrice))
		})
	}
}

func paginate(products []structs.Product, page, pageSize int) []structs.Product {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return []structs.Product{}
	}

	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
