package services

import (
	"konigfood_server/structs"
)

// ReconcileResult reports what a reconcile pass changed.
type ReconcileResult struct {
	Changed       bool     `json:"changed"`
	RemovedTitles []string `json:"removed_titles,omitempty"`
}

// ReconcileCartItems replays a stored cart against the current catalog: line
// items whose product disappeared or is no longer purchasable are dropped, and
// the remaining lines pick up the catalog's current title, prices, slug and
// image. Quantity is the only field the cart owns.
func ReconcileCartItems(items []structs.CartItem, products []structs.Product) ([]structs.CartItem, ReconcileResult) {
	byID := make(map[string]*structs.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := ReconcileResult{}
	reconciled := make([]structs.CartItem, 0, len(items))

	for i := range items {
		product, ok := byID[items[i].ID]
		if !ok || !product.Enabled || !product.CatalogVisible {
			title := items[i].Title
			if title == "" {
				title = items[i].ID
			}
			result.RemovedTitles = append(result.RemovedTitles, title)
			result.Changed = true
			continue
		}

		fresh := structs.ToCartItem(product)
		fresh.Quantity = items[i].Quantity
		if fresh != items[i] {
			result.Changed = true
		}
		reconciled = append(reconciled, fresh)
	}

	return reconciled, result
}
