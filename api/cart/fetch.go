package cart

import (
	"net/http"

	"konigfood_server/services"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// FetchCart handles GET /cart. The stored cart is reconciled against the
// current catalog on every read: lines whose product disappeared or went
// hidden are dropped, the rest pick up current prices and titles. The
// auto_cleared flag fires once after a cart expired.
func (crm *CartRoutesManager) FetchCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := crm.ensureSession(w, r)

	cart, err := crm.cartService.Load(ctx, sessionID)
	if err != nil {
		crm.logger.Error("Failed to load cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to load cart"), gecho.Send())
		return
	}

	result := services.ReconcileResult{}
	if len(cart.Items) > 0 {
		products, err := crm.catalogService.AllProducts(ctx)
		if err != nil {
			// Serve the stored cart as-is; the next read reconciles.
			crm.logger.Warn("Skipping cart reconcile, catalog unavailable", gecho.Field("error", err))
		} else {
			var reconciled []structs.CartItem
			reconciled, result = services.ReconcileCartItems(cart.Items, products)
			if result.Changed {
				if err := crm.cartService.ReplaceItems(ctx, sessionID, reconciled); err != nil {
					crm.logger.Warn("Failed to persist reconciled cart", gecho.Field("error", err))
				}
				cart.Items = reconciled
				cart.Totals = structs.SummarizeCart(reconciled)
			}
		}
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items":          cart.Items,
			"totals":         cart.Totals,
			"auto_cleared":   cart.AutoCleared,
			"expires_at":     cart.ExpiresAt,
			"removed_titles": result.RemovedTitles,
		}),
		gecho.Send(),
	)
}
