package cart

import (
	"errors"
	"net/http"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// AddItem handles POST /cart/items. The product must be visible on the
// storefront; prices come from the catalog, never from the client.
func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := crm.ensureSession(w, r)

	body, err := lib.ExtractAndValidateBody[addItemRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid cart item payload"), gecho.Send())
		return
	}

	product, err := crm.catalogService.ProductByID(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product is not available"), gecho.Send())
			return
		}
		crm.logger.Error("Failed to resolve product for cart", gecho.Field("error", err))
		gecho.ServiceUnavailable(w, gecho.WithMessage("Catalog is temporarily unavailable"), gecho.Send())
		return
	}

	items, err := crm.cartService.AddItem(ctx, sessionID, product, body.Quantity)
	if err != nil {
		crm.logger.Error("Failed to add cart item", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to update cart"), gecho.Send())
		return
	}

	crm.respondWithCart(w, items, true)
}

// UpdateItem handles PUT /cart/items/{id}. Quantities below one leave the
// cart unchanged; removing a line is an explicit DELETE.
func (crm *CartRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := crm.ensureSession(w, r)
	productID := chi.URLParam(r, "id")

	body, err := lib.ExtractAndValidateBody[updateItemRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid quantity payload"), gecho.Send())
		return
	}

	items, err := crm.cartService.SetQuantity(ctx, sessionID, productID, body.Quantity)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Item is not in the cart"), gecho.Send())
			return
		}
		crm.logger.Error("Failed to update cart item", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to update cart"), gecho.Send())
		return
	}

	crm.respondWithCart(w, items, false)
}

// RemoveItem handles DELETE /cart/items/{id}.
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := crm.ensureSession(w, r)
	productID := chi.URLParam(r, "id")

	items, err := crm.cartService.RemoveItem(ctx, sessionID, productID)
	if err != nil {
		crm.logger.Error("Failed to remove cart item", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to update cart"), gecho.Send())
		return
	}

	crm.respondWithCart(w, items, false)
}

// ClearCart handles DELETE /cart.
func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := crm.ensureSession(w, r)

	if err := crm.cartService.Clear(ctx, sessionID); err != nil {
		crm.logger.Error("Failed to clear cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to clear cart"), gecho.Send())
		return
	}

	crm.respondWithCart(w, []structs.CartItem{}, false)
}

// respondWithCart is the shared mutation response. show_mini_cart tells the
// storefront to pop the mini cart open, which only an add does.
func (crm *CartRoutesManager) respondWithCart(w http.ResponseWriter, items []structs.CartItem, showMiniCart bool) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items":          items,
			"totals":         structs.SummarizeCart(items),
			"show_mini_cart": showMiniCart,
		}),
		gecho.Send(),
	)
}
