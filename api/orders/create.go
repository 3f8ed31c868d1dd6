package orders

import (
	"net/http"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateOrder handles POST /orders: validate the submitted cart against the
// catalog and send the confirmation emails.
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid order payload"), gecho.Send())
		return
	}

	orderID, err := orm.orderService.PlaceOrder(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to place order", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to place order. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order placed"),
		gecho.WithData(map[string]any{
			"order_id": orderID,
		}),
		gecho.Send(),
	)
}
