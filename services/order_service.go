package services

import (
	"context"
	"errors"
	"time"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// OrderService handles checkout. There is no payment processing on the
// server; an order is a confirmed cart snapshot that goes out by email to the
// customer and the shop.
type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	catalogService *CatalogService
	emailService   *EmailService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, catalogService *CatalogService, emailService *EmailService) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		catalogService: catalogService,
		emailService:   emailService,
	}
}

// PlaceOrder validates the submitted cart against the current catalog and
// sends the confirmation email. The reconciled items are priced from the
// catalog, never from the client payload.
func (os *OrderService) PlaceOrder(ctx context.Context, order *structs.OrderRequest) (string, error) {
	startTime := time.Now()

	if len(order.CartItems) == 0 {
		return "", errors.New("order has no items")
	}

	products, err := os.catalogService.AllProducts(ctx)
	if err != nil {
		return "", err
	}

	reconciled, result := ReconcileCartItems(order.CartItems, products)
	if len(reconciled) == 0 {
		return "", errors.New("none of the ordered products are available")
	}
	if result.Changed {
		os.logger.Warn("Order items changed during reconcile",
			gecho.Field("removed", result.RemovedTitles),
		)
	}
	order.CartItems = reconciled

	if order.OrderID == "" {
		order.OrderID = lib.GenerateOrderNumber()
	}
	if order.OrderDate == "" {
		order.OrderDate = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.emailService.SendOrderConfirmationEmail(order); err != nil {
		return "", err
	}

	os.logger.Info("Order placed",
		gecho.Field("order_id", order.OrderID),
		gecho.Field("items", len(order.CartItems)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return order.OrderID, nil
}
