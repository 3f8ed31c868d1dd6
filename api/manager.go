package api

import (
	"konigfood_server/api/admin"
	"konigfood_server/api/auth"
	"konigfood_server/api/cart"
	"konigfood_server/api/contact"
	"konigfood_server/api/debug"
	"konigfood_server/api/health"
	"konigfood_server/api/middleware"
	"konigfood_server/api/orders"
	"konigfood_server/api/products"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	cartRoutes    *cart.CartRoutesManager
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	contactRoutes *contact.ContactRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(
	productRoutes *products.ProductRoutesManager,
	cartRoutes *cart.CartRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	authRoutes *auth.AuthRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
	orderRoutes *orders.OrderRoutesManager,
	contactRoutes *contact.ContactRoutesManager,
	debugRoutes *debug.DebugRoutesManager,
) *routerManager {
	return &routerManager{
		productRoutes: productRoutes,
		cartRoutes:    cartRoutes,
		healthRoutes:  healthRoutes,
		authRoutes:    authRoutes,
		adminRoutes:   adminRoutes,
		orderRoutes:   orderRoutes,
		contactRoutes: contactRoutes,
		debugRoutes:   debugRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router, mw *middleware.Middleware) {
	rm.productRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.contactRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)

	// Admin panel routes sit behind the auth middleware.
	r.Group(func(r chi.Router) {
		r.Use(mw.AdminAuthMiddleware)
		rm.adminRoutes.RegisterRoutes(r)
	})
}
