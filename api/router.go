package api

import (
	"net/http"

	"konigfood_server/api/admin"
	"konigfood_server/api/auth"
	"konigfood_server/api/cart"
	"konigfood_server/api/contact"
	"konigfood_server/api/debug"
	"konigfood_server/api/health"
	"konigfood_server/api/middleware"
	"konigfood_server/api/orders"
	"konigfood_server/api/products"
	"konigfood_server/catalog"
	"konigfood_server/config"
	"konigfood_server/services"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(cfg *structs.Config, kv storage.KV, store catalog.Store, cache *catalog.Cache) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	sm := services.NewServiceManager(standardLogger, cfg, kv, store, cache)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, kv, sm.AuthService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security. The body limit matches the hosting payload cap since
	// a wholesale catalog save is the largest legitimate request.
	r.Use(mw.BodyLimit(cfg.Catalog.MaxPayloadBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(middleware.MetricsMiddleware)
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))

	// CORS (must be before auth / csrf)
	r.Use(mw.SetupCORS().Handler)

	// Abuse protection
	r.Use(mw.RateLimitMiddleware())
	r.Use(mw.CSRFMiddleware())

	// Register all routes
	NewRouterManager(
		products.NewProductRoutesManager(standardLogger, sm.CatalogService),
		cart.NewCartRoutesManager(standardLogger, cfg, sm.CartService, sm.CatalogService),
		health.NewHealthRoutesManager(sm.HealthService),
		auth.NewAuthRoutesManager(standardLogger, cfg, sm.AuthService),
		admin.NewAdminRoutesManager(standardLogger, cfg, sm.AdminCatalogService, sm.TableService),
		orders.NewOrderRoutesManager(standardLogger, sm.OrderService),
		contact.NewContactRoutesManager(standardLogger, sm.EmailService),
		debug.NewDebugRoutesManager(cache),
	).RegisterRoutes(r, mw)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the KonigFood API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
