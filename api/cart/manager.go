package cart

import (
	"net/http"
	"time"

	"konigfood_server/lib"
	"konigfood_server/services"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CartRoutesManager struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	cartService    *services.CartService
	catalogService *services.CatalogService
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	cartService *services.CartService,
	catalogService *services.CatalogService,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:         logger,
		cfg:            cfg,
		cartService:    cartService,
		catalogService: catalogService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/cart", crm.FetchCart)
	r.Delete("/cart", crm.ClearCart)
	r.Post("/cart/items", crm.AddItem)
	r.Put("/cart/items/{id}", crm.UpdateItem)
	r.Delete("/cart/items/{id}", crm.RemoveItem)
}

// ensureSession resolves the anonymous cart session, minting a cookie for
// first-time visitors.
func (crm *CartRoutesManager) ensureSession(w http.ResponseWriter, r *http.Request) string {
	sessionID, err := lib.GetCookieValue(crm.cfg.Cart.SessionCookieName, r)
	if err == nil && sessionID != "" {
		return sessionID
	}

	sessionID = uuid.NewString()
	lib.SetCookie(crm.cfg.Cart.SessionCookieName, sessionID, time.Now().Add(crm.cfg.Cart.SessionTTL), w)
	return sessionID
}
