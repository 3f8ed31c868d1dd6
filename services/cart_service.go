package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"konigfood_server/lib"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

const (
	cartKeyPrefix        = "cart:"
	cartUpdatedKeyPrefix = "cart_updated_at:"
	cartNoticeKeyPrefix  = "cart_auto_cleared_notice_v1:"
)

// CartService owns per-session shopping carts. A cart self-clears once its
// last mutation is older than the configured TTL; the customer sees a one-shot
// notice the next time they open the cart.
type CartService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	kv     storage.KV
	now    func() time.Time
}

func NewCartService(logger *gecho.Logger, cfg *structs.Config, kv storage.KV) *CartService {
	return &CartService{
		logger: logger,
		cfg:    cfg,
		kv:     kv,
		now:    time.Now,
	}
}

// Cart is what a load returns: the reconciled items plus whether the cart was
// auto-cleared since the last look.
type Cart struct {
	Items       []structs.CartItem `json:"items"`
	Totals      structs.CartTotals `json:"totals"`
	AutoCleared bool               `json:"auto_cleared"`
	ExpiresAt   *time.Time         `json:"expires_at,omitempty"`
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func cartUpdatedKey(sessionID string) string {
	return cartUpdatedKeyPrefix + sessionID
}

func cartNoticeKey(sessionID string) string {
	return cartNoticeKeyPrefix + sessionID
}

// Load returns the session's cart, expiring it first when the last mutation is
// older than the TTL. Storage read errors degrade to an empty cart so the
// storefront keeps working.
func (cs *CartService) Load(ctx context.Context, sessionID string) (*Cart, error) {
	items, expired := cs.loadItems(ctx, sessionID)

	if expired {
		if err := cs.clear(ctx, sessionID, true); err != nil {
			cs.logger.Warn("Failed to clear expired cart", gecho.Field("error", err))
		}
		items = []structs.CartItem{}
	}

	autoCleared := cs.consumeAutoClearedNotice(ctx, sessionID)

	cart := &Cart{
		Items:       items,
		Totals:      structs.SummarizeCart(items),
		AutoCleared: autoCleared,
	}

	if len(items) > 0 {
		if expiresAt, ok := cs.expiresAt(ctx, sessionID); ok {
			cart.ExpiresAt = &expiresAt
		}
	}

	return cart, nil
}

// loadItems reads and normalizes the stored cart, reporting whether it is past
// its TTL. Legacy payloads that stored full product objects unmarshal into the
// compact item shape and get normalized in place.
func (cs *CartService) loadItems(ctx context.Context, sessionID string) ([]structs.CartItem, bool) {
	raw, err := cs.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		cs.logger.Warn("Failed to read cart from storage", gecho.Field("error", err))
		return []structs.CartItem{}, false
	}
	if raw == "" {
		return []structs.CartItem{}, false
	}

	var items []structs.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		cs.logger.Warn("Discarding malformed stored cart", gecho.Field("error", err))
		return []structs.CartItem{}, false
	}

	for i := range items {
		items[i].Normalize()
	}

	updatedRaw, err := cs.kv.Get(ctx, cartUpdatedKey(sessionID))
	if err != nil {
		cs.logger.Warn("Failed to read cart timestamp", gecho.Field("error", err))
		return items, false
	}
	if updatedRaw == "" {
		// No timestamp yet for an existing cart: stamp it now instead of
		// treating the cart as stale.
		cs.touch(ctx, sessionID)
		return items, false
	}

	updatedAt, err := strconv.ParseInt(updatedRaw, 10, 64)
	if err != nil {
		cs.touch(ctx, sessionID)
		return items, false
	}

	age := cs.now().Sub(time.UnixMilli(updatedAt))
	if age > cs.cfg.Cart.TTL && len(items) > 0 {
		return items, true
	}

	return items, false
}

// AddItem appends the product as a line item, or bumps the quantity when it is
// already in the cart.
func (cs *CartService) AddItem(ctx context.Context, sessionID string, product *structs.Product, quantity int) ([]structs.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	items, expired := cs.loadItems(ctx, sessionID)
	if expired {
		items = []structs.CartItem{}
	}

	found := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		item := structs.ToCartItem(product)
		item.Quantity = quantity
		items = append(items, item)
	}

	if err := cs.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity replaces a line item's quantity. Quantities below one are
// rejected silently, the cart stays as it was: the storefront floors at 1 and
// removing a line is an explicit RemoveItem.
func (cs *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]structs.CartItem, error) {
	items, expired := cs.loadItems(ctx, sessionID)
	if expired {
		items = []structs.CartItem{}
	}

	found := false
	for i := range items {
		if items[i].ID == productID {
			found = true
			if quantity >= 1 {
				items[i].Quantity = quantity
			}
			break
		}
	}
	if !found {
		return nil, lib.ErrNotFound
	}
	if quantity < 1 {
		return items, nil
	}

	if err := cs.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem drops a line item from the cart.
func (cs *CartService) RemoveItem(ctx context.Context, sessionID, productID string) ([]structs.CartItem, error) {
	items, expired := cs.loadItems(ctx, sessionID)
	if expired {
		items = []structs.CartItem{}
	}

	filtered := items[:0]
	for i := range items {
		if items[i].ID != productID {
			filtered = append(filtered, items[i])
		}
	}

	if err := cs.persist(ctx, sessionID, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Clear empties the cart on explicit customer action. The auto-cleared notice
// is not set; the customer asked for this.
func (cs *CartService) Clear(ctx context.Context, sessionID string) error {
	return cs.clear(ctx, sessionID, false)
}

// ReplaceItems overwrites the whole cart, used after a reconcile pass changed
// its contents.
func (cs *CartService) ReplaceItems(ctx context.Context, sessionID string, items []structs.CartItem) error {
	return cs.persist(ctx, sessionID, items)
}

func (cs *CartService) clear(ctx context.Context, sessionID string, autoCleared bool) error {
	if err := cs.kv.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if err := cs.kv.Delete(ctx, cartUpdatedKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete cart timestamp: %w", err)
	}

	if autoCleared {
		if err := cs.kv.Set(ctx, cartNoticeKey(sessionID), "1", cs.cfg.Cart.SessionTTL); err != nil {
			cs.logger.Warn("Failed to set auto-clear notice", gecho.Field("error", err))
		}
	}
	return nil
}

// consumeAutoClearedNotice reads and clears the one-shot notice flag.
func (cs *CartService) consumeAutoClearedNotice(ctx context.Context, sessionID string) bool {
	raw, err := cs.kv.Get(ctx, cartNoticeKey(sessionID))
	if err != nil {
		cs.logger.Warn("Failed to read auto-clear notice", gecho.Field("error", err))
		return false
	}
	if raw == "" {
		return false
	}

	if err := cs.kv.Delete(ctx, cartNoticeKey(sessionID)); err != nil {
		cs.logger.Warn("Failed to consume auto-clear notice", gecho.Field("error", err))
	}
	return true
}

// persist writes the cart and re-arms the expiry clock. Every mutation resets
// the TTL window.
func (cs *CartService) persist(ctx context.Context, sessionID string, items []structs.CartItem) error {
	if items == nil {
		items = []structs.CartItem{}
	}

	serialized, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := cs.kv.Set(ctx, cartKey(sessionID), string(serialized), cs.cfg.Cart.SessionTTL); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	cs.touch(ctx, sessionID)
	return nil
}

func (cs *CartService) touch(ctx context.Context, sessionID string) {
	stamp := strconv.FormatInt(cs.now().UnixMilli(), 10)
	if err := cs.kv.Set(ctx, cartUpdatedKey(sessionID), stamp, cs.cfg.Cart.SessionTTL); err != nil {
		cs.logger.Warn("Failed to store cart timestamp", gecho.Field("error", err))
	}
}

func (cs *CartService) expiresAt(ctx context.Context, sessionID string) (time.Time, bool) {
	raw, err := cs.kv.Get(ctx, cartUpdatedKey(sessionID))
	if err != nil || raw == "" {
		return time.Time{}, false
	}
	updatedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(updatedAt).Add(cs.cfg.Cart.TTL), true
}

// SetClock overrides the time source, for expiry tests.
func (cs *CartService) SetClock(now func() time.Time) {
	cs.now = now
}
