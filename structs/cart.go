package structs

import "github.com/shopspring/decimal"

// CartItem is the compact projection of a product a cart persists. Older
// clients stored the full product object plus a quantity; since CartItem is a
// field subset of Product, those legacy payloads unmarshal into CartItem
// directly and are normalized on load.
type CartItem struct {
	ID              string `json:"ID"`
	Slug            string `json:"Slug"`
	Title           string `json:"Title"`
	RegularPrice    string `json:"RegularPrice"`
	SalePrice       string `json:"SalePrice"`
	FeatureImageURL string `json:"FeatureImageURL"`
	Currency        string `json:"Currency"`
	Quantity        int    `json:"quantity"`
}

// ToCartItem projects a product onto a compact line item with quantity 1.
func ToCartItem(p *Product) CartItem {
	item := CartItem{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		RegularPrice:    p.RegularPrice,
		SalePrice:       p.SalePrice,
		FeatureImageURL: p.FeatureImageURL,
		Currency:        p.Currency,
		Quantity:        1,
	}
	item.normalize()
	return item
}

// Normalize floors the quantity at 1 and substitutes display defaults for
// missing fields. Used when migrating legacy stored carts.
func (ci *CartItem) Normalize() {
	ci.normalize()
}

func (ci *CartItem) normalize() {
	if ci.Quantity < 1 {
		ci.Quantity = 1
	}
	if ci.FeatureImageURL == "" {
		ci.FeatureImageURL = PlaceholderImageURL
	}
	if ci.Currency == "" {
		ci.Currency = DefaultCurrency
	}
}

// EffectivePrice is the unit price the customer pays for this line item.
func (ci *CartItem) EffectivePrice() decimal.Decimal {
	if ci.SalePrice != "" {
		return ParsePrice(ci.SalePrice)
	}
	return ParsePrice(ci.RegularPrice)
}

// CartTotals summarizes a cart for responses and order emails.
type CartTotals struct {
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func SummarizeCart(items []CartItem) CartTotals {
	totals := CartTotals{Currency: DefaultCurrency}
	amount := decimal.Zero
	for i := range items {
		totals.Quantity += items[i].Quantity
		amount = amount.Add(items[i].EffectivePrice().Mul(decimal.NewFromInt(int64(items[i].Quantity))))
		if items[i].Currency != "" {
			totals.Currency = items[i].Currency
		}
	}
	totals.Amount = amount.StringFixed(2)
	return totals
}
