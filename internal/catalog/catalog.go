// Package catalog holds the static donation product catalog. Product
// and price identifiers are assigned by the payment provider and do
// not change at runtime, so the catalog is a fixed ordered table.
package catalog

// Checkout modes understood by the payment provider.
const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// Product maps a site-level product to a provider price/mode pair.
type Product struct {
	ID          string `json:"id"`
	PriceID     string `json:"priceId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Mode        string `json:"mode"`
}

var products = []Product{
	{
		ID:          "prod_SfDewKDDeGMYzN",
		PriceID:     "price_1RjtDVLxmSamPrG3GuU8LeBZ",
		Name:        "Donate",
		Description: "Donate for a cause",
		Mode:        ModeSubscription,
	},
}

// ByID returns the product with the given id.
func ByID(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ByPriceID returns the product carrying the given provider price id.
func ByPriceID(priceID string) (Product, bool) {
	for _, p := range products {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return Product{}, false
}

// All returns a copy of the catalog in table order.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
