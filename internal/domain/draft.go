package domain

type DraftItem struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	Price     Money   `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

func (d DraftItem) Key() LineKey {
	return NewLineKey(d.ProductID, d.VariantID)
}

// CheckoutDraft is the single-use payload behind "buy now" and
// "checkout selected items".
type CheckoutDraft struct {
	Items []DraftItem `json:"items"`
	Total Money       `json:"total"`
}

// DraftTotal is Σ price × quantity over the entries.
func DraftTotal(items []DraftItem) Money {
	var total Money
	for _, item := range items {
		total += item.Price.Times(item.Quantity)
	}
	return total
}

// Checkout sources
const (
	CheckoutSourceDraft = "draft"
	CheckoutSourceCart  = "cart"
)
