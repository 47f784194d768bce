package domain

// LineKey identifies a cart line item. An empty VariantID means the line has
// no variant.
type LineKey struct {
	ProductID string
	VariantID string
}

func NewLineKey(productID string, variantID *string) LineKey {
	k := LineKey{ProductID: productID}
	if variantID != nil {
		k.VariantID = *variantID
	}
	return k
}

type CartLineItem struct {
	Product  Product  `json:"product"`
	Variant  *Variant `json:"variant,omitempty"`
	Quantity int      `json:"quantity"`
}

func (i CartLineItem) Key() LineKey {
	k := LineKey{ProductID: i.Product.ID}
	if i.Variant != nil {
		k.VariantID = i.Variant.ID
	}
	return k
}

// UnitPrice is the variant override price when present, else the product price.
func (i CartLineItem) UnitPrice() Money {
	if i.Variant != nil && i.Variant.Price != nil {
		return *i.Variant.Price
	}
	return i.Product.Price
}

func (i CartLineItem) Subtotal() Money {
	return i.UnitPrice().Times(i.Quantity)
}

// DraftItem converts the line item into a checkout entry.
func (i CartLineItem) DraftItem() DraftItem {
	d := DraftItem{
		ProductID: i.Product.ID,
		Name:      i.Product.Name,
		Price:     i.UnitPrice(),
		Image:     i.Product.FirstImage(),
		Quantity:  i.Quantity,
	}
	if i.Variant != nil {
		id := i.Variant.ID
		d.VariantID = &id
		if label := i.Variant.Label(); label != "" {
			d.Name = d.Name + " (" + label + ")"
		}
	}
	return d
}
