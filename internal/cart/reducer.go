// Package cart holds the shopper's cart: a pure reducer over line items and a
// store that persists the result into a storage slot after every change.
package cart

import "lapak-storefront/internal/domain"

// State is the ordered line items and their derived total. Items keep
// insertion order, which is display order.
type State struct {
	Items []domain.CartLineItem `json:"items"`
	Total domain.Money          `json:"total"`
}

func Empty() State {
	return State{Items: []domain.CartLineItem{}}
}

// Command is one cart transition. See Reduce.
type Command interface {
	isCommand()
}

type AddItem struct {
	Product  domain.Product
	Variant  *domain.Variant
	Quantity int
}

type RemoveItem struct {
	Key domain.LineKey
}

// UpdateQuantity sets the quantity; anything at or below zero drops the line.
type UpdateQuantity struct {
	Key      domain.LineKey
	Quantity int
}

type ClearCart struct{}

// Hydrate replaces the items with a deserialized sequence, merging duplicate
// keys and dropping lines that break the quantity invariant.
type Hydrate struct {
	Items []domain.CartLineItem
}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (ClearCart) isCommand()      {}
func (Hydrate) isCommand()        {}

// Reduce applies cmd to s and returns the new state. s is not modified.
// The total is always recomputed from the resulting items.
func Reduce(s State, cmd Command) State {
	items := make([]domain.CartLineItem, len(s.Items))
	copy(items, s.Items)

	switch c := cmd.(type) {
	case AddItem:
		items = add(items, domain.CartLineItem{
			Product:  c.Product,
			Variant:  c.Variant,
			Quantity: c.Quantity,
		})
	case RemoveItem:
		if i := indexOf(items, c.Key); i >= 0 {
			items = removeAt(items, i)
		}
	case UpdateQuantity:
		if i := indexOf(items, c.Key); i >= 0 {
			if c.Quantity <= 0 {
				items = removeAt(items, i)
			} else {
				items[i].Quantity = c.Quantity
			}
		}
	case ClearCart:
		items = []domain.CartLineItem{}
	case Hydrate:
		items = []domain.CartLineItem{}
		for _, item := range c.Items {
			if item.Product.ID == "" {
				continue
			}
			items = add(items, item)
		}
	}

	return State{Items: items, Total: Total(items)}
}

// Total is Σ (variant price ?? product price) × quantity.
func Total(items []domain.CartLineItem) domain.Money {
	var total domain.Money
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func add(items []domain.CartLineItem, item domain.CartLineItem) []domain.CartLineItem {
	if i := indexOf(items, item.Key()); i >= 0 {
		items[i].Quantity += item.Quantity
		if items[i].Quantity <= 0 {
			return removeAt(items, i)
		}
		return items
	}
	if item.Quantity <= 0 {
		return items
	}
	return append(items, item)
}

func indexOf(items []domain.CartLineItem, key domain.LineKey) int {
	for i := range items {
		if items[i].Key() == key {
			return i
		}
	}
	return -1
}

func removeAt(items []domain.CartLineItem, i int) []domain.CartLineItem {
	out := make([]domain.CartLineItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// Find returns the line item for key.
func (s State) Find(key domain.LineKey) (domain.CartLineItem, bool) {
	if i := indexOf(s.Items, key); i >= 0 {
		return s.Items[i], true
	}
	return domain.CartLineItem{}, false
}

// Quantity returns the quantity for key, 0 when absent.
func (s State) Quantity(key domain.LineKey) int {
	item, ok := s.Find(key)
	if !ok {
		return 0
	}
	return item.Quantity
}

// ItemTotal returns the line subtotal for key, 0 when absent.
func (s State) ItemTotal(key domain.LineKey) domain.Money {
	item, ok := s.Find(key)
	if !ok {
		return 0
	}
	return item.Subtotal()
}

// Select returns the line items matching keys, in cart order.
func (s State) Select(keys []domain.LineKey) []domain.CartLineItem {
	want := make(map[domain.LineKey]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []domain.CartLineItem
	for _, item := range s.Items {
		if want[item.Key()] {
			out = append(out, item)
		}
	}
	return out
}

// Count is the number of units across all lines.
func (s State) Count() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
