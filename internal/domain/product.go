package domain

import "time"

// Product statuses
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         Money     `json:"price"`
	Images        []string  `json:"images,omitempty"`
	Status        string    `json:"status"`
	BrandID       *string   `json:"brandId,omitempty"`
	SubcategoryID *string   `json:"subcategoryId,omitempty"`
	Variants      []Variant `json:"variants,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsPurchasable reports whether the product can be put in a cart at all.
func (p *Product) IsPurchasable() bool {
	return p.Status == ProductStatusActive
}

// FirstImage returns the cover image, or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FindVariant returns the variant with the given id, or nil.
func (p *Product) FindVariant(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// Snapshot copies the product without its variant list, which is what a cart
// line item keeps.
func (p Product) Snapshot() Product {
	p.Variants = nil
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}

type Variant struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
	Stock     int     `json:"stock"`
	Price     *Money  `json:"price,omitempty"` // Override base price
}

// Label joins size and color for display, e.g. "XL / Hitam".
func (v *Variant) Label() string {
	switch {
	case v.Size != nil && v.Color != nil:
		return *v.Size + " / " + *v.Color
	case v.Size != nil:
		return *v.Size
	case v.Color != nil:
		return *v.Color
	}
	return ""
}

type ProductFilter struct {
	Query         string
	BrandID       string
	SubcategoryID string
	Status        string
	Page          int
	Limit         int
}

type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         Money    `json:"price"`
	Images        []string `json:"images,omitempty"`
	Status        string   `json:"status,omitempty"`
	BrandID       *string  `json:"brandId,omitempty"`
	SubcategoryID *string  `json:"subcategoryId,omitempty"`
}

type VariantInput struct {
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
	Stock     int     `json:"stock"`
	Price     *Money  `json:"price,omitempty"`
}

// TaxonomyKind names the flat catalog collections administered the same way.
type TaxonomyKind string

const (
	TaxonomyBrands        TaxonomyKind = "brands"
	TaxonomyCategories    TaxonomyKind = "categories"
	TaxonomySubcategories TaxonomyKind = "subcategories"
)

func (k TaxonomyKind) Valid() bool {
	switch k {
	case TaxonomyBrands, TaxonomyCategories, TaxonomySubcategories:
		return true
	}
	return false
}

// Taxon is a brand, category or subcategory. ParentID is the category of a
// subcategory.
type Taxon struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	ParentID *string `json:"categoryId,omitempty"`
}

type TaxonInput struct {
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	ParentID *string `json:"categoryId,omitempty"`
}
