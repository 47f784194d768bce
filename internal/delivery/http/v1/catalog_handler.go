package v1

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

// GET /api/v1/products?q=&brand=&subcategory=&page=&limit=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Query:         q.Get("q"),
		BrandID:       q.Get("brand"),
		SubcategoryID: q.Get("subcategory"),
		Status:        q.Get("status"),
		Page:          utils.ParseInt(q.Get("page"), 1),
		Limit:         utils.ParseInt(q.Get("limit"), 20),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	products, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	utils.WriteData(w, http.StatusOK, products)
}

// GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalogUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, p)
}

// ListTaxa serves GET /api/v1/{brands,categories,subcategories}.
func (h *CatalogHandler) ListTaxa(kind domain.TaxonomyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxa, err := h.catalogUC.ListTaxa(r.Context(), kind)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		if categoryID := r.URL.Query().Get("category"); categoryID != "" && kind == domain.TaxonomySubcategories {
			filtered := make([]domain.Taxon, 0, len(taxa))
			for _, t := range taxa {
				if t.ParentID != nil && *t.ParentID == categoryID {
					filtered = append(filtered, t)
				}
			}
			taxa = filtered
		}
		if taxa == nil {
			taxa = []domain.Taxon{}
		}
		utils.WriteData(w, http.StatusOK, taxa)
	}
}
