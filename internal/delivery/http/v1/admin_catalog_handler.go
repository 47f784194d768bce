package v1

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

type AdminCatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewAdminCatalogHandler(uc *usecase.CatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogUC: uc}
}

// --- Products ---

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductInput
	if !decode(w, r, &req) {
		return
	}
	p, err := h.catalogUC.CreateProduct(r.Context(), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, p)
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductInput
	if !decode(w, r, &req) {
		return
	}
	p, err := h.catalogUC.UpdateProduct(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, p)
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUC.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Product deleted")
}

// --- Variants ---

func (h *AdminCatalogHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var req domain.VariantInput
	if !decode(w, r, &req) {
		return
	}
	v, err := h.catalogUC.CreateVariant(r.Context(), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, v)
}

func (h *AdminCatalogHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	var req domain.VariantInput
	if !decode(w, r, &req) {
		return
	}
	v, err := h.catalogUC.UpdateVariant(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, v)
}

func (h *AdminCatalogHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUC.DeleteVariant(r.Context(), r.PathValue("id")); err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Variant deleted")
}

// --- Brands, categories, subcategories ---

func (h *AdminCatalogHandler) CreateTaxon(kind domain.TaxonomyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.TaxonInput
		if !decode(w, r, &req) {
			return
		}
		t, err := h.catalogUC.CreateTaxon(r.Context(), kind, req)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		utils.WriteData(w, http.StatusCreated, t)
	}
}

func (h *AdminCatalogHandler) UpdateTaxon(kind domain.TaxonomyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.TaxonInput
		if !decode(w, r, &req) {
			return
		}
		t, err := h.catalogUC.UpdateTaxon(r.Context(), kind, r.PathValue("id"), req)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		utils.WriteData(w, http.StatusOK, t)
	}
}

func (h *AdminCatalogHandler) DeleteTaxon(kind domain.TaxonomyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalogUC.DeleteTaxon(r.Context(), kind, r.PathValue("id")); err != nil {
			writeErr(w, r, err)
			return
		}
		utils.WriteMessage(w, http.StatusOK, "Deleted")
	}
}
