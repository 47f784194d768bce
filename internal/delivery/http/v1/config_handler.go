package v1

import (
	"net/http"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/cache"
	"lapak-storefront/pkg/utils"
)

type ConfigHandler struct {
	cache cache.CacheService
}

func NewConfigHandler(cache cache.CacheService) *ConfigHandler {
	return &ConfigHandler{cache: cache}
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums, _ := cache.Fetch(h.cache, "system:config:enums", time.Hour, func() (map[string]interface{}, error) {
		return map[string]interface{}{
			"orderStatuses":   domain.OrderStatuses,
			"paymentStatuses": domain.PaymentStatuses,
			"paymentMethods":  domain.PaymentMethods,
			"returnStatuses":  domain.ReturnStatuses,
			"roles":           domain.Roles,
			"taxonomies":      []domain.TaxonomyKind{domain.TaxonomyBrands, domain.TaxonomyCategories, domain.TaxonomySubcategories},
		}, nil
	})

	w.Header().Set("Cache-Control", "public, max-age=3600")
	utils.WriteData(w, http.StatusOK, enums)
}

// GET /health
func (h *ConfigHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
