package v1

import (
	"net/http"

	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: uc}
}

// POST /api/v1/checkout/draft
// Body is either {"buyNow": {...}} or {"selected": [...]}.
func (h *CheckoutHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req usecase.DraftRequest
	if !decode(w, r, &req) {
		return
	}
	draft, err := h.checkoutUC.CreateDraft(r.Context(), session(r).ShopperKey(), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, draft)
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.checkoutUC.Preview(r.Context(), session(r).ShopperKey())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, preview)
}

// DELETE /api/v1/checkout/draft
func (h *CheckoutHandler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.checkoutUC.CancelDraft(r.Context(), session(r).ShopperKey())
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/checkout
// An Idempotency-Key header takes precedence over the body field.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req usecase.PlaceOrderInput
	if !decode(w, r, &req) {
		return
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}
	res, err := h.checkoutUC.PlaceOrder(r.Context(), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, res)
}
