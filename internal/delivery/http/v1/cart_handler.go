package v1

import (
	"net/http"

	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

// CartHandler serves the shopper's cart. Guests are keyed by the cart_id
// cookie, logged-in users by their id.
type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

type cartItemReq struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartUC.View(r.Context(), session(r).ShopperKey())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, view)
}

// POST /api/v1/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	view, err := h.cartUC.AddItem(r.Context(), session(r).ShopperKey(), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, view)
}

// PUT /api/v1/cart sets a line's quantity; zero removes it.
func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if !decode(w, r, &req) {
		return
	}
	view, err := h.cartUC.UpdateQuantity(r.Context(), session(r).ShopperKey(), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, view)
}

// DELETE /api/v1/cart/items/{productId}?variantId=
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var variantID *string
	if v := r.URL.Query().Get("variantId"); v != "" {
		variantID = &v
	}
	view, err := h.cartUC.RemoveItem(r.Context(), session(r).ShopperKey(), r.PathValue("productId"), variantID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, view)
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartUC.Clear(r.Context(), session(r).ShopperKey())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, view)
}
