package v1

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

// GET /api/v1/orders
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUC.MyOrders(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	utils.WriteData(w, http.StatusOK, orders)
}

// GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	detail, err := h.orderUC.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, detail)
}

// POST /api/v1/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUC.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, order)
}

// POST /api/v1/orders/{id}/payment
func (h *OrderHandler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	gw, err := h.orderUC.RetryPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, gw)
}
