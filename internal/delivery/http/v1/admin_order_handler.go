package v1

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

// AdminOrderHandler is the petugas/admin side of orders and payments.
type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: uc}
}

// GET /api/v1/admin/orders?status=&page=&limit=
func (h *AdminOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := utils.ParseInt(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := utils.ParseInt(q.Get("limit"), 20)
	if limit < 1 {
		limit = 20
	}

	orders, err := h.orderUC.ListOrders(r.Context(), domain.OrderFilter{
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	utils.WritePage(w, http.StatusOK, orders, map[string]int{"page": page, "limit": limit})
}

type statusReq struct {
	Status string `json:"status"`
}

// PATCH /api/v1/admin/orders/{id}/status
func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	order, err := h.orderUC.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	logger.WithContext(r.Context()).Info().
		Str("order_id", id).
		Str("status", req.Status).
		Str("by", session(r).UserID).
		Msg("Order status updated")
	utils.WriteData(w, http.StatusOK, order)
}

// PATCH /api/v1/admin/payments/{id}/status records a COD payment by hand.
func (h *AdminOrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	payment, err := h.orderUC.UpdatePaymentStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, payment)
}
