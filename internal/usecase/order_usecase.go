package usecase

import (
	"context"
	"fmt"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"
)

type OrderUsecase struct {
	orders   domain.OrderGateway
	payments domain.PaymentGateway
}

func NewOrderUsecase(orders domain.OrderGateway, payments domain.PaymentGateway) *OrderUsecase {
	return &OrderUsecase{orders: orders, payments: payments}
}

// OrderDetail is an order together with its payment record, if any.
type OrderDetail struct {
	Order   *domain.Order   `json:"order"`
	Payment *domain.Payment `json:"payment,omitempty"`
}

func (u *OrderUsecase) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return u.orders.ListMyOrders(ctx)
}

// GetOrder loads an order and reconciles a pending order with its payment
// status. Reconciliation is best effort: when it fails the order is returned
// as the Remote Service has it.
func (u *OrderUsecase) GetOrder(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := u.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &OrderDetail{Order: order}

	payment, err := u.payments.GetPaymentByOrder(ctx, id)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("order_id", id).Msg("Payment lookup failed, skipping sync")
		return detail, nil
	}
	detail.Payment = payment
	if payment != nil {
		detail.Order = u.syncOrder(ctx, order, payment.Status)
	}
	return detail, nil
}

// syncOrder moves a pending order to the status its payment implies.
func (u *OrderUsecase) syncOrder(ctx context.Context, order *domain.Order, paymentStatus string) *domain.Order {
	target := domain.OrderStatusForPayment(order.Status, paymentStatus)
	if target == "" {
		return order
	}
	updated, err := u.orders.UpdateOrderStatus(ctx, order.ID, target)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).
			Str("order_id", order.ID).
			Str("target", target).
			Msg("Order/payment sync failed")
		return order
	}
	logger.WithContext(ctx).Info().
		Str("order_id", order.ID).
		Str("from", order.Status).
		Str("to", target).
		Msg("Order synced with payment")
	return updated
}

// Cancel cancels the shopper's own order while it is still pending.
func (u *OrderUsecase) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	order, err := u.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, fmt.Errorf("order is %s: %w", order.Status, domain.ErrInvalidInput)
	}
	return u.orders.CancelOrder(ctx, id)
}

// RetryPayment opens a fresh gateway session for an unpaid online order,
// creating the payment record first when checkout could not.
func (u *OrderUsecase) RetryPayment(ctx context.Context, id string) (*domain.GatewaySession, error) {
	order, err := u.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending || order.PaymentMethod != domain.PaymentMethodOnline {
		return nil, domain.ErrInvalidInput
	}

	payment, err := u.payments.GetPaymentByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		payment, err = u.payments.CreatePayment(ctx, domain.CreatePaymentInput{
			OrderID: order.ID,
			Method:  domain.PaymentMethodOnline,
			Amount:  order.Total,
		})
		if err != nil {
			return nil, fmt.Errorf("create payment: %w", err)
		}
	}
	if payment.Status == domain.PaymentStatusPaid {
		return nil, fmt.Errorf("payment already settled: %w", domain.ErrInvalidInput)
	}
	return u.payments.InitiateGateway(ctx, payment.ID)
}

// --- Petugas / admin ---

func (u *OrderUsecase) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Status != "" && !domain.IsOrderStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	return u.orders.ListOrders(ctx, filter)
}

func (u *OrderUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return u.orders.UpdateOrderStatus(ctx, id, status)
}

// UpdatePaymentStatus records a manual (COD) payment status and then brings
// the order in line with it.
func (u *OrderUsecase) UpdatePaymentStatus(ctx context.Context, paymentID, status string) (*domain.Payment, error) {
	if !domain.IsPaymentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	payment, err := u.payments.UpdatePaymentStatus(ctx, paymentID, status)
	if err != nil {
		return nil, err
	}
	if payment.OrderID != "" {
		order, err := u.orders.GetOrder(ctx, payment.OrderID)
		if err != nil {
			logger.WithContext(ctx).Warn().Err(err).Str("order_id", payment.OrderID).Msg("Order lookup after payment update failed")
			return payment, nil
		}
		u.syncOrder(ctx, order, payment.Status)
	}
	return payment, nil
}
