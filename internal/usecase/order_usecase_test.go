package usecase

import (
	"context"
	"errors"
	"testing"

	"lapak-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(status, method string) (*OrderUsecase, *fakeOrders, *fakePayments) {
	orders := newFakeOrders(&domain.Order{ID: "O9", Status: status, PaymentMethod: method, Total: 45000})
	payments := newFakePayments()
	return NewOrderUsecase(orders, payments), orders, payments
}

func TestGetOrder_SyncsWithPayment(t *testing.T) {
	tests := []struct {
		name          string
		orderStatus   string
		paymentStatus string
		want          string
		synced        bool
	}{
		{"paid payment settles pending order", domain.OrderStatusPending, domain.PaymentStatusPaid, domain.OrderStatusPaid, true},
		{"expired payment cancels", domain.OrderStatusPending, domain.PaymentStatusExpired, domain.OrderStatusCancelled, true},
		{"failed payment cancels", domain.OrderStatusPending, domain.PaymentStatusFailed, domain.OrderStatusCancelled, true},
		{"pending payment leaves order", domain.OrderStatusPending, domain.PaymentStatusPending, domain.OrderStatusPending, false},
		{"shipped order is never touched", domain.OrderStatusShipped, domain.PaymentStatusFailed, domain.OrderStatusShipped, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, orders, payments := newOrderFixture(tt.orderStatus, domain.PaymentMethodOnline)
			payments.byOrder["O9"] = &domain.Payment{ID: "PAY-O9", OrderID: "O9", Status: tt.paymentStatus}

			detail, err := uc.GetOrder(context.Background(), "O9")

			require.NoError(t, err)
			assert.Equal(t, tt.want, detail.Order.Status)
			require.NotNil(t, detail.Payment)
			if tt.synced {
				assert.Equal(t, []string{"O9=" + tt.want}, orders.statusCalls)
			} else {
				assert.Empty(t, orders.statusCalls)
			}
		})
	}
}

func TestGetOrder_SyncIsBestEffort(t *testing.T) {
	uc, orders, payments := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodOnline)
	payments.byOrder["O9"] = &domain.Payment{ID: "PAY-O9", OrderID: "O9", Status: domain.PaymentStatusPaid}
	orders.statusErr = errors.New("remote down")

	detail, err := uc.GetOrder(context.Background(), "O9")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, detail.Order.Status)

	payments.lookupErr = errors.New("payments down")
	detail, err = uc.GetOrder(context.Background(), "O9")
	require.NoError(t, err)
	assert.Nil(t, detail.Payment)

	_, err = uc.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_OnlyPendingOrders(t *testing.T) {
	uc, orders, _ := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodCOD)

	o, err := uc.Cancel(context.Background(), "O9")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, o.Status)
	assert.Equal(t, []string{"O9"}, orders.cancelled)

	_, err = uc.Cancel(context.Background(), "O9")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, orders.cancelled, 1)
}

func TestRetryPayment(t *testing.T) {
	t.Run("creates the missing payment", func(t *testing.T) {
		uc, _, payments := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodOnline)

		gw, err := uc.RetryPayment(context.Background(), "O9")

		require.NoError(t, err)
		assert.Equal(t, "snap-PAY-O9", gw.Token)
		require.Len(t, payments.created, 1)
		assert.Equal(t, domain.Money(45000), payments.created[0].Amount)
	})

	t.Run("reuses an existing payment", func(t *testing.T) {
		uc, _, payments := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodOnline)
		payments.byOrder["O9"] = &domain.Payment{ID: "PAY-OLD", OrderID: "O9", Status: domain.PaymentStatusExpired}

		gw, err := uc.RetryPayment(context.Background(), "O9")

		require.NoError(t, err)
		assert.Equal(t, "snap-PAY-OLD", gw.Token)
		assert.Empty(t, payments.created)
	})

	t.Run("rejects settled payments", func(t *testing.T) {
		uc, _, payments := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodOnline)
		payments.byOrder["O9"] = &domain.Payment{ID: "PAY-O9", OrderID: "O9", Status: domain.PaymentStatusPaid}

		_, err := uc.RetryPayment(context.Background(), "O9")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, payments.gateways)
	})

	t.Run("rejects COD and non-pending orders", func(t *testing.T) {
		uc, _, _ := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodCOD)
		_, err := uc.RetryPayment(context.Background(), "O9")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		uc, _, _ = newOrderFixture(domain.OrderStatusPaid, domain.PaymentMethodOnline)
		_, err = uc.RetryPayment(context.Background(), "O9")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAdminStatusUpdates(t *testing.T) {
	uc, orders, _ := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodCOD)
	ctx := context.Background()

	_, err := uc.ListOrders(ctx, domain.OrderFilter{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStatus(ctx, "O9", "teleported")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, orders.statusCalls)

	o, err := uc.UpdateStatus(ctx, "O9", domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, o.Status)

	_, err = uc.UpdatePaymentStatus(ctx, "PAY-O9", "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePaymentStatus_SyncsOrder(t *testing.T) {
	uc, orders, payments := newOrderFixture(domain.OrderStatusPending, domain.PaymentMethodCOD)
	payments.byOrder["O9"] = &domain.Payment{ID: "PAY-O9", OrderID: "O9", Status: domain.PaymentStatusPending}

	p, err := uc.UpdatePaymentStatus(context.Background(), "PAY-O9", domain.PaymentStatusPaid)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, p.Status)
	assert.Equal(t, []string{"O9=" + domain.OrderStatusPaid}, orders.statusCalls)
	assert.Equal(t, domain.OrderStatusPaid, orders.orders["O9"].Status)
}
