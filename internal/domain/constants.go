package domain

// Order Statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment Statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

// Payment Methods
const (
	PaymentMethodOnline = "online" // third-party gateway widget
	PaymentMethodCOD    = "cod"    // status updated manually by staff
)

// Return Statuses
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

// Roles
const (
	RoleAdmin    = "admin"
	RolePetugas  = "petugas"
	RoleCustomer = "customer"
)

// List Exports for API
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusExpired,
}

var PaymentMethods = []string{
	PaymentMethodOnline,
	PaymentMethodCOD,
}

var ReturnStatuses = []string{
	ReturnStatusPending,
	ReturnStatusApproved,
	ReturnStatusRejected,
}

var Roles = []string{
	RoleAdmin,
	RolePetugas,
	RoleCustomer,
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func IsOrderStatus(s string) bool   { return contains(OrderStatuses, s) }
func IsPaymentStatus(s string) bool { return contains(PaymentStatuses, s) }
func IsPaymentMethod(s string) bool { return contains(PaymentMethods, s) }
func IsRole(s string) bool          { return contains(Roles, s) }
