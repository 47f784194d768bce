package domain

import "context"

// --- Remote Service ports ---
// The bearer token travels in ctx (see WithSession).

type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Profile(ctx context.Context) (*User, error)
}

type CatalogGateway interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListVariants(ctx context.Context, productID string) ([]Variant, error)

	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateVariant(ctx context.Context, in VariantInput) (*Variant, error)
	UpdateVariant(ctx context.Context, id string, in VariantInput) (*Variant, error)
	DeleteVariant(ctx context.Context, id string) error

	ListTaxa(ctx context.Context, kind TaxonomyKind) ([]Taxon, error)
	CreateTaxon(ctx context.Context, kind TaxonomyKind, in TaxonInput) (*Taxon, error)
	UpdateTaxon(ctx context.Context, kind TaxonomyKind, id string, in TaxonInput) (*Taxon, error)
	DeleteTaxon(ctx context.Context, kind TaxonomyKind, id string) error
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListMyOrders(ctx context.Context) ([]Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error)
	CancelOrder(ctx context.Context, id string) (*Order, error)
}

type PaymentGateway interface {
	CreatePayment(ctx context.Context, in CreatePaymentInput) (*Payment, error)
	InitiateGateway(ctx context.Context, paymentID string) (*GatewaySession, error)
	GetPaymentByOrder(ctx context.Context, orderID string) (*Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID, status string) (*Payment, error)
}

type ReturnGateway interface {
	CreateReturn(ctx context.Context, in CreateReturnInput) (*ReturnRequest, error)
	ListMyReturns(ctx context.Context) ([]ReturnRequest, error)
	ListReturns(ctx context.Context) ([]ReturnRequest, error)
	ApproveReturn(ctx context.Context, id, note string) (*ReturnRequest, error)
	RejectReturn(ctx context.Context, id, note string) (*ReturnRequest, error)
	DamagedProducts(ctx context.Context) ([]DamagedProduct, error)
}

type StaffGateway interface {
	ListStaff(ctx context.Context) ([]Staff, error)
	CreateStaff(ctx context.Context, in StaffInput) (*Staff, error)
	UpdateStaff(ctx context.Context, id string, in StaffInput) (*Staff, error)
	DeleteStaff(ctx context.Context, id string) error
}
