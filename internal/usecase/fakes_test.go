package usecase

import (
	"context"
	"sync"
	"time"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/checkout"
	"lapak-storefront/internal/domain"
	memcache "lapak-storefront/internal/infrastructure/cache"
)

func strPtr(s string) *string { return &s }

func money(v int64) *domain.Money {
	m := domain.Money(v)
	return &m
}

// fakeCatalog serves products from a map and counts remote reads.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]domain.Product
	taxa     map[domain.TaxonomyKind][]domain.Taxon
	gets     int
	taxaGets int
	deleted  []string
	err      error
}

func newFakeCatalog(products ...domain.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[string]domain.Product{}, taxa: map[domain.TaxonomyKind][]domain.Taxon{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) ListProducts(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, f.err
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Variants == nil {
		p.Variants = []domain.Variant{}
	}
	return &p, nil
}

func (f *fakeCatalog) ListVariants(_ context.Context, productID string) ([]domain.Variant, error) {
	return f.products[productID].Variants, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	return &domain.Product{ID: "new", Name: in.Name, Price: in.Price}, f.err
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	p.Name, p.Price = in.Name, in.Price
	f.products[id] = p
	return &p, f.err
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeCatalog) CreateVariant(_ context.Context, in domain.VariantInput) (*domain.Variant, error) {
	return &domain.Variant{ID: "v-new", ProductID: in.ProductID, Stock: in.Stock}, f.err
}

func (f *fakeCatalog) UpdateVariant(_ context.Context, id string, in domain.VariantInput) (*domain.Variant, error) {
	return &domain.Variant{ID: id, ProductID: in.ProductID, Stock: in.Stock}, f.err
}

func (f *fakeCatalog) DeleteVariant(context.Context, string) error { return f.err }

func (f *fakeCatalog) ListTaxa(_ context.Context, kind domain.TaxonomyKind) ([]domain.Taxon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taxaGets++
	return f.taxa[kind], f.err
}

func (f *fakeCatalog) CreateTaxon(_ context.Context, kind domain.TaxonomyKind, in domain.TaxonInput) (*domain.Taxon, error) {
	t := domain.Taxon{ID: in.Name, Name: in.Name, ParentID: in.ParentID}
	f.taxa[kind] = append(f.taxa[kind], t)
	return &t, f.err
}

func (f *fakeCatalog) UpdateTaxon(_ context.Context, _ domain.TaxonomyKind, id string, in domain.TaxonInput) (*domain.Taxon, error) {
	return &domain.Taxon{ID: id, Name: in.Name}, f.err
}

func (f *fakeCatalog) DeleteTaxon(context.Context, domain.TaxonomyKind, string) error { return f.err }

type fakeOrders struct {
	orders      map[string]*domain.Order
	created     []domain.CreateOrderInput
	statusCalls []string
	cancelled   []string
	createErr   error
	statusErr   error
	nextID      string

	// beforeCreate runs while the order is being created, standing in for
	// a concurrent request from the same shopper.
	beforeCreate func()
}

func newFakeOrders(orders ...*domain.Order) *fakeOrders {
	f := &fakeOrders{orders: map[string]*domain.Order{}, nextID: "O1"}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) CreateOrder(_ context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	o := &domain.Order{ID: f.nextID, Status: domain.OrderStatusPending, PaymentMethod: in.PaymentMethod}
	for _, item := range in.Items {
		o.Items = append(o.Items, domain.OrderItem{ProductID: item.ProductID, VariantID: item.VariantID, Quantity: item.Quantity, Price: item.Price})
		o.Total += item.Price.Times(item.Quantity)
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *o
	return &c, nil
}

func (f *fakeOrders) ListMyOrders(context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) ListOrders(context.Context, domain.OrderFilter) ([]domain.Order, error) {
	return f.ListMyOrders(context.Background())
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, id, status string) (*domain.Order, error) {
	f.statusCalls = append(f.statusCalls, id+"="+status)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	c := *o
	return &c, nil
}

func (f *fakeOrders) CancelOrder(_ context.Context, id string) (*domain.Order, error) {
	f.cancelled = append(f.cancelled, id)
	o := f.orders[id]
	o.Status = domain.OrderStatusCancelled
	c := *o
	return &c, nil
}

type fakePayments struct {
	byOrder    map[string]*domain.Payment
	created    []domain.CreatePaymentInput
	gateways   []string
	createErr  error
	gatewayErr error
	lookupErr  error
}

func newFakePayments() *fakePayments {
	return &fakePayments{byOrder: map[string]*domain.Payment{}}
}

func (f *fakePayments) CreatePayment(_ context.Context, in domain.CreatePaymentInput) (*domain.Payment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	p := &domain.Payment{ID: "PAY-" + in.OrderID, OrderID: in.OrderID, Method: in.Method, Status: domain.PaymentStatusPending, Amount: in.Amount}
	f.byOrder[in.OrderID] = p
	return p, nil
}

func (f *fakePayments) InitiateGateway(_ context.Context, paymentID string) (*domain.GatewaySession, error) {
	f.gateways = append(f.gateways, paymentID)
	if f.gatewayErr != nil {
		return nil, f.gatewayErr
	}
	return &domain.GatewaySession{Token: "snap-" + paymentID, RedirectURL: "https://pay.example/" + paymentID}, nil
}

func (f *fakePayments) GetPaymentByOrder(_ context.Context, orderID string) (*domain.Payment, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.byOrder[orderID], nil
}

func (f *fakePayments) UpdatePaymentStatus(_ context.Context, paymentID, status string) (*domain.Payment, error) {
	for _, p := range f.byOrder {
		if p.ID == paymentID {
			p.Status = status
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type trackedPurchase struct {
	orderID string
	buyer   domain.Address
}

type fakeTracker struct {
	tracked []trackedPurchase
}

func (f *fakeTracker) TrackPurchase(_ context.Context, order *domain.Order, buyer domain.Address) {
	f.tracked = append(f.tracked, trackedPurchase{orderID: order.ID, buyer: buyer})
}

// harness wires the cart/checkout usecases over in-memory slots.
type harness struct {
	slots    *memcache.MemorySlots
	carts    *cart.Service
	catalog  *fakeCatalog
	orders   *fakeOrders
	payments *fakePayments
	tracker  *fakeTracker
	cartUC   *CartUsecase
	checkout *CheckoutUsecase
	bridge   *checkout.Bridge
}

func newHarness(products ...domain.Product) *harness {
	h := &harness{
		slots:    memcache.NewMemorySlots(time.Minute),
		catalog:  newFakeCatalog(products...),
		orders:   newFakeOrders(),
		payments: newFakePayments(),
		tracker:  &fakeTracker{},
	}
	h.carts = cart.NewService(h.slots)
	h.bridge = checkout.NewBridge(h.slots, time.Hour)
	catalogUC := NewCatalogUsecase(h.catalog, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute, time.Minute)
	h.cartUC = NewCartUsecase(h.carts, catalogUC, 10)
	h.checkout = NewCheckoutUsecase(h.bridge, h.carts, h.cartUC, catalogUC, h.orders, h.payments, h.tracker)
	return h
}

func customerCtx(userID string) context.Context {
	return domain.WithSession(context.Background(), &domain.Session{Token: "tok", UserID: userID, Role: domain.RoleCustomer})
}

// Fixtures
var (
	kaos = domain.Product{ID: "P1", Name: "Kaos", Price: 10000, Status: domain.ProductStatusActive, Images: []string{"kaos.webp"}}

	kemeja = domain.Product{
		ID: "P2", Name: "Kemeja", Price: 12000, Status: domain.ProductStatusActive,
		Variants: []domain.Variant{
			{ID: "V-A", ProductID: "P2", Size: strPtr("M"), Stock: 5, Price: money(15000)},
			{ID: "V-B", ProductID: "P2", Size: strPtr("L"), Stock: 1},
		},
	}

	topi = domain.Product{
		ID: "P3", Name: "Topi", Price: 5000, Status: domain.ProductStatusActive,
		Variants: []domain.Variant{{ID: "V-T", ProductID: "P3", Color: strPtr("Hitam"), Stock: 3}},
	}

	habis = domain.Product{ID: "P4", Name: "Sepatu", Price: 90000, Status: domain.ProductStatusOutOfStock}
)

var validAddress = domain.Address{
	RecipientName: "Sari Dewi",
	Phone:         "081234",
	Street:        "Jl. Merdeka 1",
	City:          "Bandung",
	Province:      "Jawa Barat",
	PostalCode:    "40111",
}
