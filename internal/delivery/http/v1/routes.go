package v1

import (
	"net/http"

	mw "lapak-storefront/internal/delivery/http/middleware"
	"lapak-storefront/internal/domain"
)

// Handlers groups everything the API serves. Upload is nil when image
// storage is not configured.
type Handlers struct {
	Config       *ConfigHandler
	Catalog      *CatalogHandler
	AdminCatalog *AdminCatalogHandler
	Auth         *AuthHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Order        *OrderHandler
	AdminOrder   *AdminOrderHandler
	Return       *ReturnHandler
	AdminReturn  *AdminReturnHandler
	Staff        *StaffHandler
	Upload       *UploadHandler
}

// Register mounts the routes. Session resolution runs outside the mux; the
// role guards here only read what it put in the context.
func (hs Handlers) Register(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler { return mw.RequireAuth(h) }
	staff := func(h http.HandlerFunc) http.Handler { return mw.RequireStaff(h) }
	admin := func(h http.HandlerFunc) http.Handler { return mw.RequireAdmin(h) }

	// Health & config
	mux.HandleFunc("GET /health", hs.Config.Health)
	mux.HandleFunc("GET /api/v1/health", hs.Config.Health)
	mux.HandleFunc("GET /api/v1/config/enums", hs.Config.GetEnums)

	// Catalog (public)
	mux.HandleFunc("GET /api/v1/products", hs.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", hs.Catalog.GetProduct)
	for _, kind := range []domain.TaxonomyKind{domain.TaxonomyBrands, domain.TaxonomyCategories, domain.TaxonomySubcategories} {
		mux.HandleFunc("GET /api/v1/"+string(kind), hs.Catalog.ListTaxa(kind))
	}

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", hs.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/register", hs.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/logout", hs.Auth.Logout)
	mux.Handle("GET /api/v1/auth/me", authed(hs.Auth.Me))

	// Cart & checkout draft (guests included)
	mux.HandleFunc("GET /api/v1/cart", hs.Cart.GetCart)
	mux.HandleFunc("POST /api/v1/cart", hs.Cart.AddToCart)
	mux.HandleFunc("PUT /api/v1/cart", hs.Cart.UpdateCart)
	mux.HandleFunc("DELETE /api/v1/cart", hs.Cart.ClearCart)
	mux.HandleFunc("DELETE /api/v1/cart/items/{productId}", hs.Cart.RemoveFromCart)
	mux.HandleFunc("POST /api/v1/checkout/draft", hs.Checkout.CreateDraft)
	mux.HandleFunc("DELETE /api/v1/checkout/draft", hs.Checkout.CancelDraft)
	mux.HandleFunc("GET /api/v1/checkout", hs.Checkout.Preview)

	// Orders & returns (logged in)
	mux.Handle("POST /api/v1/checkout", authed(hs.Checkout.PlaceOrder))
	mux.Handle("GET /api/v1/orders", authed(hs.Order.GetMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", authed(hs.Order.GetOrder))
	mux.Handle("POST /api/v1/orders/{id}/cancel", authed(hs.Order.CancelOrder))
	mux.Handle("POST /api/v1/orders/{id}/payment", authed(hs.Order.RetryPayment))
	mux.Handle("POST /api/v1/returns", authed(hs.Return.CreateReturn))
	mux.Handle("GET /api/v1/returns", authed(hs.Return.GetMyReturns))

	// Petugas & admin
	mux.Handle("GET /api/v1/admin/orders", staff(hs.AdminOrder.ListOrders))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/status", staff(hs.AdminOrder.UpdateStatus))
	mux.Handle("PATCH /api/v1/admin/payments/{id}/status", staff(hs.AdminOrder.UpdatePaymentStatus))
	mux.Handle("GET /api/v1/admin/returns", staff(hs.AdminReturn.ListReturns))
	mux.Handle("GET /api/v1/admin/returns/damaged", staff(hs.AdminReturn.Damaged))
	mux.Handle("POST /api/v1/admin/returns/{id}/approve", staff(hs.AdminReturn.Approve))
	mux.Handle("POST /api/v1/admin/returns/{id}/reject", staff(hs.AdminReturn.Reject))

	// Admin only
	mux.Handle("POST /api/v1/admin/products", admin(hs.AdminCatalog.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", admin(hs.AdminCatalog.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", admin(hs.AdminCatalog.DeleteProduct))
	mux.Handle("POST /api/v1/admin/variants", admin(hs.AdminCatalog.CreateVariant))
	mux.Handle("PUT /api/v1/admin/variants/{id}", admin(hs.AdminCatalog.UpdateVariant))
	mux.Handle("DELETE /api/v1/admin/variants/{id}", admin(hs.AdminCatalog.DeleteVariant))
	for _, kind := range []domain.TaxonomyKind{domain.TaxonomyBrands, domain.TaxonomyCategories, domain.TaxonomySubcategories} {
		base := "/api/v1/admin/" + string(kind)
		mux.Handle("POST "+base, admin(hs.AdminCatalog.CreateTaxon(kind)))
		mux.Handle("PUT "+base+"/{id}", admin(hs.AdminCatalog.UpdateTaxon(kind)))
		mux.Handle("DELETE "+base+"/{id}", admin(hs.AdminCatalog.DeleteTaxon(kind)))
	}

	mux.Handle("GET /api/v1/admin/staff", admin(hs.Staff.ListStaff))
	mux.Handle("POST /api/v1/admin/staff", admin(hs.Staff.CreateStaff))
	mux.Handle("PUT /api/v1/admin/staff/{id}", admin(hs.Staff.UpdateStaff))
	mux.Handle("DELETE /api/v1/admin/staff/{id}", admin(hs.Staff.DeleteStaff))

	if hs.Upload != nil {
		mux.Handle("POST /api/v1/admin/uploads", admin(hs.Upload.UploadFile))
		mux.Handle("DELETE /api/v1/admin/uploads", admin(hs.Upload.DeleteFile))
	}
}
