package v1

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/checkout"
	mw "lapak-storefront/internal/delivery/http/middleware"
	"lapak-storefront/internal/domain"
	memcache "lapak-storefront/internal/infrastructure/cache"
	"lapak-storefront/internal/infrastructure/remote"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remoteSecret = "remote-secret"

// fakeRemote is a tiny stand-in for the Remote Service.
type fakeRemote struct {
	t  *testing.T
	mu sync.Mutex

	tokens        map[string]string // email -> token
	orderBodies   []domain.CreateOrderInput
	orderKeys     []string
	paymentStatus string
	orderStatus   string
	returnForms   []map[string]string
}

func (f *fakeRemote) ok(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func (f *fakeRemote) fail(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": msg})
}

func (f *fakeRemote) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "P1":
			f.ok(w, map[string]interface{}{"id": "P1", "name": "Kaos", "price": 10000, "status": "active", "images": []string{"kaos.webp"}, "variants": []interface{}{}})
		case "P2":
			f.ok(w, map[string]interface{}{"id": "P2", "name": "Kemeja", "price": 12000, "status": "active", "variants": []interface{}{
				map[string]interface{}{"id": "V-A", "productId": "P2", "size": "M", "stock": 5, "price": 15000},
				map[string]interface{}{"id": "V-B", "productId": "P2", "size": "L", "stock": 1},
			}})
		default:
			f.fail(w, http.StatusNotFound, "Produk tidak ditemukan")
		}
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		tok, ok := f.tokens[body.Email]
		if !ok || body.Password != "rahasia" {
			f.fail(w, http.StatusUnauthorized, "Email atau password salah")
			return
		}
		claims, _ := utils.NewTokenDecoder(remoteSecret).Decode(tok)
		f.ok(w, map[string]interface{}{"token": tok, "user": map[string]interface{}{"id": claims.UserID, "email": body.Email, "role": map[string]string{"name": claims.Role}}})
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var in domain.CreateOrderInput
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		f.mu.Lock()
		f.orderBodies = append(f.orderBodies, in)
		f.orderKeys = append(f.orderKeys, r.Header.Get("Idempotency-Key"))
		f.mu.Unlock()
		var total domain.Money
		for _, item := range in.Items {
			total += item.Price.Times(item.Quantity)
		}
		f.ok(w, map[string]interface{}{"id": "O1", "status": "pending", "paymentMethod": in.PaymentMethod, "total": total})
	})
	mux.HandleFunc("POST /payments", func(w http.ResponseWriter, r *http.Request) {
		var in domain.CreatePaymentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.ok(w, map[string]interface{}{"id": "PAY1", "orderId": in.OrderID, "method": in.Method, "status": "pending", "amount": in.Amount})
	})
	mux.HandleFunc("POST /payments/{id}/gateway", func(w http.ResponseWriter, r *http.Request) {
		f.ok(w, map[string]string{"token": "snap-" + r.PathValue("id"), "redirectUrl": "https://pay.test/" + r.PathValue("id")})
	})
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.ok(w, map[string]interface{}{"id": r.PathValue("id"), "status": f.orderStatus, "paymentMethod": "online", "total": 20000})
	})
	mux.HandleFunc("GET /payments/order/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.ok(w, map[string]interface{}{"id": "PAY1", "orderId": r.PathValue("id"), "method": "online", "status": f.paymentStatus, "amount": 20000})
	})
	mux.HandleFunc("PUT /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Status string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.orderStatus = body.Status
		f.mu.Unlock()
		f.ok(w, map[string]interface{}{"id": r.PathValue("id"), "status": body.Status, "paymentMethod": "online", "total": 20000})
	})
	mux.HandleFunc("POST /pengembalian", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(f.t, r.ParseMultipartForm(10<<20))
		_, header, err := r.FormFile("photo")
		require.NoError(f.t, err)
		f.mu.Lock()
		f.returnForms = append(f.returnForms, map[string]string{
			"orderId":  r.FormValue("orderId"),
			"reason":   r.FormValue("reason"),
			"filename": header.Filename,
		})
		f.mu.Unlock()
		f.ok(w, map[string]interface{}{"id": "R1", "orderId": r.FormValue("orderId"), "status": "pending"})
	})
	return mux
}

type apiEnv struct {
	srv    *httptest.Server
	remote *fakeRemote
	slots  *memcache.MemorySlots
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	fr := &fakeRemote{t: t, tokens: map[string]string{}, orderStatus: "pending", paymentStatus: "pending"}
	for email, acct := range map[string][2]string{
		"sari@mail.test":  {"u1", domain.RoleCustomer},
		"admin@toko.test": {"a1", domain.RoleAdmin},
	} {
		tok, err := utils.GenerateJWT(remoteSecret, acct[0], email, acct[1], time.Hour)
		require.NoError(t, err)
		fr.tokens[email] = tok
	}
	remoteSrv := httptest.NewServer(fr.handler())
	t.Cleanup(remoteSrv.Close)

	client, err := remote.New(remote.Config{BaseURL: remoteSrv.URL})
	require.NoError(t, err)

	slots := memcache.NewMemorySlots(time.Minute)
	memCache := memcache.NewMemoryCache(time.Minute, time.Minute)
	carts := cart.NewService(slots)
	bridge := checkout.NewBridge(slots, 30*time.Minute)
	sessions := usecase.NewSessionUsecase(slots, utils.NewTokenDecoder(remoteSecret), time.Hour)

	catalogUC := usecase.NewCatalogUsecase(client, memCache, time.Minute, time.Minute)
	cartUC := usecase.NewCartUsecase(carts, catalogUC, 1000)
	checkoutUC := usecase.NewCheckoutUsecase(bridge, carts, cartUC, catalogUC, client, client, nil)
	orderUC := usecase.NewOrderUsecase(client, client)
	returnUC := usecase.NewReturnUsecase(client)

	hs := Handlers{
		Config:       NewConfigHandler(memCache),
		Catalog:      NewCatalogHandler(catalogUC),
		AdminCatalog: NewAdminCatalogHandler(catalogUC),
		Auth:         NewAuthHandler(usecase.NewAuthUsecase(client, sessions, carts), false),
		Cart:         NewCartHandler(cartUC),
		Checkout:     NewCheckoutHandler(checkoutUC),
		Order:        NewOrderHandler(orderUC),
		AdminOrder:   NewAdminOrderHandler(orderUC),
		Return:       NewReturnHandler(returnUC, 5),
		AdminReturn:  NewAdminReturnHandler(returnUC),
		Staff:        NewStaffHandler(usecase.NewStaffUsecase(client)),
	}
	mux := http.NewServeMux()
	hs.Register(mux)

	srv := httptest.NewServer(mw.RequestLogger(mw.NewSessions(sessions, false).Middleware(mux)))
	t.Cleanup(srv.Close)
	return &apiEnv{srv: srv, remote: fr, slots: slots}
}

// browser keeps cookies between calls like the storefront frontend does.
func (e *apiEnv) browser(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e *apiEnv) call(t *testing.T, c *http.Client, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	if res.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	}
	return res.StatusCode, env
}

func TestHealthAndEnums(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)

	status, _ := api.call(t, c, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env := api.call(t, c, http.MethodGet, "/api/v1/config/enums", nil)
	require.Equal(t, http.StatusOK, status)
	var enums map[string][]string
	require.NoError(t, json.Unmarshal(env.Data, &enums))
	assert.Equal(t, domain.PaymentMethods, enums["paymentMethods"])
	assert.Contains(t, enums["roles"], domain.RolePetugas)
}

func TestGuestCartSurvivesLoginAndChecksOut(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)

	status, env := api.call(t, c, http.MethodPost, "/api/v1/cart", map[string]interface{}{"productId": "P1", "quantity": 2})
	require.Equal(t, http.StatusOK, status, env.Error)
	var view usecase.CartView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, domain.Money(20000), view.Total)
	assert.Equal(t, "Rp 20.000", view.TotalFormatted)

	status, env = api.call(t, c, http.MethodPost, "/api/v1/checkout", map[string]interface{}{"paymentMethod": "cod"})
	assert.Equal(t, http.StatusUnauthorized, status, "guests cannot place orders")

	status, env = api.call(t, c, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "sari@mail.test", "password": "rahasia"})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = api.call(t, c, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Items, 1, "guest cart merged into user cart")
	assert.Equal(t, 2, view.Items[0].Quantity)

	status, env = api.call(t, c, http.MethodPost, "/api/v1/checkout", map[string]interface{}{
		"paymentMethod":  "online",
		"idempotencyKey": "chk-42",
		"shippingAddress": map[string]string{
			"recipientName": "Sari", "phone": "0812", "street": "Jl. Merdeka 1", "city": "Bandung",
		},
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var placed usecase.PlaceOrderResult
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, "O1", placed.Order.ID)
	assert.Equal(t, domain.CheckoutSourceCart, placed.Source)
	require.NotNil(t, placed.Gateway)
	assert.Equal(t, "snap-PAY1", placed.Gateway.Token)

	require.Len(t, api.remote.orderBodies, 1)
	assert.Equal(t, domain.Money(10000), api.remote.orderBodies[0].Items[0].Price)
	assert.Equal(t, []string{"chk-42"}, api.remote.orderKeys)

	_, env = api.call(t, c, http.MethodGet, "/api/v1/cart", nil)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Items)
}

func TestBuyNowDraftFlow(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)

	status, env := api.call(t, c, http.MethodPost, "/api/v1/checkout/draft", map[string]interface{}{
		"buyNow": map[string]interface{}{"productId": "P2", "quantity": 1},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.ErrVariantRequired.Error(), env.Error)

	status, env = api.call(t, c, http.MethodPost, "/api/v1/checkout/draft", map[string]interface{}{
		"buyNow": map[string]interface{}{"productId": "P2", "variantId": "V-B", "quantity": 2},
	})
	assert.Equal(t, http.StatusConflict, status, env.Error)

	status, env = api.call(t, c, http.MethodPost, "/api/v1/checkout/draft", map[string]interface{}{
		"buyNow": map[string]interface{}{"productId": "P2", "variantId": "V-A", "quantity": 2},
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, env = api.call(t, c, http.MethodGet, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, status)
	var preview usecase.CheckoutPreview
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, domain.CheckoutSourceDraft, preview.Kind)
	assert.Equal(t, "Rp 30.000", preview.TotalFormatted)

	status, _ = api.call(t, c, http.MethodDelete, "/api/v1/checkout/draft", nil)
	assert.Equal(t, http.StatusNoContent, status)

	_, env = api.call(t, c, http.MethodGet, "/api/v1/checkout", nil)
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, domain.CheckoutSourceCart, preview.Kind)
	assert.Empty(t, preview.Items)
}

func TestOrderDetailSyncsPaidPayment(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)
	api.remote.paymentStatus = domain.PaymentStatusPaid

	status, _ := api.call(t, c, http.MethodGet, "/api/v1/orders/O1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := api.call(t, c, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "sari@mail.test", "password": "rahasia"})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = api.call(t, c, http.MethodGet, "/api/v1/orders/O1", nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	var detail usecase.OrderDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, domain.OrderStatusPaid, detail.Order.Status)
	assert.Equal(t, domain.OrderStatusPaid, api.remote.orderStatus)
}

func TestRemoteErrorsAreMapped(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)

	status, env := api.call(t, c, http.MethodGet, "/api/v1/products/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Produk tidak ditemukan", env.Error)

	status, env = api.call(t, c, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "sari@mail.test", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Email atau password salah", env.Error)
}

func TestRoleGuardsOnAdminRoutes(t *testing.T) {
	api := newAPI(t)
	customer := api.browser(t)
	_, _ = api.call(t, customer, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "sari@mail.test", "password": "rahasia"})

	status, _ := api.call(t, customer, http.MethodGet, "/api/v1/admin/orders", nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.call(t, customer, http.MethodPost, "/api/v1/admin/products", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusForbidden, status)

	guest := api.browser(t)
	status, _ = api.call(t, guest, http.MethodGet, "/api/v1/admin/staff", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	admin := api.browser(t)
	_, _ = api.call(t, admin, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "admin@toko.test", "password": "rahasia"})
	status, env := api.call(t, admin, http.MethodPost, "/api/v1/admin/products", map[string]interface{}{"name": "", "price": 1000})
	assert.Equal(t, http.StatusBadRequest, status, "validation runs after the guard")
	assert.False(t, env.Success)
}

func TestLogoutEndsSession(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)
	_, _ = api.call(t, c, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "sari@mail.test", "password": "rahasia"})

	status, _ := api.call(t, c, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = api.call(t, c, http.MethodPost, "/api/v1/orders/O1/cancel", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCreateReturn_Multipart(t *testing.T) {
	api := newAPI(t)
	c := api.browser(t)
	_, _ = api.call(t, c, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "sari@mail.test", "password": "rahasia"})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("orderId", "O1"))
	require.NoError(t, form.WriteField("productId", "P1"))
	require.NoError(t, form.WriteField("quantity", "1"))
	require.NoError(t, form.WriteField("reason", "Sobek"))
	part, err := form.CreateFormFile("photo", "bukti.png")
	require.NoError(t, err)
	_, err = part.Write(tinyPNG(t))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req, err := http.NewRequest(http.MethodPost, api.srv.URL+"/api/v1/returns", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", form.FormDataContentType())
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.Len(t, api.remote.returnForms, 1)
	sent := api.remote.returnForms[0]
	assert.Equal(t, "Sobek", sent["reason"])
	assert.True(t, strings.HasPrefix(sent["filename"], "bukti."))
	assert.NotEqual(t, "bukti.png", sent["filename"], "photo is re-encoded")
}
