package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	"github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/internal/session"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*usecase.CheckoutEvent
}

func (p *recordingPublisher) PublishCheckout(_ context.Context, event *usecase.CheckoutEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type fakeLimiter struct {
	allowed bool
}

func (l *fakeLimiter) Allow(context.Context, string) (*usecase.RateQuota, error) {
	remaining := 0
	if l.allowed {
		remaining = 9
	}
	return &usecase.RateQuota{Allowed: l.allowed, Limit: 10, Remaining: remaining, ResetIn: 30 * time.Second}, nil
}

type testAPI struct {
	handler   http.Handler
	uc        *usecase.StorefrontUseCase
	publisher *recordingPublisher
}

func newTestAPI(t *testing.T, limiter usecase.RateLimiter) *testAPI {
	t.Helper()

	idx, err := catalog.LoadDefault()
	require.NoError(t, err)

	log := logger.NewNopLogger()
	pub := &recordingPublisher{}
	uc := usecase.NewStorefrontUC(idx, session.NewStore(time.Hour, log), pub, log)

	r := NewRouter(chi.NewRouter(), &cfg.HTTPConfig{SwaggerURL: "/swagger/doc.json"}, log)
	r.Init(uc, limiter)

	return &testAPI{handler: r.Handler(), uc: uc, publisher: pub}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) newSession(t *testing.T) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[SessionResponse](t, rec).SessionID
}

func TestCatalogRoutes(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[CategoriesResponse](t, rec)
	require.Len(t, cats.Categories, 8)
	assert.Equal(t, "Todos", cats.Categories[0])

	rec = api.do(t, http.MethodGet, "/api/v1/products?category="+url.QueryEscape("Analgésicos"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[ProductsResponse](t, rec)
	require.Len(t, products.Products, 2)
	assert.Equal(t, int64(1), products.Products[0].ID)
	assert.Equal(t, "12.50", products.Products[0].Price)
	assert.Equal(t, int64(1250), products.Products[0].PriceCents)
	assert.Equal(t, int64(7), products.Products[1].ID)

	rec = api.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[ProductsResponse](t, rec).Products, 8)
}

func TestOpenProduct(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/api/v1/products/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[ProductDTO](t, rec)
	assert.Equal(t, "Amoxicilina 500mg", p.Name)
	assert.True(t, p.PrescriptionRequired)

	tests := []struct {
		path string
		code int
	}{
		{"/api/v1/products/3", http.StatusConflict},
		{"/api/v1/products/99", http.StatusNotFound},
		{"/api/v1/products/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := api.do(t, http.MethodGet, tt.path, nil)
		assert.Equal(t, tt.code, rec.Code, tt.path)
		assert.Equal(t, tt.code, decode[ErrorResponse](t, rec).Code)
	}
}

func TestSearchRoute(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/api/v1/search?q=anti", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[SearchResponse](t, rec)
	require.Len(t, res.Products, 3)
	require.Len(t, res.Sections, 3)
	assert.Equal(t, "Anti-inflamatórios", res.Sections[0].Category)

	rec = api.do(t, http.MethodGet, "/api/v1/search?q=", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[SearchResponse](t, rec)
	assert.Empty(t, res.Products)
	assert.NotNil(t, res.Products)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	rec := api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 1, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	added := decode[AddToCartResponse](t, rec)
	assert.True(t, added.Added)
	assert.Equal(t, 2, added.Quantity)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 7})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, base+"/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[CartDTO](t, rec)
	assert.Equal(t, 2, cart.DistinctLines)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, "33.90", cart.TotalPrice)

	rec = api.do(t, http.MethodPost, base+"/checkout", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	conf := decode[ConfirmationDTO](t, rec)
	assert.Equal(t, "checkout", conf.Kind)
	assert.Equal(t, "33.90", conf.TotalPrice)
	assert.Equal(t, "Total: R$ 33.90\n\nDeseja finalizar a compra?", conf.Message)

	rec = api.do(t, http.MethodPost, base+"/confirmations/"+conf.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[ConfirmResponse](t, rec)
	require.NotNil(t, res.Receipt)
	assert.Equal(t, "33.90", res.Receipt.TotalPrice)
	assert.Equal(t, 0, res.Cart.TotalItems)
	assert.Equal(t, "0.00", res.Cart.TotalPrice)

	// повторное подтверждение не выполняет оформление второй раз
	rec = api.do(t, http.MethodPost, base+"/confirmations/"+conf.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, api.uc.WaitForPublishes(context.Background()))
	require.Len(t, api.publisher.events, 1)
	assert.Equal(t, int64(3390), api.publisher.events[0].TotalCents)

	rec = api.do(t, http.MethodPost, base+"/checkout", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddItem_QuantityDefaultsAndStockLimit(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	// quantity не передано: одна единица
	rec := api.do(t, http.MethodPost, base+"/cart/items", map[string]any{"product_id": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[AddToCartResponse](t, rec)
	assert.True(t, res.Added)
	assert.Equal(t, 1, res.Quantity)
	assert.False(t, res.LimitReached)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 2, Quantity: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[AddToCartResponse](t, rec)
	assert.Equal(t, 1, res.Quantity)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 2, Quantity: 30})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[AddToCartResponse](t, rec)
	assert.True(t, res.Added)
	assert.Equal(t, 28, res.Quantity)
	assert.True(t, res.LimitReached)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 2, Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[AddToCartResponse](t, rec)
	assert.False(t, res.Added)
	assert.Equal(t, 0, res.Quantity)
	assert.True(t, res.LimitReached)
	assert.Equal(t, 30, res.Cart.TotalItems)
}

func TestConfirmCheckout_CartChangedIsConflict(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	rec := api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 1, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/checkout", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	conf := decode[ConfirmationDTO](t, rec)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 5, Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/confirmations/"+conf.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), e.ErrCartChanged.Error())

	rec = api.do(t, http.MethodGet, base+"/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[CartDTO](t, rec)
	assert.Equal(t, 5, cart.TotalItems)

	require.NoError(t, api.uc.WaitForPublishes(context.Background()))
	assert.Empty(t, api.publisher.events)
}

func TestPrescriptionRequiresConfirmation(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	rec := api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 4, Quantity: 1})
	require.Equal(t, http.StatusAccepted, rec.Code)
	res := decode[AddToCartResponse](t, rec)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "prescription", res.Confirmation.Kind)
	assert.False(t, res.Added)
	assert.Equal(t, 0, res.Cart.TotalItems)

	rec = api.do(t, http.MethodGet, base+"/confirmations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[ConfirmationsResponse](t, rec).Confirmations, 1)

	rec = api.do(t, http.MethodDelete, base+"/confirmations/"+res.Confirmation.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, base+"/cart", nil)
	assert.Equal(t, 0, decode[CartDTO](t, rec).TotalItems)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 4, Quantity: 1})
	res = decode[AddToCartResponse](t, rec)

	rec = api.do(t, http.MethodPost, base+"/confirmations/"+res.Confirmation.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[ConfirmResponse](t, rec).Cart.TotalItems)
}

func TestQuantityRoutes(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 2, Quantity: 1})

	rec := api.do(t, http.MethodPut, base+"/cart/items/2", SetQuantityRequest{Quantity: 100})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, decode[CartDTO](t, rec).TotalItems)

	rec = api.do(t, http.MethodPost, base+"/cart/items/2/increment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, decode[CartDTO](t, rec).TotalItems)

	rec = api.do(t, http.MethodPut, base+"/cart/items/2", SetQuantityRequest{Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/cart/items/2/decrement", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[CartDTO](t, rec).TotalItems)

	rec = api.do(t, http.MethodPut, base+"/cart/items/2", SetQuantityRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, base+"/cart/items/2", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	conf := decode[ConfirmationDTO](t, rec)
	assert.Equal(t, "remove_item", conf.Kind)
	assert.Equal(t, "Deseja remover \"Ibuprofeno 600mg\" do carrinho?", conf.Message)

	rec = api.do(t, http.MethodPost, base+"/confirmations/"+conf.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[ConfirmResponse](t, rec).Cart.DistinctLines)

	rec = api.do(t, http.MethodDelete, base+"/cart/items/2", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionRoutes(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	rec := api.do(t, http.MethodPost, base+"/searches", SearchRequest{Query: "  amox "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"amox"}, decode[RecentSearchesResponse](t, rec).Searches)

	rec = api.do(t, http.MethodGet, base+"/searches", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"amox"}, decode[RecentSearchesResponse](t, rec).Searches)

	rec = api.do(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, base+"/cart", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadRequests(t *testing.T) {
	api := newTestAPI(t, nil)
	sid := api.newSession(t)
	base := "/api/v1/sessions/" + sid

	rec := api.do(t, http.MethodPost, base+"/cart/items", map[string]any{"product_id": 1, "colour": "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 1, Quantity: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, base+"/cart/items", AddToCartRequest{ProductID: 3})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/sessions/unknown/cart/items", AddToCartRequest{ProductID: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	api := newTestAPI(t, limiter)

	rec := api.do(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))

	limiter.allowed = false
	rec = api.do(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}

func TestToHTTPResponse_DefaultsToInternal(t *testing.T) {
	code, msg := ToHTTPResponse(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", msg)
}
