package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/cli/communications"
	"github.com/UnifyEM/storefront/cli/credentials"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/schema"
)

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// newFakeShop returns a client wired to a fake API whose responses mimic the
// shapes seen in the wild, including paginated lists and string amounts
func newFakeShop(t *testing.T, loggedIn bool) (*Client, *credentials.Store) {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc(schema.EndpointTokenCreate, func(w http.ResponseWriter, req *http.Request) {
		var body schema.TokenCreateRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"No active account found with the given credentials"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"access":"A1","refresh":"R1"}`)
	}).Methods(http.MethodPost)

	r.HandleFunc(schema.EndpointCurrentUser, func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer A1" {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":1,"username":"alice","email":"alice@example.com"}`)
	})

	r.HandleFunc(schema.EndpointProducts, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("search") == "mug" {
			writeJSON(w, http.StatusOK, `{"count":1,"results":[{"id":2,"sku":"MUG","price":"9.00"}]}`)
			return
		}
		writeJSON(w, http.StatusOK, `[{"id":1,"sku":"BEANS","price":"12.50"},{"id":2,"sku":"MUG","price":"9.00"}]`)
	})

	r.HandleFunc(schema.EndpointDiscounts, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":1,"code":"SAVE10","percentage":10}]`)
	})

	r.HandleFunc(schema.EndpointCartSummary, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"subtotal":"34.00","total_items":3}`)
	})

	r.HandleFunc(schema.EndpointCartItems, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost {
			var body schema.CartItemCreateRequest
			_ = json.NewDecoder(req.Body).Decode(&body)
			if body.Product == 99 {
				writeJSON(w, http.StatusBadRequest, `{"product":["Invalid pk \"99\" - object does not exist."]}`)
				return
			}
			writeJSON(w, http.StatusCreated, `{"id":5,"product":`+itoa(body.Product)+`,"quantity":`+itoa(body.Quantity)+`}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"results":[{"id":5,"product":{"id":1,"sku":"BEANS","price":"12.50"},"quantity":2,"total":"25.00"}]}`)
	})

	r.HandleFunc("/api/cart-items/{id}/", func(w http.ResponseWriter, req *http.Request) {
		if mux.Vars(req)["id"] != "5" {
			writeJSON(w, http.StatusNotFound, `{"detail":"Not found."}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	r.HandleFunc(schema.EndpointApplyCoupon, func(w http.ResponseWriter, req *http.Request) {
		var body schema.CouponRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Code != "SAVE10" {
			writeJSON(w, http.StatusBadRequest, `{"error":"Invalid coupon code"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"discounted_total":"30.60","discount_amount":"3.40","subtotal":"34.00"}`)
	})

	r.HandleFunc(schema.EndpointOrders, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":1,"order_id":"abc","status":"pending","items":[],"summary":{"subtotal":"34.00","discount_amount":"0.00","total":"34.00"},"created_at":"2026-01-02T03:04:05Z"}`)
	})

	r.HandleFunc("/api/broken/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{not json`)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := credentials.NewMemory()
	if loggedIn {
		require.NoError(t, store.Set(interfaces.TokenPair{Access: "A1", Refresh: "R1"}))
	}
	return New(communications.New(srv.URL, store), store), store
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}

func TestCreateToken(t *testing.T) {
	c, _ := newFakeShop(t, false)
	ctx := context.Background()

	pair, err := c.CreateToken(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, interfaces.TokenPair{Access: "A1", Refresh: "R1"}, pair)

	_, err = c.CreateToken(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, apierr.ErrAuthorizationExpired)
	assert.Contains(t, err.Error(), "No active account")
}

func TestCurrentUser(t *testing.T) {
	c, _ := newFakeShop(t, true)
	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	anon, _ := newFakeShop(t, false)
	_, err = anon.CurrentUser(context.Background())
	assert.ErrorIs(t, err, apierr.ErrAuthorizationExpired)
}

func TestCatalog(t *testing.T) {
	c, _ := newFakeShop(t, true)
	ctx := context.Background()

	products, err := c.Products(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, schema.Money(1250), products[0].Price)

	products, err = c.Products(ctx, "mug")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "MUG", products[0].SKU)

	discounts, err := c.Discounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []schema.Discount{{ID: 1, Code: "SAVE10", Percentage: 10}}, discounts)
}

func TestCart(t *testing.T) {
	c, _ := newFakeShop(t, true)
	ctx := context.Background()

	items, err := c.CartItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Product.ID)
	assert.Equal(t, schema.Money(2500), items[0].Total)

	item, err := c.AddCartItem(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Product.ID)
	assert.Equal(t, 1, item.Quantity)

	_, err = c.AddCartItem(ctx, 99, 1)
	assert.ErrorIs(t, err, apierr.ErrValidation)
	assert.Contains(t, err.Error(), "product: Invalid pk")

	require.NoError(t, c.RemoveCartItem(ctx, 5))
	assert.ErrorIs(t, c.RemoveCartItem(ctx, 6), apierr.ErrValidation)

	summary, err := c.CartSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.CartSummary{Subtotal: 3400, TotalItems: 3}, summary)
}

func TestCouponAndOrder(t *testing.T) {
	c, _ := newFakeShop(t, true)
	ctx := context.Background()

	result, err := c.ApplyCoupon(ctx, " SAVE10 ")
	require.NoError(t, err)
	assert.Equal(t, schema.Money(3060), result.DiscountedTotal)
	assert.Equal(t, schema.Money(340), result.DiscountAmount)

	_, err = c.ApplyCoupon(ctx, "BOGUS")
	require.ErrorIs(t, err, apierr.ErrValidation)
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid coupon code", apiErr.Message)

	order, err := c.PlaceOrder(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, schema.Money(3400), order.Summary.Total)
}

func TestDecodeAndNetworkErrors(t *testing.T) {
	c, _ := newFakeShop(t, true)
	var out map[string]any
	assert.ErrorIs(t, c.get(context.Background(), "/api/broken/", &out), apierr.ErrServer)

	store := credentials.NewMemory()
	offline := New(communications.New("http://127.0.0.1:1", store), store)
	_, err := offline.Products(context.Background(), "")
	assert.ErrorIs(t, err, apierr.ErrNetwork)
}
