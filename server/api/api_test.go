package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/server/data"
	"github.com/UnifyEM/storefront/server/global"
)

type sandbox struct {
	t     *testing.T
	srv   *httptest.Server
	now   time.Time
	token string
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()

	conf, err := global.Config(t.TempDir())
	require.NoError(t, err)
	conf.SC.Set(global.ConfigPenaltyBoxMax, 0)

	sb := &sandbox{t: t, now: time.Now()}
	d, err := data.New(conf, null.Logger(), data.WithFailDelay(0), data.WithClock(func() time.Time { return sb.now }))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	_, err = d.SetUser("alice", "secret", "alice@example.com")
	require.NoError(t, err)
	_, _, err = d.Seed()
	require.NoError(t, err)

	a, err := New(conf, null.Logger(), d)
	require.NoError(t, err)

	sb.srv = httptest.NewServer(a.Handler())
	t.Cleanup(sb.srv.Close)
	return sb
}

// do sends a request with the current access token and returns the status and body
func (sb *sandbox) do(method, path string, payload any) (int, []byte) {
	sb.t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(sb.t, err)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, sb.srv.URL+path, body)
	require.NoError(sb.t, err)
	req.Header.Set("Content-Type", "application/json")
	if sb.token != "" {
		req.Header.Set("Authorization", "Bearer "+sb.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(sb.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(sb.t, err)
	return resp.StatusCode, data
}

func (sb *sandbox) login() schema.TokenPairResponse {
	sb.t.Helper()
	code, body := sb.do(http.MethodPost, schema.EndpointTokenCreate, schema.TokenCreateRequest{Username: "alice", Password: "secret"})
	require.Equal(sb.t, http.StatusOK, code, string(body))

	var pair schema.TokenPairResponse
	require.NoError(sb.t, json.Unmarshal(body, &pair))
	sb.token = pair.Access
	return pair
}

func TestTokenCreate(t *testing.T) {
	sb := newSandbox(t)

	code, body := sb.do(http.MethodPost, schema.EndpointTokenCreate, schema.TokenCreateRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, string(body), "No active account")

	code, body = sb.do(http.MethodPost, schema.EndpointTokenCreate, schema.TokenCreateRequest{Username: "alice"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"password":["This field is required."]}`, string(body))

	pair := sb.login()
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
}

func TestAuthRequired(t *testing.T) {
	sb := newSandbox(t)

	code, body := sb.do(http.MethodGet, schema.EndpointProducts, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, string(body), "credentials were not provided")

	sb.token = "garbage"
	code, body = sb.do(http.MethodGet, schema.EndpointCurrentUser, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, string(body), "not valid")

	// A refresh token is not an access token
	pair := sb.login()
	sb.token = pair.Refresh
	code, _ = sb.do(http.MethodGet, schema.EndpointCurrentUser, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRefreshFlow(t *testing.T) {
	sb := newSandbox(t)
	pair := sb.login()

	code, body := sb.do(http.MethodGet, schema.EndpointCurrentUser, nil)
	require.Equal(t, http.StatusOK, code)
	var profile schema.UserProfile
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)

	// The access token expires, the refresh token does not
	sb.now = sb.now.Add(10 * time.Minute)
	code, _ = sb.do(http.MethodGet, schema.EndpointCurrentUser, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	sb.token = ""
	code, body = sb.do(http.MethodPost, schema.EndpointTokenRefresh, schema.TokenRefreshRequest{Refresh: pair.Refresh})
	require.Equal(t, http.StatusOK, code, string(body))
	var refreshed schema.TokenRefreshResponse
	require.NoError(t, json.Unmarshal(body, &refreshed))

	sb.token = refreshed.Access
	code, _ = sb.do(http.MethodGet, schema.EndpointCurrentUser, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = sb.do(http.MethodPost, schema.EndpointTokenRefresh, schema.TokenRefreshRequest{Refresh: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = sb.do(http.MethodPost, schema.EndpointTokenRefresh, schema.TokenRefreshRequest{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCatalogEndpoints(t *testing.T) {
	sb := newSandbox(t)
	sb.login()

	code, body := sb.do(http.MethodGet, schema.EndpointProducts+"?search=kettle", nil)
	require.Equal(t, http.StatusOK, code)
	var products []schema.Product
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "SKU-0003", products[0].SKU)
	assert.Contains(t, string(body), `"price":"49.99"`)

	code, body = sb.do(http.MethodGet, schema.EndpointDiscounts, nil)
	require.Equal(t, http.StatusOK, code)
	var discounts []schema.Discount
	require.NoError(t, json.Unmarshal(body, &discounts))
	assert.Len(t, discounts, 3)
}

func TestCartAndOrderEndpoints(t *testing.T) {
	sb := newSandbox(t)
	sb.login()

	code, body := sb.do(http.MethodPost, schema.EndpointCartItems, schema.CartItemCreateRequest{Product: 5, Quantity: 2})
	require.Equal(t, http.StatusCreated, code, string(body))
	var item schema.CartItem
	require.NoError(t, json.Unmarshal(body, &item))
	assert.Equal(t, "25.00", item.Total.String())

	code, body = sb.do(http.MethodPost, schema.EndpointCartItems, schema.CartItemCreateRequest{Product: 42, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "product")

	code, body = sb.do(http.MethodGet, schema.EndpointCartItems, nil)
	require.Equal(t, http.StatusOK, code)
	var items []schema.CartItem
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Len(t, items, 1)

	code, body = sb.do(http.MethodGet, schema.EndpointCartSummary, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"subtotal":"25.00","total_items":2}`, string(body))

	code, body = sb.do(http.MethodPost, schema.EndpointApplyCoupon, schema.CouponRequest{Code: "NOPE"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Invalid coupon code"}`, string(body))

	code, body = sb.do(http.MethodPost, schema.EndpointApplyCoupon, schema.CouponRequest{Code: "HALFOFF"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"discounted_total":"12.50","discount_amount":"12.50","subtotal":"25.00"}`, string(body))

	code, body = sb.do(http.MethodPost, schema.EndpointOrders, schema.OrderCreateRequest{Coupon: "SAVE10"})
	require.Equal(t, http.StatusCreated, code, string(body))
	var order schema.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "22.50", order.Summary.Total.String())

	// The cart is empty now
	code, _ = sb.do(http.MethodPost, schema.EndpointOrders, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = sb.do(http.MethodGet, schema.EndpointOrders+itoa(order.ID)+"/", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), order.OrderID)

	code, _ = sb.do(http.MethodGet, schema.EndpointOrders+"999/", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = sb.do(http.MethodGet, schema.EndpointOrders, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.HasPrefix(string(body), "["))
}

func TestDeleteCartItem(t *testing.T) {
	sb := newSandbox(t)
	sb.login()

	code, body := sb.do(http.MethodPost, schema.EndpointCartItems, schema.CartItemCreateRequest{Product: 1})
	require.Equal(t, http.StatusCreated, code)
	var item schema.CartItem
	require.NoError(t, json.Unmarshal(body, &item))
	assert.Equal(t, 1, item.Quantity)

	code, body = sb.do(http.MethodDelete, schema.CartItemEndpoint(item.ID), nil)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Empty(t, body)

	code, _ = sb.do(http.MethodDelete, schema.CartItemEndpoint(item.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNotFound(t *testing.T) {
	sb := newSandbox(t)
	code, body := sb.do(http.MethodGet, "/api/nothing/", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), "Not found")
}

func TestHealthWithoutAuth(t *testing.T) {
	sb := newSandbox(t)
	code, _ := sb.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}
