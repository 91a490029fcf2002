package display

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/common/schema"
)

func TestAmount(t *testing.T) {
	assert.Equal(t, "12.50", Amount(1250))
	assert.Equal(t, "0.05", Amount(5))
	assert.Equal(t, "-3.75", Amount(-375))

	SetLocale("de_DE.UTF-8")
	defer SetLocale("")
	assert.Equal(t, "12,50", Amount(1250))

	SetLocale("C")
	assert.Equal(t, "12.50", Amount(1250))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("not-the-server-key"))
	require.NoError(t, err)

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("garbage")
	assert.False(t, ok)
	_, ok = TokenExpiry("")
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	Status(&buf, StatusInfo{
		Server:        "http://127.0.0.1:8000",
		State:         "logged in",
		User:          &schema.UserProfile{Username: "alice", Email: "alice@example.com"},
		CartCount:     2,
		CartKnown:     true,
		AccessExpiry:  now.Add(-time.Minute),
		RefreshExpiry: now.Add(24 * time.Hour),
		Now:           now,
	})

	out := buf.String()
	assert.Contains(t, out, "alice <alice@example.com>")
	assert.Contains(t, out, "2 item(s)")
	assert.Contains(t, out, "expired 1m0s ago")
	assert.Contains(t, out, "expires in 24h0m0s")
}

func TestTables(t *testing.T) {
	var buf bytes.Buffer
	Products(&buf, []schema.Product{{ID: 1, SKU: "BEANS", Name: "Beans", Price: 1250}})
	assert.Contains(t, buf.String(), "BEANS")
	assert.Contains(t, buf.String(), "12.50")

	buf.Reset()
	CartItems(&buf, nil)
	assert.Equal(t, "Your cart is empty\n", buf.String())

	buf.Reset()
	CartItems(&buf, []schema.CartItem{
		{ID: 3, Product: schema.ProductRef{ID: 1, Product: &schema.Product{ID: 1, SKU: "BEANS", Price: 1250}}, Quantity: 2},
		{ID: 4, Product: schema.ProductRef{ID: 9}, Quantity: 1},
	})
	assert.Contains(t, buf.String(), "25.00")
	assert.Contains(t, buf.String(), "#9")

	buf.Reset()
	Coupon(&buf, "SAVE10", schema.CouponResult{DiscountedTotal: 3060, DiscountAmount: 340, Subtotal: 3400})
	assert.Contains(t, buf.String(), "-3.40")
	assert.Contains(t, buf.String(), "30.60")
}

func TestErrorHints(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, nil)
	assert.Empty(t, buf.String())

	Error(&buf, &apierr.Error{Kind: apierr.ErrAuthorizationRevoked, Status: 401})
	assert.Contains(t, buf.String(), "sfcli login")

	buf.Reset()
	Error(&buf, apierr.Network(errors.New("dial tcp: connection refused")))
	assert.Contains(t, buf.String(), "Unable to load data")
}
