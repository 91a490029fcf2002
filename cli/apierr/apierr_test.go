package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromResponse(t *testing.T) {
	assert.NoError(t, FromResponse(http.StatusOK, nil, true))
	assert.NoError(t, FromResponse(http.StatusNoContent, nil, false))

	tests := []struct {
		name     string
		status   int
		body     string
		hadToken bool
		kind     error
		message  string
	}{
		{"coupon", http.StatusBadRequest, `{"error":"Invalid coupon code"}`, true, ErrValidation, "Invalid coupon code"},
		{"detail", http.StatusNotFound, `{"detail":"Not found."}`, true, ErrValidation, "Not found."},
		{"field", http.StatusBadRequest, `{"quantity":["Ensure this value is greater than or equal to 1."]}`, true, ErrValidation, "quantity: Ensure this value is greater than or equal to 1."},
		{"non field", http.StatusBadRequest, `{"non_field_errors":["Cart is empty"]}`, true, ErrValidation, "Cart is empty"},
		{"revoked", http.StatusUnauthorized, `{"detail":"Token is invalid or expired"}`, true, ErrAuthorizationRevoked, "Token is invalid or expired"},
		{"not logged in", http.StatusUnauthorized, ``, false, ErrAuthorizationExpired, "Unauthorized"},
		{"server", http.StatusInternalServerError, `<html>oops</html>`, true, ErrServer, "Internal Server Error"},
		{"bad gateway", http.StatusBadGateway, `{"error":"upstream"}`, false, ErrServer, "upstream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(tt.status, []byte(tt.body), tt.hadToken)
			assert.ErrorIs(t, err, tt.kind)

			var apiErr *Error
			if assert.True(t, errors.As(err, &apiErr)) {
				assert.Equal(t, tt.status, apiErr.Status)
				assert.Equal(t, tt.message, apiErr.Message)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "request rejected (HTTP 400): Invalid coupon code",
		FromResponse(http.StatusBadRequest, []byte(`{"error":"Invalid coupon code"}`), true).Error())
	assert.Equal(t, "unable to reach the server: connection refused",
		Network(errors.New("connection refused")).Error())
	assert.ErrorIs(t, Decode(200, errors.New("bad json")), ErrServer)
}

func TestMessageTruncated(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	msg := Message([]byte(`{"error":"` + string(long) + `"}`))
	assert.Equal(t, maxMessage+len("..."), len(msg))
	assert.Equal(t, "", Message([]byte(`not json`)))
	assert.Equal(t, "", Message([]byte(`{"count":3}`)))
}
