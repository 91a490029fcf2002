/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package apierr classifies failed API calls. Every error returned by the
// storefront client wraps exactly one of the sentinel kinds below, so callers
// can use errors.Is.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/UnifyEM/storefront/common"
)

var (
	// ErrNetwork means the server could not be reached or the response could not be read
	ErrNetwork = errors.New("unable to reach the server")

	// ErrAuthorizationExpired means the server rejected the call and no refresh was possible
	ErrAuthorizationExpired = errors.New("not logged in")

	// ErrAuthorizationRevoked means the refresh was rejected or the retry was rejected again
	ErrAuthorizationRevoked = errors.New("session expired, please log in again")

	// ErrValidation means the server rejected the request itself
	ErrValidation = errors.New("request rejected")

	// ErrServer is everything else, including undecodable responses
	ErrServer = errors.New("server error")
)

const maxMessage = 200

type Error struct {
	Kind    error
	Status  int // 0 if no response was received
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Kind.Error(), e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Network wraps a transport failure
func Network(err error) error {
	return &Error{Kind: ErrNetwork, Message: err.Error()}
}

// Decode wraps a response that could not be decoded
func Decode(status int, err error) error {
	return &Error{Kind: ErrServer, Status: status, Message: "unexpected response: " + err.Error()}
}

// FromResponse returns nil for a 2xx status and a classified *Error otherwise.
// hadToken tells whether the call was made with an access token; a 401 with
// a token means the session could not be renewed.
func FromResponse(status int, body []byte, hadToken bool) error {
	if status >= 200 && status <= 299 {
		return nil
	}

	e := &Error{Status: status, Message: Message(body)}
	switch {
	case status == http.StatusUnauthorized && hadToken:
		e.Kind = ErrAuthorizationRevoked
	case status == http.StatusUnauthorized:
		e.Kind = ErrAuthorizationExpired
	case status >= 400 && status <= 499:
		e.Kind = ErrValidation
	default:
		e.Kind = ErrServer
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// Message extracts a human-readable message from an API error body.
// It tries "error", then "detail", then the first field error. An empty
// string means nothing suitable was found.
func Message(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}

	for _, path := range []string{"error", "detail", "non_field_errors.0"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String {
			return common.SingleLine(v.String(), maxMessage)
		}
	}

	// Field errors look like {"quantity": ["Ensure this value is greater than or equal to 1."]}
	var msg string
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.IsArray() && len(value.Array()) > 0:
			msg = key.String() + ": " + value.Array()[0].String()
		case value.Type == gjson.String:
			msg = key.String() + ": " + value.String()
		default:
			return true
		}
		return false
	})
	return common.SingleLine(strings.TrimSpace(msg), maxMessage)
}
