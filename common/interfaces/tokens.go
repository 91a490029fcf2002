//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package interfaces

// TokenPair is an access token and the refresh token that can renew it.
// Either both are set or the pair is absent.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether neither token is set
func (p TokenPair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// Complete reports whether both tokens are set
func (p TokenPair) Complete() bool {
	return p.Access != "" && p.Refresh != ""
}

// TokenStore is the single owner of the current TokenPair. Callers obtain the
// pair for one request at a time and never keep a copy.
type TokenStore interface {
	Get() (TokenPair, bool)
	Set(TokenPair) error
	SetAccess(access string) error
	Clear() error
}
