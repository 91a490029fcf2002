//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

// TokenCreateRequest is sent to EndpointTokenCreate
type TokenCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPairResponse is returned by EndpointTokenCreate
type TokenPairResponse struct {
	Access  string `json:"access" example:"jwt"`
	Refresh string `json:"refresh" example:"jwt"`
}

// TokenRefreshRequest is sent to EndpointTokenRefresh
type TokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenRefreshResponse is returned by EndpointTokenRefresh. Only the access
// token is rotated.
type TokenRefreshResponse struct {
	Access string `json:"access" example:"jwt"`
}

// UserProfile is returned by EndpointCurrentUser
type UserProfile struct {
	ID        int    `json:"id"`
	Username  string `json:"username" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	FirstName string `json:"first_name,omitempty" example:"Alice"`
	LastName  string `json:"last_name,omitempty" example:"Smith"`
}

// DisplayName returns the full name if one is set, otherwise the username
func (u UserProfile) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
