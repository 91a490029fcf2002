/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UnifyEM/storefront/common/schema"
)

// StatusInfo is everything the status (dashboard) command shows
type StatusInfo struct {
	Server        string
	State         string
	User          *schema.UserProfile
	CartCount     int
	CartKnown     bool
	AccessExpiry  time.Time
	RefreshExpiry time.Time
	Now           time.Time
}

// TokenExpiry returns the exp claim of a JWT. The signature is not verified;
// the result is only informational.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func Status(w io.Writer, s StatusInfo) {
	if s.Now.IsZero() {
		s.Now = time.Now()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Server:\t%s\n", s.Server)
	_, _ = fmt.Fprintf(tw, "Session:\t%s\n", s.State)

	if s.User != nil {
		_, _ = fmt.Fprintf(tw, "User:\t%s <%s>\n", s.User.DisplayName(), s.User.Email)
	}

	if s.CartKnown {
		_, _ = fmt.Fprintf(tw, "Cart:\t%d item(s)\n", s.CartCount)
	}

	if !s.AccessExpiry.IsZero() {
		_, _ = fmt.Fprintf(tw, "Access token:\t%s\n", expiry(s.AccessExpiry, s.Now))
	}
	if !s.RefreshExpiry.IsZero() {
		_, _ = fmt.Fprintf(tw, "Refresh token:\t%s\n", expiry(s.RefreshExpiry, s.Now))
	}
	_ = tw.Flush()
}

func expiry(t, now time.Time) string {
	d := t.Sub(now).Round(time.Second)
	if d <= 0 {
		return fmt.Sprintf("expired %s ago", (-d).String())
	}
	return fmt.Sprintf("expires in %s", d.String())
}
