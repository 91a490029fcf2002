/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/server/global"
)

// Token purposes
const (
	PurposeAccess  = "access"
	PurposeRefresh = "refresh"
)

// CustomClaims includes jwt.RegisteredClaims and adds the token purpose
type CustomClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// refreshRecord is stored in BucketTokens under the refresh token's ID.
// A refresh token that is not in the bucket has been revoked.
type refreshRecord struct {
	Subject string    `json:"subject"`
	Expires time.Time `json:"expires"`
}

// createToken signs a token for subject. Lifetimes are configured in minutes.
func (d *Data) createToken(subject, purpose string) (string, CustomClaims, error) {
	var lifeTime int

	switch purpose {
	case PurposeAccess:
		lifeTime = d.conf.SC.Get(global.ConfigAccessTokenLife).Int()
	case PurposeRefresh:
		lifeTime = d.conf.SC.Get(global.ConfigRefreshTokenLife).Int()
	default:
		return "", CustomClaims{}, errors.New("invalid token purpose")
	}

	// Set NotBefore 5 minutes in the past to allow for clock skew
	now := d.now()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(lifeTime) * time.Minute)),
			Issuer:    global.Name,
			ID:        uuid.New().String(),
		},
		Purpose: purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(d.jwtKey)
	if err != nil {
		return "", CustomClaims{}, err
	}
	return tokenString, claims, nil
}

// ValidateToken validates the signature, lifetime, and purpose of a token
// and returns its claims. jwt.ErrTokenExpired is wrapped for expired tokens.
func (d *Data) ValidateToken(tokenString string, purpose string) (CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return d.jwtKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(global.Name),
		jwt.WithTimeFunc(d.now))
	if err != nil {
		return CustomClaims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.Purpose != purpose {
		return CustomClaims{}, ErrTokenInvalid
	}
	return *claims, nil
}

// LoginGetToken authenticates a user and returns access and refresh tokens
func (d *Data) LoginGetToken(username, password string) (string, string, error) {
	user, err := d.Auth(username, password)
	if err != nil {
		return "", "", err
	}

	accessToken, _, err := d.createToken(user.Username, PurposeAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, claims, err := d.createToken(user.Username, PurposeRefresh)
	if err != nil {
		return "", "", err
	}

	record := refreshRecord{Subject: user.Username, Expires: claims.ExpiresAt.Time}
	if err = d.database.SetData(BucketTokens, claims.ID, record); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// RefreshToken returns a new access token. The refresh token must be valid,
// not revoked, and belong to an active user. It is not rotated.
func (d *Data) RefreshToken(refreshToken string) (string, error) {
	claims, err := d.ValidateToken(refreshToken, PurposeRefresh)
	if err != nil {
		return "", err
	}

	exists, err := d.database.KeyExists(BucketTokens, claims.ID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: refresh token revoked", ErrTokenInvalid)
	}

	if !d.UserActive(claims.Subject) {
		return "", fmt.Errorf("%w: subject disabled in database: %s", ErrTokenInvalid, claims.Subject)
	}

	accessToken, _, err := d.createToken(claims.Subject, PurposeAccess)
	return accessToken, err
}

// RevokeTokens deletes every refresh token issued to username and returns
// the number deleted. Access tokens stay valid until they expire.
func (d *Data) RevokeTokens(username string) (int, error) {
	return d.deleteTokens(func(r refreshRecord) bool {
		return userKey(r.Subject) == userKey(username)
	})
}

// PruneTokens deletes expired refresh tokens and returns the number deleted
func (d *Data) PruneTokens() (int, error) {
	now := d.now()
	n, err := d.deleteTokens(func(r refreshRecord) bool {
		return now.After(r.Expires)
	})
	if err == nil && n > 0 {
		d.logger.Info(1301, "expired refresh tokens pruned", fields.NewFields(fields.NewField("count", n)))
	}
	return n, err
}

func (d *Data) deleteTokens(match func(refreshRecord) bool) (int, error) {
	var keys []string
	err := d.database.ForEach(BucketTokens, func(key, value []byte) error {
		var r refreshRecord
		if err := json.Unmarshal(value, &r); err != nil {
			// Unreadable records are removed as well
			keys = append(keys, string(key))
			return nil
		}
		if match(r) {
			keys = append(keys, string(key))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(keys) == 0 {
		return 0, nil
	}
	return len(keys), d.database.DeleteKeys(BucketTokens, keys...)
}
