/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/UnifyEM/storefront/common/boltdb"
	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/schema"
)

// User is stored in BucketUsers under the lower-cased username
type User struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Active     bool      `json:"active"`
	HashedPass string    `json:"hashed_pass"`
	FailCount  int       `json:"fail_count"`
	Created    time.Time `json:"created"`
	LastAuth   time.Time `json:"last_auth"`
	LastFail   time.Time `json:"last_fail"`
}

// Profile returns the public part of the user
func (u User) Profile() schema.UserProfile {
	return schema.UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func userKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// SetUser creates a user or, if the user exists, replaces the password and
// reactivates the account. Returns the stored user.
func (d *Data) SetUser(username, password, email string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, errors.New("username and password are required")
	}

	hashedPass, err := hashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash error: %w", err)
	}

	user, err := d.GetUser(username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		id, idErr := d.database.NextID(BucketUsers)
		if idErr != nil {
			return User{}, idErr
		}
		user = User{ID: id, Username: username, Created: d.now()}
	case err != nil:
		return User{}, err
	}

	user.Active = true
	user.HashedPass = hashedPass
	user.FailCount = 0
	if email != "" {
		user.Email = email
	}

	if err = d.database.SetData(BucketUsers, userKey(username), user); err != nil {
		return User{}, fmt.Errorf("failed to store user: %w", err)
	}
	d.active.Delete(userKey(username))
	return user, nil
}

// SetName sets the first and last name shown in the user's profile
func (d *Data) SetName(username, first, last string) error {
	user, err := d.GetUser(username)
	if err != nil {
		return err
	}
	user.FirstName = first
	user.LastName = last
	return d.database.SetData(BucketUsers, userKey(username), user)
}

// GetUser retrieves a user by username (case-insensitive)
func (d *Data) GetUser(username string) (User, error) {
	var user User
	err := d.database.GetData(BucketUsers, userKey(username), &user)
	if errors.Is(err, boltdb.ErrKeyNotFound) {
		return User{}, ErrUserNotFound
	}
	return user, err
}

// DisableUser marks a user inactive and revokes their refresh tokens
func (d *Data) DisableUser(username string) error {
	user, err := d.GetUser(username)
	if err != nil {
		return err
	}

	user.Active = false
	if err = d.database.SetData(BucketUsers, userKey(username), user); err != nil {
		return err
	}
	d.active.Delete(userKey(username))

	_, err = d.RevokeTokens(username)
	return err
}

// UserActive reports whether the user exists and is active. Results are
// cached for user_cache_ttl seconds because this runs on every request.
func (d *Data) UserActive(username string) bool {
	key := userKey(username)
	if active, ok := d.active.Get(key); ok {
		return active
	}

	user, err := d.GetUser(username)
	active := err == nil && user.Active
	d.active.Set(key, active)
	return active
}

// Auth verifies a username and password. Failures are counted and delayed.
func (d *Data) Auth(username, password string) (User, error) {
	user, err := d.checkAuth(username, password)
	if err != nil {
		d.logger.Info(1201, "authentication failed", fields.NewFields(
			fields.NewField("user", username),
			fields.NewField("error", err.Error())))

		// Impose a random delay to make brute force attacks take longer
		d.randomDelay()
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (d *Data) checkAuth(username, password string) (User, error) {
	user, err := d.GetUser(username)
	if err != nil {
		return User{}, err
	}

	if !user.Active {
		return User{}, errors.New("account disabled")
	}

	ok, err := verifyPassword(password, user.HashedPass)
	if err != nil {
		return User{}, err
	}

	if ok {
		user.FailCount = 0
		user.LastAuth = d.now()
	} else {
		user.FailCount++
		user.LastFail = d.now()
	}

	// If this fails something is wrong, so fail authentication
	if err = d.database.SetData(BucketUsers, userKey(username), user); err != nil {
		return User{}, err
	}

	if !ok {
		return User{}, errors.New("invalid password")
	}
	return user, nil
}

func (d *Data) randomDelay() {
	if d.failDelay <= 0 {
		return
	}
	time.Sleep(time.Duration(rand.Int63n(int64(d.failDelay))))
}
