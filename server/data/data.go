//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package data implements the sandbox's users, tokens, catalog, carts, and
// orders on top of a bbolt database.
package data

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/UnifyEM/storefront/common/boltdb"
	"github.com/UnifyEM/storefront/common/cache"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/server/global"
)

// Buckets
const (
	BucketUsers     = "Users"
	BucketTokens    = "Tokens"
	BucketProducts  = "Products"
	BucketDiscounts = "Discounts"
	BucketCarts     = "Carts"
	BucketOrders    = "Orders"
)

var buckets = []string{BucketUsers, BucketTokens, BucketProducts, BucketDiscounts, BucketCarts, BucketOrders}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInvalidCoupon      = errors.New("invalid coupon code")
	ErrEmptyCart          = errors.New("cart is empty")
)

type Data struct {
	logger    interfaces.Logger
	conf      *global.ServerConfig
	database  *boltdb.DB
	jwtKey    []byte
	active    *cache.Instance[bool]
	failDelay time.Duration
	now       func() time.Time

	// Serializes read-modify-write of carts and orders
	mu sync.Mutex
}

type Option func(*Data)

// WithFailDelay sets the maximum random delay imposed on a failed login
func WithFailDelay(d time.Duration) Option {
	return func(data *Data) {
		data.failDelay = d
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(data *Data) {
		data.now = now
	}
}

// New opens or creates the database
func New(conf *global.ServerConfig, logger interfaces.Logger, opts ...Option) (*Data, error) {
	jwtKey := conf.JWTKey()
	if len(jwtKey) == 0 {
		return nil, errors.New("JWT key missing from configuration")
	}

	dbInstance, err := boltdb.Open(conf.DBPath(), buckets, logger)
	if err != nil {
		return nil, fmt.Errorf("unable to open or create database: %w", err)
	}

	d := &Data{
		logger:    logger,
		conf:      conf,
		database:  dbInstance,
		jwtKey:    jwtKey,
		active:    cache.New[bool](conf.SC.Get(global.ConfigUserCacheTTL).Seconds()),
		failDelay: time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close anything data-related that requires it.
func (d *Data) Close() {
	if d == nil {
		return
	}

	if d.database != nil {
		d.database.Close()
	}
}
