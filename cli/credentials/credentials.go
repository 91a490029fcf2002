/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package credentials owns the access and refresh tokens. The pair is kept
// in a bbolt file so that a login survives a restart. Tokens are stored in
// the clear; the file is only readable by the current user.
package credentials

import (
	"errors"
	"fmt"
	"sync"

	"github.com/UnifyEM/storefront/common/boltdb"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
)

const (
	bucket  = "Credentials"
	pairKey = "tokens"
)

var (
	ErrIncompletePair = errors.New("both an access token and a refresh token are required")
	ErrNoRefreshToken = errors.New("no refresh token")
)

// Ensure that Store implements the TokenStore interface
var _ interfaces.TokenStore = (*Store)(nil)

// Store is the single owner of the token pair. Writers hold mu for the
// duration of the write; the last writer wins.
type Store struct {
	mu     sync.Mutex
	db     *boltdb.DB // nil for a memory store
	pair   interfaces.TokenPair
	logger interfaces.Logger
}

// Open opens or creates the credential database at path
func Open(path string, logger interfaces.Logger) (*Store, error) {
	if logger == nil {
		logger = null.Logger()
	}

	db, err := boltdb.Open(path, []string{bucket}, logger)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	s := &Store{db: db, logger: logger}

	var pair interfaces.TokenPair
	err = db.GetData(bucket, pairKey, &pair)
	switch {
	case err == nil && pair.Complete():
		s.pair = pair
	case err == nil:
		// A partial pair violates the invariant, discard it
		logger.Warning(3050, "discarding incomplete token pair", nil)
		_ = db.DeleteData(bucket, pairKey)
	case errors.Is(err, boltdb.ErrKeyNotFound):
	default:
		// Treated as logged out
		logger.Errorf(3051, "unable to read credentials: %s", err.Error())
	}
	return s, nil
}

// NewMemory returns a store that is never persisted
func NewMemory() *Store {
	return &Store{logger: null.Logger()}
}

// Close closes the underlying database
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

// Get returns the current pair and true, or an empty pair and false if there is none
func (s *Store) Get() (interfaces.TokenPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair, s.pair.Complete()
}

// Set replaces both tokens
func (s *Store) Set(pair interfaces.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(pair)
}

// SetAccess replaces the access token and keeps the refresh token
func (s *Store) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pair.Refresh == "" {
		return ErrNoRefreshToken
	}
	if access == "" {
		return ErrIncompletePair
	}
	return s.write(interfaces.TokenPair{Access: access, Refresh: s.pair.Refresh})
}

// Clear removes both tokens. The in-memory pair is cleared even if the
// database cannot be updated.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = interfaces.TokenPair{}
	if s.db == nil {
		return nil
	}

	if err := s.db.DeleteData(bucket, pairKey); err != nil {
		s.logger.Errorf(3052, "unable to clear credentials: %s", err.Error())
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// write must be called with mu held
func (s *Store) write(pair interfaces.TokenPair) error {
	if s.db != nil {
		if err := s.db.SetData(bucket, pairKey, pair); err != nil {
			s.logger.Errorf(3053, "unable to save credentials: %s", err.Error())
			return fmt.Errorf("saving credentials: %w", err)
		}
	}
	s.pair = pair
	return nil
}
