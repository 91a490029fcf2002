/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package session tracks whether the user is logged in and who they are.
// The state is derived from the credential store and the current-user
// endpoint; nothing here is persisted.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/schema"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type State int

const (
	Unknown State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "logged out"
	case Authenticated:
		return "logged in"
	default:
		return "unknown"
	}
}

// API is the part of the storefront client that the session needs
type API interface {
	CreateToken(ctx context.Context, username, password string) (interfaces.TokenPair, error)
	CurrentUser(ctx context.Context) (schema.UserProfile, error)
}

type Session struct {
	mu     sync.Mutex
	state  State
	user   *schema.UserProfile
	store  interfaces.TokenStore
	api    API
	logger interfaces.Logger
}

func New(store interfaces.TokenStore, api API, logger interfaces.Logger) *Session {
	if logger == nil {
		logger = null.Logger()
	}
	return &Session{state: Unknown, store: store, api: api, logger: logger}
}

// State returns the current state and a copy of the profile, if known
func (s *Session) State() (State, *schema.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return s.state, nil
	}
	u := *s.user
	return s.state, &u
}

// Load derives the state from the credential store and fetches the profile.
// The session is logged out only if a token refresh is rejected. Any other
// failure to fetch the profile is returned, and the session stays
// authenticated without a profile.
func (s *Session) Load(ctx context.Context) error {
	if _, ok := s.store.Get(); !ok {
		s.set(Unauthenticated, nil)
		return nil
	}

	s.set(Authenticated, nil)
	return s.fetchProfile(ctx)
}

// Login obtains a token pair and fetches the profile. The state is not
// changed if the credentials are rejected.
func (s *Session) Login(ctx context.Context, username, password string) error {
	pair, err := s.api.CreateToken(ctx, username, password)
	if err != nil {
		if errors.Is(err, apierr.ErrAuthorizationExpired) {
			s.logger.Warning(3001, "login rejected", fields.NewFields(fields.NewField("user", username)))
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return err
	}

	if err = s.store.Set(pair); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	s.logger.Info(3002, "logged in", fields.NewFields(fields.NewField("user", username)))
	s.set(Authenticated, nil)
	return s.fetchProfile(ctx)
}

// Logout forgets the tokens and the profile. There is no server round trip.
func (s *Session) Logout() {
	if err := s.store.Clear(); err != nil {
		s.logger.Errorf(3003, "logout: %s", err.Error())
	}
	s.set(Unauthenticated, nil)
	s.logger.Info(3004, "logged out", nil)
}

// Revoked is called after a failed token refresh has cleared the credentials
func (s *Session) Revoked() {
	s.set(Unauthenticated, nil)
	s.logger.Warning(3005, "session revoked, login required", nil)
}

func (s *Session) fetchProfile(ctx context.Context) error {
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		// The tokens are only cleared by a rejected refresh, which calls Revoked
		s.logger.Errorf(3006, "unable to fetch user profile: %s", err.Error())
		return fmt.Errorf("fetching user profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Authenticated {
		s.user = &user
	}
	return nil
}

func (s *Session) set(state State, user *schema.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
