//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"context"
	"math/rand"
	"time"
)

// PenaltyBox slows down a client that failed authentication or probed an
// unknown route. It returns early when ctx ends, so a client that hangs up
// does not hold a connection slot for the full delay.
func (s *HServer) PenaltyBox(ctx context.Context) {
	d := s.penalty()
	if d == 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// penalty returns a random delay in [PenaltyBoxMin, PenaltyBoxMax) milliseconds,
// or zero when the box is disabled or misconfigured
func (s *HServer) penalty() time.Duration {
	lo, hi := s.PenaltyBoxMin, s.PenaltyBoxMax
	if hi <= 0 || lo > hi {
		return 0
	}
	if lo == hi {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+rand.Intn(hi-lo)) * time.Millisecond
}
