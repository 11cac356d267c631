// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "sync"

// lockState is the small state enum described in the specification's
// design notes: a call is either Idle or Entered. This mirrors
// dex/pool_manager.go's PoolManager.locked boolean guarded by a mutex,
// generalized to a named enum.
type lockState int

const (
	lockIdle lockState = iota
	lockEntered
)

// reentrancyGuard implements the non-blocking enter/exit gate every
// state-mutating entry point must acquire: a reentrant call must fail
// fast with ErrReentrancy rather than block forever on a held mutex.
type reentrancyGuard struct {
	mu    sync.Mutex
	state lockState
}

// enter attempts to transition Idle -> Entered. It returns ErrReentrancy
// if the guard is already held.
func (g *reentrancyGuard) enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == lockEntered {
		return ErrReentrancy
	}
	g.state = lockEntered
	return nil
}

// exit transitions Entered -> Idle. Callers must defer this on every exit
// path of a guarded operation, success or failure.
func (g *reentrancyGuard) exit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = lockIdle
}
