// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// SystemClock reports wall-clock time as a Unix timestamp. It is the
// default Clock a deployment wires in; tests use a FixedClock instead so
// A-ramp math doesn't depend on when the test happens to run.
type SystemClock struct{}

func (SystemClock) Now() uint64 { return uint64(time.Now().Unix()) }

// FixedClock is a test double that reports a settable instant, the same
// role dex/perpetuals_test.go's manual time.Now()-stamped fixtures play
// but made mutable so a single test can advance time across an A-ramp.
type FixedClock struct {
	mu  sync.Mutex
	now uint64
}

func NewFixedClock(now uint64) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(seconds uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += seconds
}

// SingleOwner grants ownership to exactly one address, the simplest Owner
// capability a deployment can wire in.
type SingleOwner struct {
	mu     sync.RWMutex
	owner  common.Address
	caller common.Address
}

func NewSingleOwner(owner common.Address) *SingleOwner {
	return &SingleOwner{owner: owner, caller: owner}
}

// SetCaller fixes the identity IsCurrentCallerOwner checks against. A real
// deployment derives this from the in-flight transaction/message sender;
// this in-memory capability needs it set explicitly by the test or
// embedding application before each owner-gated call.
func (o *SingleOwner) SetCaller(caller common.Address) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.caller = caller
}

func (o *SingleOwner) IsCurrentCallerOwner() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.caller == o.owner
}

// InMemoryToken is a minimal ledger-backed AssetToken, the same
// map[common.Address]*uint256.Int balance-sheet idiom as
// dex/lending.go's Reserve accounting, used standalone (without a real
// ERC-20 contract) for tests and local experimentation.
type InMemoryToken struct {
	mu       sync.RWMutex
	self     common.Address
	balances map[common.Address]*uint256.Int
}

// NewInMemoryToken creates a token ledger where Transfer moves funds out of
// self's balance. A token handed to a Pool is created with self set to
// that pool's PoolConfig.SelfAddress, so Transfer models the pool paying
// out of reserves it already holds (via prior TransferFrom pulls).
func NewInMemoryToken(self common.Address) *InMemoryToken {
	return &InMemoryToken{self: self, balances: make(map[common.Address]*uint256.Int)}
}

// Mint credits addr with amount, for seeding test fixtures; it is not part
// of the AssetToken interface.
func (t *InMemoryToken) Mint(addr common.Address, amount *uint256.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	bal, ok := t.balances[addr]
	if !ok {
		bal = uint256.NewInt(0)
	}
	t.balances[addr] = new(uint256.Int).Add(bal, amount)
}

func (t *InMemoryToken) BalanceOf(addr common.Address) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	bal, ok := t.balances[addr]
	if !ok {
		return uint256.NewInt(0), nil
	}
	return new(uint256.Int).Set(bal), nil
}

func (t *InMemoryToken) Transfer(to common.Address, amount *uint256.Int) error {
	return t.TransferFrom(t.self, to, amount)
}

func (t *InMemoryToken) TransferFrom(from, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	bal, ok := t.balances[from]
	if !ok || bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	t.balances[from] = new(uint256.Int).Sub(bal, amount)
	toBal, ok := t.balances[to]
	if !ok {
		toBal = uint256.NewInt(0)
	}
	t.balances[to] = new(uint256.Int).Add(toBal, amount)
	return nil
}
