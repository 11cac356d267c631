// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"
)

// ShareTokenName and ShareTokenSymbol identify the pool-share ledger the
// engine mints and burns internally (§6).
const (
	ShareTokenName   = "Curve.fi DAI/USDC/USDT"
	ShareTokenSymbol = "3CRV"
)

// PoolConfig is the full set of constructor inputs for a Pool: the three
// asset identities and capabilities, the rate table, the pool's own
// address (used to query token balances for the I1 admin-fee-reserve
// invariant), the initial amplification, the fee split, and the ambient
// owner/clock/event/log collaborators.
type PoolConfig struct {
	Addresses   [N]common.Address
	Assets      [N]AssetToken
	Rates       [N]*uint256.Int
	SelfAddress common.Address
	InitialA    *uint256.Int
	Fee         *uint256.Int
	AdminFee    *uint256.Int
	Owner       Owner
	Clock       Clock
	Sink        EventSink
	Logger      log.Logger
}

// Pool is the StableSwap engine: reserve accounting, the pool-share
// ledger, and the A-ramp, all serialized behind a single reentrancy guard
// per §5.
type Pool struct {
	guard reentrancyGuard

	addresses   [N]common.Address
	assets      [N]AssetToken
	rates       [N]*uint256.Int
	selfAddress common.Address

	balances Balances

	sharesMu    sync.RWMutex
	shareSupply *uint256.Int
	shares      map[common.Address]*uint256.Int

	aMu     sync.RWMutex
	aParams AParams

	fee      *uint256.Int
	adminFee *uint256.Int

	owner Owner
	clock Clock
	sink  EventSink
	log   log.Logger

	id [32]byte
}

// NewPool validates cfg and constructs an empty pool (zero reserves, zero
// share supply) ready to receive its first deposit.
func NewPool(cfg PoolConfig) (*Pool, error) {
	for i := 0; i < N; i++ {
		if cfg.Assets[i] == nil || cfg.Addresses[i] == (common.Address{}) {
			return nil, fmt.Errorf("asset %d: %w", i, ErrInvalidAddress)
		}
		if cfg.Rates[i] == nil || cfg.Rates[i].IsZero() {
			return nil, fmt.Errorf("rate %d: %w", i, ErrRampParameterOutOfRange)
		}
	}
	if cfg.InitialA == nil || cfg.InitialA.IsZero() || cfg.InitialA.Cmp(MaxAInt) > 0 {
		return nil, fmt.Errorf("initial A: %w", ErrRampParameterOutOfRange)
	}
	if cfg.Fee == nil || cfg.AdminFee == nil {
		return nil, fmt.Errorf("fee configuration: %w", ErrRampParameterOutOfRange)
	}
	if cfg.Owner == nil || cfg.Clock == nil {
		return nil, fmt.Errorf("missing owner/clock capability: %w", ErrInvalidAddress)
	}

	sink := cfg.Sink
	if sink == nil {
		sink = NewEventLog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}

	now := cfg.Clock.Now()
	a := new(uint256.Int).Set(cfg.InitialA)

	p := &Pool{
		addresses:   cfg.Addresses,
		assets:      cfg.Assets,
		rates:       cfg.Rates,
		selfAddress: cfg.SelfAddress,
		balances:    Balances{uint256.NewInt(0), uint256.NewInt(0), uint256.NewInt(0)},
		shareSupply: uint256.NewInt(0),
		shares:      make(map[common.Address]*uint256.Int),
		aParams: AParams{
			InitialA:     a,
			FutureA:      new(uint256.Int).Set(a),
			InitialATime: now,
			FutureATime:  now,
		},
		fee:      new(uint256.Int).Set(cfg.Fee),
		adminFee: new(uint256.Int).Set(cfg.AdminFee),
		owner:    cfg.Owner,
		clock:    cfg.Clock,
		sink:     sink,
		log:      logger,
	}
	p.id = poolID(cfg.Addresses, cfg.Rates)

	return p, nil
}

// xp normalizes balances into x-space using a copy of the pool's rate
// table, so the solver helpers never alias the pool's own table.
func (p *Pool) xp(balances Balances) ([N]*uint256.Int, error) {
	var raw [N]*uint256.Int
	copy(raw[:], balances[:])
	var rates [N]*uint256.Int
	copy(rates[:], p.rates[:])
	return normalize(Balances(raw), rates)
}

// currentA returns the amplification coefficient at the pool's current
// clock time, per the A-ramp in §4.5.
func (p *Pool) currentA() *uint256.Int {
	p.aMu.RLock()
	params := p.aParams
	p.aMu.RUnlock()
	return currentAAt(params, p.clock.Now())
}

// BalanceOf returns addr's pool-share balance.
func (p *Pool) BalanceOf(addr common.Address) *uint256.Int {
	p.sharesMu.RLock()
	defer p.sharesMu.RUnlock()
	bal, ok := p.shares[addr]
	if !ok {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(bal)
}

// TotalSupply returns the current pool-share supply.
func (p *Pool) TotalSupply() *uint256.Int {
	p.sharesMu.RLock()
	defer p.sharesMu.RUnlock()
	return new(uint256.Int).Set(p.shareSupply)
}

// Balances returns a copy of the current reserve vector.
func (p *Pool) Balances() Balances {
	return p.balances.clone()
}

// ID returns the pool's 32-byte correlation identifier.
func (p *Pool) ID() [32]byte {
	return p.id
}

func (p *Pool) mintShares(to common.Address, amount *uint256.Int) {
	p.sharesMu.Lock()
	defer p.sharesMu.Unlock()
	bal, ok := p.shares[to]
	if !ok {
		bal = uint256.NewInt(0)
	}
	p.shares[to] = new(uint256.Int).Add(bal, amount)
	p.shareSupply = new(uint256.Int).Add(p.shareSupply, amount)
}

func (p *Pool) burnShares(from common.Address, amount *uint256.Int) error {
	p.sharesMu.Lock()
	defer p.sharesMu.Unlock()
	bal, ok := p.shares[from]
	if !ok {
		bal = uint256.NewInt(0)
	}
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	p.shares[from] = new(uint256.Int).Sub(bal, amount)
	p.shareSupply = new(uint256.Int).Sub(p.shareSupply, amount)
	return nil
}

// imbalanceFee returns fee * N / (4*(N-1)), the scaling factor applied to
// deposit/withdraw deviations from the pool's current composition (§4.7).
func (p *Pool) imbalanceFee() (*uint256.Int, error) {
	return mulDiv(p.fee, nInt, uint256.NewInt(4*(N-1)))
}
