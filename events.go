// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// TokenSwapEvent is emitted by Swap (§4.6).
type TokenSwapEvent struct {
	Buyer     common.Address
	SoldID    int
	TokensSold *uint256.Int
	BoughtID  int
	TokensBought *uint256.Int
}

func (TokenSwapEvent) EventName() string { return "TokenSwap" }

// AddLiquidityEvent is emitted by AddLiquidity (§4.7).
type AddLiquidityEvent struct {
	Provider      common.Address
	TokenAmounts  Balances
	Fees          Balances
	InvariantD    *uint256.Int
	TokenSupply   *uint256.Int
}

func (AddLiquidityEvent) EventName() string { return "AddLiquidity" }

// RemoveLiquidityEvent is emitted by RemoveLiquidity (§4.8).
type RemoveLiquidityEvent struct {
	Provider     common.Address
	TokenAmounts Balances
	TokenSupply  *uint256.Int
}

func (RemoveLiquidityEvent) EventName() string { return "RemoveLiquidity" }

// RemoveLiquidityOneEvent is emitted by RemoveLiquidityOneToken (§4.9).
type RemoveLiquidityOneEvent struct {
	Provider    common.Address
	TokenIndex  int
	TokenAmount *uint256.Int
	CoinAmount  *uint256.Int
}

func (RemoveLiquidityOneEvent) EventName() string { return "RemoveLiquidityOne" }

// RemoveLiquidityImbalanceEvent is emitted by RemoveLiquidityImbalance (§4.10).
type RemoveLiquidityImbalanceEvent struct {
	Provider     common.Address
	TokenAmounts Balances
	Fees         Balances
	InvariantD   *uint256.Int
	TokenSupply  *uint256.Int
}

func (RemoveLiquidityImbalanceEvent) EventName() string { return "RemoveLiquidityImbalance" }

// RampAEvent is emitted by RampA (§4.5).
type RampAEvent struct {
	OldA          *uint256.Int
	NewA          *uint256.Int
	InitialATime  uint64
	FutureATime   uint64
}

func (RampAEvent) EventName() string { return "RampA" }

// StopRampAEvent is emitted by StopRampA (§4.5).
type StopRampAEvent struct {
	A    *uint256.Int
	Time uint64
}

func (StopRampAEvent) EventName() string { return "StopRampA" }

// EventLog is a minimal in-memory, queryable EventSink, mirroring the
// append-only event-history pattern of dex/liquidation.go's
// Liquidator.liquidations slice. It is the default sink a Pool uses when
// the caller doesn't supply one of its own.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{events: make([]Event, 0)}
}

// Emit implements EventSink.
func (l *EventLog) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// All returns a snapshot of every event recorded so far, oldest first.
func (l *EventLog) All() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
