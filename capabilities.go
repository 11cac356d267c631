// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// AssetToken is the ambient token-transfer capability the engine consumes
// for one of the three pooled assets. A conforming implementation must use
// a safe-transfer wrapper (or reject the token at construction) for
// fee-on-transfer-style tokens: a successful Transfer/TransferFrom call
// that moves less than the requested amount is not tolerated by this
// engine (see §6 of the specification).
type AssetToken interface {
	BalanceOf(addr common.Address) (*uint256.Int, error)
	Transfer(to common.Address, amount *uint256.Int) error
	TransferFrom(from, to common.Address, amount *uint256.Int) error
}

// Owner is the ambient access-control capability gating ramp_A, stop_ramp_A
// and withdraw_admin_fee. It reports whether the current call's caller is
// the pool owner; ownership transfer is out of scope for this engine.
type Owner interface {
	IsCurrentCallerOwner() bool
}

// Clock is the ambient host-clock capability used by the A-ramp.
type Clock interface {
	Now() uint64
}

// EventSink receives fire-and-forget notifications for every
// state-mutating operation. Implementations may fan these out to a log,
// an observer, or simply discard them.
type EventSink interface {
	Emit(event Event)
}

// Event is a marker interface implemented by every concrete event type in
// events.go.
type Event interface {
	EventName() string
}
