// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package stableswap3pool implements a StableSwap-style constant-function
// market maker for a fixed basket of three nominally-equal-valued assets.
package stableswap3pool

import (
	"github.com/holiman/uint256"
)

// N is the fixed number of assets this engine supports. The StableSwap
// invariant below is specialized to N=3; generalizing it is out of scope.
const N = 3

// Amplification and ramp bounds, matching the canonical Curve.fi 3pool
// deployment.
const (
	MaxA        uint64 = 1_000_000
	MaxAChange  uint64 = 10
	MinRampTime uint64 = 86400 // seconds
)

// Precision, FeeDenominator and the canonical rate table are expressed as
// *uint256.Int package vars rather than typed consts because uint256.Int
// has no const representation and 10^30 does not fit a machine word.
var (
	Precision      = uint256.NewInt(1_000_000_000_000_000_000) // 10^18
	FeeDenominator = uint256.NewInt(10_000_000_000)            // 10^10
	MaxAInt        = uint256.NewInt(MaxA)
	zero           = uint256.NewInt(0)
	one            = uint256.NewInt(1)
	nInt           = uint256.NewInt(N)
	nPlus1Int      = uint256.NewInt(N + 1)
)

// CanonicalRates is the rate table for the DAI/USDC/USDT basket: DAI is
// already 18-decimal (factor 1), USDC and USDT are 6-decimal and need a
// 10^12 scale-up to reach the common 18-decimal "x-space".
func CanonicalRates() [N]*uint256.Int {
	return [N]*uint256.Int{
		uint256.NewInt(1_000_000_000_000_000_000),      // 10^18
		uint256.MustFromDecimal("1000000000000000000000000000000"), // 10^30
		uint256.MustFromDecimal("1000000000000000000000000000000"), // 10^30
	}
}

// Balances is the raw (native-precision) reserve vector.
type Balances [N]*uint256.Int

// clone returns a deep copy of b so callers never accidentally alias the
// pool's live reserve vector.
func (b Balances) clone() Balances {
	var out Balances
	for i := range b {
		out[i] = new(uint256.Int).Set(b[i])
	}
	return out
}

// AParams is the linear-ramp state for the amplification coefficient A.
type AParams struct {
	InitialA     *uint256.Int
	FutureA      *uint256.Int
	InitialATime uint64
	FutureATime  uint64
}
