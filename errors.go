// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "errors"

// Error taxonomy. Every failure mode in the engine returns one of these
// sentinels (optionally wrapped with fmt.Errorf("...: %w", ErrX) to add
// call-specific context such as an index or amount). All are terminal for
// the failing operation; the engine never catches its own errors.
var (
	ErrInvalidAddress        = errors.New("stableswap: invalid (zero) asset address")
	ErrCantSwapSameToken     = errors.New("stableswap: cannot swap a token for itself")
	ErrInvalidToken          = errors.New("stableswap: token index out of range")
	ErrAmountZero            = errors.New("stableswap: amount must be nonzero")
	ErrBurnAmountZero        = errors.New("stableswap: burn amount must be nonzero")
	ErrSlippageTooHigh       = errors.New("stableswap: slippage tolerance exceeded")
	ErrInvariantDMustIncrease = errors.New("stableswap: invariant D did not increase")
	ErrInsufficientBalance   = errors.New("stableswap: insufficient balance")
	ErrRampingTooSoon        = errors.New("stableswap: ramp requested too soon")
	ErrRampParameterOutOfRange = errors.New("stableswap: ramp target A out of range")
	ErrAChangeTooBig         = errors.New("stableswap: requested A change exceeds bound")
	ErrSolverDidNotConverge  = errors.New("stableswap: solver did not converge")
	ErrTransferFailed        = errors.New("stableswap: token transfer failed")
	ErrReentrancy            = errors.New("stableswap: reentrant call rejected")
	ErrUnauthorized          = errors.New("stableswap: caller is not the pool owner")
	ErrArithmeticOverflow    = errors.New("stableswap: 256-bit arithmetic overflow")
)
