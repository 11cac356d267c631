// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "github.com/holiman/uint256"

// mulDiv computes floor(x*y/d) using uint256's 512-bit-intermediate helper
// so the x*y product never silently overflows 256 bits before the
// division narrows it back down. This is the "non-overflowing integer
// operations" idiom the StableSwap invariant's Newton iteration depends on
// throughout §4.2-§4.4 of the specification.
func mulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrArithmeticOverflow
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return z, nil
}

// absDiff returns |a-b| without underflowing the unsigned representation.
func absDiff(a, b *uint256.Int) *uint256.Int {
	if a.Cmp(b) >= 0 {
		return new(uint256.Int).Sub(a, b)
	}
	return new(uint256.Int).Sub(b, a)
}

// subChecked returns a-b and an error instead of wrapping around zero.
func subChecked(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).SubOverflow(a, b)
	if overflow {
		return nil, ErrInsufficientBalance
	}
	return z, nil
}

// addU is a small helper for summing three uint256 values.
func addU(a, b, c *uint256.Int) *uint256.Int {
	z := new(uint256.Int).Add(a, b)
	z.Add(z, c)
	return z
}
