// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "github.com/holiman/uint256"

// normalize maps raw reserve balances into the common 18-decimal "x-space"
// via the pool's rate table: xp[i] = balances[i] * RATES[i] / PRECISION.
// Division truncates. Every solver and every fee/amount calculation in
// this package consumes xp, never raw balances, to avoid mixing
// normalized and un-normalized units (§4.1).
func normalize(balances Balances, rates [N]*uint256.Int) ([N]*uint256.Int, error) {
	var xp [N]*uint256.Int
	for i := 0; i < N; i++ {
		v, err := mulDiv(balances[i], rates[i], Precision)
		if err != nil {
			return xp, err
		}
		xp[i] = v
	}
	return xp, nil
}

// denormalize converts a normalized x-space amount at index i back to the
// asset's native precision: amount * PRECISION / RATES[i].
func denormalize(xpAmount *uint256.Int, rate *uint256.Int) (*uint256.Int, error) {
	return mulDiv(xpAmount, Precision, rate)
}
