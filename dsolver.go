// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "github.com/holiman/uint256"

// maxSolverIterations bounds both the D-solver and the y-solvers: Newton
// iteration on these invariants converges in 4-6 rounds for any realistic
// input, so exhausting the cap means the pool state is degenerate and the
// operation must fail rather than loop forever.
const maxSolverIterations = 255

// convergenceTolerance is the "equal to within 1 unit" stopping rule used
// by every solver in this file.
var convergenceTolerance = uint256.NewInt(1)

// getD computes the StableSwap invariant D for normalized reserves xp at
// amplification a, by Newton iteration on:
//
//	A*N^N*sum(xp) + D = A*N^N*D + D^(N+1) / (N^N * prod(xp))
//
// per §4.2. Division truncates throughout; this exact rounding direction
// is part of the contract and must not be changed to round-to-nearest.
func getD(xp [N]*uint256.Int, a *uint256.Int) (*uint256.Int, error) {
	s := addU(xp[0], xp[1], xp[2])
	if s.IsZero() {
		return uint256.NewInt(0), nil
	}

	d := new(uint256.Int).Set(s)
	ann := new(uint256.Int).Mul(a, nInt)

	for iter := 0; iter < maxSolverIterations; iter++ {
		dP := new(uint256.Int).Set(d)
		for i := 0; i < N; i++ {
			denom := new(uint256.Int).Mul(xp[i], nInt)
			var err error
			dP, err = mulDiv(dP, d, denom)
			if err != nil {
				return nil, err
			}
		}

		dPrev := new(uint256.Int).Set(d)

		numerator := new(uint256.Int).Mul(ann, s)
		numerator.Add(numerator, new(uint256.Int).Mul(dP, nInt))

		annMinus1 := new(uint256.Int).Sub(ann, one)
		denominator := new(uint256.Int).Mul(annMinus1, d)
		denominator.Add(denominator, new(uint256.Int).Mul(dP, nPlus1Int))

		var err error
		d, err = mulDiv(numerator, d, denominator)
		if err != nil {
			return nil, err
		}

		if absDiff(d, dPrev).Cmp(convergenceTolerance) <= 0 {
			return d, nil
		}
	}

	return nil, ErrSolverDidNotConverge
}
