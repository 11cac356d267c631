// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "github.com/holiman/uint256"

// getY computes the new value of xp[j] that preserves the invariant D when
// xp[i] is set to xNew, per §4.3. i and j must be distinct indices in
// [0,N). xp is the pool's current normalized reserves (index i is NOT yet
// updated to xNew in the slice the caller passes in).
func getY(i, j int, xNew *uint256.Int, xp [N]*uint256.Int, a *uint256.Int) (*uint256.Int, error) {
	d, err := getD(xp, a)
	if err != nil {
		return nil, err
	}

	ann := new(uint256.Int).Mul(a, nInt)
	c := new(uint256.Int).Set(d)
	s := uint256.NewInt(0)

	for k := 0; k < N; k++ {
		if k == j {
			continue
		}
		var xk *uint256.Int
		if k == i {
			xk = xNew
		} else {
			xk = xp[k]
		}
		s = new(uint256.Int).Add(s, xk)

		denom := new(uint256.Int).Mul(xk, nInt)
		c, err = mulDiv(c, d, denom)
		if err != nil {
			return nil, err
		}
	}

	annN := new(uint256.Int).Mul(ann, nInt)
	c, err = mulDiv(c, d, annN)
	if err != nil {
		return nil, err
	}

	dOverAnn, err := mulDiv(d, one, ann)
	if err != nil {
		return nil, err
	}
	b := new(uint256.Int).Add(s, dOverAnn)

	return iterateY(d, b, c)
}

// getYD computes the new value of reserve index idx that is consistent
// with a target invariant dNew, given the pool's current normalized
// reserves xp, per §4.4. Unlike getY there is no "sold" index excluded
// from the accumulation loop: every j != idx contributes using its
// original xp[j].
func getYD(idx int, dNew *uint256.Int, xp [N]*uint256.Int, a *uint256.Int) (*uint256.Int, error) {
	ann := new(uint256.Int).Mul(a, nInt)
	c := new(uint256.Int).Set(dNew)
	s := uint256.NewInt(0)

	var err error
	for k := 0; k < N; k++ {
		if k == idx {
			continue
		}
		xk := xp[k]
		s = new(uint256.Int).Add(s, xk)

		denom := new(uint256.Int).Mul(xk, nInt)
		c, err = mulDiv(c, dNew, denom)
		if err != nil {
			return nil, err
		}
	}

	annN := new(uint256.Int).Mul(ann, nInt)
	c, err = mulDiv(c, dNew, annN)
	if err != nil {
		return nil, err
	}

	dOverAnn, err := mulDiv(dNew, one, ann)
	if err != nil {
		return nil, err
	}
	b := new(uint256.Int).Add(s, dOverAnn)

	return iterateY(dNew, b, c)
}

// iterateY runs the shared Newton iteration y = (y*y + c) / (2*y + b - D)
// used by both getY and getYD, starting from y=D and stopping once two
// successive iterates differ by at most 1.
func iterateY(d, b, c *uint256.Int) (*uint256.Int, error) {
	y := new(uint256.Int).Set(d)

	for iter := 0; iter < maxSolverIterations; iter++ {
		yPrev := new(uint256.Int).Set(y)

		ySq := new(uint256.Int).Mul(y, y)
		numerator := new(uint256.Int).Add(ySq, c)

		twoY := new(uint256.Int).Mul(y, uint256.NewInt(2))
		denomPlusB := new(uint256.Int).Add(twoY, b)
		denominator, err := subChecked(denomPlusB, d)
		if err != nil {
			return nil, ErrSolverDidNotConverge
		}
		if denominator.IsZero() {
			return nil, ErrSolverDidNotConverge
		}

		y = new(uint256.Int).Div(numerator, denominator)

		if absDiff(y, yPrev).Cmp(convergenceTolerance) <= 0 {
			return y, nil
		}
	}

	return nil, ErrSolverDidNotConverge
}
