// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "github.com/holiman/uint256"

// GetDy is a pure view of what Swap(caller, i, j, dx, 0) would return: the
// amount of asset j a caller would receive for dx of asset i, net of the
// swap fee, without mutating any pool state (§4.12). It subtracts one unit
// of x-space precision from the gross amount before the fee and the
// conversion back to asset j's native precision. Swap does not subtract
// this unit, so the quote never exceeds what Swap pays and can come in
// one native unit below it.
func (p *Pool) GetDy(i, j int, dx *uint256.Int) (*uint256.Int, error) {
	if err := validateIndices(i, j); err != nil {
		return nil, err
	}
	if dx == nil || dx.IsZero() {
		return nil, ErrAmountZero
	}

	xp, err := p.xp(p.balances)
	if err != nil {
		return nil, err
	}

	dxNorm, err := mulDiv(dx, p.rates[i], Precision)
	if err != nil {
		return nil, err
	}
	xNew := new(uint256.Int).Add(xp[i], dxNorm)

	a := p.currentA()
	yNew, err := getY(i, j, xNew, xp, a)
	if err != nil {
		return nil, err
	}

	dyGrossNorm, err := subChecked(xp[j], yNew)
	if err != nil {
		return nil, err
	}
	dyGrossNorm, err = subChecked(dyGrossNorm, one)
	if err != nil {
		return nil, err
	}

	feeAmtNorm, err := mulDiv(dyGrossNorm, p.fee, FeeDenominator)
	if err != nil {
		return nil, err
	}
	dyNetNorm, err := subChecked(dyGrossNorm, feeAmtNorm)
	if err != nil {
		return nil, err
	}

	return denormalize(dyNetNorm, p.rates[j])
}

// VirtualPrice reports the pool's invariant D normalized per unit of pool
// share, in 18-decimal x-space: a monotonically non-decreasing measure of
// the pool's growth from swap/imbalance fees, independent of any single
// LP's deposit/withdraw activity (§4.12).
func (p *Pool) VirtualPrice() (*uint256.Int, error) {
	totalSupply := p.TotalSupply()
	if totalSupply.IsZero() {
		return new(uint256.Int).Set(Precision), nil
	}
	xp, err := p.xp(p.balances)
	if err != nil {
		return nil, err
	}
	d, err := getD(xp, p.currentA())
	if err != nil {
		return nil, err
	}
	return mulDiv(d, Precision, totalSupply)
}

// CalcTokenAmount estimates the pool-share delta for a balanced deposit
// (isDeposit true) or withdrawal (isDeposit false) of `amounts`, ignoring
// the imbalance fee entirely. It is meant as a slippage-bound helper for
// callers choosing a minMint/maxBurn argument, not an exact preview (§4.12).
func (p *Pool) CalcTokenAmount(amounts Balances, isDeposit bool) (*uint256.Int, error) {
	old := p.balances.clone()
	oldXp, err := p.xp(old)
	if err != nil {
		return nil, err
	}
	a := p.currentA()
	d0, err := getD(oldXp, a)
	if err != nil {
		return nil, err
	}

	var newBalances Balances
	for i := 0; i < N; i++ {
		if isDeposit {
			newBalances[i] = new(uint256.Int).Add(old[i], amounts[i])
		} else {
			v, err := subChecked(old[i], amounts[i])
			if err != nil {
				return nil, err
			}
			newBalances[i] = v
		}
	}

	newXp, err := p.xp(newBalances)
	if err != nil {
		return nil, err
	}
	d1, err := getD(newXp, a)
	if err != nil {
		return nil, err
	}

	totalSupply := p.TotalSupply()
	if totalSupply.IsZero() {
		return d1, nil
	}

	if isDeposit {
		deltaD, err := subChecked(d1, d0)
		if err != nil {
			return nil, err
		}
		return mulDiv(totalSupply, deltaD, d0)
	}
	deltaD, err := subChecked(d0, d1)
	if err != nil {
		return nil, err
	}
	return mulDiv(totalSupply, deltaD, d0)
}

// calcWithdrawOneCoinXp is the shared Curve-style single-asset-withdraw
// calculation, in normalized x-space, used by both CalcWithdrawOneCoin (a
// pure view) and RemoveLiquidityOneToken (which also commits the result).
// It returns the post-fee amount of asset i and the pre-fee amount; the
// caller takes their difference as the total fee when computing the admin
// cut.
func (p *Pool) calcWithdrawOneCoinXp(burn *uint256.Int, i int) (dyNorm, dyNoFeeNorm *uint256.Int, err error) {
	xp, err := p.xp(p.balances)
	if err != nil {
		return nil, nil, err
	}
	a := p.currentA()
	d0, err := getD(xp, a)
	if err != nil {
		return nil, nil, err
	}
	totalSupply := p.TotalSupply()
	if totalSupply.IsZero() {
		return nil, nil, ErrBurnAmountZero
	}

	reduction, err := mulDiv(burn, d0, totalSupply)
	if err != nil {
		return nil, nil, err
	}
	d1, err := subChecked(d0, reduction)
	if err != nil {
		return nil, nil, err
	}

	newY, err := getYD(i, d1, xp, a)
	if err != nil {
		return nil, nil, err
	}

	imbalFee, err := p.imbalanceFee()
	if err != nil {
		return nil, nil, err
	}

	var xpReduced [N]*uint256.Int
	for j := 0; j < N; j++ {
		var dxExpected *uint256.Int
		ideal, err := mulDiv(xp[j], d1, d0)
		if err != nil {
			return nil, nil, err
		}
		if j == i {
			dxExpected, err = subChecked(ideal, newY)
			if err != nil {
				return nil, nil, err
			}
		} else {
			dxExpected, err = subChecked(xp[j], ideal)
			if err != nil {
				return nil, nil, err
			}
		}
		feeJ, err := mulDiv(imbalFee, dxExpected, FeeDenominator)
		if err != nil {
			return nil, nil, err
		}
		reducedJ, err := subChecked(xp[j], feeJ)
		if err != nil {
			return nil, nil, err
		}
		xpReduced[j] = reducedJ
	}

	newYReduced, err := getYD(i, d1, xpReduced, a)
	if err != nil {
		return nil, nil, err
	}
	dy, err := subChecked(xpReduced[i], newYReduced)
	if err != nil {
		return nil, nil, err
	}
	dy, err = subChecked(dy, one)
	if err != nil {
		return nil, nil, err
	}

	dyNoFee, err := subChecked(xp[i], newY)
	if err != nil {
		return nil, nil, err
	}

	return dy, dyNoFee, nil
}

// CalcWithdrawOneCoin is a pure view of what RemoveLiquidityOneToken(burn,
// i, 0, ...) would return: the amount of asset i a caller would receive
// for burning `burn` pool shares, net of the imbalance fee (§4.12).
func (p *Pool) CalcWithdrawOneCoin(burn *uint256.Int, i int) (*uint256.Int, error) {
	if i < 0 || i >= N {
		return nil, ErrInvalidToken
	}
	if burn == nil || burn.IsZero() {
		return nil, ErrBurnAmountZero
	}
	dyNorm, _, err := p.calcWithdrawOneCoinXp(burn, i)
	if err != nil {
		return nil, err
	}
	return denormalize(dyNorm, p.rates[i])
}
