// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// AddLiquidity deposits amounts[0..N) of the three assets and mints pool
// shares to the caller, per §4.7. On a non-empty pool, deposits that skew
// the pool's composition away from its current ratio are charged an
// imbalance fee (imbalanceFee) so that a deposit-imbalanced followed by a
// swap-to-balanced cannot extract the swap fee the depositor avoided.
func (p *Pool) AddLiquidity(caller common.Address, amounts Balances, minMint *uint256.Int) (*uint256.Int, error) {
	if err := p.guard.enter(); err != nil {
		return nil, err
	}
	defer p.guard.exit()

	old := p.balances.clone()
	oldXp, err := p.xp(old)
	if err != nil {
		return nil, err
	}
	d0, err := getD(oldXp, p.currentA())
	if err != nil {
		return nil, err
	}

	var newBalances Balances
	for i := 0; i < N; i++ {
		newBalances[i] = new(uint256.Int).Add(old[i], amounts[i])
	}
	newXp, err := p.xp(newBalances)
	if err != nil {
		return nil, err
	}
	d1, err := getD(newXp, p.currentA())
	if err != nil {
		return nil, err
	}
	if d1.Cmp(d0) <= 0 {
		return nil, ErrInvariantDMustIncrease
	}

	totalSupply := p.TotalSupply()

	var committed Balances
	var fees Balances
	var d2 *uint256.Int

	if totalSupply.IsZero() {
		committed = newBalances
		fees = Balances{zero.Clone(), zero.Clone(), zero.Clone()}
		d2 = d1
	} else {
		imbalFee, err := p.imbalanceFee()
		if err != nil {
			return nil, err
		}
		var postFee Balances
		for i := 0; i < N; i++ {
			ideal, err := mulDiv(d1, old[i], d0)
			if err != nil {
				return nil, err
			}
			diff := absDiff(newBalances[i], ideal)
			feeI, err := mulDiv(imbalFee, diff, FeeDenominator)
			if err != nil {
				return nil, err
			}
			adminCutI, err := mulDiv(feeI, p.adminFee, FeeDenominator)
			if err != nil {
				return nil, err
			}
			commI, err := subChecked(newBalances[i], adminCutI)
			if err != nil {
				return nil, err
			}
			postFeeI, err := subChecked(newBalances[i], feeI)
			if err != nil {
				return nil, err
			}
			committed[i] = commI
			postFee[i] = postFeeI
			fees[i] = feeI
		}
		postFeeXp, err := p.xp(postFee)
		if err != nil {
			return nil, err
		}
		d2, err = getD(postFeeXp, p.currentA())
		if err != nil {
			return nil, err
		}
	}

	var minted *uint256.Int
	if totalSupply.IsZero() {
		minted = d2
	} else {
		deltaD, err := subChecked(d2, d0)
		if err != nil {
			return nil, err
		}
		minted, err = mulDiv(totalSupply, deltaD, d0)
		if err != nil {
			return nil, err
		}
	}
	if minted.Cmp(minMint) < 0 {
		return nil, ErrSlippageTooHigh
	}

	for i := 0; i < N; i++ {
		if amounts[i].IsZero() {
			continue
		}
		if err := p.assets[i].TransferFrom(caller, p.selfAddress, amounts[i]); err != nil {
			return nil, fmt.Errorf("pull asset %d: %w", i, ErrTransferFailed)
		}
	}

	p.balances = committed
	p.mintShares(caller, minted)

	p.sink.Emit(AddLiquidityEvent{Provider: caller, TokenAmounts: amounts, Fees: fees, InvariantD: d2, TokenSupply: p.TotalSupply()})
	p.log.Info("add_liquidity", "minted", minted.String())

	return minted, nil
}

// RemoveLiquidity burns `burn` pool shares and returns a pro-rata share of
// every reserve, with no fee (§4.8).
func (p *Pool) RemoveLiquidity(caller common.Address, burn *uint256.Int, minAmounts Balances) (Balances, error) {
	var zeroAmounts Balances
	if err := p.guard.enter(); err != nil {
		return zeroAmounts, err
	}
	defer p.guard.exit()

	if burn == nil || burn.IsZero() {
		return zeroAmounts, ErrBurnAmountZero
	}
	if p.BalanceOf(caller).Cmp(burn) < 0 {
		return zeroAmounts, ErrInsufficientBalance
	}

	totalSupply := p.TotalSupply()
	var amounts Balances
	for i := 0; i < N; i++ {
		amt, err := mulDiv(p.balances[i], burn, totalSupply)
		if err != nil {
			return zeroAmounts, err
		}
		if amt.Cmp(minAmounts[i]) < 0 {
			return zeroAmounts, ErrSlippageTooHigh
		}
		amounts[i] = amt
	}

	var committed Balances
	for i := 0; i < N; i++ {
		v, err := subChecked(p.balances[i], amounts[i])
		if err != nil {
			return zeroAmounts, err
		}
		committed[i] = v
	}

	p.balances = committed
	if err := p.burnShares(caller, burn); err != nil {
		return zeroAmounts, err
	}

	for i := 0; i < N; i++ {
		if amounts[i].IsZero() {
			continue
		}
		if err := p.assets[i].Transfer(caller, amounts[i]); err != nil {
			return zeroAmounts, fmt.Errorf("push asset %d: %w", i, ErrTransferFailed)
		}
	}

	p.sink.Emit(RemoveLiquidityEvent{Provider: caller, TokenAmounts: amounts, TokenSupply: p.TotalSupply()})
	p.log.Info("remove_liquidity", "burn", burn.String())

	return amounts, nil
}

// RemoveLiquidityImbalance burns up to maxBurn pool shares to pay out
// exactly `amounts` of the three reserves, per §4.10. Because the caller
// names the withdrawal shape (rather than accepting the pro-rata share),
// deviation from the pool's current composition is charged the same
// imbalance fee as AddLiquidity.
func (p *Pool) RemoveLiquidityImbalance(caller common.Address, amounts Balances, maxBurn *uint256.Int) (*uint256.Int, error) {
	if err := p.guard.enter(); err != nil {
		return nil, err
	}
	defer p.guard.exit()

	old := p.balances.clone()
	var newBalances Balances
	for i := 0; i < N; i++ {
		v, err := subChecked(old[i], amounts[i])
		if err != nil {
			return nil, fmt.Errorf("reserve %d: %w", i, ErrInsufficientBalance)
		}
		newBalances[i] = v
	}

	oldXp, err := p.xp(old)
	if err != nil {
		return nil, err
	}
	d0, err := getD(oldXp, p.currentA())
	if err != nil {
		return nil, err
	}
	newXp, err := p.xp(newBalances)
	if err != nil {
		return nil, err
	}
	d1, err := getD(newXp, p.currentA())
	if err != nil {
		return nil, err
	}

	imbalFee, err := p.imbalanceFee()
	if err != nil {
		return nil, err
	}

	var committed Balances
	var postFee Balances
	var fees Balances
	for i := 0; i < N; i++ {
		ideal, err := mulDiv(d1, old[i], d0)
		if err != nil {
			return nil, err
		}
		diff := absDiff(newBalances[i], ideal)
		feeI, err := mulDiv(imbalFee, diff, FeeDenominator)
		if err != nil {
			return nil, err
		}
		adminCutI, err := mulDiv(feeI, p.adminFee, FeeDenominator)
		if err != nil {
			return nil, err
		}
		commI, err := subChecked(newBalances[i], adminCutI)
		if err != nil {
			return nil, err
		}
		postFeeI, err := subChecked(newBalances[i], feeI)
		if err != nil {
			return nil, err
		}
		committed[i] = commI
		postFee[i] = postFeeI
		fees[i] = feeI
	}

	postFeeXp, err := p.xp(postFee)
	if err != nil {
		return nil, err
	}
	d2, err := getD(postFeeXp, p.currentA())
	if err != nil {
		return nil, err
	}

	totalSupply := p.TotalSupply()
	deltaD, err := subChecked(d0, d2)
	if err != nil {
		return nil, err
	}
	burn, err := mulDiv(deltaD, totalSupply, d0)
	if err != nil {
		return nil, err
	}
	if burn.IsZero() {
		return nil, ErrBurnAmountZero
	}
	burn = new(uint256.Int).Add(burn, one)

	if burn.Cmp(maxBurn) > 0 {
		return nil, ErrSlippageTooHigh
	}
	if p.BalanceOf(caller).Cmp(burn) < 0 {
		return nil, ErrInsufficientBalance
	}

	p.balances = committed
	if err := p.burnShares(caller, burn); err != nil {
		return nil, err
	}

	for i := 0; i < N; i++ {
		if amounts[i].IsZero() {
			continue
		}
		if err := p.assets[i].Transfer(caller, amounts[i]); err != nil {
			return nil, fmt.Errorf("push asset %d: %w", i, ErrTransferFailed)
		}
	}

	p.sink.Emit(RemoveLiquidityImbalanceEvent{Provider: caller, TokenAmounts: amounts, Fees: fees, InvariantD: d2, TokenSupply: p.TotalSupply()})
	p.log.Info("remove_liquidity_imbalance", "burn", burn.String())

	return burn, nil
}

// RemoveLiquidityOneToken burns `burn` pool shares and pays out the
// entire proceeds in asset i alone, per §4.9. Concentrating the withdrawal
// in one asset skews the pool's composition, so the payout is charged the
// same imbalance fee as an imbalanced deposit.
func (p *Pool) RemoveLiquidityOneToken(caller common.Address, burn *uint256.Int, i int, minAmount *uint256.Int) (*uint256.Int, error) {
	if err := p.guard.enter(); err != nil {
		return nil, err
	}
	defer p.guard.exit()

	if i < 0 || i >= N {
		return nil, ErrInvalidToken
	}
	if burn == nil || burn.IsZero() {
		return nil, ErrBurnAmountZero
	}
	if p.BalanceOf(caller).Cmp(burn) < 0 {
		return nil, ErrInsufficientBalance
	}

	dyNorm, dyNoFeeNorm, err := p.calcWithdrawOneCoinXp(burn, i)
	if err != nil {
		return nil, err
	}

	dy, err := denormalize(dyNorm, p.rates[i])
	if err != nil {
		return nil, err
	}
	if dy.Cmp(minAmount) < 0 {
		return nil, ErrSlippageTooHigh
	}

	totalFeeNorm, err := subChecked(dyNoFeeNorm, dyNorm)
	if err != nil {
		return nil, err
	}
	adminCutNorm, err := mulDiv(totalFeeNorm, p.adminFee, FeeDenominator)
	if err != nil {
		return nil, err
	}
	adminCut, err := denormalize(adminCutNorm, p.rates[i])
	if err != nil {
		return nil, err
	}

	outflow := new(uint256.Int).Add(dy, adminCut)
	newBalI, err := subChecked(p.balances[i], outflow)
	if err != nil {
		return nil, fmt.Errorf("reserve %d: %w", i, ErrInsufficientBalance)
	}

	p.balances[i] = newBalI
	if err := p.burnShares(caller, burn); err != nil {
		return nil, err
	}

	if err := p.assets[i].Transfer(caller, dy); err != nil {
		return nil, fmt.Errorf("push asset %d: %w", i, ErrTransferFailed)
	}

	p.sink.Emit(RemoveLiquidityOneEvent{Provider: caller, TokenIndex: i, TokenAmount: burn, CoinAmount: dy})
	p.log.Info("remove_liquidity_one", "i", i, "burn", burn.String(), "dy", dy.String())

	return dy, nil
}
