// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Swap exchanges dx of asset i for asset j, crediting the caller at least
// min_dy of asset j or failing with ErrSlippageTooHigh. Per §4.6, state is
// committed before the external token calls: balances move first, then
// the actual token transfers happen, so a reentrant call during the pull
// or push observes the post-swap balances.
func (p *Pool) Swap(caller common.Address, i, j int, dx, minDy *uint256.Int) (*uint256.Int, error) {
	if err := p.guard.enter(); err != nil {
		return nil, err
	}
	defer p.guard.exit()

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

	feeAmtNorm, err := mulDiv(dyGrossNorm, p.fee, FeeDenominator)
	if err != nil {
		return nil, err
	}
	dyNetNorm, err := subChecked(dyGrossNorm, feeAmtNorm)
	if err != nil {
		return nil, err
	}
	adminCutNorm, err := mulDiv(feeAmtNorm, p.adminFee, FeeDenominator)
	if err != nil {
		return nil, err
	}

	dy, err := denormalize(dyNetNorm, p.rates[j])
	if err != nil {
		return nil, err
	}
	adminCut, err := denormalize(adminCutNorm, p.rates[j])
	if err != nil {
		return nil, err
	}

	if dy.Cmp(minDy) < 0 {
		return nil, ErrSlippageTooHigh
	}

	newBalI := new(uint256.Int).Add(p.balances[i], dx)
	outflow := new(uint256.Int).Add(dy, adminCut)
	newBalJ, err := subChecked(p.balances[j], outflow)
	if err != nil {
		return nil, fmt.Errorf("swap reserve %d: %w", j, ErrInsufficientBalance)
	}

	p.balances[i] = newBalI
	p.balances[j] = newBalJ

	if err := p.assets[i].TransferFrom(caller, p.selfAddress, dx); err != nil {
		return nil, fmt.Errorf("pull asset %d: %w", i, ErrTransferFailed)
	}
	if err := p.assets[j].Transfer(caller, dy); err != nil {
		return nil, fmt.Errorf("push asset %d: %w", j, ErrTransferFailed)
	}

	p.sink.Emit(TokenSwapEvent{Buyer: caller, SoldID: i, TokensSold: dx, BoughtID: j, TokensBought: dy})
	p.log.Info("swap", "i", i, "j", j, "dx", dx.String(), "dy", dy.String())

	return dy, nil
}

// validateIndices checks that i and j are distinct valid asset indices,
// per the swap-arg validation in §7.
func validateIndices(i, j int) error {
	if i < 0 || i >= N || j < 0 || j >= N {
		return fmt.Errorf("index out of [0,%d): %w", N, ErrInvalidToken)
	}
	if i == j {
		return ErrCantSwapSameToken
	}
	return nil
}
