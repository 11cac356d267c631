// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"fmt"

	"github.com/luxfi/geth/common"
)

// WithdrawAdminFee sweeps the admin's accrued share of swap/imbalance fees
// to recipient, per §4.11. The accrued amount for asset i is whatever the
// pool's token balance holds beyond what p.balances[i] tracks: every op
// that charges an admin cut leaves it sitting in the token contract rather
// than folding it into the tracked reserve, so the surplus is exactly the
// unswept fee revenue.
func (p *Pool) WithdrawAdminFee(recipient common.Address) error {
	if err := p.guard.enter(); err != nil {
		return err
	}
	defer p.guard.exit()

	if !p.owner.IsCurrentCallerOwner() {
		return ErrUnauthorized
	}

	var surplus Balances
	for i := 0; i < N; i++ {
		held, err := p.assets[i].BalanceOf(p.selfAddress)
		if err != nil {
			return fmt.Errorf("query asset %d balance: %w", i, err)
		}
		s, err := subChecked(held, p.balances[i])
		if err != nil {
			return fmt.Errorf("asset %d balance below tracked reserve: %w", i, err)
		}
		surplus[i] = s
	}

	for i := 0; i < N; i++ {
		if surplus[i].IsZero() {
			continue
		}
		if err := p.assets[i].Transfer(recipient, surplus[i]); err != nil {
			return fmt.Errorf("push asset %d: %w", i, ErrTransferFailed)
		}
	}

	p.log.Info("withdraw_admin_fee", "recipient", recipient.String())
	return nil
}
