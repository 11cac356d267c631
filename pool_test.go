// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// =========================================================================
// Test fixtures
// =========================================================================

var (
	testDAI  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testUSDC = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testUSDT = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testPool = common.HexToAddress("0x9999999999999999999999999999999999999999")
	testLP   = common.HexToAddress("0x4444444444444444444444444444444444444444")
	testLP2  = common.HexToAddress("0x5555555555555555555555555555555555555555")
)

func e18(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), Precision)
}

// e6 scales n to the 6-decimal native precision of USDC and USDT.
func e6(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1_000_000))
}

// newTestPool builds a pool over three in-memory tokens at the canonical
// DAI/USDC/USDT rates, with amplification 2000, fee 4000000 (0.04%) and
// admin fee 5e9 (50% of the swap fee), the standard Curve.fi 3pool
// parameters. Each of dai, usdc and usdt gets `seed` native-precision
// units minted to testLP before the pool exists.
func newTestPool(t *testing.T, seedDAI, seedUSDC, seedUSDT *uint256.Int) (*Pool, *InMemoryToken, *InMemoryToken, *InMemoryToken, *FixedClock, *SingleOwner) {
	t.Helper()

	dai := NewInMemoryToken(testPool)
	usdc := NewInMemoryToken(testPool)
	usdt := NewInMemoryToken(testPool)
	dai.Mint(testLP, seedDAI)
	usdc.Mint(testLP, seedUSDC)
	usdt.Mint(testLP, seedUSDT)

	clock := NewFixedClock(1_700_000_000)
	owner := NewSingleOwner(testLP)

	pool, err := NewPool(PoolConfig{
		Addresses:   [N]common.Address{testDAI, testUSDC, testUSDT},
		Assets:      [N]AssetToken{dai, usdc, usdt},
		Rates:       CanonicalRates(),
		SelfAddress: testPool,
		InitialA:    uint256.NewInt(2000),
		Fee:         uint256.NewInt(4_000_000),
		AdminFee:    uint256.NewInt(5_000_000_000),
		Owner:       owner,
		Clock:       clock,
	})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return pool, dai, usdc, usdt, clock, owner
}

// =========================================================================
// Constructor validation
// =========================================================================

func TestNewPool_RejectsZeroAddress(t *testing.T) {
	dai := NewInMemoryToken(testPool)
	_, err := NewPool(PoolConfig{
		Addresses: [N]common.Address{{}, testUSDC, testUSDT},
		Assets:    [N]AssetToken{dai, dai, dai},
		Rates:     CanonicalRates(),
		InitialA:  uint256.NewInt(2000),
		Fee:       uint256.NewInt(1),
		AdminFee:  uint256.NewInt(1),
		Owner:     NewSingleOwner(testLP),
		Clock:     NewFixedClock(0),
	})
	if err == nil {
		t.Fatal("expected error for zero asset address")
	}
}

func TestNewPool_RejectsOutOfRangeA(t *testing.T) {
	dai := NewInMemoryToken(testPool)
	_, err := NewPool(PoolConfig{
		Addresses: [N]common.Address{testDAI, testUSDC, testUSDT},
		Assets:    [N]AssetToken{dai, dai, dai},
		Rates:     CanonicalRates(),
		InitialA:  uint256.NewInt(MaxA + 1),
		Fee:       uint256.NewInt(1),
		AdminFee:  uint256.NewInt(1),
		Owner:     NewSingleOwner(testLP),
		Clock:     NewFixedClock(0),
	})
	if err == nil {
		t.Fatal("expected error for out-of-range initial A")
	}
}

// =========================================================================
// AddLiquidity / balanced deposits and withdrawals
// =========================================================================

func TestAddLiquidity_InitialDepositMintsDDirectly(t *testing.T) {
	pool, dai, usdc, usdt, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	minted, err := pool.AddLiquidity(testLP, Balances{e18(1_000_000), e6(1_000_000), e6(1_000_000)}, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	// Balanced equal deposit at three equal-valued assets should mint
	// ~= the deposited value, within the Newton solver's 1-unit tolerance.
	expected := e18(3_000_000)
	diff := absDiff(minted, expected)
	if diff.Cmp(uint256.NewInt(10)) > 0 {
		t.Fatalf("minted %v too far from expected %v", minted, expected)
	}

	if pool.TotalSupply().Cmp(minted) != 0 {
		t.Fatalf("total supply %v != minted %v", pool.TotalSupply(), minted)
	}
	if dai.balances[testPool].Cmp(e18(1_000_000)) != 0 {
		t.Fatalf("pool did not receive DAI deposit")
	}
	_ = usdc
	_ = usdt
}

func TestAddLiquidity_RejectsZeroMintUnderSlippage(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	_, err := pool.AddLiquidity(testLP, Balances{e18(1_000_000), e6(1_000_000), e6(1_000_000)}, e18(10_000_000))
	if err != ErrSlippageTooHigh {
		t.Fatalf("expected ErrSlippageTooHigh, got %v", err)
	}
}

func TestRemoveLiquidity_ProRata(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	minted, err := pool.AddLiquidity(testLP, Balances{e18(300_000), e18(300_000), e18(300_000)}, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	half := new(uint256.Int).Div(minted, uint256.NewInt(2))
	amounts, err := pool.RemoveLiquidity(testLP, half, Balances{zero.Clone(), zero.Clone(), zero.Clone()})
	if err != nil {
		t.Fatalf("RemoveLiquidity: %v", err)
	}

	for i, amt := range amounts {
		expected := new(uint256.Int).Div(e18(300_000), uint256.NewInt(2))
		if absDiff(amt, expected).Cmp(uint256.NewInt(10)) > 0 {
			t.Fatalf("asset %d: got %v, expected ~%v", i, amt, expected)
		}
	}
}

func TestRemoveLiquidity_InsufficientShareBalance(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	_, err := pool.AddLiquidity(testLP, Balances{e18(100), e18(100), e18(100)}, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	_, err = pool.RemoveLiquidity(testLP2, e18(1), Balances{zero.Clone(), zero.Clone(), zero.Clone()})
	if err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

// =========================================================================
// Imbalanced deposits and single-asset withdrawal
// =========================================================================

func TestAddLiquidity_ImbalancedDepositChargesFee(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	if _, err := pool.AddLiquidity(testLP, Balances{e18(500_000), e6(500_000), e6(500_000)}, uint256.NewInt(0)); err != nil {
		t.Fatalf("seed AddLiquidity: %v", err)
	}

	balanced, err := pool.CalcTokenAmount(Balances{e18(10_000), e6(10_000), e6(10_000)}, true)
	if err != nil {
		t.Fatalf("CalcTokenAmount balanced: %v", err)
	}

	minted, err := pool.AddLiquidity(testLP, Balances{e18(30_000), zero.Clone(), zero.Clone()}, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("AddLiquidity imbalanced: %v", err)
	}

	// A fully-imbalanced deposit of the same aggregate face value should
	// mint fewer shares than a balanced deposit of equivalent total value.
	if minted.Cmp(balanced) >= 0 {
		t.Fatalf("imbalanced deposit minted %v, expected less than balanced %v", minted, balanced)
	}
}

func TestRemoveLiquidityOneToken_MatchesView(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	minted, err := pool.AddLiquidity(testLP, Balances{e18(300_000), e18(300_000), e18(300_000)}, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	burn := new(uint256.Int).Div(minted, uint256.NewInt(10))
	preview, err := pool.CalcWithdrawOneCoin(burn, 0)
	if err != nil {
		t.Fatalf("CalcWithdrawOneCoin: %v", err)
	}

	got, err := pool.RemoveLiquidityOneToken(testLP, burn, 0, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("RemoveLiquidityOneToken: %v", err)
	}

	if got.Cmp(preview) != 0 {
		t.Fatalf("RemoveLiquidityOneToken returned %v, preview said %v", got, preview)
	}
}

func TestRemoveLiquidityImbalance_RoundsBurnUp(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	minted, err := pool.AddLiquidity(testLP, Balances{e18(300_000), e18(300_000), e18(300_000)}, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	withdraw := Balances{e18(10_000), e18(5_000), zero.Clone()}
	estimate, err := pool.CalcTokenAmount(withdraw, false)
	if err != nil {
		t.Fatalf("CalcTokenAmount: %v", err)
	}

	burn, err := pool.RemoveLiquidityImbalance(testLP, withdraw, minted)
	if err != nil {
		t.Fatalf("RemoveLiquidityImbalance: %v", err)
	}
	if burn.IsZero() {
		t.Fatal("expected nonzero burn")
	}
	// The fee-free estimate is floor-divided; the burn adds the imbalance
	// fee and then one more share, so it must come out strictly above it.
	if burn.Cmp(estimate) <= 0 {
		t.Fatalf("burn %v should exceed the rounded-down fee-free estimate %v", burn, estimate)
	}
}

// =========================================================================
// Swap
// =========================================================================

func TestSwap_RejectsSameToken(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	_, err := pool.Swap(testLP, 0, 0, e18(1), uint256.NewInt(0))
	if err != ErrCantSwapSameToken {
		t.Fatalf("expected ErrCantSwapSameToken, got %v", err)
	}
}

func TestSwap_RejectsZeroAmount(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	_, err := pool.Swap(testLP, 0, 1, uint256.NewInt(0), uint256.NewInt(0))
	if err != ErrAmountZero {
		t.Fatalf("expected ErrAmountZero, got %v", err)
	}
}

func TestSwap_MatchesGetDyPreview(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	if _, err := pool.AddLiquidity(testLP, Balances{e18(500_000), e6(500_000), e6(500_000)}, uint256.NewInt(0)); err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	dx := e18(1_000)
	preview, err := pool.GetDy(0, 1, dx)
	if err != nil {
		t.Fatalf("GetDy: %v", err)
	}

	dy, err := pool.Swap(testLP, 0, 1, dx, uint256.NewInt(0))
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}

	if dy.Cmp(preview) != 0 {
		t.Fatalf("Swap returned %v, preview said %v", dy, preview)
	}

	// A near-1:1 swap at a large, balanced pool should lose only a small
	// fraction to the swap fee. dy is in USDC's 6-decimal units, so it is
	// scaled up to DAI's 18 decimals before comparing.
	dyScaled := new(uint256.Int).Mul(dy, uint256.NewInt(1_000_000_000_000))
	loss := absDiff(dx, dyScaled)
	maxLoss := new(uint256.Int).Div(dx, uint256.NewInt(100)) // 1%
	if loss.Cmp(maxLoss) > 0 {
		t.Fatalf("swap lost %v out of %v, more than 1%%", loss, dx)
	}
}

func TestSwap_SlippageTooHigh(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	if _, err := pool.AddLiquidity(testLP, Balances{e18(500_000), e18(500_000), e18(500_000)}, uint256.NewInt(0)); err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	_, err := pool.Swap(testLP, 0, 1, e18(1_000), e18(1_000))
	if err != ErrSlippageTooHigh {
		t.Fatalf("expected ErrSlippageTooHigh, got %v", err)
	}
}

func TestVirtualPrice_EmptyPoolIsPrecision(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	vp, err := pool.VirtualPrice()
	if err != nil {
		t.Fatalf("VirtualPrice: %v", err)
	}
	if vp.Cmp(Precision) != 0 {
		t.Fatalf("expected virtual price %v for an empty pool, got %v", Precision, vp)
	}
}

func TestVirtualPrice_IncreasesAfterSwapFees(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	if _, err := pool.AddLiquidity(testLP, Balances{e18(500_000), e18(500_000), e18(500_000)}, uint256.NewInt(0)); err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}

	before, err := pool.VirtualPrice()
	if err != nil {
		t.Fatalf("VirtualPrice: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := pool.Swap(testLP, 0, 1, e18(10_000), uint256.NewInt(0)); err != nil {
			t.Fatalf("Swap %d: %v", i, err)
		}
		if _, err := pool.Swap(testLP, 1, 0, e18(10_000), uint256.NewInt(0)); err != nil {
			t.Fatalf("Swap %d: %v", i, err)
		}
	}

	after, err := pool.VirtualPrice()
	if err != nil {
		t.Fatalf("VirtualPrice: %v", err)
	}
	if after.Cmp(before) <= 0 {
		t.Fatalf("expected virtual price to increase from swap fees: before=%v after=%v", before, after)
	}
}

// =========================================================================
// Reentrancy guard
// =========================================================================

func TestReentrancyGuard_RejectsNestedEnter(t *testing.T) {
	pool, _, _, _, _, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	if err := pool.guard.enter(); err != nil {
		t.Fatalf("first enter: %v", err)
	}
	defer pool.guard.exit()

	_, err := pool.Swap(testLP, 0, 1, e18(1), uint256.NewInt(0))
	if err != ErrReentrancy {
		t.Fatalf("expected ErrReentrancy, got %v", err)
	}
}

// =========================================================================
// Admin fee withdrawal
// =========================================================================

func TestWithdrawAdminFee_RejectsNonOwner(t *testing.T) {
	pool, _, _, _, _, owner := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	owner.SetCaller(testLP2)
	if err := pool.WithdrawAdminFee(testLP2); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestWithdrawAdminFee_SweepsSurplus(t *testing.T) {
	pool, dai, usdc, _, _, owner := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	if _, err := pool.AddLiquidity(testLP, Balances{e18(500_000), e18(500_000), e18(500_000)}, uint256.NewInt(0)); err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := pool.Swap(testLP, 0, 1, e18(10_000), uint256.NewInt(0)); err != nil {
			t.Fatalf("Swap: %v", err)
		}
	}

	owner.SetCaller(testLP)
	if err := pool.WithdrawAdminFee(testLP2); err != nil {
		t.Fatalf("WithdrawAdminFee: %v", err)
	}

	// Swaps sold asset 0 (DAI) for asset 1 (USDC), so the admin cut of the
	// swap fee accrues on the USDC side, not the DAI side.
	if usdc.balances[testLP2] == nil || usdc.balances[testLP2].IsZero() {
		t.Fatal("expected admin fee recipient to receive a nonzero USDC cut")
	}
	_ = dai
}
