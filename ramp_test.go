// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"testing"

	"github.com/holiman/uint256"
)

// =========================================================================
// currentAAt
// =========================================================================

func TestCurrentAAt_AtStartIsInitial(t *testing.T) {
	params := AParams{
		InitialA:     uint256.NewInt(1000),
		FutureA:      uint256.NewInt(2000),
		InitialATime: 1000,
		FutureATime:  2000,
	}
	got := currentAAt(params, 1000)
	if got.Cmp(params.InitialA) != 0 {
		t.Fatalf("at start, expected InitialA %v, got %v", params.InitialA, got)
	}
}

func TestCurrentAAt_AtOrPastDeadlineIsFuture(t *testing.T) {
	params := AParams{
		InitialA:     uint256.NewInt(1000),
		FutureA:      uint256.NewInt(2000),
		InitialATime: 1000,
		FutureATime:  2000,
	}
	got := currentAAt(params, 5000)
	if got.Cmp(params.FutureA) != 0 {
		t.Fatalf("past deadline, expected FutureA %v, got %v", params.FutureA, got)
	}
}

func TestCurrentAAt_MidpointInterpolatesUpward(t *testing.T) {
	params := AParams{
		InitialA:     uint256.NewInt(1000),
		FutureA:      uint256.NewInt(2000),
		InitialATime: 0,
		FutureATime:  1000,
	}
	got := currentAAt(params, 500)
	if got.Cmp(uint256.NewInt(1500)) != 0 {
		t.Fatalf("midpoint upward ramp: expected 1500, got %v", got)
	}
}

func TestCurrentAAt_MidpointInterpolatesDownward(t *testing.T) {
	params := AParams{
		InitialA:     uint256.NewInt(2000),
		FutureA:      uint256.NewInt(1000),
		InitialATime: 0,
		FutureATime:  1000,
	}
	got := currentAAt(params, 500)
	if got.Cmp(uint256.NewInt(1500)) != 0 {
		t.Fatalf("midpoint downward ramp: expected 1500, got %v", got)
	}
}

// =========================================================================
// Pool.RampA / Pool.StopRampA
// =========================================================================

func TestRampA_RejectsNonOwner(t *testing.T) {
	pool, _, _, _, _, owner := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))
	owner.SetCaller(testLP2)

	err := pool.RampA(uint256.NewInt(4000), pool.clock.Now()+MinRampTime+1)
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRampA_RejectsTooSoonDeadline(t *testing.T) {
	pool, _, _, _, clock, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	err := pool.RampA(uint256.NewInt(4000), clock.Now()+MinRampTime-1)
	if err != ErrRampingTooSoon {
		t.Fatalf("expected ErrRampingTooSoon, got %v", err)
	}
}

func TestRampA_RejectsExcessiveChange(t *testing.T) {
	pool, _, _, _, clock, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	target := new(uint256.Int).Mul(pool.CurrentA(), uint256.NewInt(MaxAChange+1))
	err := pool.RampA(target, clock.Now()+MinRampTime+1)
	if err != ErrAChangeTooBig {
		t.Fatalf("expected ErrAChangeTooBig, got %v", err)
	}
}

func TestRampA_InterpolatesThenSettles(t *testing.T) {
	pool, _, _, _, clock, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	initial := pool.CurrentA()
	target := new(uint256.Int).Mul(initial, uint256.NewInt(4))
	deadline := clock.Now() + MinRampTime + 1000

	if err := pool.RampA(target, deadline); err != nil {
		t.Fatalf("RampA: %v", err)
	}

	clock.Advance(MinRampTime + 500)
	mid := pool.CurrentA()
	if mid.Cmp(initial) <= 0 || mid.Cmp(target) >= 0 {
		t.Fatalf("midway A %v should be strictly between %v and %v", mid, initial, target)
	}

	clock.Advance(600)
	end := pool.CurrentA()
	if end.Cmp(target) != 0 {
		t.Fatalf("after deadline, A should equal target %v, got %v", target, end)
	}
}

func TestRampA_SecondRampBeforeCooldownRejected(t *testing.T) {
	pool, _, _, _, clock, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	initial := pool.CurrentA()
	target := new(uint256.Int).Mul(initial, uint256.NewInt(2))
	deadline := clock.Now() + MinRampTime + 1000
	if err := pool.RampA(target, deadline); err != nil {
		t.Fatalf("first RampA: %v", err)
	}

	clock.Advance(10)
	err := pool.RampA(target, clock.Now()+MinRampTime+1)
	if err != ErrRampingTooSoon {
		t.Fatalf("expected ErrRampingTooSoon for a ramp requested during cooldown, got %v", err)
	}
}

func TestStopRampA_FreezesAtCurrentValue(t *testing.T) {
	pool, _, _, _, clock, _ := newTestPool(t, e18(1_000_000), e18(1_000_000), e18(1_000_000))

	initial := pool.CurrentA()
	target := new(uint256.Int).Mul(initial, uint256.NewInt(2))
	deadline := clock.Now() + MinRampTime + 1000
	if err := pool.RampA(target, deadline); err != nil {
		t.Fatalf("RampA: %v", err)
	}

	clock.Advance(MinRampTime + 500)
	frozen := pool.CurrentA()

	if err := pool.StopRampA(); err != nil {
		t.Fatalf("StopRampA: %v", err)
	}

	clock.Advance(10_000)
	after := pool.CurrentA()
	if after.Cmp(frozen) != 0 {
		t.Fatalf("A should stay frozen at %v after StopRampA, got %v", frozen, after)
	}
}
