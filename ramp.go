// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import "github.com/holiman/uint256"

// currentAAt implements the A-ramp of §4.5: linear interpolation between
// (InitialA, InitialATime) and (FutureA, FutureATime), floor-divided, with
// at-or-past-deadline short-circuiting to FutureA exactly.
func currentAAt(params AParams, now uint64) *uint256.Int {
	if now >= params.FutureATime {
		return new(uint256.Int).Set(params.FutureA)
	}

	span := params.FutureATime - params.InitialATime
	elapsed := now - params.InitialATime

	if params.FutureA.Cmp(params.InitialA) >= 0 {
		delta := new(uint256.Int).Sub(params.FutureA, params.InitialA)
		step := new(uint256.Int).Mul(delta, uint256.NewInt(elapsed))
		step.Div(step, uint256.NewInt(span))
		return new(uint256.Int).Add(params.InitialA, step)
	}

	delta := new(uint256.Int).Sub(params.InitialA, params.FutureA)
	step := new(uint256.Int).Mul(delta, uint256.NewInt(elapsed))
	step.Div(step, uint256.NewInt(span))
	return new(uint256.Int).Sub(params.InitialA, step)
}

// CurrentA returns the amplification coefficient the pool reports right
// now, per the host clock. This is a read-only view and does not take the
// reentrancy guard.
func (p *Pool) CurrentA() *uint256.Int {
	return p.currentA()
}

// RampA schedules a linear ramp of A toward target, reaching it at
// deadline, per §4.5. Owner-only.
func (p *Pool) RampA(target *uint256.Int, deadline uint64) error {
	if err := p.guard.enter(); err != nil {
		return err
	}
	defer p.guard.exit()

	if !p.owner.IsCurrentCallerOwner() {
		return ErrUnauthorized
	}

	if target == nil || target.IsZero() || target.Cmp(MaxAInt) > 0 {
		return ErrRampParameterOutOfRange
	}

	now := p.clock.Now()
	if deadline < now+MinRampTime {
		return ErrRampingTooSoon
	}
	p.aMu.RLock()
	futureATime, initialATime := p.aParams.FutureATime, p.aParams.InitialATime
	p.aMu.RUnlock()
	if now < futureATime && now < initialATime+MinRampTime {
		return ErrRampingTooSoon
	}

	aNow := p.currentA()

	if target.Cmp(aNow) >= 0 {
		maxTarget := new(uint256.Int).Mul(aNow, uint256.NewInt(MaxAChange))
		if target.Cmp(maxTarget) > 0 {
			return ErrAChangeTooBig
		}
	} else {
		maxMove := new(uint256.Int).Mul(target, uint256.NewInt(MaxAChange))
		if maxMove.Cmp(aNow) < 0 {
			return ErrAChangeTooBig
		}
	}

	oldA := aNow
	p.aMu.Lock()
	p.aParams = AParams{
		InitialA:     aNow,
		FutureA:      new(uint256.Int).Set(target),
		InitialATime: now,
		FutureATime:  deadline,
	}
	p.aMu.Unlock()

	p.sink.Emit(RampAEvent{OldA: oldA, NewA: target, InitialATime: now, FutureATime: deadline})
	p.log.Info("ramp_a", "oldA", oldA.String(), "newA", target.String(), "deadline", deadline)
	return nil
}

// StopRampA freezes A at its current interpolated value, collapsing both
// ramp endpoints to now. Owner-only.
func (p *Pool) StopRampA() error {
	if err := p.guard.enter(); err != nil {
		return err
	}
	defer p.guard.exit()

	if !p.owner.IsCurrentCallerOwner() {
		return ErrUnauthorized
	}

	now := p.clock.Now()
	current := p.currentA()
	p.aMu.Lock()
	p.aParams = AParams{
		InitialA:     current,
		FutureA:      current,
		InitialATime: now,
		FutureATime:  now,
	}
	p.aMu.Unlock()

	p.sink.Emit(StopRampAEvent{A: current, Time: now})
	p.log.Info("stop_ramp_a", "a", current.String(), "time", now)
	return nil
}
