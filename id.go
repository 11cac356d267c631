// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"
)

// poolID derives a 32-byte correlation identifier for a pool from its
// three asset addresses and rate table, the same blake3-digest-of-fields
// idiom as dex/pool_manager.go's makeStorageKey and dex/transmuter.go's
// stakeKey. It has no storage role here (persistence is out of scope);
// Pool.ID exposes it as a short name for the pool. The pool's own log
// lines and events do not include it.
func poolID(addresses [N]common.Address, rates [N]*uint256.Int) [32]byte {
	h := blake3.New()
	for i := 0; i < N; i++ {
		h.Write(addresses[i].Bytes())
	}
	for i := 0; i < N; i++ {
		rateBytes := rates[i].Bytes32()
		h.Write(rateBytes[:])
	}
	var out [32]byte
	h.Digest().Read(out[:])
	return out
}
