// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stableswap3pool

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Config is the JSON-decodable static configuration for a deployment,
// mirroring dex/module.go's Config struct but without the precompile
// plumbing (chain upgrades, a precompile address, a configurator): this
// engine is a plain library type, not a precompiled contract, so its
// config is just the constructor inputs a deployment script would read
// from disk.
type Config struct {
	Addresses   [N]common.Address `json:"addresses"`
	SelfAddress common.Address    `json:"selfAddress"`
	Rates       [N]string         `json:"rates"`
	InitialA    uint64            `json:"initialA"`
	FeeBps      uint64            `json:"feeBps"`      // fee, in 1e10 FeeDenominator units
	AdminFeeBps uint64            `json:"adminFeeBps"` // admin cut of fee, in 1e10 FeeDenominator units
}

// ParseConfig decodes a Config from JSON. ToPoolConfig turns the result
// into a PoolConfig; Owner, Clock and Assets are filled in separately
// since those are live capabilities rather than serializable data.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ToPoolConfig builds the numeric portion of a PoolConfig from c. The
// caller must still fill in Assets, Owner, Clock and optionally Sink/Logger
// before calling NewPool.
func (c Config) ToPoolConfig() (PoolConfig, error) {
	var rates [N]*uint256.Int
	for i := 0; i < N; i++ {
		r, err := uint256.FromDecimal(c.Rates[i])
		if err != nil {
			return PoolConfig{}, fmt.Errorf("rate %d: %w", i, err)
		}
		rates[i] = r
	}

	return PoolConfig{
		Addresses:   c.Addresses,
		Rates:       rates,
		SelfAddress: c.SelfAddress,
		InitialA:    uint256.NewInt(c.InitialA),
		Fee:         uint256.NewInt(c.FeeBps),
		AdminFee:    uint256.NewInt(c.AdminFeeBps),
	}, nil
}
