// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/util"
)

// Config - the operating parameters of the registry
//
// the staking parameters are fixed for the life of the registry, live
// stake entries are denominated in them
type Config struct {
	Owner         account.Account `json:"owner"`
	StakeDenom    string          `json:"stakeDenom"`
	StakeAmount   uint64          `json:"stakeAmount"`
	FeeDenom      string          `json:"feeDenom"`
	FeeAmount     uint64          `json:"feeAmount"`
	BlocksInEpoch uint64          `json:"blocksInEpoch"`
}

func (config Config) validate() error {
	if config.Owner.IsZero() {
		return fault.ConfigOwnerRequired
	}
	if "" == config.StakeDenom || "" == config.FeeDenom {
		return fault.InvalidDenomination
	}
	if 0 == config.StakeAmount {
		return fault.InvalidStakeAmount
	}
	if 0 == config.FeeAmount {
		return fault.InvalidFeeAmount
	}
	return nil
}

func (config Config) pack() []byte {
	packed := appendField(nil, config.Owner.Bytes())
	packed = appendField(packed, []byte(config.StakeDenom))
	packed = append(packed, util.ToVarint64(config.StakeAmount)...)
	packed = appendField(packed, []byte(config.FeeDenom))
	packed = append(packed, util.ToVarint64(config.FeeAmount)...)
	packed = append(packed, util.ToVarint64(config.BlocksInEpoch)...)
	return packed
}

func unpackConfig(packed []byte) (Config, error) {
	config := Config{}

	ownerBytes, packed, err := nextField(packed)
	if nil != err {
		return config, err
	}
	config.Owner, err = account.FromString(string(ownerBytes))
	if nil != err {
		return config, err
	}

	stakeDenom, packed, err := nextField(packed)
	if nil != err {
		return config, err
	}
	config.StakeDenom = string(stakeDenom)

	config.StakeAmount, packed, err = nextNumber(packed)
	if nil != err {
		return config, err
	}

	feeDenom, packed, err := nextField(packed)
	if nil != err {
		return config, err
	}
	config.FeeDenom = string(feeDenom)

	config.FeeAmount, packed, err = nextNumber(packed)
	if nil != err {
		return config, err
	}

	config.BlocksInEpoch, _, err = nextNumber(packed)
	if nil != err {
		return config, err
	}

	return config, nil
}

func appendField(packed []byte, data []byte) []byte {
	packed = append(packed, util.ToVarint64(uint64(len(data)))...)
	return append(packed, data...)
}

func nextField(buffer []byte) ([]byte, []byte, error) {
	length, count := util.FromVarint64(buffer)
	if 0 == count || uint64(len(buffer)-count) < length {
		return nil, nil, fault.DataInconsistent
	}
	return buffer[count : count+int(length)], buffer[count+int(length):], nil
}

func nextNumber(buffer []byte) (uint64, []byte, error) {
	value, count := util.FromVarint64(buffer)
	if 0 == count {
		return 0, nil, fault.DataInconsistent
	}
	return value, buffer[count:], nil
}
