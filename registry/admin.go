// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/storage"
)

// ConfigChanges - the owner adjustable parameters
//
// the staking economics and the fee denomination are fixed for the
// life of the registry: live stake entries and prepaid balances are
// denominated in them, changing either would strand deposited funds
type ConfigChanges struct {
	FeeAmount     *uint64 `json:"feeAmount,omitempty"`
	BlocksInEpoch *uint64 `json:"blocksInEpoch,omitempty"`
	StakeDenom    *string `json:"stakeDenom,omitempty"`
	StakeAmount   *uint64 `json:"stakeAmount,omitempty"`
	FeeDenom      *string `json:"feeDenom,omitempty"`
}

// UpdateConfig - adjust the mutable operating parameters
func UpdateConfig(caller account.Account, changes ConfigChanges) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if caller != globalData.config.Owner {
		return fault.NotRegistryOwner
	}
	if nil != changes.StakeDenom || nil != changes.StakeAmount || nil != changes.FeeDenom {
		return fault.OwnerImmutableParameter
	}

	updated := globalData.config
	if nil != changes.FeeAmount {
		if 0 == *changes.FeeAmount {
			return fault.InvalidFeeAmount
		}
		updated.FeeAmount = *changes.FeeAmount
	}
	if nil != changes.BlocksInEpoch {
		updated.BlocksInEpoch = *changes.BlocksInEpoch
	}

	storage.Pool.Control.Put(configKey, updated.pack())
	globalData.config = updated

	if nil != changes.FeeAmount {
		err := recurring.UpdateFee(updated.FeeAmount)
		if nil != err {
			return err
		}
	}

	globalData.log.Infof("config updated: fee: %d  epoch: %d", updated.FeeAmount, updated.BlocksInEpoch)

	return nil
}

// ProposeOwner - first half of the ownership handover
//
// the proposal stands until replaced or claimed, proposing the zero
// account withdraws it
func ProposeOwner(caller account.Account, proposed account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if caller != globalData.config.Owner {
		return fault.NotRegistryOwner
	}

	if proposed.IsZero() {
		storage.Pool.Control.Delete(proposedOwnerKey)
		globalData.log.Info("ownership proposal withdrawn")
		return nil
	}

	storage.Pool.Control.Put(proposedOwnerKey, proposed.Bytes())
	globalData.log.Infof("ownership proposed: %s", proposed)

	return nil
}

// ClaimOwnership - second half of the ownership handover
//
// only the proposed account may claim, so a mistyped proposal cannot
// hand the registry to a stranger by accident
func ClaimOwnership(caller account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	stored := storage.Pool.Control.Get(proposedOwnerKey)
	if nil == stored {
		return fault.NotOwnerProposed
	}
	proposed, err := account.FromString(string(stored))
	if nil != err {
		return err
	}
	if caller != proposed {
		return fault.NotOwnerProposed
	}

	updated := globalData.config
	updated.Owner = caller
	storage.Pool.Control.Put(configKey, updated.pack())
	storage.Pool.Control.Delete(proposedOwnerKey)
	globalData.config = updated

	globalData.log.Infof("ownership claimed: %s", caller)

	return nil
}

// AddToBlacklist - bar a target from receiving new requests
//
// existing requests against the target stay executable, the bar only
// gates creation
func AddToBlacklist(caller account.Account, target account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if caller != globalData.config.Owner {
		return fault.NotRegistryOwner
	}
	if target.IsZero() {
		return fault.InvalidBlacklistAddress
	}

	storage.Pool.Blacklist.Put(target.Bytes(), []byte{1})
	globalData.log.Infof("blacklisted: %s", target)

	return nil
}

// RemoveFromBlacklist - lift the bar on a target
func RemoveFromBlacklist(caller account.Account, target account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if caller != globalData.config.Owner {
		return fault.NotRegistryOwner
	}
	if target.IsZero() {
		return fault.InvalidBlacklistAddress
	}

	storage.Pool.Blacklist.Delete(target.Bytes())
	globalData.log.Infof("blacklist lifted: %s", target)

	return nil
}

func isBlacklisted(target account.Account) bool {
	return storage.Pool.Blacklist.Has(target.Bytes())
}
