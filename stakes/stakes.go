// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stakes

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/storage"
)

// Deposit - append stake entries for the staker
//
// the attached funds must be exactly numStakes units of the stake
// denomination, anything else is rejected before any state changes
func Deposit(staker account.Account, numStakes uint64, attached funds.Attached) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if staker.IsZero() {
		return fault.MissingParameters
	}
	if 0 == numStakes || numStakes > math.MaxUint64/globalData.amount {
		return fault.InvalidCount
	}

	required := numStakes * globalData.amount
	err := attached.Exact(globalData.denom, required)
	if nil != err {
		return err
	}

	// the batch must be claimed before the custody move, a busy batch
	// would otherwise strand the deposit in custody
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = globalData.mover.Move(staker, globalData.custody, funds.Asset{
		Denom:  globalData.denom,
		Amount: required,
	})
	if nil != err {
		trx.Abort()
		return err
	}

	oldLen := uint64(len(globalData.entries))
	record := packEntry(globalData.amount, staker)
	for i := uint64(0); i < numStakes; i += 1 {
		trx.Put(storage.Pool.StakeEntries, indexKey(oldLen+i), record)
	}

	newLen := oldLen + numStakes
	trx.PutN(storage.Pool.Control, stakesLenKey, newLen)
	trx.PutN(storage.Pool.Control, totalStakeKey, newLen*globalData.amount)

	err = trx.Commit()
	logger.PanicIfError("stakes: deposit commit", err)

	for i := uint64(0); i < numStakes; i += 1 {
		globalData.entries = append(globalData.entries, staker)
	}
	globalData.counts[staker] += numStakes

	globalData.log.Infof("deposit: staker: %s  entries: +%d  total: %d", staker, numStakes, newLen)

	return nil
}

// Withdraw - remove stake entries by index and refund the staker
//
// each removal is a swap remove: the last live entry is moved into the
// removed slot and the sequence shrinks by one. indices are resolved
// against the sequence as it stands after the removals earlier in the
// same call, so repeated or stale indices can target unintended
// entries. the whole call is rejected before any state changes if any
// index is out of range or owned by another account.
func Withdraw(staker account.Account, idxs []uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if staker.IsZero() || 0 == len(idxs) {
		return fault.MissingParameters
	}

	working := make([]account.Account, len(globalData.entries))
	copy(working, globalData.entries)

	for _, idx := range idxs {
		if idx >= uint64(len(working)) {
			return fault.StakeIndexOutOfRange
		}
		if working[idx] != staker {
			return fault.StakeIndexNotOwned
		}
		last := len(working) - 1
		working[idx] = working[last]
		working = working[:last]
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	oldLen := uint64(len(globalData.entries))
	newLen := uint64(len(working))

	for i := uint64(0); i < newLen; i += 1 {
		if working[i] != globalData.entries[i] {
			trx.Put(storage.Pool.StakeEntries, indexKey(i), packEntry(globalData.amount, working[i]))
		}
	}
	for i := newLen; i < oldLen; i += 1 {
		trx.Delete(storage.Pool.StakeEntries, indexKey(i))
	}

	trx.PutN(storage.Pool.Control, stakesLenKey, newLen)
	trx.PutN(storage.Pool.Control, totalStakeKey, newLen*globalData.amount)

	err = trx.Commit()
	logger.PanicIfError("stakes: withdraw commit", err)

	removed := oldLen - newLen
	globalData.entries = working
	globalData.counts[staker] -= removed
	if 0 == globalData.counts[staker] {
		delete(globalData.counts, staker)
	}

	// the custody account only ever holds live deposits so a failing
	// refund means the ledgers have diverged
	err = globalData.mover.Move(globalData.custody, staker, funds.Asset{
		Denom:  globalData.denom,
		Amount: removed * globalData.amount,
	})
	logger.PanicIfError("stakes: withdraw refund", err)

	globalData.log.Infof("withdraw: staker: %s  entries: -%d  total: %d", staker, removed, newLen)

	return nil
}
