// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stakes

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/storage"
)

// pagination bounds for List
const (
	defaultListLimit = 10
	maximumListLimit = 30
)

// Entry - one live stake entry
type Entry struct {
	Index  uint64          `json:"index"`
	Owner  account.Account `json:"owner"`
	Amount uint64          `json:"amount"`
}

// IsExecutor - true when the account owns at least one live entry
func IsExecutor(owner account.Account) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	return globalData.counts[owner] > 0
}

// Refresh - force a re-read of the caller's eligibility
//
// there is no cached state to invalidate here so this only reports the
// current standing, it exists so clients can re-check unconditionally
func Refresh(owner account.Account) bool {
	return IsExecutor(owner)
}

// EntryAt - the entry currently at the given index
//
// the index is not a stable identity, removals shift entries around
func EntryAt(index uint64) (Entry, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return Entry{}, fault.NotInitialised
	}
	if index >= uint64(len(globalData.entries)) {
		return Entry{}, fault.StakeIndexOutOfRange
	}
	return Entry{
		Index:  index,
		Owner:  globalData.entries[index],
		Amount: globalData.amount,
	}, nil
}

// List - a page of entries starting at the given index
func List(start uint64, limit int) []Entry {
	globalData.RLock()
	defer globalData.RUnlock()

	if limit <= 0 {
		limit = defaultListLimit
	} else if limit > maximumListLimit {
		limit = maximumListLimit
	}

	page := []Entry{}
	for index := start; index < uint64(len(globalData.entries)) && len(page) < limit; index += 1 {
		page = append(page, Entry{
			Index:  index,
			Owner:  globalData.entries[index],
			Amount: globalData.amount,
		})
	}
	return page
}

// BalanceOf - total amount currently staked by the account
func BalanceOf(owner account.Account) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	return globalData.counts[owner] * globalData.amount
}

// Len - count of live entries
func Len() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	return uint64(len(globalData.entries))
}

// TotalStaked - sum of all live entry amounts
func TotalStaked() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	return uint64(len(globalData.entries)) * globalData.amount
}

// CheckConsistency - verify the stored records against the counters
func CheckConsistency() error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	count := uint64(0)
	total := uint64(0)
	cursor := storage.Pool.StakeEntries.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		entryAmount, _, err := unpackEntry(value)
		if nil != err {
			return err
		}
		count += 1
		total += entryAmount
		return nil
	})
	if nil != err {
		return err
	}

	storedCount, _ := storage.Pool.Control.GetN(stakesLenKey)
	storedTotal, _ := storage.Pool.Control.GetN(totalStakeKey)

	if count != storedCount || total != storedTotal {
		globalData.log.Criticalf("consistency: records: %d/%d  counters: %d/%d", count, total, storedCount, storedTotal)
		return fault.DataInconsistent
	}
	if count != uint64(len(globalData.entries)) {
		return fault.DataInconsistent
	}
	return nil
}
