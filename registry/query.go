// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"sort"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/request"
	"github.com/autonomy-network/registryd/stakes"
	"github.com/autonomy-network/registryd/storage"
)

// State - the aggregate counters
type State struct {
	NextRequestId       uint64   `json:"nextRequestId"`
	TotalRequests       uint64   `json:"totalRequests"`
	StakesLen           uint64   `json:"stakesLen"`
	TotalStakeAmount    uint64   `json:"totalStakeAmount"`
	TotalRecurringFee   uint64   `json:"totalRecurringFee"`
	ExecutingRequestIds []uint64 `json:"executingRequestIds,omitempty"`
}

// GetConfig - the current operating parameters
func GetConfig() Config {
	globalData.Lock()
	defer globalData.Unlock()

	return globalData.config
}

// GetState - snapshot of the aggregate counters
func GetState() State {
	globalData.Lock()
	defer globalData.Unlock()

	state := State{
		NextRequestId:     request.LastId(),
		TotalRequests:     request.Count(),
		StakesLen:         stakes.Len(),
		TotalStakeAmount:  stakes.TotalStaked(),
		TotalRecurringFee: recurring.Total(),
	}
	if 0 != len(globalData.executing) {
		ids := make([]uint64, 0, len(globalData.executing))
		for id := range globalData.executing {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i int, j int) bool { return ids[i] < ids[j] })
		state.ExecutingRequestIds = ids
	}
	return state
}

// GetRequest - the record for an id
//
// an unknown, cancelled or completed id reads back as an empty record
// with only the id set, never as an error
func GetRequest(id uint64) request.Request {
	record, found := request.Get(id)
	if !found {
		return request.Request{Id: id}
	}
	return *record
}

// Requests - a page of live requests in ascending id order
func Requests(startAfter *uint64, limit int) ([]request.Request, error) {
	return request.Scan(startAfter, limit)
}

// RecurringFees - the prepaid balance of an account
func RecurringFees(owner account.Account) uint64 {
	return recurring.Balance(owner)
}

// RecurringFeeBalances - every account with a prepaid balance
func RecurringFeeBalances() map[account.Account]uint64 {
	return recurring.Balances()
}

// ProposedOwner - the pending ownership proposal, if any
func ProposedOwner() (account.Account, bool) {
	stored := storage.Pool.Control.Get(proposedOwnerKey)
	if nil == stored {
		return account.Nothing, false
	}
	proposed, err := account.FromString(string(stored))
	if nil != err {
		return account.Nothing, false
	}
	return proposed, true
}

// IsBlacklisted - true when the target is barred from new requests
func IsBlacklisted(target account.Account) bool {
	return isBlacklisted(target)
}

// Blacklisted - every barred target
func Blacklisted() []account.Account {
	barred := []account.Account{}
	cursor := storage.Pool.Blacklist.NewFetchCursor()
	_ = cursor.Map(func(key []byte, value []byte) error {
		target, err := account.FromString(string(key))
		if nil != err {
			return err
		}
		barred = append(barred, target)
		return nil
	})
	return barred
}

// CustodyRequirement - the assets custody must hold to back every
// persisted stake, prepaid fee and escrow
//
// the records survive a restart but the in-process ledger does not, so
// main reseeds the custody account from this before serving
func CustodyRequirement() ([]funds.Asset, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	totals := map[string]uint64{
		globalData.config.StakeDenom: stakes.TotalStaked(),
	}
	totals[globalData.config.FeeDenom] += recurring.Total()

	// every live non-recurring request holds one fee in escrow, plus
	// its input asset when one was declared
	cursor := storage.Pool.Requests.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			return fault.DataInconsistent
		}
		record, err := request.Unpack(binary.BigEndian.Uint64(key), value)
		if nil != err {
			return err
		}
		if !record.IsRecurring {
			totals[globalData.config.FeeDenom] += globalData.config.FeeAmount
			if nil != record.InputAsset {
				totals[record.InputAsset.Denom] += record.InputAsset.Amount
			}
		}
		return nil
	})
	if nil != err {
		return nil, err
	}

	holdings := make([]funds.Asset, 0, len(totals))
	for denom, amount := range totals {
		if 0 != amount {
			holdings = append(holdings, funds.Asset{Denom: denom, Amount: amount})
		}
	}
	sort.Slice(holdings, func(i int, j int) bool { return holdings[i].Denom < holdings[j].Denom })
	return holdings, nil
}

// CheckConsistency - recompute every aggregate from the live records
// and compare with the stored counters
func CheckConsistency() error {
	err := request.CheckConsistency()
	if nil != err {
		return err
	}
	err = stakes.CheckConsistency()
	if nil != err {
		return err
	}
	err = recurring.CheckConsistency()
	if nil != err {
		return err
	}
	return nil
}
