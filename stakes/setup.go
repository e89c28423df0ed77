// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stakes

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/storage"
)

// control pool keys for the aggregate counters
var (
	stakesLenKey  = []byte("stakes-len")
	totalStakeKey = []byte("total-stake-amount")
)

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log     *logger.L
	denom   string
	amount  uint64
	mover   pay.Mover
	custody account.Account

	// mirror of the live entry sequence, index order
	entries []account.Account

	// live entry count per owner
	counts map[account.Account]uint64

	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - load the stake sequence from storage
//
// the storage pools must be initialised first
func Initialise(denom string, amount uint64, mover pay.Mover, custody account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if "" == denom {
		return fault.InvalidDenomination
	}
	if 0 == amount {
		return fault.InvalidStakeAmount
	}
	if nil == mover || custody.IsZero() {
		return fault.MissingParameters
	}

	globalData.log = logger.New("stakes")
	globalData.log.Info("starting…")

	globalData.denom = denom
	globalData.amount = amount
	globalData.mover = mover
	globalData.custody = custody
	globalData.entries = nil
	globalData.counts = make(map[account.Account]uint64)

	cursor := storage.Pool.StakeEntries.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			return fault.DataInconsistent
		}
		index := binary.BigEndian.Uint64(key)
		if index != uint64(len(globalData.entries)) {
			return fault.DataInconsistent
		}
		entryAmount, owner, err := unpackEntry(value)
		if nil != err {
			return err
		}
		if entryAmount != globalData.amount {
			return fault.DataInconsistent
		}
		globalData.entries = append(globalData.entries, owner)
		globalData.counts[owner] += 1
		return nil
	})
	if nil != err {
		return err
	}

	// counters must agree with the live records
	n := uint64(len(globalData.entries))
	storage.Pool.Control.PutN(stakesLenKey, n)
	storage.Pool.Control.PutN(totalStakeKey, n*globalData.amount)

	globalData.log.Infof("loaded %d stake entries", n)

	globalData.initialised = true
	return nil
}

// Finalise - release the in-memory state
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.entries = nil
	globalData.counts = nil
	globalData.mover = nil
	globalData.initialised = false
}

// key of the entry at a given index
func indexKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}

// record layout: 8 byte big endian amount followed by the owner
func packEntry(amount uint64, owner account.Account) []byte {
	ownerBytes := owner.Bytes()
	record := make([]byte, 8+len(ownerBytes))
	binary.BigEndian.PutUint64(record, amount)
	copy(record[8:], ownerBytes)
	return record
}

func unpackEntry(record []byte) (uint64, account.Account, error) {
	if len(record) <= 8 {
		return 0, account.Nothing, fault.DataInconsistent
	}
	amount := binary.BigEndian.Uint64(record)
	owner, err := account.FromString(string(record[8:]))
	if nil != err {
		return 0, account.Nothing, err
	}
	return amount, owner, nil
}
