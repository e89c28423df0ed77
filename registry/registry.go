// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/request"
	"github.com/autonomy-network/registryd/stakes"
	"github.com/autonomy-network/registryd/storage"
)

// RequestInfo - the caller supplied part of a new request
type RequestInfo struct {
	Target      account.Account `json:"target"`
	Msg         []byte          `json:"msg"`
	IsRecurring bool            `json:"isRecurring"`
	InputAsset  *funds.Asset    `json:"inputAsset,omitempty"`
}

// CreateRequest - queue a new request
//
// a non-recurring request escrows exactly one execution fee, plus the
// input asset when one is declared; a recurring request attaches
// nothing and draws from the owner's prepaid balance instead, so it
// must have at least one execution prefunded at creation
func CreateRequest(owner account.Account, info RequestInfo, attached funds.Attached) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if owner.IsZero() || info.Target.IsZero() {
		return 0, fault.MissingParameters
	}
	if isBlacklisted(info.Target) {
		return 0, fault.TargetBlacklisted
	}

	fee := funds.Asset{
		Denom:  globalData.config.FeeDenom,
		Amount: globalData.config.FeeAmount,
	}

	if info.IsRecurring {
		if nil != info.InputAsset {
			return 0, fault.RecurringWithInputAsset
		}
		err := attached.Exact(fee.Denom, 0)
		if nil != err {
			return 0, err
		}
		if recurring.Balance(owner) < fee.Amount {
			return 0, fault.InsufficientRecurringFee
		}
	} else if nil != info.InputAsset {
		err := info.InputAsset.Validate()
		if nil != err {
			return 0, err
		}
		err = attached.ExactTwo(fee, *info.InputAsset)
		if nil != err {
			return 0, err
		}
	} else {
		err := attached.Exact(fee.Denom, fee.Amount)
		if nil != err {
			return 0, err
		}
	}

	// the batch must be claimed before the escrow moves, a busy batch
	// would otherwise strand the escrow in custody
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	if !info.IsRecurring {
		err := globalData.mover.Move(owner, globalData.custody, fee)
		if nil != err {
			trx.Abort()
			return 0, err
		}
		if nil != info.InputAsset {
			err = globalData.mover.Move(owner, globalData.custody, *info.InputAsset)
			if nil != err {
				// unwind the fee escrow
				e := globalData.mover.Move(globalData.custody, owner, fee)
				logger.PanicIfError("registry: create unwind", e)
				trx.Abort()
				return 0, err
			}
		}
	}

	record := &request.Request{
		Id:          request.NextId(trx),
		Owner:       owner,
		Target:      info.Target,
		Msg:         info.Msg,
		IsRecurring: info.IsRecurring,
		InputAsset:  info.InputAsset,
		CreatedAt:   uint64(time.Now().Unix()),
	}
	request.Store(trx, record)

	err = trx.Commit()
	logger.PanicIfError("registry: create commit", err)

	globalData.log.Infof("create: id: %d  owner: %s  target: %s  recurring: %t", record.Id, owner, record.Target, record.IsRecurring)

	return record.Id, nil
}

// CancelRequest - remove a queued request
//
// only the owner may cancel; a non-recurring cancellation returns the
// escrowed fee and any input asset, its id reads back empty afterwards
func CancelRequest(caller account.Account, id uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	record, found := request.Get(id)
	if !found {
		return fault.RequestNotFound
	}
	if record.Owner != caller {
		return fault.NotYourRequest
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	request.Remove(trx, id)
	err = trx.Commit()
	logger.PanicIfError("registry: cancel commit", err)

	if !record.IsRecurring {
		err = globalData.mover.Move(globalData.custody, record.Owner, funds.Asset{
			Denom:  globalData.config.FeeDenom,
			Amount: globalData.config.FeeAmount,
		})
		logger.PanicIfError("registry: cancel fee refund", err)
		if nil != record.InputAsset {
			err = globalData.mover.Move(globalData.custody, record.Owner, *record.InputAsset)
			logger.PanicIfError("registry: cancel input refund", err)
		}
	}

	globalData.log.Infof("cancel: id: %d  owner: %s", id, caller)

	return nil
}

// ExecuteRequest - dispatch a queued request on behalf of its owner
//
// any stake holding account may execute; the forwarded call and the
// fee settlement stand or fall together, except for the starvation
// case where a recurring request with an exhausted balance is removed
// even though the call reports failure
func ExecuteRequest(executor account.Account, id uint64) error {
	globalData.Lock()

	if !globalData.initialised {
		globalData.Unlock()
		return fault.NotInitialised
	}
	if !stakes.IsExecutor(executor) {
		globalData.Unlock()
		return fault.NotAnExecutor
	}
	if _, busy := globalData.executing[id]; busy {
		globalData.Unlock()
		return fault.RequestAlreadyExecuting
	}

	record, found := request.Get(id)
	if !found {
		globalData.Unlock()
		return fault.RequestNotFound
	}

	fee := funds.Asset{
		Denom:  globalData.config.FeeDenom,
		Amount: globalData.config.FeeAmount,
	}

	// mark in flight, the target may legitimately call back into the
	// registry so the lock cannot be held across the dispatch. the id
	// stays marked until its own settlement so that a nested execution
	// of an unrelated request cannot clear it early
	globalData.executing[id] = struct{}{}
	globalData.Unlock()

	dispatchErr := globalData.table.Forward(record.Target, executor, record.Msg, record.InputAsset)

	globalData.Lock()
	delete(globalData.executing, id)
	defer globalData.Unlock()

	if nil != dispatchErr {
		globalData.log.Warnf("execute: id: %d  dispatch failed", id)
		return dispatchErr
	}

	// a callback may have cancelled the record during dispatch
	if !request.Has(id) {
		return fault.RequestNotFound
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	if record.IsRecurring {
		err = recurring.Debit(trx, record.Owner)
		if fault.InsufficientRecurringFee == err {
			// starved: the request must not stay executable against
			// an exhausted balance, but this attempt still fails
			request.Remove(trx, id)
			e := trx.Commit()
			logger.PanicIfError("registry: starve commit", e)
			globalData.log.Warnf("execute: id: %d  starved", id)
			return fault.InsufficientRecurringFee
		} else if nil != err {
			trx.Abort()
			return err
		}
		err = trx.Commit()
		logger.PanicIfError("registry: execute commit", err)
	} else {
		request.Remove(trx, id)
		err = trx.Commit()
		logger.PanicIfError("registry: execute commit", err)

		// release the escrowed input asset to the target
		if nil != record.InputAsset {
			err = globalData.mover.Move(globalData.custody, record.Target, *record.InputAsset)
			logger.PanicIfError("registry: input settlement", err)
		}
	}

	// the execution fee goes to whoever did the work
	err = globalData.mover.Move(globalData.custody, executor, fee)
	logger.PanicIfError("registry: fee payout", err)

	globalData.log.Infof("execute: id: %d  executor: %s  recurring: %t", id, executor, record.IsRecurring)

	return nil
}
