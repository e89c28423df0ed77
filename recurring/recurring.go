// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recurring

import (
	"math"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/storage"
)

// control pool key for the aggregate balance
var totalRecurringKey = []byte("total-recurring-fee")

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log     *logger.L
	denom   string
	amount  uint64
	mover   pay.Mover
	custody account.Account

	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - prepare the prepaid fee ledger
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
		return fault.InvalidFeeAmount
	}
	if nil == mover || custody.IsZero() {
		return fault.MissingParameters
	}

	globalData.log = logger.New("recurring")
	globalData.log.Info("starting…")

	globalData.denom = denom
	globalData.amount = amount
	globalData.mover = mover
	globalData.custody = custody

	// counter must agree with the live records
	total := uint64(0)
	cursor := storage.Pool.RecurringFees.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		if 8 != len(value) {
			return fault.DataInconsistent
		}
		balance, _ := storage.Pool.RecurringFees.GetN(key)
		total += balance
		return nil
	})
	if nil != err {
		return err
	}
	storage.Pool.Control.PutN(totalRecurringKey, total)

	globalData.initialised = true
	return nil
}

// Finalise - release the ledger
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.mover = nil
	globalData.initialised = false
}

// UpdateFee - adopt a new per-execution fee for future deposits,
// withdrawals and debits
//
// the denomination cannot change, existing balances are held in it
func UpdateFee(amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if 0 == amount {
		return fault.InvalidFeeAmount
	}
	globalData.amount = amount
	return nil
}

// Deposit - prepay the execution fee for a number of occurrences
//
// the attached funds must be exactly count units of the fee
// denomination
func Deposit(owner account.Account, count uint64, attached funds.Attached) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if owner.IsZero() {
		return fault.MissingParameters
	}
	if 0 == count || count > math.MaxUint64/globalData.amount {
		return fault.InvalidCount
	}

	amount := count * globalData.amount
	err := attached.Exact(globalData.denom, amount)
	if nil != err {
		return err
	}

	// the batch must be claimed before the custody move, a busy batch
	// would otherwise strand the deposit in custody
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = globalData.mover.Move(owner, globalData.custody, funds.Asset{
		Denom:  globalData.denom,
		Amount: amount,
	})
	if nil != err {
		trx.Abort()
		return err
	}

	balance, _ := trx.GetN(storage.Pool.RecurringFees, owner.Bytes())
	total, _ := trx.GetN(storage.Pool.Control, totalRecurringKey)

	trx.PutN(storage.Pool.RecurringFees, owner.Bytes(), balance+amount)
	trx.PutN(storage.Pool.Control, totalRecurringKey, total+amount)

	err = trx.Commit()
	logger.PanicIfError("recurring: deposit commit", err)

	globalData.log.Infof("deposit: owner: %s  amount: %d  balance: %d", owner, amount, balance+amount)

	return nil
}

// Withdraw - reclaim prepaid fee for a number of occurrences
func Withdraw(owner account.Account, count uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if owner.IsZero() {
		return fault.MissingParameters
	}
	if 0 == count || count > math.MaxUint64/globalData.amount {
		return fault.InvalidCount
	}

	amount := count * globalData.amount

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	balance, _ := trx.GetN(storage.Pool.RecurringFees, owner.Bytes())
	if balance < amount {
		trx.Abort()
		return fault.InsufficientBalance
	}
	total, _ := trx.GetN(storage.Pool.Control, totalRecurringKey)

	// an absent entry is a zero balance
	if balance == amount {
		trx.Delete(storage.Pool.RecurringFees, owner.Bytes())
	} else {
		trx.PutN(storage.Pool.RecurringFees, owner.Bytes(), balance-amount)
	}
	trx.PutN(storage.Pool.Control, totalRecurringKey, total-amount)

	err = trx.Commit()
	logger.PanicIfError("recurring: withdraw commit", err)

	// custody only ever holds live deposits so a failing refund means
	// the ledgers have diverged
	err = globalData.mover.Move(globalData.custody, owner, funds.Asset{
		Denom:  globalData.denom,
		Amount: amount,
	})
	logger.PanicIfError("recurring: withdraw refund", err)

	globalData.log.Infof("withdraw: owner: %s  amount: %d  balance: %d", owner, amount, balance-amount)

	return nil
}

// Debit - stage one execution fee debit into a pending transaction
//
// the caller owns the transaction and decides whether the debit
// becomes durable; nothing is changed when the balance is short
func Debit(trx storage.Transaction, owner account.Account) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	balance, _ := trx.GetN(storage.Pool.RecurringFees, owner.Bytes())
	if balance < globalData.amount {
		return fault.InsufficientRecurringFee
	}
	total, _ := trx.GetN(storage.Pool.Control, totalRecurringKey)

	if balance == globalData.amount {
		trx.Delete(storage.Pool.RecurringFees, owner.Bytes())
	} else {
		trx.PutN(storage.Pool.RecurringFees, owner.Bytes(), balance-globalData.amount)
	}
	trx.PutN(storage.Pool.Control, totalRecurringKey, total-globalData.amount)

	return nil
}

// Balance - prepaid balance of the account, zero when absent
func Balance(owner account.Account) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	balance, _ := storage.Pool.RecurringFees.GetN(owner.Bytes())
	return balance
}

// Total - sum of all prepaid balances
func Total() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	total, _ := storage.Pool.Control.GetN(totalRecurringKey)
	return total
}

// Balances - every account with a live balance
func Balances() map[account.Account]uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	all := make(map[account.Account]uint64)
	cursor := storage.Pool.RecurringFees.NewFetchCursor()
	_ = cursor.Map(func(key []byte, value []byte) error {
		owner, err := account.FromString(string(key))
		if nil != err {
			return err
		}
		balance, _ := storage.Pool.RecurringFees.GetN(key)
		all[owner] = balance
		return nil
	})
	return all
}

// CheckConsistency - verify the stored balances against the counter
func CheckConsistency() error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	total := uint64(0)
	cursor := storage.Pool.RecurringFees.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		balance, ok := storage.Pool.RecurringFees.GetN(key)
		if !ok || 0 == balance {
			return fault.DataInconsistent
		}
		total += balance
		return nil
	})
	if nil != err {
		return err
	}

	stored, _ := storage.Pool.Control.GetN(totalRecurringKey)
	if total != stored {
		globalData.log.Criticalf("consistency: records: %d  counter: %d", total, stored)
		return fault.DataInconsistent
	}
	return nil
}
