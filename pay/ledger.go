// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pay

import (
	"sync"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
)

// Ledger - in-process implementation of the token move primitive
//
// used by the daemon and by tests; a production deployment replaces
// this with the bank module of the hosting chain
type Ledger struct {
	sync.RWMutex
	balances map[account.Account]map[string]uint64
}

// NewLedger - create an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[account.Account]map[string]uint64),
	}
}

// Issue - credit an account out of thin air
//
// test and genesis helper only; moves between existing accounts
// must go through Move
func (l *Ledger) Issue(owner account.Account, asset funds.Asset) {
	l.Lock()
	l.credit(owner, asset)
	l.Unlock()
}

// Move - transfer an amount between two accounts
func (l *Ledger) Move(from account.Account, to account.Account, asset funds.Asset) error {
	if err := asset.Validate(); nil != err {
		return err
	}
	if asset.IsZero() {
		return nil
	}

	l.Lock()
	defer l.Unlock()

	held := l.balances[from][asset.Denom]
	if held < asset.Amount {
		return fault.InsufficientFunds
	}
	l.balances[from][asset.Denom] = held - asset.Amount
	l.credit(to, asset)
	return nil
}

// Balance - current balance of one denomination
func (l *Ledger) Balance(owner account.Account, denom string) uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.balances[owner][denom]
}

// hold lock before calling
func (l *Ledger) credit(owner account.Account, asset funds.Asset) {
	m, ok := l.balances[owner]
	if !ok {
		m = make(map[string]uint64)
		l.balances[owner] = m
	}
	m[asset.Denom] += asset.Amount
}
