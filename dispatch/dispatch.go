// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch forwards opaque request payloads to callable
// targets registered in process.
//
// The registry never interprets a payload, it only hands it to the
// target bound to the request's target account and reports whether
// the call succeeded.
package dispatch

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
)

// Target - a contract callable through the request queue
type Target interface {
	Handle(caller account.Account, msg []byte, attached *funds.Asset) error
}

// Table - registered targets by account
type Table struct {
	sync.RWMutex
	log     *logger.L
	targets map[account.Account]Target
}

// NewTable - an empty dispatch table
func NewTable() *Table {
	return &Table{
		log:     logger.New("dispatch"),
		targets: make(map[account.Account]Target),
	}
}

// Register - bind a target to its account, replacing any previous
// binding
func (table *Table) Register(address account.Account, target Target) {
	table.Lock()
	table.targets[address] = target
	table.Unlock()
}

// Deregister - remove a binding
func (table *Table) Deregister(address account.Account) {
	table.Lock()
	delete(table.targets, address)
	table.Unlock()
}

// Has - true when the account is callable
func (table *Table) Has(address account.Account) bool {
	table.RLock()
	defer table.RUnlock()

	_, ok := table.targets[address]
	return ok
}

// Forward - deliver a payload to a target
//
// any target failure is reported uniformly, the caller cannot tell a
// missing target from a target that rejected the call other than by
// the log
func (table *Table) Forward(address account.Account, caller account.Account, msg []byte, attached *funds.Asset) error {
	table.RLock()
	target, ok := table.targets[address]
	table.RUnlock()

	if !ok {
		table.log.Warnf("forward: unknown target: %s", address)
		return fault.TargetCallFailed
	}

	err := target.Handle(caller, msg, attached)
	if nil != err {
		table.log.Warnf("forward: target: %s  error: %s", address, err)
		return fault.TargetCallFailed
	}
	return nil
}
