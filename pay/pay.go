// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pay - the token move primitive
//
// the registry never holds keys; it instructs the enclosing ledger
// environment to move denominated amounts between accounts and to
// hold escrowed funds under the registry's own custody account
package pay

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/funds"
)

// Mover - the collaborator contract for moving tokens
//
// a failing move must leave both balances untouched
type Mover interface {
	Move(from account.Account, to account.Account, asset funds.Asset) error
	Balance(owner account.Account, denom string) uint64
}
