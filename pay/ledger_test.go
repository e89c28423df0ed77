// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
)

const (
	alice = account.Account("aSq9DsNNvGhYxYyqA9wd2eduEAZ5AXWgJTbTHuEz")
	bob   = account.Account("2g7Kmvv1vkHzXnHDWJPbXgdqdgFhYx")
)

func TestMove(t *testing.T) {

	l := pay.NewLedger()
	l.Issue(alice, funds.Asset{Denom: "uosmo", Amount: 5000})

	err := l.Move(alice, bob, funds.Asset{Denom: "uosmo", Amount: 3000})
	assert.Nil(t, err, "move failed")
	assert.Equal(t, uint64(2000), l.Balance(alice, "uosmo"), "wrong sender balance")
	assert.Equal(t, uint64(3000), l.Balance(bob, "uosmo"), "wrong receiver balance")

	// a failing move leaves both balances untouched
	err = l.Move(alice, bob, funds.Asset{Denom: "uosmo", Amount: 2001})
	assert.Equal(t, fault.InsufficientFunds, err, "expected insufficient funds")
	assert.Equal(t, uint64(2000), l.Balance(alice, "uosmo"), "sender balance changed")
	assert.Equal(t, uint64(3000), l.Balance(bob, "uosmo"), "receiver balance changed")

	// zero moves are allowed and do nothing
	err = l.Move(alice, bob, funds.Asset{Denom: "uosmo", Amount: 0})
	assert.Nil(t, err, "zero move failed")

	// unknown denomination balance reads as zero
	assert.Equal(t, uint64(0), l.Balance(bob, "uion"), "expected zero balance")
}
