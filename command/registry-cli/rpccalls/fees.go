// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/rpc/fees"
)

// DepositFees - prepay a number of recurring fees
func (client *Client) DepositFees(owner account.Account, numFees uint64, attached funds.Attached) (*fees.DepositReply, error) {
	var reply fees.DepositReply
	args := fees.DepositArguments{
		Owner:    owner,
		NumFees:  numFees,
		Attached: attached,
	}
	if err := client.client.Call("Fees.Deposit", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// WithdrawFees - reclaim a number of prepaid recurring fees
func (client *Client) WithdrawFees(owner account.Account, numFees uint64) (*fees.WithdrawReply, error) {
	var reply fees.WithdrawReply
	args := fees.WithdrawArguments{
		Owner:   owner,
		NumFees: numFees,
	}
	if err := client.client.Call("Fees.Withdraw", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// FeeBalance - prepaid recurring fee balance of one account
func (client *Client) FeeBalance(owner account.Account) (*fees.BalanceReply, error) {
	var reply fees.BalanceReply
	args := fees.BalanceArguments{
		Owner: owner,
	}
	if err := client.client.Call("Fees.Balance", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
