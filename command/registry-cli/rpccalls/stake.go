// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/rpc/stake"
)

// DepositStake - append stake entries for the staker
func (client *Client) DepositStake(staker account.Account, numAdded uint64, attached funds.Attached) (*stake.DepositReply, error) {
	var reply stake.DepositReply
	args := stake.DepositArguments{
		Staker:   staker,
		NumAdded: numAdded,
		Attached: attached,
	}
	if err := client.client.Call("Stake.Deposit", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// WithdrawStake - remove owned stake entries and refund the stake
func (client *Client) WithdrawStake(staker account.Account, idxs []uint64) (*stake.WithdrawReply, error) {
	var reply stake.WithdrawReply
	args := stake.WithdrawArguments{
		Staker: staker,
		Idxs:   idxs,
	}
	if err := client.client.Call("Stake.Withdraw", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// RefreshStake - touch the stake table and report executor standing
func (client *Client) RefreshStake(owner account.Account) (*stake.RefreshReply, error) {
	var reply stake.RefreshReply
	args := stake.RefreshArguments{
		Owner: owner,
	}
	if err := client.client.Call("Stake.Refresh", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// ListStakes - list stake entries in table order
func (client *Client) ListStakes(start uint64, count int) (*stake.ListReply, error) {
	var reply stake.ListReply
	args := stake.ListArguments{
		Start: start,
		Count: count,
	}
	if err := client.client.Call("Stake.List", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// StakeBalance - total amount staked by one account
func (client *Client) StakeBalance(owner account.Account) (*stake.BalanceReply, error) {
	var reply stake.BalanceReply
	args := stake.BalanceArguments{
		Owner: owner,
	}
	if err := client.client.Call("Stake.Balance", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
