// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/rpc/ratelimit"
	"github.com/autonomy-network/registryd/stakes"
)

const (
	rateLimitStake = 200
	rateBurstStake = 100
)

// Stake - type for RPC calls on the executor stake table
type Stake struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the stake service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Stake {
	return &Stake{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitStake, rateBurstStake),
		IsNormalMode: isNormalMode,
	}
}

// ---

// DepositArguments - arguments for adding stake entries
type DepositArguments struct {
	Staker   account.Account `json:"staker"`
	NumAdded uint64          `json:"numAdded,string"`
	Attached funds.Attached  `json:"attached"`
}

// DepositReply - stake table size after the deposit
type DepositReply struct {
	StakesLen uint64 `json:"stakesLen,string"`
}

// Deposit - append stake entries for the staker
func (s *Stake) Deposit(arguments *DepositArguments, reply *DepositReply) error {

	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if !s.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	s.Log.Infof("Stake.Deposit: %v", arguments)

	err := stakes.Deposit(arguments.Staker, arguments.NumAdded, arguments.Attached)
	if nil != err {
		return err
	}

	reply.StakesLen = stakes.Len()

	return nil
}

// ---

// WithdrawArguments - arguments for removing stake entries
//
// indices are resolved one at a time against the shrinking table
type WithdrawArguments struct {
	Staker account.Account `json:"staker"`
	Idxs   []uint64        `json:"idxs"`
}

// WithdrawReply - stake table size after the withdrawal
type WithdrawReply struct {
	StakesLen uint64 `json:"stakesLen,string"`
}

// Withdraw - remove owned stake entries and refund the stake
func (s *Stake) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {

	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if !s.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	s.Log.Infof("Stake.Withdraw: %v", arguments)

	err := stakes.Withdraw(arguments.Staker, arguments.Idxs)
	if nil != err {
		return err
	}

	reply.StakesLen = stakes.Len()

	return nil
}

// ---

// RefreshArguments - arguments for an executor standing refresh
type RefreshArguments struct {
	Owner account.Account `json:"owner"`
}

// RefreshReply - executor standing after the refresh
type RefreshReply struct {
	IsExecutor bool `json:"isExecutor"`
}

// Refresh - touch the stake table and report executor standing
func (s *Stake) Refresh(arguments *RefreshArguments, reply *RefreshReply) error {

	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if !s.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	s.Log.Infof("Stake.Refresh: %v", arguments)

	reply.IsExecutor = stakes.Refresh(arguments.Owner)

	return nil
}

// ---

// ListArguments - arguments for a paginated listing
type ListArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - a page of stake entries
type ListReply struct {
	Stakes []stakes.Entry `json:"stakes"`
}

// List - list stake entries in table order
func (s *Stake) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	reply.Stakes = stakes.List(arguments.Start, arguments.Count)

	return nil
}

// ---

// BalanceArguments - arguments for a per-account stake query
type BalanceArguments struct {
	Owner account.Account `json:"owner"`
}

// BalanceReply - total staked amount and executor standing
type BalanceReply struct {
	Amount     uint64 `json:"amount,string"`
	IsExecutor bool   `json:"isExecutor"`
}

// Balance - total amount staked by one account
func (s *Stake) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	reply.Amount = stakes.BalanceOf(arguments.Owner)
	reply.IsExecutor = stakes.IsExecutor(arguments.Owner)

	return nil
}
