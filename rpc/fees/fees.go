// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/rpc/ratelimit"
)

const (
	rateLimitFees = 200
	rateBurstFees = 100
)

// Fees - type for RPC calls on the recurring fee ledger
type Fees struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the recurring fee service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Fees {
	return &Fees{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitFees, rateBurstFees),
		IsNormalMode: isNormalMode,
	}
}

// ---

// DepositArguments - arguments for prepaying recurring fees
type DepositArguments struct {
	Owner    account.Account `json:"owner"`
	NumFees  uint64          `json:"numFees,string"`
	Attached funds.Attached  `json:"attached"`
}

// DepositReply - ledger balance after the deposit
type DepositReply struct {
	Balance uint64 `json:"balance,string"`
}

// Deposit - prepay a number of recurring fees
func (f *Fees) Deposit(arguments *DepositArguments, reply *DepositReply) error {

	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	if !f.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	f.Log.Infof("Fees.Deposit: %v", arguments)

	err := recurring.Deposit(arguments.Owner, arguments.NumFees, arguments.Attached)
	if nil != err {
		return err
	}

	reply.Balance = recurring.Balance(arguments.Owner)

	return nil
}

// ---

// WithdrawArguments - arguments for reclaiming prepaid fees
type WithdrawArguments struct {
	Owner   account.Account `json:"owner"`
	NumFees uint64          `json:"numFees,string"`
}

// WithdrawReply - ledger balance after the withdrawal
type WithdrawReply struct {
	Balance uint64 `json:"balance,string"`
}

// Withdraw - reclaim a number of prepaid recurring fees
func (f *Fees) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {

	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	if !f.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	f.Log.Infof("Fees.Withdraw: %v", arguments)

	err := recurring.Withdraw(arguments.Owner, arguments.NumFees)
	if nil != err {
		return err
	}

	reply.Balance = recurring.Balance(arguments.Owner)

	return nil
}

// ---

// BalanceArguments - arguments for a per-account balance query
type BalanceArguments struct {
	Owner account.Account `json:"owner"`
}

// BalanceReply - prepaid balance for one account
type BalanceReply struct {
	Balance uint64 `json:"balance,string"`
}

// Balance - prepaid recurring fee balance of one account
func (f *Fees) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	reply.Balance = recurring.Balance(arguments.Owner)

	return nil
}
