// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package admin

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/registry"
	"github.com/autonomy-network/registryd/rpc/ratelimit"
)

const (
	rateLimitAdmin = 100
	rateBurstAdmin = 50
)

// Admin - type for owner-only RPC calls
//
// the caller account is matched against the stored registry owner,
// signature verification is handled by the wallet layer in front
type Admin struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the administration service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Admin {
	return &Admin{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitAdmin, rateBurstAdmin),
		IsNormalMode: isNormalMode,
	}
}

// ---

// UpdateConfigArguments - mutable operating parameters
//
// stake denomination, stake amount and fee denomination are
// rejected by the registry even when present
type UpdateConfigArguments struct {
	Caller        account.Account `json:"caller"`
	FeeAmount     *uint64         `json:"feeAmount,omitempty"`
	BlocksInEpoch *uint64         `json:"blocksInEpoch,omitempty"`
	StakeDenom    *string         `json:"stakeDenom,omitempty"`
	StakeAmount   *uint64         `json:"stakeAmount,omitempty"`
	FeeDenom      *string         `json:"feeDenom,omitempty"`
}

// UpdateConfigReply - effective parameters after the update
type UpdateConfigReply struct {
	Config registry.Config `json:"config"`
}

// UpdateConfig - change the mutable operating parameters
func (admin *Admin) UpdateConfig(arguments *UpdateConfigArguments, reply *UpdateConfigReply) error {

	if err := ratelimit.Limit(admin.Limiter); nil != err {
		return err
	}

	if !admin.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	admin.Log.Infof("Admin.UpdateConfig: %v", arguments)

	err := registry.UpdateConfig(arguments.Caller, registry.ConfigChanges{
		FeeAmount:     arguments.FeeAmount,
		BlocksInEpoch: arguments.BlocksInEpoch,
		StakeDenom:    arguments.StakeDenom,
		StakeAmount:   arguments.StakeAmount,
		FeeDenom:      arguments.FeeDenom,
	})
	if nil != err {
		return err
	}

	reply.Config = registry.GetConfig()

	return nil
}

// ---

// ProposeOwnerArguments - arguments for the first handover step
//
// a zero proposed account withdraws an outstanding proposal
type ProposeOwnerArguments struct {
	Caller   account.Account `json:"caller"`
	Proposed account.Account `json:"proposed"`
}

// ProposeOwnerReply - result of the proposal
type ProposeOwnerReply struct {
	Proposed bool `json:"proposed"`
}

// ProposeOwner - nominate a new registry owner
func (admin *Admin) ProposeOwner(arguments *ProposeOwnerArguments, reply *ProposeOwnerReply) error {

	if err := ratelimit.Limit(admin.Limiter); nil != err {
		return err
	}

	if !admin.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	admin.Log.Infof("Admin.ProposeOwner: %v", arguments)

	err := registry.ProposeOwner(arguments.Caller, arguments.Proposed)
	if nil != err {
		return err
	}

	reply.Proposed = !arguments.Proposed.IsZero()

	return nil
}

// ---

// ClaimOwnershipArguments - arguments for the second handover step
type ClaimOwnershipArguments struct {
	Caller account.Account `json:"caller"`
}

// ClaimOwnershipReply - the new owner after the claim
type ClaimOwnershipReply struct {
	Owner account.Account `json:"owner"`
}

// ClaimOwnership - complete a proposed ownership handover
func (admin *Admin) ClaimOwnership(arguments *ClaimOwnershipArguments, reply *ClaimOwnershipReply) error {

	if err := ratelimit.Limit(admin.Limiter); nil != err {
		return err
	}

	if !admin.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	admin.Log.Infof("Admin.ClaimOwnership: %v", arguments)

	err := registry.ClaimOwnership(arguments.Caller)
	if nil != err {
		return err
	}

	reply.Owner = registry.GetConfig().Owner

	return nil
}

// ---

// BlacklistArguments - arguments for blacklist maintenance
type BlacklistArguments struct {
	Caller account.Account `json:"caller"`
	Target account.Account `json:"target"`
	Remove bool            `json:"remove"`
}

// BlacklistReply - blacklist standing of the target afterwards
type BlacklistReply struct {
	Blacklisted bool `json:"blacklisted"`
}

// Blacklist - add or remove a target from the creation blacklist
func (admin *Admin) Blacklist(arguments *BlacklistArguments, reply *BlacklistReply) error {

	if err := ratelimit.Limit(admin.Limiter); nil != err {
		return err
	}

	if !admin.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	admin.Log.Infof("Admin.Blacklist: %v", arguments)

	var err error
	if arguments.Remove {
		err = registry.RemoveFromBlacklist(arguments.Caller, arguments.Target)
	} else {
		err = registry.AddToBlacklist(arguments.Caller, arguments.Target)
	}
	if nil != err {
		return err
	}

	reply.Blacklisted = registry.IsBlacklisted(arguments.Target)

	return nil
}
