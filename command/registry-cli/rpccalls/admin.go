// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/rpc/admin"
)

// UpdateConfigData - parameters for an owner configuration change
type UpdateConfigData struct {
	Caller        account.Account
	FeeAmount     *uint64
	BlocksInEpoch *uint64
}

// UpdateConfig - change the mutable operating parameters
func (client *Client) UpdateConfig(data *UpdateConfigData) (*admin.UpdateConfigReply, error) {
	var reply admin.UpdateConfigReply
	args := admin.UpdateConfigArguments{
		Caller:        data.Caller,
		FeeAmount:     data.FeeAmount,
		BlocksInEpoch: data.BlocksInEpoch,
	}
	if err := client.client.Call("Admin.UpdateConfig", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// ProposeOwner - nominate a new registry owner
func (client *Client) ProposeOwner(caller account.Account, proposed account.Account) (*admin.ProposeOwnerReply, error) {
	var reply admin.ProposeOwnerReply
	args := admin.ProposeOwnerArguments{
		Caller:   caller,
		Proposed: proposed,
	}
	if err := client.client.Call("Admin.ProposeOwner", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// ClaimOwnership - complete a proposed ownership handover
func (client *Client) ClaimOwnership(caller account.Account) (*admin.ClaimOwnershipReply, error) {
	var reply admin.ClaimOwnershipReply
	args := admin.ClaimOwnershipArguments{
		Caller: caller,
	}
	if err := client.client.Call("Admin.ClaimOwnership", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Blacklist - add or remove a target from the creation blacklist
func (client *Client) Blacklist(caller account.Account, target account.Account, remove bool) (*admin.BlacklistReply, error) {
	var reply admin.BlacklistReply
	args := admin.BlacklistArguments{
		Caller: caller,
		Target: target,
		Remove: remove,
	}
	if err := client.client.Call("Admin.Blacklist", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
