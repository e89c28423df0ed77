// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/rpc/requests"
)

// CreateRequestData - parameters for queueing a request
type CreateRequestData struct {
	Owner       account.Account
	Target      account.Account
	Msg         []byte
	IsRecurring bool
	InputAsset  *funds.Asset
	Attached    funds.Attached
}

// CreateRequest - queue a request for later execution
func (client *Client) CreateRequest(data *CreateRequestData) (*requests.CreateReply, error) {
	var reply requests.CreateReply
	args := requests.CreateArguments{
		Owner:       data.Owner,
		Target:      data.Target,
		Msg:         data.Msg,
		IsRecurring: data.IsRecurring,
		InputAsset:  data.InputAsset,
		Attached:    data.Attached,
	}
	if err := client.client.Call("Requests.Create", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// CancelRequest - remove an owned request and refund its escrow
func (client *Client) CancelRequest(caller account.Account, requestId uint64) (*requests.CancelReply, error) {
	var reply requests.CancelReply
	args := requests.CancelArguments{
		Caller:    caller,
		RequestId: requestId,
	}
	if err := client.client.Call("Requests.Cancel", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// ExecuteRequest - dispatch a queued request to its target
func (client *Client) ExecuteRequest(executor account.Account, requestId uint64) (*requests.ExecuteReply, error) {
	var reply requests.ExecuteReply
	args := requests.ExecuteArguments{
		Executor:  executor,
		RequestId: requestId,
	}
	if err := client.client.Call("Requests.Execute", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// GetRequest - fetch one request by id
func (client *Client) GetRequest(requestId uint64) (*requests.GetReply, error) {
	var reply requests.GetReply
	args := requests.GetArguments{
		RequestId: requestId,
	}
	if err := client.client.Call("Requests.Get", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// ListRequests - scan queued requests in ascending id order
func (client *Client) ListRequests(startAfter *uint64, count int) (*requests.ListReply, error) {
	var reply requests.ListReply
	args := requests.ListArguments{
		StartAfter: startAfter,
		Count:      count,
	}
	if err := client.client.Call("Requests.List", &args, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
