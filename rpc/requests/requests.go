// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package requests

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/registry"
	"github.com/autonomy-network/registryd/request"
	"github.com/autonomy-network/registryd/rpc/ratelimit"
)

const (
	rateLimitRequests = 200
	rateBurstRequests = 100
)

// Requests - type for RPC calls on the request queue
type Requests struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the request queue service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Requests {
	return &Requests{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitRequests, rateBurstRequests),
		IsNormalMode: isNormalMode,
	}
}

// ---

// CreateArguments - arguments for queueing a request
type CreateArguments struct {
	Owner       account.Account `json:"owner"`
	Target      account.Account `json:"target"`
	Msg         []byte          `json:"msg"`
	IsRecurring bool            `json:"isRecurring"`
	InputAsset  *funds.Asset    `json:"inputAsset,omitempty"`
	Attached    funds.Attached  `json:"attached"`
}

// CreateReply - result of queueing a request
type CreateReply struct {
	RequestId uint64 `json:"requestId,string"`
}

// Create - queue a request for later execution
func (r *Requests) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if !r.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	r.Log.Infof("Requests.Create: %v", arguments)

	id, err := registry.CreateRequest(arguments.Owner, registry.RequestInfo{
		Target:      arguments.Target,
		Msg:         arguments.Msg,
		IsRecurring: arguments.IsRecurring,
		InputAsset:  arguments.InputAsset,
	}, arguments.Attached)
	if nil != err {
		return err
	}

	reply.RequestId = id

	return nil
}

// ---

// CancelArguments - arguments to remove a queued request
type CancelArguments struct {
	Caller    account.Account `json:"caller"`
	RequestId uint64          `json:"requestId,string"`
}

// CancelReply - result of a cancellation
type CancelReply struct {
	Cancelled bool `json:"cancelled"`
}

// Cancel - remove an owned request and refund its escrow
func (r *Requests) Cancel(arguments *CancelArguments, reply *CancelReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if !r.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	r.Log.Infof("Requests.Cancel: %v", arguments)

	err := registry.CancelRequest(arguments.Caller, arguments.RequestId)
	if nil != err {
		return err
	}

	reply.Cancelled = true

	return nil
}

// ---

// ExecuteArguments - arguments to execute a queued request
type ExecuteArguments struct {
	Executor  account.Account `json:"executor"`
	RequestId uint64          `json:"requestId,string"`
}

// ExecuteReply - result of an execution
type ExecuteReply struct {
	Executed bool `json:"executed"`
}

// Execute - dispatch a queued request to its target
func (r *Requests) Execute(arguments *ExecuteArguments, reply *ExecuteReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if !r.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	r.Log.Infof("Requests.Execute: %v", arguments)

	err := registry.ExecuteRequest(arguments.Executor, arguments.RequestId)
	if nil != err {
		return err
	}

	reply.Executed = true

	return nil
}

// ---

// GetArguments - arguments to fetch one request
type GetArguments struct {
	RequestId uint64 `json:"requestId,string"`
}

// GetReply - the stored request record
//
// a missing id yields an empty record, never an error
type GetReply struct {
	Request request.Request `json:"request"`
}

// Get - fetch one request by id
func (r *Requests) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	reply.Request = registry.GetRequest(arguments.RequestId)

	return nil
}

// ---

// ListArguments - arguments for a paginated scan
type ListArguments struct {
	StartAfter *uint64 `json:"startAfter,omitempty"`
	Count      int     `json:"count"`
}

// ListReply - a page of queued requests
type ListReply struct {
	Requests []request.Request `json:"requests"`
}

// List - scan queued requests in ascending id order
func (r *Requests) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	// a zero count selects the default page size
	records, err := registry.Requests(arguments.StartAfter, arguments.Count)
	if nil != err {
		return err
	}

	reply.Requests = records

	return nil
}
