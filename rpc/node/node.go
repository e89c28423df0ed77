// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/counter"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/registry"
	"github.com/autonomy-network/registryd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls about the node itself
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode    string          `json:"mode"`
	RPCs    uint64          `json:"rpcs"`
	Config  registry.Config `json:"config"`
	State   registry.State  `json:"state"`
	Version string          `json:"version"`
	Uptime  string          `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Mode = mode.String()
	reply.RPCs = node.counter.Uint64()
	reply.Config = registry.GetConfig()
	reply.State = registry.GetState()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()

	return nil
}
