// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/counter"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/rpc/admin"
	"github.com/autonomy-network/registryd/rpc/fees"
	"github.com/autonomy-network/registryd/rpc/node"
	"github.com/autonomy-network/registryd/rpc/requests"
	"github.com/autonomy-network/registryd/rpc/stake"
)

func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(requests.New(log, mode.Is))
	_ = server.Register(stake.New(log, mode.Is))
	_ = server.Register(fees.New(log, mode.Is))
	_ = server.Register(admin.New(log, mode.Is))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
