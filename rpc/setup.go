// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io/ioutil"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/counter"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/rpc/certificate"
	"github.com/autonomy-network/registryd/rpc/listeners"
	"github.com/autonomy-network/registryd/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// count of active RPC connections
var connectionCountRPC counter.Counter

// Initialise - start the JSON RPC server
//
// certificate and private key entries in the configuration are
// file names, the PEM data is read here
func Initialise(rpcConfiguration *listeners.RPCConfiguration, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	certificatePEM, err := ioutil.ReadFile(rpcConfiguration.Certificate)
	if nil != err {
		log.Errorf("certificate: %q  error: %s", rpcConfiguration.Certificate, err)
		return err
	}
	keyPEM, err := ioutil.ReadFile(rpcConfiguration.PrivateKey)
	if nil != err {
		log.Errorf("private key: %q  error: %s", rpcConfiguration.PrivateKey, err)
		return err
	}

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, string(certificatePEM), string(keyPEM))
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
