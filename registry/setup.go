// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/dispatch"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/storage"
)

// control pool keys
var (
	configKey        = []byte("config")
	proposedOwnerKey = []byte("proposed-owner")
)

// globals for this module
type globalDataType struct {
	sync.Mutex
	log     *logger.L
	config  Config
	table   *dispatch.Table
	mover   pay.Mover
	custody account.Account

	// ids currently being dispatched, a re-entering target must not
	// execute any of them a second time
	executing map[uint64]struct{}

	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - load or create the registry configuration
//
// the stored configuration wins over the supplied one so restarts
// cannot silently redefine the staking economics; the supplied values
// are only adopted on first start
func Initialise(config Config, custody account.Account, mover pay.Mover, table *dispatch.Table) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	err := config.validate()
	if nil != err {
		return err
	}
	if custody.IsZero() || nil == mover || nil == table {
		return fault.MissingParameters
	}

	globalData.log = logger.New("registry")
	globalData.log.Info("starting…")

	stored := storage.Pool.Control.Get(configKey)
	if nil == stored {
		storage.Pool.Control.Put(configKey, config.pack())
	} else {
		storedConfig, err := unpackConfig(stored)
		if nil != err {
			return err
		}
		if storedConfig != config {
			globalData.log.Warnf("configured parameters ignored, stored: %v", storedConfig)
		}
		config = storedConfig
	}

	globalData.config = config
	globalData.custody = custody
	globalData.mover = mover
	globalData.table = table
	globalData.executing = make(map[uint64]struct{})

	globalData.initialised = true
	return nil
}

// Finalise - shut down the registry
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.mover = nil
	globalData.table = nil
	globalData.initialised = false
}

// EffectiveConfig - the configuration actually in force
//
// main uses this to initialise the ledgers after a restart, the
// stored configuration may differ from the configuration file
func EffectiveConfig() (Config, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return Config{}, fault.NotInitialised
	}
	return globalData.config, nil
}
