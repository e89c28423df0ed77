// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// how often the aggregates are recomputed
const checkInterval = 5 * time.Minute

// Checker - periodic verification that the stored counters still
// match the live records
type Checker struct {
	log *logger.L
}

// NewChecker - a watchdog ready to be started as a background process
func NewChecker() *Checker {
	return &Checker{
		log: logger.New("checker"),
	}
}

// Run - verification loop
func (checker *Checker) Run(args interface{}, shutdown <-chan struct{}) {

	log := checker.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(checkInterval):
			err := CheckConsistency()
			if nil != err {
				// a divergence means a code defect or a damaged
				// database, neither is recoverable from here
				log.Criticalf("consistency: %s", err)
				logger.Panicf("consistency: %s", err)
			}
			log.Debug("consistency verified")
		}
	}
	log.Info("shutting down…")
}
