// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/background"
	"github.com/autonomy-network/registryd/configuration"
	"github.com/autonomy-network/registryd/dispatch"
	"github.com/autonomy-network/registryd/mode"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/registry"
	"github.com/autonomy-network/registryd/rpc"
	"github.com/autonomy-network/registryd/stakes"
	"github.com/autonomy-network/registryd/storage"
	"github.com/autonomy-network/registryd/wrapper"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(logger.Configuration{
		Directory: theConfiguration.Logging.Directory,
		File:      theConfiguration.Logging.File,
		Size:      theConfiguration.Logging.Size,
		Count:     theConfiguration.Logging.Count,
		Console:   theConfiguration.Logging.Console,
		Levels:    theConfiguration.Logging.Levels,
	}); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise()
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Registry", theConfiguration.Registry)

	// the registry accounts
	ownerAccount, err := account.FromString(theConfiguration.Registry.Owner)
	if nil != err {
		exitwithstatus.Message("registry owner: %q error: %s", theConfiguration.Registry.Owner, err)
	}
	custodyAccount, err := account.FromString(theConfiguration.Registry.Custody)
	if nil != err {
		exitwithstatus.Message("registry custody: %q error: %s", theConfiguration.Registry.Custody, err)
	}

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the funds ledger backing all stake, fee and escrow movements
	ledger := pay.NewLedger()

	// table of callable automation targets
	table := dispatch.NewTable()

	log.Info("initialise registry")
	err = registry.Initialise(registry.Config{
		Owner:         ownerAccount,
		StakeDenom:    theConfiguration.Registry.StakeDenom,
		StakeAmount:   theConfiguration.Registry.StakeAmount,
		FeeDenom:      theConfiguration.Registry.FeeDenom,
		FeeAmount:     theConfiguration.Registry.FeeAmount,
		BlocksInEpoch: theConfiguration.Registry.BlocksInEpoch,
	}, custodyAccount, ledger, table)
	if nil != err {
		log.Criticalf("registry initialise error: %s", err)
		exitwithstatus.Message("registry initialise error: %s", err)
	}
	defer registry.Finalise()

	// stored parameters win over the file on restart
	effective, err := registry.EffectiveConfig()
	if nil != err {
		log.Criticalf("effective config error: %s", err)
		exitwithstatus.Message("effective config error: %s", err)
	}

	log.Info("initialise stakes")
	err = stakes.Initialise(effective.StakeDenom, effective.StakeAmount, ledger, custodyAccount)
	if nil != err {
		log.Criticalf("stakes initialise error: %s", err)
		exitwithstatus.Message("stakes initialise error: %s", err)
	}
	defer stakes.Finalise()

	log.Info("initialise recurring")
	err = recurring.Initialise(effective.FeeDenom, effective.FeeAmount, ledger, custodyAccount)
	if nil != err {
		log.Criticalf("recurring initialise error: %s", err)
		exitwithstatus.Message("recurring initialise error: %s", err)
	}
	defer recurring.Finalise()

	// the records survive a restart but the in-process ledger does not,
	// reseed custody so persisted stakes, fees and escrows stay refundable
	holdings, err := registry.CustodyRequirement()
	if nil != err {
		log.Criticalf("custody requirement error: %s", err)
		exitwithstatus.Message("custody requirement error: %s", err)
	}
	for _, holding := range holdings {
		log.Infof("custody reseed: %s %d", holding.Denom, holding.Amount)
		ledger.Issue(custodyAccount, holding)
	}

	// optional swap wrapper, registered as a callable target
	if "" != theConfiguration.Registry.Wrapper {
		wrapperAccount, err := account.FromString(theConfiguration.Registry.Wrapper)
		if nil != err {
			exitwithstatus.Message("registry wrapper: %q error: %s", theConfiguration.Registry.Wrapper, err)
		}
		log.Infof("initialise wrapper: %s", wrapperAccount)
		table.Register(wrapperAccount, wrapper.New(wrapperAccount, ledger))
	}

	// start up the rpc background processes
	log.Info("initialise rpc")
	err = rpc.Initialise(&theConfiguration.ClientRPC, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// background consistency checker
	processes := background.Processes{
		registry.NewChecker(),
	}
	backgrounds := background.Start(processes, nil)
	defer backgrounds.Stop()

	// operations are accepted from here on
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
