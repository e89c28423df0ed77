// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"errors"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/mr-tron/base58"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/dispatch"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/registry"
	"github.com/autonomy-network/registryd/stakes"
	"github.com/autonomy-network/registryd/storage"
)

const (
	databaseFileName = "test"
	testingDirName   = "testing"

	stakeDenom  = "uauto"
	stakeAmount = 10000
	feeDenom    = "uauto"
	feeAmount   = 1000
)

var (
	ledger   *pay.Ledger
	table    *dispatch.Table
	custody  = makeAccount(0xf0)
	owner    = makeAccount(0x41)
	alice    = makeAccount(0x42)
	executor = makeAccount(0x43)
	targetA  = makeAccount(0x44)
	targetB  = makeAccount(0x45)
)

func makeAccount(seed byte) account.Account {
	data := []byte{seed, seed, seed, seed, seed, seed, seed, seed}
	a, err := account.FromString(base58.Encode(data))
	if nil != err {
		panic(err)
	}
	return a
}

func removeFiles() {
	os.RemoveAll(databaseFileName + "-registry.leveldb")
	os.RemoveAll(testingDirName)
}

func setup(t *testing.T) {
	removeFiles()

	_ = os.Mkdir(testingDirName, 0700)
	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	ledger = pay.NewLedger()
	for _, a := range []account.Account{owner, alice, executor} {
		ledger.Issue(a, funds.Asset{Denom: stakeDenom, Amount: 1000000})
	}

	table = dispatch.NewTable()

	err = registry.Initialise(registry.Config{
		Owner:         owner,
		StakeDenom:    stakeDenom,
		StakeAmount:   stakeAmount,
		FeeDenom:      feeDenom,
		FeeAmount:     feeAmount,
		BlocksInEpoch: 100,
	}, custody, ledger, table)
	if nil != err {
		t.Fatalf("registry initialise error: %s", err)
	}

	config, err := registry.EffectiveConfig()
	if nil != err {
		t.Fatalf("effective config error: %s", err)
	}

	err = stakes.Initialise(config.StakeDenom, config.StakeAmount, ledger, custody)
	if nil != err {
		t.Fatalf("stakes initialise error: %s", err)
	}
	err = recurring.Initialise(config.FeeDenom, config.FeeAmount, ledger, custody)
	if nil != err {
		t.Fatalf("recurring initialise error: %s", err)
	}

	// a stake qualified executor for the execution tests
	err = stakes.Deposit(executor, 1, funds.Attached{{Denom: stakeDenom, Amount: stakeAmount}})
	if nil != err {
		t.Fatalf("stake deposit error: %s", err)
	}
}

func teardown(t *testing.T) {
	recurring.Finalise()
	stakes.Finalise()
	registry.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func feeAttachment() funds.Attached {
	return funds.Attached{{Denom: feeDenom, Amount: feeAmount}}
}

// target that counts successful deliveries
type countingTarget struct {
	calls int
	fail  bool
}

func (c *countingTarget) Handle(caller account.Account, msg []byte, attached *funds.Asset) error {
	if c.fail {
		return errors.New("rejected")
	}
	c.calls += 1
	return nil
}
