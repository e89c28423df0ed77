// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stakes_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/mr-tron/base58"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/stakes"
	"github.com/autonomy-network/registryd/storage"
)

const (
	databaseFileName = "test"
	testingDirName   = "testing"

	stakeDenom  = "uauto"
	stakeAmount = 10000
)

var (
	ledger  *pay.Ledger
	custody = makeAccount(0xff)
	alice   = makeAccount(0x01)
	bob     = makeAccount(0x02)
	carol   = makeAccount(0x03)
)

// a deterministic well-formed account
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
	ledger.Issue(alice, funds.Asset{Denom: stakeDenom, Amount: 1000000})
	ledger.Issue(bob, funds.Asset{Denom: stakeDenom, Amount: 1000000})
	ledger.Issue(carol, funds.Asset{Denom: stakeDenom, Amount: 1000000})

	err = stakes.Initialise(stakeDenom, stakeAmount, ledger, custody)
	if nil != err {
		t.Fatalf("stakes initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	stakes.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// attach exactly n stake units of the stake denomination
func stakePayment(n uint64) funds.Attached {
	return funds.Attached{{Denom: stakeDenom, Amount: n * stakeAmount}}
}
