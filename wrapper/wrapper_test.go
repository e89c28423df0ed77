// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wrapper_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/wrapper"
)

const testingDirName = "testing"

var (
	wrapperAddr = makeAccount(0x51)
	funder      = makeAccount(0x52)
	user        = makeAccount(0x53)
)

func makeAccount(seed byte) account.Account {
	data := []byte{seed, seed, seed, seed, seed, seed, seed, seed}
	a, err := account.FromString(base58.Encode(data))
	if nil != err {
		panic(err)
	}
	return a
}

func setup(t *testing.T) (*wrapper.Wrapper, *pay.Ledger) {
	os.RemoveAll(testingDirName)
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

	ledger := pay.NewLedger()
	ledger.Issue(funder, funds.Asset{Denom: "uauto", Amount: 10000000})
	ledger.Issue(funder, funds.Asset{Denom: "uusd", Amount: 10000000})
	ledger.Issue(user, funds.Asset{Denom: "uusd", Amount: 100000})

	w := wrapper.New(wrapperAddr, ledger)
	err := w.AddLiquidity(funder, "auto-usd",
		funds.Asset{Denom: "uauto", Amount: 1000000},
		funds.Asset{Denom: "uusd", Amount: 1000000})
	if nil != err {
		t.Fatalf("liquidity error: %s", err)
	}
	return w, ledger
}

func teardown(t *testing.T) {
	logger.Finalise()
	os.RemoveAll(testingDirName)
}

// expected constant product output for the fresh auto-usd pool
// 1000000 - 1000000*1000000/(1000000+10000) = 9901 (floor)
const expectedOut = 9901

func TestDirectSwap(t *testing.T) {
	w, ledger := setup(t)
	defer teardown(t)

	err := w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "uusd",
		Amount:     10000,
		Route:      []string{"auto-usd"},
		MinOutput:  9000,
		MaxOutput:  10000,
	})
	assert.Nil(t, err, "swap failed")

	assert.Equal(t, uint64(90000), ledger.Balance(user, "uusd"), "input not taken")
	assert.Equal(t, uint64(expectedOut), ledger.Balance(user, "uauto"), "output not received")

	pool, ok := w.PoolInfo("auto-usd")
	assert.True(t, ok, "pool lost")
	assert.Equal(t, uint64(1000000-expectedOut), pool.ReserveA, "reserve A")
	assert.Equal(t, uint64(1010000), pool.ReserveB, "reserve B")
}

func TestSlippageBounds(t *testing.T) {
	w, ledger := setup(t)
	defer teardown(t)

	// realised output below the floor
	err := w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "uusd",
		Amount:     10000,
		Route:      []string{"auto-usd"},
		MinOutput:  expectedOut + 1,
		MaxOutput:  20000,
	})
	assert.Equal(t, fault.SlippageExceeded, err, "output below minimum accepted")

	// realised output above the ceiling
	err = w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "uusd",
		Amount:     10000,
		Route:      []string{"auto-usd"},
		MinOutput:  0,
		MaxOutput:  expectedOut - 1,
	})
	assert.Equal(t, fault.SlippageExceeded, err, "output above maximum accepted")

	// a rejected swap leaves everything untouched
	assert.Equal(t, uint64(100000), ledger.Balance(user, "uusd"), "rejected swap kept the input")
	assert.Equal(t, uint64(0), ledger.Balance(user, "uauto"), "rejected swap paid out")
	pool, _ := w.PoolInfo("auto-usd")
	assert.Equal(t, uint64(1000000), pool.ReserveA, "rejected swap moved reserves")
	assert.Equal(t, uint64(1000000), pool.ReserveB, "rejected swap moved reserves")
}

func TestMultiHopRoute(t *testing.T) {
	w, ledger := setup(t)
	defer teardown(t)

	ledger.Issue(funder, funds.Asset{Denom: "ueur", Amount: 10000000})
	err := w.AddLiquidity(funder, "auto-eur",
		funds.Asset{Denom: "uauto", Amount: 1000000},
		funds.Asset{Denom: "ueur", Amount: 2000000})
	assert.Nil(t, err, "liquidity failed")

	// uusd -> uauto -> ueur
	err = w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "uusd",
		Amount:     10000,
		Route:      []string{"auto-usd", "auto-eur"},
		MinOutput:  1,
		MaxOutput:  100000,
	})
	assert.Nil(t, err, "multi hop swap failed")

	// second hop: 2000000 - 2000000*1000000/(1000000+9901) = 19608
	assert.Equal(t, uint64(19608), ledger.Balance(user, "ueur"), "multi hop output")
	assert.Equal(t, uint64(0), ledger.Balance(user, "uauto"), "intermediate leaked to the user")
}

func TestSwapValidation(t *testing.T) {
	w, _ := setup(t)
	defer teardown(t)

	err := w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "uusd",
		Amount:     10000,
		Route:      []string{"nonesuch"},
		MinOutput:  1,
		MaxOutput:  100000,
	})
	assert.Equal(t, fault.UnknownSwapPool, err, "unknown pool accepted")

	err = w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "ueur",
		Amount:     10000,
		Route:      []string{"auto-usd"},
		MinOutput:  1,
		MaxOutput:  100000,
	})
	assert.Equal(t, fault.InvalidDenomination, err, "foreign denomination accepted")

	err = w.Swap(wrapper.SwapMsg{
		User:       user,
		InputDenom: "uusd",
		Amount:     0,
		Route:      []string{"auto-usd"},
		MinOutput:  1,
		MaxOutput:  100000,
	})
	assert.Equal(t, fault.InvalidCount, err, "zero amount accepted")
}

func TestHandleDispatched(t *testing.T) {
	w, ledger := setup(t)
	defer teardown(t)

	msg, err := json.Marshal(map[string]interface{}{
		"swap": wrapper.SwapMsg{
			User:       user,
			InputDenom: "uusd",
			Amount:     10000,
			Route:      []string{"auto-usd"},
			MinOutput:  9000,
			MaxOutput:  10000,
		},
	})
	assert.Nil(t, err, "marshal failed")

	// the escrowed input is settled separately by the registry, only
	// the payout happens here
	attached := &funds.Asset{Denom: "uusd", Amount: 10000}
	err = w.Handle(makeAccount(0x54), msg, attached)
	assert.Nil(t, err, "handle failed")

	assert.Equal(t, uint64(expectedOut), ledger.Balance(user, "uauto"), "output not received")
	assert.Equal(t, uint64(100000), ledger.Balance(user, "uusd"), "escrowed input drawn from the user")

	// a declared attachment must match the payload
	err = w.Handle(makeAccount(0x54), msg, &funds.Asset{Denom: "uusd", Amount: 1})
	assert.Equal(t, fault.InvalidFunds, err, "mismatched attachment accepted")

	// garbage payloads are rejected
	err = w.Handle(makeAccount(0x54), []byte("not json"), nil)
	assert.Equal(t, fault.NotSwapPayload, err, "garbage payload accepted")
}
