// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch_test

import (
	"errors"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/dispatch"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
)

const testingDirName = "testing"

func makeAccount(seed byte) account.Account {
	data := []byte{seed, seed, seed, seed, seed, seed, seed, seed}
	a, err := account.FromString(base58.Encode(data))
	if nil != err {
		panic(err)
	}
	return a
}

func setup(t *testing.T) {
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
}

func teardown(t *testing.T) {
	logger.Finalise()
	os.RemoveAll(testingDirName)
}

// target recording what it was handed
type recordingTarget struct {
	caller   account.Account
	msg      []byte
	attached *funds.Asset
	fail     bool
	calls    int
}

func (r *recordingTarget) Handle(caller account.Account, msg []byte, attached *funds.Asset) error {
	r.calls += 1
	r.caller = caller
	r.msg = msg
	r.attached = attached
	if r.fail {
		return errors.New("rejected")
	}
	return nil
}

func TestForward(t *testing.T) {
	setup(t)
	defer teardown(t)

	table := dispatch.NewTable()
	address := makeAccount(0x31)
	caller := makeAccount(0x32)
	target := &recordingTarget{}

	table.Register(address, target)
	assert.True(t, table.Has(address), "registered target not callable")

	asset := &funds.Asset{Denom: "uusd", Amount: 5}
	err := table.Forward(address, caller, []byte("payload"), asset)
	assert.Nil(t, err, "forward failed")
	assert.Equal(t, 1, target.calls, "target not called")
	assert.Equal(t, caller, target.caller, "caller not propagated")
	assert.Equal(t, []byte("payload"), target.msg, "payload not propagated")
	assert.Equal(t, asset, target.attached, "attachment not propagated")
}

func TestForwardUnknownTarget(t *testing.T) {
	setup(t)
	defer teardown(t)

	table := dispatch.NewTable()

	err := table.Forward(makeAccount(0x33), makeAccount(0x34), nil, nil)
	assert.Equal(t, fault.TargetCallFailed, err, "unknown target did not fail uniformly")
}

func TestForwardTargetError(t *testing.T) {
	setup(t)
	defer teardown(t)

	table := dispatch.NewTable()
	address := makeAccount(0x35)
	target := &recordingTarget{fail: true}
	table.Register(address, target)

	err := table.Forward(address, makeAccount(0x36), nil, nil)
	assert.Equal(t, fault.TargetCallFailed, err, "target error not mapped")
	assert.Equal(t, 1, target.calls, "target not called")
}

func TestDeregister(t *testing.T) {
	setup(t)
	defer teardown(t)

	table := dispatch.NewTable()
	address := makeAccount(0x37)
	table.Register(address, &recordingTarget{})
	table.Deregister(address)

	assert.False(t, table.Has(address), "deregistered target still callable")
	err := table.Forward(address, makeAccount(0x38), nil, nil)
	assert.Equal(t, fault.TargetCallFailed, err, "deregistered target still dispatchable")
}
