// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/configuration"
)

const configDir = "testing-config"

const sampleConfiguration = `
local M = {}

M.data_directory = "."
M.pidfile = "registryd.pid"

M.database = {
    directory = "data",
    name = "registry",
}

M.client_rpc = {
    maximum_connections = 50,
    bandwidth = 25000000,
    listen = {
        "127.0.0.1:2230",
    },
    certificate = "registryd.crt",
    private_key = "registryd.key",
}

M.registry = {
    owner = "4fTCeU87Xfe",
    custody = "4fTCk2p1E6w",
    stake_denom = "uauto",
    stake_amount = 10000,
    fee_denom = "uauto",
    fee_amount = 1000,
    blocks_in_epoch = 100,
}

M.logging = {
    size = 1048576,
    count = 20,
    console = false,
    levels = {
        DEFAULT = "info",
    },
}

return M
`

func writeConfiguration(t *testing.T, content string) string {
	_ = os.Mkdir(configDir, 0700)
	fileName := filepath.Join(configDir, "registryd.conf")
	err := ioutil.WriteFile(fileName, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName
}

func TestGetConfiguration(t *testing.T) {
	defer os.RemoveAll(configDir)

	fileName := writeConfiguration(t, sampleConfiguration)

	options, err := configuration.GetConfiguration(fileName)
	assert.Nil(t, err, "parse failed")

	assert.Equal(t, uint64(50), options.ClientRPC.MaximumConnections, "rpc connections")
	assert.Equal(t, []string{"127.0.0.1:2230"}, options.ClientRPC.Listen, "rpc listen")
	assert.True(t, filepath.IsAbs(options.ClientRPC.Certificate), "certificate not absolute")

	assert.Equal(t, "4fTCeU87Xfe", options.Registry.Owner, "owner")
	assert.Equal(t, "uauto", options.Registry.StakeDenom, "stake denom")
	assert.Equal(t, uint64(10000), options.Registry.StakeAmount, "stake amount")
	assert.Equal(t, uint64(1000), options.Registry.FeeAmount, "fee amount")
	assert.Equal(t, uint64(100), options.Registry.BlocksInEpoch, "epoch")

	assert.Equal(t, 20, options.Logging.Count, "log count")
	assert.Equal(t, "info", options.Logging.Levels["DEFAULT"], "log level")
	assert.True(t, filepath.IsAbs(options.Database.Directory), "database directory not absolute")
}

func TestGetConfigurationRejectsMissingRegistry(t *testing.T) {
	defer os.RemoveAll(configDir)

	fileName := writeConfiguration(t, `
local M = {}
M.data_directory = "."
return M
`)

	_, err := configuration.GetConfiguration(fileName)
	assert.NotNil(t, err, "configuration without registry section accepted")
}
