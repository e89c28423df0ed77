// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultPidFile       = "registryd.pid"

	defaultKeyFile         = "registryd.key"
	defaultCertificateFile = "registryd.crt"

	defaultLevelDBDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "registryd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		"config":          "info",
		logger.DefaultTag: "critical",
	}
)

// RegistryType - the economic parameters of the registry
type RegistryType struct {
	Owner         string `gluamapper:"owner" json:"owner"`
	Custody       string `gluamapper:"custody" json:"custody"`
	Wrapper       string `gluamapper:"wrapper" json:"wrapper"`
	StakeDenom    string `gluamapper:"stake_denom" json:"stake_denom"`
	StakeAmount   uint64 `gluamapper:"stake_amount" json:"stake_amount"`
	FeeDenom      string `gluamapper:"fee_denom" json:"fee_denom"`
	FeeAmount     uint64 `gluamapper:"fee_amount" json:"fee_amount"`
	BlocksInEpoch uint64 `gluamapper:"blocks_in_epoch" json:"blocks_in_epoch"`
}

// LoggerType - configuration of the logging system
type LoggerType struct {
	Directory string            `gluamapper:"directory" json:"directory"`
	File      string            `gluamapper:"file" json:"file"`
	Size      int               `gluamapper:"size" json:"size"`
	Count     int               `gluamapper:"count" json:"count"`
	Console   bool              `gluamapper:"console" json:"console"`
	Levels    map[string]string `gluamapper:"levels" json:"levels"`
}

// DatabaseType - where the database files live
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Registry  RegistryType               `gluamapper:"registry" json:"registry"`
	Logging   LoggerType                 `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       defaultPidFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "registry",
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: LoggerType{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PidFile,
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// registry parameters are mandatory
	if "" == options.Registry.Owner {
		return nil, fmt.Errorf("Registry: owner is required")
	}
	if "" == options.Registry.StakeDenom || "" == options.Registry.FeeDenom {
		return nil, fmt.Errorf("Registry: stake_denom and fee_denom are required")
	}
	if 0 == options.Registry.StakeAmount || 0 == options.Registry.FeeAmount {
		return nil, fmt.Errorf("Registry: stake_amount and fee_amount must be positive")
	}

	// fail if any of these are not simple file names
	mustNotBePaths := []string{
		options.Database.Name,
		options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// ensureAbsolute - ensure the path is absolute
//
// if not, prepend the directory to make absolute path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
