// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/command/registry-cli/rpccalls"
)

func runUpdateConfig(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount("caller", c.String("caller"))
	if nil != err {
		return err
	}

	feeAmount, err := parseOptionalUint64(c.String("fee-amount"))
	if nil != err {
		return err
	}
	blocksInEpoch, err := parseOptionalUint64(c.String("blocks-in-epoch"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	updateConfig := &rpccalls.UpdateConfigData{
		Caller:        caller,
		FeeAmount:     feeAmount,
		BlocksInEpoch: blocksInEpoch,
	}

	response, err := client.UpdateConfig(updateConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runProposeOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount("caller", c.String("caller"))
	if nil != err {
		return err
	}

	// an empty proposed account withdraws the outstanding proposal
	proposed := account.Nothing
	if s := c.String("proposed"); "" != s {
		proposed, err = checkAccount("proposed", s)
		if nil != err {
			return err
		}
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.ProposeOwner(caller, proposed)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runClaimOwnership(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount("caller", c.String("caller"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.ClaimOwnership(caller)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runBlacklist(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount("caller", c.String("caller"))
	if nil != err {
		return err
	}
	target, err := checkAccount("target", c.String("target"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Blacklist(caller, target, c.Bool("remove"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
