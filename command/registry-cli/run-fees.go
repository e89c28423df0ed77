// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/autonomy-network/registryd/command/registry-cli/rpccalls"
)

func runFeeDeposit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}

	numFees := c.Uint64("num-fees")
	if 0 == numFees {
		return fmt.Errorf("invalid num-fees: %d", numFees)
	}

	attached, err := parseAttached(c.StringSlice("attach"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.DepositFees(owner, numFees, attached)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runFeeWithdraw(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}

	numFees := c.Uint64("num-fees")
	if 0 == numFees {
		return fmt.Errorf("invalid num-fees: %d", numFees)
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.WithdrawFees(owner, numFees)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
