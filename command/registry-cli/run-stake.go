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

func runStake(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	staker, err := checkAccount("staker", c.String("staker"))
	if nil != err {
		return err
	}

	numAdded := c.Uint64("num-added")
	if 0 == numAdded {
		return fmt.Errorf("invalid num-added: %d", numAdded)
	}

	attached, err := parseAttached(c.StringSlice("attach"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "staker: %s\n", staker)
		fmt.Fprintf(m.e, "numAdded: %d\n", numAdded)
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.DepositStake(staker, numAdded, attached)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runUnstake(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	staker, err := checkAccount("staker", c.String("staker"))
	if nil != err {
		return err
	}

	idxs, err := parseIndices(c.String("idxs"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.WithdrawStake(staker, idxs)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runRefresh(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.RefreshStake(owner)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runStakes(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.ListStakes(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	stakeBalance, err := client.StakeBalance(owner)
	if nil != err {
		return err
	}
	feeBalance, err := client.FeeBalance(owner)
	if nil != err {
		return err
	}

	printJson(m.w, map[string]interface{}{
		"stake": stakeBalance,
		"fees":  feeBalance,
	})

	return nil
}
