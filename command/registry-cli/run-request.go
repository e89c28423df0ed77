// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/autonomy-network/registryd/command/registry-cli/rpccalls"
	"github.com/autonomy-network/registryd/funds"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}
	target, err := checkAccount("target", c.String("target"))
	if nil != err {
		return err
	}

	message := c.String("message")
	if "" == message {
		return fmt.Errorf("missing message payload")
	}

	var inputAsset *funds.Asset
	if input := c.String("input"); "" != input {
		asset, err := parseAsset(input)
		if nil != err {
			return err
		}
		inputAsset = &asset
	}

	attached, err := parseAttached(c.StringSlice("attach"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "target: %s\n", target)
		fmt.Fprintf(m.e, "message: %s\n", message)
		fmt.Fprintf(m.e, "recurring: %v\n", c.Bool("recurring"))
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	createConfig := &rpccalls.CreateRequestData{
		Owner:       owner,
		Target:      target,
		Msg:         []byte(message),
		IsRecurring: c.Bool("recurring"),
		InputAsset:  inputAsset,
		Attached:    attached,
	}

	response, err := client.CreateRequest(createConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runCancel(c *cli.Context) error {

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

	response, err := client.CancelRequest(owner, c.Uint64("request-id"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runExecute(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	executor, err := checkAccount("executor", c.String("executor"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.ExecuteRequest(executor, c.Uint64("request-id"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runRequest(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetRequest(c.Uint64("request-id"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runRequests(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var startAfter *uint64
	if c.IsSet("start-after") {
		s := c.Uint64("start-after")
		startAfter = &s
	}

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.ListRequests(startAfter, c.Int("count"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
