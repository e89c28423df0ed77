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

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connection, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfoCompat()
	if nil != err {
		return err
	}
	response["_connection"] = m.connection

	printJson(m.w, response)

	return nil
}

func runVersion(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	fmt.Fprintf(m.w, "%s\n", version)
	return nil
}
