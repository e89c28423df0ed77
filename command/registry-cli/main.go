// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connection string
	verbose    bool
	e          io.Writer
	w          io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "registry-cli"
	app.Usage = "command line client for registryd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connection, c",
			Value: "127.0.0.1:2230",
			Usage: " registryd RPC `HOST:PORT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display registryd status",
			Flags:  []cli.Flag{},
			Action: runInfo,
		},
		{
			Name:      "create",
			Usage:     "queue a request for later execution",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*request owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "target, t",
					Value: "",
					Usage: "*callable target `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: "*call payload `JSON`",
				},
				cli.BoolFlag{
					Name:  "recurring, r",
					Usage: " make the request recurring",
				},
				cli.StringFlag{
					Name:  "input, i",
					Value: "",
					Usage: " input asset `DENOM:AMOUNT` forwarded on execution",
				},
				cli.StringSliceFlag{
					Name:  "attach, a",
					Usage: " attached funds `DENOM:AMOUNT`, repeatable",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "cancel",
			Usage:     "remove an owned request and refund its escrow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*request owner `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "request-id, r",
					Usage: "*request `ID` to cancel",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "execute",
			Usage:     "dispatch a queued request to its target",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "executor, e",
					Value: "",
					Usage: "*staked executor `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "request-id, r",
					Usage: "*request `ID` to execute",
				},
			},
			Action: runExecute,
		},
		{
			Name:  "request",
			Usage: "fetch one request by id",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "request-id, r",
					Usage: "*request `ID` to fetch",
				},
			},
			Action: runRequest,
		},
		{
			Name:  "requests",
			Usage: "scan queued requests in ascending id order",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start-after, s",
					Usage: " scan only ids greater than `ID`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Usage: " page size (0 for the server default)",
				},
			},
			Action: runRequests,
		},
		{
			Name:      "stake",
			Usage:     "append stake entries for an executor",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "staker, s",
					Value: "",
					Usage: "*staker `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "num-added, n",
					Usage: "*number of stake units to add",
				},
				cli.StringSliceFlag{
					Name:  "attach, a",
					Usage: " attached funds `DENOM:AMOUNT`, repeatable",
				},
			},
			Action: runStake,
		},
		{
			Name:      "unstake",
			Usage:     "remove owned stake entries and refund the stake",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "staker, s",
					Value: "",
					Usage: "*staker `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "idxs, i",
					Value: "",
					Usage: "*comma separated stake `INDICES`, resolved in order",
				},
			},
			Action: runUnstake,
		},
		{
			Name:      "refresh",
			Usage:     "touch the stake table and report executor standing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
			},
			Action: runRefresh,
		},
		{
			Name:  "stakes",
			Usage: "list stake entries in table order",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Usage: " first index to list",
				},
				cli.IntFlag{
					Name:  "count, n",
					Usage: " page size (0 for the server default)",
				},
			},
			Action: runStakes,
		},
		{
			Name:  "balance",
			Usage: "stake and recurring fee balances of an account",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "fee-deposit",
			Usage:     "prepay a number of recurring fees",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*fee account `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "num-fees, n",
					Usage: "*number of fees to prepay",
				},
				cli.StringSliceFlag{
					Name:  "attach, a",
					Usage: " attached funds `DENOM:AMOUNT`, repeatable",
				},
			},
			Action: runFeeDeposit,
		},
		{
			Name:      "fee-withdraw",
			Usage:     "reclaim a number of prepaid recurring fees",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*fee account `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "num-fees, n",
					Usage: "*number of fees to reclaim",
				},
			},
			Action: runFeeWithdraw,
		},
		{
			Name:      "update-config",
			Usage:     "change the mutable operating parameters",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, C",
					Value: "",
					Usage: "*registry owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "fee-amount, f",
					Value: "",
					Usage: " new execution fee `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "blocks-in-epoch, b",
					Value: "",
					Usage: " new epoch length in `BLOCKS`",
				},
			},
			Action: runUpdateConfig,
		},
		{
			Name:      "propose-owner",
			Usage:     "nominate a new registry owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, C",
					Value: "",
					Usage: "*registry owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "proposed, p",
					Value: "",
					Usage: " proposed owner `ACCOUNT` (empty withdraws the proposal)",
				},
			},
			Action: runProposeOwner,
		},
		{
			Name:      "claim-ownership",
			Usage:     "complete a proposed ownership handover",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, C",
					Value: "",
					Usage: "*proposed owner `ACCOUNT`",
				},
			},
			Action: runClaimOwnership,
		},
		{
			Name:      "blacklist",
			Usage:     "add or remove a target from the creation blacklist",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, C",
					Value: "",
					Usage: "*registry owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "target, t",
					Value: "",
					Usage: "*target `ACCOUNT`",
				},
				cli.BoolFlag{
					Name:  "remove, r",
					Usage: " remove instead of add",
				},
			},
			Action: runBlacklist,
		},
		{
			Name:   "version",
			Usage:  "display this program version",
			Flags:  []cli.Flag{},
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connection: c.GlobalString("connection"),
			verbose:    c.GlobalBool("verbose"),
			e:          app.ErrWriter,
			w:          app.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		os.Exit(1)
	}
}
