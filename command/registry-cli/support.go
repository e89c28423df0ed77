// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/funds"
)

func checkAccount(name string, s string) (account.Account, error) {
	if "" == s {
		return account.Nothing, fmt.Errorf("missing %s account", name)
	}
	a, err := account.FromString(s)
	if nil != err {
		return account.Nothing, fmt.Errorf("%s account: %q error: %s", name, s, err)
	}
	return a, nil
}

// parse "DENOM:AMOUNT" into an asset
func parseAsset(s string) (funds.Asset, error) {
	parts := strings.SplitN(s, ":", 2)
	if 2 != len(parts) || "" == parts[0] {
		return funds.Asset{}, fmt.Errorf("invalid asset: %q expected DENOM:AMOUNT", s)
	}
	amount, err := strconv.ParseUint(parts[1], 10, 64)
	if nil != err {
		return funds.Asset{}, fmt.Errorf("invalid asset amount: %q error: %s", parts[1], err)
	}
	return funds.Asset{
		Denom:  parts[0],
		Amount: amount,
	}, nil
}

func parseAttached(items []string) (funds.Attached, error) {
	attached := make(funds.Attached, 0, len(items))
	for _, item := range items {
		asset, err := parseAsset(item)
		if nil != err {
			return nil, err
		}
		attached = append(attached, asset)
	}
	return attached, nil
}

// parse "2,0,7" into the sequential withdrawal index list
func parseIndices(s string) ([]uint64, error) {
	if "" == s {
		return nil, fmt.Errorf("missing stake indices")
	}
	parts := strings.Split(s, ",")
	idxs := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if nil != err {
			return nil, fmt.Errorf("invalid stake index: %q error: %s", part, err)
		}
		idxs = append(idxs, n)
	}
	return idxs, nil
}

// an empty string means "leave unchanged"
func parseOptionalUint64(s string) (*uint64, error) {
	if "" == s {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return nil, fmt.Errorf("invalid number: %q error: %s", s, err)
	}
	return &n, nil
}
