// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds_test

import (
	"testing"

	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
)

func TestExact(t *testing.T) {

	testData := []struct {
		attached funds.Attached
		denom    string
		amount   uint64
		err      error
	}{
		{funds.Attached{{Denom: "uosmo", Amount: 1000}}, "uosmo", 1000, nil},
		{funds.Attached{{Denom: "uosmo", Amount: 500}, {Denom: "uosmo", Amount: 500}}, "uosmo", 1000, nil},
		{funds.Attached{{Denom: "uosmo", Amount: 999}}, "uosmo", 1000, fault.InvalidFunds},
		{funds.Attached{{Denom: "uosmo", Amount: 1001}}, "uosmo", 1000, fault.InvalidFunds},
		{funds.Attached{}, "uosmo", 1000, fault.InvalidFunds},
		{funds.Attached{{Denom: "uion", Amount: 1000}}, "uosmo", 1000, fault.InvalidFunds},
		{funds.Attached{{Denom: "uosmo", Amount: 1000}, {Denom: "uion", Amount: 1}}, "uosmo", 1000, fault.InvalidFunds},
		{funds.Attached{{Denom: "uosmo", Amount: 1000}, {Denom: "uion", Amount: 0}}, "uosmo", 1000, nil},
	}

	for i, item := range testData {
		err := item.attached.Exact(item.denom, item.amount)
		if item.err != err {
			t.Errorf("%d: Exact(%s, %d) error expected: %v  actual: %v", i, item.denom, item.amount, item.err, err)
		}
	}
}

func TestExactTwo(t *testing.T) {

	fee := funds.Asset{Denom: "uosmo", Amount: 1000}

	testData := []struct {
		attached funds.Attached
		input    funds.Asset
		err      error
	}{
		{funds.Attached{{Denom: "uosmo", Amount: 1000}, {Denom: "uion", Amount: 77}}, funds.Asset{Denom: "uion", Amount: 77}, nil},
		{funds.Attached{{Denom: "uosmo", Amount: 1077}}, funds.Asset{Denom: "uosmo", Amount: 77}, nil},
		{funds.Attached{{Denom: "uosmo", Amount: 1000}}, funds.Asset{Denom: "uion", Amount: 77}, fault.InvalidFunds},
		{funds.Attached{{Denom: "uosmo", Amount: 1000}, {Denom: "uion", Amount: 78}}, funds.Asset{Denom: "uion", Amount: 77}, fault.InvalidFunds},
		{funds.Attached{{Denom: "uosmo", Amount: 1000}, {Denom: "uion", Amount: 77}, {Denom: "ufoo", Amount: 1}}, funds.Asset{Denom: "uion", Amount: 77}, fault.InvalidFunds},
	}

	for i, item := range testData {
		err := item.attached.ExactTwo(fee, item.input)
		if item.err != err {
			t.Errorf("%d: ExactTwo(%v, %v) error expected: %v  actual: %v", i, fee, item.input, item.err, err)
		}
	}
}
