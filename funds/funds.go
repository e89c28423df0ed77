// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - denominated asset amounts
//
// an Asset is an amount of one denomination; Attached is the
// introspection view of the assets a caller sent along with the
// current call
package funds

import (
	"fmt"

	"github.com/autonomy-network/registryd/fault"
)

// Asset - an amount of a single denomination
type Asset struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

// Attached - the assets attached to the current call by its caller
type Attached []Asset

// IsZero - detect an empty asset
func (asset Asset) IsZero() bool {
	return 0 == asset.Amount
}

// String - asset as "amount denom" for logging
func (asset Asset) String() string {
	return fmt.Sprintf("%d %s", asset.Amount, asset.Denom)
}

// Validate - check an asset is well formed
func (asset Asset) Validate() error {
	if "" == asset.Denom {
		return fault.InvalidDenomination
	}
	return nil
}

// Find - amount of a particular denomination, zero if absent
func (attached Attached) Find(denom string) uint64 {
	total := uint64(0)
	for _, a := range attached {
		if denom == a.Denom {
			total += a.Amount
		}
	}
	return total
}

// Exact - check the attachment is exactly one amount of one denomination
//
// the registry demands exact payments so that custody accounting
// stays trivially reconcilable
func (attached Attached) Exact(denom string, amount uint64) error {
	for _, a := range attached {
		if denom != a.Denom && 0 != a.Amount {
			return fault.InvalidFunds
		}
	}
	if amount != attached.Find(denom) {
		return fault.InvalidFunds
	}
	return nil
}

// ExactTwo - check the attachment covers exactly two required assets
//
// used by request creation when a fee and an input asset arrive in
// the same call; the two denominations may coincide
func (attached Attached) ExactTwo(first Asset, second Asset) error {
	if first.Denom == second.Denom {
		return attached.Exact(first.Denom, first.Amount+second.Amount)
	}
	for _, a := range attached {
		if first.Denom != a.Denom && second.Denom != a.Denom && 0 != a.Amount {
			return fault.InvalidFunds
		}
	}
	if first.Amount != attached.Find(first.Denom) {
		return fault.InvalidFunds
	}
	if second.Amount != attached.Find(second.Denom) {
		return fault.InvalidFunds
	}
	return nil
}
