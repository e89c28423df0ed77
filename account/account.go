// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - registry account identifiers
//
// accounts are opaque base58 identifiers; key management and
// signature checking belong to the enclosing ledger environment,
// not to the registry
package account

import (
	"github.com/mr-tron/base58"

	"github.com/autonomy-network/registryd/fault"
)

// length limits for the decoded identifier
const (
	minimumDecodedLength = 4
	maximumDecodedLength = 64
)

// Account - a validated account identifier
type Account string

// Nothing - the empty sentinel
//
// a cancelled or removed request reads back with this as its target
const Nothing = Account("")

// FromString - validate a string as an account identifier
func FromString(s string) (Account, error) {
	if "" == s {
		return Nothing, fault.CannotDecodeAccount
	}
	data, err := base58.Decode(s)
	if nil != err {
		return Nothing, fault.CannotDecodeAccount
	}
	if len(data) < minimumDecodedLength || len(data) > maximumDecodedLength {
		return Nothing, fault.CannotDecodeAccount
	}
	return Account(s), nil
}

// IsZero - detect the empty sentinel
func (account Account) IsZero() bool {
	return "" == account
}

// String - convert to its string form
func (account Account) String() string {
	return string(account)
}

// Bytes - the identifier as a byte slice, for use as a storage key
func (account Account) Bytes() []byte {
	return []byte(account)
}

// MarshalText - for json encoded transport
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account), nil
}

// UnmarshalText - for json encoded transport
func (account *Account) UnmarshalText(s []byte) error {
	if 0 == len(s) {
		*account = Nothing
		return nil
	}
	a, err := FromString(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
