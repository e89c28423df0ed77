// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
)

func TestFromString(t *testing.T) {

	testData := []struct {
		s   string
		err error
	}{
		{"aSq9DsNNvGhYxYyqA9wd2eduEAZ5AXWgJTbTHuEz", nil},
		{"2g7Kmvv1vkHzXnHDWJPbXgdqdgFhYx", nil},
		{"", fault.CannotDecodeAccount},
		{"0OIl", fault.CannotDecodeAccount}, // not base58 alphabet
		{"ab", fault.CannotDecodeAccount},   // too short when decoded
	}

	for i, item := range testData {
		a, err := account.FromString(item.s)
		if item.err != err {
			t.Errorf("%d: FromString(%q) error expected: %v  actual: %v", i, item.s, item.err, err)
			continue
		}
		if nil == err && item.s != a.String() {
			t.Errorf("%d: round trip expected: %q  actual: %q", i, item.s, a.String())
		}
	}
}

func TestMarshalling(t *testing.T) {

	a, err := account.FromString("aSq9DsNNvGhYxYyqA9wd2eduEAZ5AXWgJTbTHuEz")
	assert.Nil(t, err, "FromString failed")

	buffer, err := json.Marshal(a)
	assert.Nil(t, err, "marshal failed")
	assert.Equal(t, `"aSq9DsNNvGhYxYyqA9wd2eduEAZ5AXWgJTbTHuEz"`, string(buffer), "wrong json")

	var b account.Account
	err = json.Unmarshal(buffer, &b)
	assert.Nil(t, err, "unmarshal failed")
	assert.Equal(t, a, b, "wrong round trip")

	var z account.Account
	err = json.Unmarshal([]byte(`""`), &z)
	assert.Nil(t, err, "unmarshal of empty failed")
	assert.True(t, z.IsZero(), "empty is not zero sentinel")
}
