// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/storage"
)

func TestTransactionInUse(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "first Begin should not error")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.TransactionInUse, err, "second Begin should report in use")

	trx.Abort()

	_, err = storage.NewDBTransaction()
	assert.Nil(t, err, "Begin after Abort should not error")
}

func TestTransactionCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "Begin should not error")

	trx.Put(p, []byte("alpha"), []byte("one"))
	trx.PutN(p, []byte("beta"), 2)
	err = trx.Commit()
	assert.Nil(t, err, "Commit should not error")

	assert.Equal(t, []byte("one"), p.Get([]byte("alpha")), "staged put not visible after Commit")
	n, ok := p.GetN([]byte("beta"))
	assert.True(t, ok, "staged PutN not visible after Commit")
	assert.Equal(t, uint64(2), n, "wrong counter after Commit")
}

func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	p.Put([]byte("keep"), []byte("kept"))

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "Begin should not error")

	trx.Put(p, []byte("discard"), []byte("lost"))
	trx.Delete(p, []byte("keep"))
	trx.Abort()

	assert.Nil(t, p.Get([]byte("discard")), "aborted put became visible")
	assert.Equal(t, []byte("kept"), p.Get([]byte("keep")), "aborted delete was applied")
}

func TestTransactionReadsThrough(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	p.Put([]byte("existing"), []byte("value"))
	p.PutN([]byte("counter"), 9)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "Begin should not error")
	defer trx.Abort()

	assert.Equal(t, []byte("value"), trx.Get(p, []byte("existing")), "Get inside transaction")
	assert.True(t, trx.Has(p, []byte("existing")), "Has inside transaction")

	n, ok := trx.GetN(p, []byte("counter"))
	assert.True(t, ok, "GetN inside transaction")
	assert.Equal(t, uint64(9), n, "GetN value inside transaction")
}
