// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// Transaction - staged writes across any number of pools
// committed as a single batched write
//
// reads inside a transaction observe the staged writes through the
// cache; Abort discards everything staged
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transactionData struct {
	dataAccess Access
}

func newTransaction(dataAccess Access) Transaction {
	return &transactionData{
		dataAccess: dataAccess,
	}
}

// Put - stage a key/value pair for one pool
func (t *transactionData) Put(p *PoolHandle, key []byte, value []byte) {
	t.dataAccess.Put(p.prefixKey(key), value)
}

// PutN - stage a big endian uint64 value
func (t *transactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.dataAccess.Put(p.prefixKey(key), buffer)
}

// Delete - stage a delete for one pool
func (t *transactionData) Delete(p *PoolHandle, key []byte) {
	t.dataAccess.Delete(p.prefixKey(key))
}

// Get - read through the staged writes
func (t *transactionData) Get(p *PoolHandle, key []byte) []byte {
	return p.Get(key)
}

// GetN - read a big endian uint64 through the staged writes
func (t *transactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return p.GetN(key)
}

// Has - existence check through the staged writes
func (t *transactionData) Has(p *PoolHandle, key []byte) bool {
	return p.Has(key)
}

// Commit - write all staged records in one batch
func (t *transactionData) Commit() error {
	return t.dataAccess.Commit()
}

// Abort - discard all staged records
func (t *transactionData) Abort() {
	t.dataAccess.Abort()
}
