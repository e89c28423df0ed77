// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/autonomy-network/registryd/fault"
)

// Access - batched access to the database
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
	PutNow([]byte, []byte) error
	DeleteNow([]byte) error
}

// AccessData - concrete access to one LevelDB database
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newDA(db *leveldb.DB, batch *leveldb.Batch, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: batch,
		cache: cache,
	}
}

// Begin - claim the batch for one transaction
func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.TransactionInUse
	}

	d.inUse = true
	return nil
}

// Put - stage a put into the current batch
func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

// Delete - stage a delete into the current batch
func (d *AccessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), []byte{})
	d.batch.Delete(key)
}

// PutNow - write one record immediately, bypassing the batch
//
// only for use outside of transactions
func (d *AccessData) PutNow(key []byte, value []byte) error {
	d.cache.Set(dbPut, string(key), value)
	return d.db.Put(key, value, nil)
}

// DeleteNow - delete one record immediately, bypassing the batch
func (d *AccessData) DeleteNow(key []byte) error {
	d.cache.Set(dbDelete, string(key), []byte{})
	return d.db.Delete(key, nil)
}

// Commit - write the current batch and release it
func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	d.inUse = false
	return err
}

// Abort - throw away the current batch
//
// the cache may hold staged values so it is cleared as well
func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

// Get - cached read
func (d *AccessData) Get(key []byte) ([]byte, error) {
	val, found := d.cache.Get(string(key))
	if found {
		return val, nil
	}
	return d.db.Get(key, nil)
}

// Has - cached existence check
func (d *AccessData) Has(key []byte) (bool, error) {
	_, found := d.cache.Get(string(key))
	if found {
		return true, nil
	}
	return d.db.Has(key, nil)
}

// Iterator - iterate committed records over a key range
func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

// InUse - check if a transaction holds the batch
func (d *AccessData) InUse() bool {
	return d.inUse
}
