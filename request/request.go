// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"encoding/binary"
	"math"

	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/storage"
)

// control pool keys
var (
	nextIdKey        = []byte("next-request-id")
	totalRequestsKey = []byte("total-requests")
)

// pagination bounds for Scan
const (
	defaultScanLimit = 10
	maximumScanLimit = 30
)

// NextId - allocate the next request id inside a pending transaction
//
// ids are strictly monotonic and never reused, aborting the
// transaction releases the id unassigned
func NextId(trx storage.Transaction) uint64 {
	id, _ := trx.GetN(storage.Pool.Control, nextIdKey)
	trx.PutN(storage.Pool.Control, nextIdKey, id+1)
	return id
}

// Store - stage a new record and bump the live count
func Store(trx storage.Transaction, request *Request) {
	trx.Put(storage.Pool.Requests, Key(request.Id), request.Pack())
	count, _ := trx.GetN(storage.Pool.Control, totalRequestsKey)
	trx.PutN(storage.Pool.Control, totalRequestsKey, count+1)
}

// Remove - stage removal of a live record and drop the live count
func Remove(trx storage.Transaction, id uint64) {
	trx.Delete(storage.Pool.Requests, Key(id))
	count, _ := trx.GetN(storage.Pool.Control, totalRequestsKey)
	trx.PutN(storage.Pool.Control, totalRequestsKey, count-1)
}

// Get - fetch a live record
func Get(id uint64) (*Request, bool) {
	packed := storage.Pool.Requests.Get(Key(id))
	if nil == packed {
		return nil, false
	}
	request, err := Unpack(id, packed)
	if nil != err {
		return nil, false
	}
	return request, true
}

// Has - true when the id is live
func Has(id uint64) bool {
	return storage.Pool.Requests.Has(Key(id))
}

// Count - number of live records
func Count() uint64 {
	count, _ := storage.Pool.Control.GetN(totalRequestsKey)
	return count
}

// LastId - the id that will be assigned next
func LastId() uint64 {
	id, _ := storage.Pool.Control.GetN(nextIdKey)
	return id
}

// Scan - a page of live records in ascending id order
//
// startAfter is exclusive, nil starts from the lowest live id
func Scan(startAfter *uint64, limit int) ([]Request, error) {
	if limit <= 0 {
		limit = defaultScanLimit
	} else if limit > maximumScanLimit {
		limit = maximumScanLimit
	}

	cursor := storage.Pool.Requests.NewFetchCursor()
	if nil != startAfter {
		if math.MaxUint64 == *startAfter {
			return []Request{}, nil
		}
		cursor.Seek(Key(*startAfter + 1))
	}

	elements, err := cursor.Fetch(limit)
	if nil != err {
		return nil, err
	}

	page := make([]Request, 0, len(elements))
	for _, e := range elements {
		if 8 != len(e.Key) {
			return nil, fault.DataInconsistent
		}
		id := binary.BigEndian.Uint64(e.Key)
		request, err := Unpack(id, e.Value)
		if nil != err {
			return nil, err
		}
		page = append(page, *request)
	}
	return page, nil
}

// CheckConsistency - verify the live records against the counters
func CheckConsistency() error {
	count := uint64(0)
	highest := uint64(0)
	seen := false

	cursor := storage.Pool.Requests.NewFetchCursor()
	err := cursor.Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			return fault.DataInconsistent
		}
		id := binary.BigEndian.Uint64(key)
		_, err := Unpack(id, value)
		if nil != err {
			return err
		}
		count += 1
		highest = id
		seen = true
		return nil
	})
	if nil != err {
		return err
	}

	if count != Count() {
		return fault.DataInconsistent
	}
	if seen && highest >= LastId() {
		return fault.DataInconsistent
	}
	return nil
}
