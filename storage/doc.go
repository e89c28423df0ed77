// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database with prefixed keys so that
// each logical pool is a contiguous key range:
//
//   R ⧺ request id        - packed request record
//                           (id is big endian uint64 so iteration is ascending by id)
//   S ⧺ stake index       - stake entry owner account
//                           (index is big endian uint64, the dense arena position)
//   F ⧺ owner account     - recurring fee balance
//                           data: big endian uint64
//   B ⧺ target account    - blacklisted target marker
//   N ⧺ name              - control values and aggregate counters
//                           (next-request-id, total-requests, stakes-len,
//                            total-stake-amount, total-recurring-fee, config)
//   Z ⧺ key               - test data
//
// every public registry operation stages its writes in one
// Transaction and commits them with a single batched write, which is
// what makes each operation all-or-nothing
package storage
