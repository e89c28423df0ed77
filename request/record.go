// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request

import (
	"encoding/binary"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/util"
)

// bits of the record flag byte
const (
	flagRecurring  = 0x01
	flagInputAsset = 0x02
)

// Request - one queued automation request
//
// the id is assigned at creation and never reused, a cancelled or
// completed id stays dead forever
type Request struct {
	Id          uint64          `json:"id"`
	Owner       account.Account `json:"owner"`
	Target      account.Account `json:"target"`
	Msg         []byte          `json:"msg"`
	IsRecurring bool            `json:"isRecurring"`
	InputAsset  *funds.Asset    `json:"inputAsset,omitempty"`
	CreatedAt   uint64          `json:"createdAt"`
}

// Key - the storage key of a request, big endian so iteration is in
// ascending id order
func Key(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// Pack - serialise a record for storage
//
// layout: flags, owner, target, msg, optional denom and amount,
// createdAt; each variable field is length prefixed by a varint
func (request *Request) Pack() []byte {
	flags := byte(0)
	if request.IsRecurring {
		flags |= flagRecurring
	}
	if nil != request.InputAsset {
		flags |= flagInputAsset
	}

	packed := []byte{flags}
	packed = appendBytes(packed, request.Owner.Bytes())
	packed = appendBytes(packed, request.Target.Bytes())
	packed = appendBytes(packed, request.Msg)
	if nil != request.InputAsset {
		packed = appendBytes(packed, []byte(request.InputAsset.Denom))
		packed = append(packed, util.ToVarint64(request.InputAsset.Amount)...)
	}
	packed = append(packed, util.ToVarint64(request.CreatedAt)...)
	return packed
}

// Unpack - deserialise a stored record, id comes from the key
func Unpack(id uint64, packed []byte) (*Request, error) {
	if 0 == len(packed) {
		return nil, fault.DataInconsistent
	}

	flags := packed[0]
	buffer := packed[1:]

	ownerBytes, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}
	owner, err := account.FromString(string(ownerBytes))
	if nil != err {
		return nil, err
	}

	targetBytes, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}
	target, err := account.FromString(string(targetBytes))
	if nil != err {
		return nil, err
	}

	msg, buffer, err := nextBytes(buffer)
	if nil != err {
		return nil, err
	}

	request := &Request{
		Id:          id,
		Owner:       owner,
		Target:      target,
		Msg:         msg,
		IsRecurring: 0 != flags&flagRecurring,
	}

	if 0 != flags&flagInputAsset {
		denom, rest, err := nextBytes(buffer)
		if nil != err {
			return nil, err
		}
		amount, count := util.FromVarint64(rest)
		if 0 == count {
			return nil, fault.DataInconsistent
		}
		request.InputAsset = &funds.Asset{
			Denom:  string(denom),
			Amount: amount,
		}
		buffer = rest[count:]
	}

	createdAt, count := util.FromVarint64(buffer)
	if 0 == count {
		return nil, fault.DataInconsistent
	}
	request.CreatedAt = createdAt

	return request, nil
}

func appendBytes(packed []byte, data []byte) []byte {
	packed = append(packed, util.ToVarint64(uint64(len(data)))...)
	return append(packed, data...)
}

func nextBytes(buffer []byte) ([]byte, []byte, error) {
	length, count := util.FromVarint64(buffer)
	if 0 == count || uint64(len(buffer)-count) < length {
		return nil, nil, fault.DataInconsistent
	}
	data := buffer[count : count+int(length)]
	return data, buffer[count+int(length):], nil
}
