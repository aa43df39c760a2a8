// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bigchaindb/bigchaindb-common/util"
)

// markers for optional items
const (
	markerAbsent  = 0x00
	markerPresent = 0x01
)

// Pack - canonical byte encoding of a simple fulfillment
//
// Varint64(tag) followed by the length-prefixed key and signature
func (fulfillment *SimpleFulfillment) Pack() Packed {
	message := util.ToVarint64(uint64(SimpleTag))
	message = appendBytes(message, fulfillment.PublicKey)
	message = appendBytes(message, fulfillment.Signature)
	return message
}

// Pack - canonical byte encoding of a threshold fulfillment
//
// Varint64(tag), threshold and count, then each branch with a
// present/absent marker: a packed fulfillment or a packed fingerprint
//
// branches are emitted in submitted order; verification reconstructs
// the fingerprint multiset so the order carries no meaning
func (fulfillment *ThresholdFulfillment) Pack() Packed {
	message := util.ToVarint64(uint64(ThresholdTag))
	message = append(message, util.ToVarint64(fulfillment.Threshold)...)
	message = append(message, util.ToVarint64(uint64(len(fulfillment.Subfulfillments)))...)
	for _, sub := range fulfillment.Subfulfillments {
		if nil == sub.Fulfillment {
			message = append(message, markerAbsent)
			message = append(message, sub.Condition.Pack()...)
		} else {
			message = append(message, markerPresent)
			message = append(message, sub.Fulfillment.Pack()...)
		}
	}
	return message
}

// append a length-prefixed field to a buffer
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}
