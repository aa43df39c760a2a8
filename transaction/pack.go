// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/util"
)

// markers for optional items
const (
	markerAbsent  = 0x00
	markerPresent = 0x01
)

// pack the transaction body
//
// Pack Varint64(tag) followed by fields in struct order; every
// optional item carries a present/absent marker so the encoding is
// structurally unambiguous
//
// the id form (withFulfillments false) forces every input's
// fulfillment marker to absent, leaving only the declared condition
// fingerprints - live fulfillment bytes never reach the id
func (tx *Transaction) packBody(withFulfillments bool) Packed {

	message := util.ToVarint64(uint64(tx.Operation))
	message = append(message, util.ToVarint64(tx.Version)...)

	message = append(message, util.ToVarint64(uint64(len(tx.Inputs)))...)
	for _, input := range tx.Inputs {

		if nil == input.Fulfills {
			message = append(message, markerAbsent)
		} else {
			message = append(message, markerPresent)
			message = append(message, input.Fulfills.TxId[:]...)
			message = append(message, util.ToVarint64(input.Fulfills.OutputIndex)...)
		}

		message = append(message, util.ToVarint64(uint64(len(input.Owners)))...)
		for _, owner := range input.Owners {
			message = appendBytes(message, owner)
		}

		message = append(message, input.Condition.Pack()...)

		if withFulfillments && nil != input.Fulfillment {
			message = append(message, markerPresent)
			message = append(message, input.Fulfillment.Pack()...)
		} else {
			message = append(message, markerAbsent)
		}
	}

	message = append(message, util.ToVarint64(uint64(len(tx.Outputs)))...)
	for _, output := range tx.Outputs {
		message = append(message, output.Condition.Pack()...)
		message = append(message, util.ToVarint64(output.Amount)...)
		message = append(message, util.ToVarint64(uint64(len(output.Owners)))...)
		for _, owner := range output.Owners {
			message = appendBytes(message, owner)
		}
	}

	if nil == tx.Asset.Origin {
		message = append(message, markerAbsent)
		message = appendBytes(message, tx.Asset.Payload)
	} else {
		message = append(message, markerPresent)
		message = append(message, tx.Asset.Origin[:]...)
	}

	if 0 == len(tx.Metadata) {
		message = append(message, markerAbsent)
	} else {
		message = append(message, markerPresent)
		message = appendBytes(message, tx.Metadata)
	}

	return message
}

// ComputeId - digest of the fulfillment-stripped canonical encoding
//
// stable across signing: attaching fulfillments cannot change the id
func (tx *Transaction) ComputeId() (digest.Digest, error) {
	err := tx.CheckStructure()
	if nil != err {
		return digest.Digest{}, err
	}
	return digest.NewDigest(tx.packBody(false)), nil
}

// SignableMessage - the exact bytes a fulfillment for input i must sign
//
// the id form of the body plus, for an input spending a previous
// output, the link being spent; the suffix binds each signature to
// the specific output so fulfillments cannot be replayed across inputs
func (tx *Transaction) SignableMessage(i int) ([]byte, error) {
	if i < 0 || i >= len(tx.Inputs) {
		return nil, fault.ErrInputOutOfRange
	}
	err := tx.CheckStructure()
	if nil != err {
		return nil, err
	}

	message := []byte(tx.packBody(false))
	if fulfills := tx.Inputs[i].Fulfills; nil != fulfills {
		message = append(message, fulfills.TxId[:]...)
		message = append(message, util.ToVarint64(fulfills.OutputIndex)...)
	}
	return message, nil
}

// Pack - canonical on-wire encoding
//
// the body with live fulfillments, id appended last; independent
// implementations must agree on every byte for ids and fulfillment
// verification to interoperate
func (tx *Transaction) Pack() (Packed, error) {
	id, err := tx.ComputeId()
	if nil != err {
		return nil, err
	}
	if id != tx.Id {
		return nil, fault.ErrTransactionIdMismatch
	}
	message := tx.packBody(true)
	return append(message, id[:]...), nil
}

// Type - returns the operation code of a packed record
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// append a length-prefixed field to a buffer
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}
