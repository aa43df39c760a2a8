// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bigchaindb/bigchaindb-common/condition"
	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/util"
)

// Unpack - turn a wire record back into a transaction
//
// the trailing id is checked against a recomputation over the decoded
// fields, so a record whose id was forged or whose body was altered
// after signing is rejected here before any cryptographic check
func (record Packed) Unpack() (tx *Transaction, e error) {

	// tolerate truncated buffers without panicking
	defer func() {
		if r := recover(); nil != r {
			tx = nil
			e = fault.ErrNotTransactionPack
		}
	}()

	tag, n := util.FromVarint64(record)
	if 0 == n {
		return nil, fault.ErrNotTransactionPack
	}
	if CreateTag != TagType(tag) && TransferTag != TagType(tag) {
		return nil, fault.ErrInvalidOperation
	}

	version, versionLength := util.FromVarint64(record[n:])
	if 0 == versionLength {
		return nil, fault.ErrNotTransactionPack
	}
	if Version != version {
		return nil, fault.ErrUnsupportedVersion
	}
	n += versionLength

	inputCount, inputCountOffset := util.ClippedVarint64(record[n:], 1, maxInputs)
	if 0 == inputCountOffset {
		return nil, fault.ErrNotTransactionPack
	}
	n += inputCountOffset

	inputs := make([]Input, inputCount)
	for i := 0; i < inputCount; i += 1 {

		// fulfills
		switch record[n] {
		case markerAbsent:
			n += 1
		case markerPresent:
			n += 1
			if len(record) < n+digest.Length {
				return nil, fault.ErrNotTransactionPack
			}
			link := Link{}
			copy(link.TxId[:], record[n:n+digest.Length])
			n += digest.Length
			index, indexLength := util.FromVarint64(record[n:])
			if 0 == indexLength {
				return nil, fault.ErrNotTransactionPack
			}
			n += indexLength
			link.OutputIndex = index
			inputs[i].Fulfills = &link
		default:
			return nil, fault.ErrNotTransactionPack
		}

		owners, ownersLength, err := unpackOwners(record[n:])
		if nil != err {
			return nil, err
		}
		n += ownersLength
		inputs[i].Owners = owners

		fingerprint, fingerprintLength, err := condition.FingerprintFromBytes(record[n:])
		if nil != err {
			return nil, err
		}
		n += fingerprintLength
		inputs[i].Condition = fingerprint

		// fulfillment
		switch record[n] {
		case markerAbsent:
			n += 1
		case markerPresent:
			n += 1
			fulfillment, fulfillmentLength, err := condition.Packed(record[n:]).Unpack()
			if nil != err {
				return nil, err
			}
			n += fulfillmentLength
			inputs[i].Fulfillment = fulfillment
		default:
			return nil, fault.ErrNotTransactionPack
		}
	}

	outputCount, outputCountOffset := util.ClippedVarint64(record[n:], 1, maxOutputs)
	if 0 == outputCountOffset {
		return nil, fault.ErrNotTransactionPack
	}
	n += outputCountOffset

	outputs := make([]Output, outputCount)
	for i := 0; i < outputCount; i += 1 {

		fingerprint, fingerprintLength, err := condition.FingerprintFromBytes(record[n:])
		if nil != err {
			return nil, err
		}
		n += fingerprintLength
		outputs[i].Condition = fingerprint

		amount, amountLength := util.FromVarint64(record[n:])
		if 0 == amountLength {
			return nil, fault.ErrNotTransactionPack
		}
		n += amountLength
		outputs[i].Amount = amount

		owners, ownersLength, err := unpackOwners(record[n:])
		if nil != err {
			return nil, err
		}
		n += ownersLength
		outputs[i].Owners = owners
	}

	asset := Asset{}
	switch record[n] {
	case markerAbsent:
		n += 1
		payloadLength, payloadOffset := util.ClippedVarint64(record[n:], 0, maxPayloadLength)
		if 0 == payloadOffset {
			return nil, fault.ErrNotTransactionPack
		}
		n += payloadOffset
		if len(record) < n+payloadLength {
			return nil, fault.ErrNotTransactionPack
		}
		asset.Payload = append([]byte{}, record[n:n+payloadLength]...)
		n += payloadLength
	case markerPresent:
		n += 1
		if len(record) < n+digest.Length {
			return nil, fault.ErrNotTransactionPack
		}
		origin := digest.Digest{}
		copy(origin[:], record[n:n+digest.Length])
		n += digest.Length
		asset.Origin = &origin
	default:
		return nil, fault.ErrNotTransactionPack
	}

	var metadata []byte
	switch record[n] {
	case markerAbsent:
		n += 1
	case markerPresent:
		n += 1
		metadataLength, metadataOffset := util.ClippedVarint64(record[n:], 1, maxMetadataLength)
		if 0 == metadataOffset {
			return nil, fault.ErrNotTransactionPack
		}
		n += metadataOffset
		if len(record) < n+metadataLength {
			return nil, fault.ErrNotTransactionPack
		}
		metadata = append([]byte{}, record[n:n+metadataLength]...)
		n += metadataLength
	default:
		return nil, fault.ErrNotTransactionPack
	}

	// trailing id
	if len(record) != n+digest.Length {
		return nil, fault.ErrNotTransactionPack
	}
	storedId := digest.Digest{}
	copy(storedId[:], record[n:])

	tx = &Transaction{
		Operation: TagType(tag),
		Version:   version,
		Inputs:    inputs,
		Outputs:   outputs,
		Asset:     asset,
		Metadata:  metadata,
	}

	id, err := tx.ComputeId()
	if nil != err {
		return nil, err
	}
	if id != storedId {
		return nil, fault.ErrTransactionIdMismatch
	}
	tx.Id = id

	return tx, nil
}

// unpack a length-prefixed owner list
func unpackOwners(buffer []byte) ([]keypair.PublicKey, int, error) {
	count, countOffset := util.ClippedVarint64(buffer, 1, maxOwners)
	if 0 == countOffset {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n := countOffset

	owners := make([]keypair.PublicKey, count)
	for i := 0; i < count; i += 1 {
		keyLength, keyOffset := util.ClippedVarint64(buffer[n:], 1, 1024)
		if 0 == keyOffset {
			return nil, 0, fault.ErrNotTransactionPack
		}
		n += keyOffset
		if keypair.PublicKeySize != keyLength {
			return nil, 0, fault.ErrInvalidPublicKeyLength
		}
		if len(buffer) < n+keyLength {
			return nil, 0, fault.ErrNotTransactionPack
		}
		owners[i] = keypair.PublicKey(append([]byte{}, buffer[n:n+keyLength]...))
		n += keyLength
	}
	return owners, n, nil
}
