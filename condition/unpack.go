// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/util"
)

// deepest threshold nesting accepted from the wire; recursion past
// this limit would risk the stack instead of returning an error
const maxNestingDepth = 16

// Unpack - turn a byte slice into a fulfillment
//
// must cast the result to the correct type, e.g.
//   simple, ok := result.(*condition.SimpleFulfillment)
// or switch on the concrete type
func (record Packed) Unpack() (Fulfillment, int, error) {
	return unpackFulfillment(record, 1)
}

func unpackFulfillment(buffer []byte, depth int) (Fulfillment, int, error) {

	if depth > maxNestingDepth {
		return nil, 0, fault.ErrNotFulfillmentPack
	}

	tag, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, 0, fault.ErrNotFulfillmentPack
	}

	switch TagType(tag) {

	case SimpleTag:

		// public key
		keyLength, keyOffset := util.ClippedVarint64(buffer[n:], 1, 1024)
		if 0 == keyOffset {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		n += keyOffset
		if keypair.PublicKeySize != keyLength {
			return nil, 0, fault.ErrInvalidPublicKeyLength
		}
		if len(buffer) < n+keyLength {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		publicKey := append([]byte{}, buffer[n:n+keyLength]...)
		n += keyLength

		// signature
		signatureLength, signatureOffset := util.ClippedVarint64(buffer[n:], 1, 1024)
		if 0 == signatureOffset {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		n += signatureOffset
		if keypair.SignatureSize != signatureLength {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		if len(buffer) < n+signatureLength {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		signature := append([]byte{}, buffer[n:n+signatureLength]...)
		n += signatureLength

		return &SimpleFulfillment{
			PublicKey: keypair.PublicKey(publicKey),
			Signature: keypair.Signature(signature),
		}, n, nil

	case ThresholdTag:

		threshold, thresholdLength := util.FromVarint64(buffer[n:])
		if 0 == thresholdLength {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		n += thresholdLength

		count, countOffset := util.ClippedVarint64(buffer[n:], 1, maxSubconditions)
		if 0 == countOffset {
			return nil, 0, fault.ErrNotFulfillmentPack
		}
		n += countOffset

		if 0 == threshold || threshold > uint64(count) {
			return nil, 0, fault.ErrInvalidThreshold
		}

		subs := make([]Subfulfillment, count)
		for i := 0; i < count; i += 1 {
			if n >= len(buffer) {
				return nil, 0, fault.ErrNotFulfillmentPack
			}
			marker := buffer[n]
			n += 1
			switch marker {
			case markerAbsent:
				fingerprint, fingerprintLength, err := FingerprintFromBytes(buffer[n:])
				if nil != err {
					return nil, 0, err
				}
				n += fingerprintLength
				subs[i] = Subfulfillment{Condition: fingerprint}
			case markerPresent:
				sub, subLength, err := unpackFulfillment(buffer[n:], depth+1)
				if nil != err {
					return nil, 0, err
				}
				n += subLength
				subs[i] = Subfulfillment{Fulfillment: sub}
			default:
				return nil, 0, fault.ErrNotFulfillmentPack
			}
		}

		return &ThresholdFulfillment{
			Threshold:       threshold,
			Subfulfillments: subs,
		}, n, nil

	default:
		return nil, 0, fault.ErrUnknownConditionType
	}
}
