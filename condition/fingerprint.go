// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/util"
)

// Fingerprint - the stored identity of a condition
//
// a fixed size digest of the condition structure together with its
// declared cost and type tag; this is what outputs actually record
type Fingerprint struct {
	Type   TagType       `json:"type"`
	Cost   uint64        `json:"cost"`
	Digest digest.Digest `json:"digest"`
}

// fingerprint of a single-key condition
//
// digest over Varint64(tag) followed by the length-prefixed key
func simpleFingerprint(publicKey []byte) Fingerprint {
	message := util.ToVarint64(uint64(SimpleTag))
	message = appendBytes(message, publicKey)
	return Fingerprint{
		Type:   SimpleTag,
		Cost:   SimpleCost,
		Digest: digest.NewDigest(message),
	}
}

// fingerprint of a threshold condition
//
// digest over Varint64(tag), threshold, count and the packed
// subcondition fingerprints sorted by their own encoding; sorting
// makes the result independent of construction order
func thresholdFingerprint(threshold uint64, subconditions []Fingerprint) Fingerprint {
	packed := make([][]byte, len(subconditions))
	for i, sub := range subconditions {
		packed[i] = sub.Pack()
	}
	sort.Slice(packed, func(i, j int) bool {
		return bytes.Compare(packed[i], packed[j]) < 0
	})

	message := util.ToVarint64(uint64(ThresholdTag))
	message = append(message, util.ToVarint64(threshold)...)
	message = append(message, util.ToVarint64(uint64(len(packed)))...)
	for _, p := range packed {
		message = append(message, p...)
	}

	return Fingerprint{
		Type:   ThresholdTag,
		Cost:   thresholdCost(threshold, subconditions),
		Digest: digest.NewDigest(message),
	}
}

// declared cost of a threshold condition: the sum of the threshold
// largest subcondition costs plus a fixed per-subcondition overhead
func thresholdCost(threshold uint64, subconditions []Fingerprint) uint64 {
	costs := make([]uint64, len(subconditions))
	for i, sub := range subconditions {
		costs[i] = sub.Cost
	}
	sort.Slice(costs, func(i, j int) bool { return costs[i] > costs[j] })

	cost := uint64(len(subconditions)) * thresholdCostUnit
	for i := uint64(0); i < threshold && i < uint64(len(costs)); i += 1 {
		cost += costs[i]
	}
	return cost
}

// Pack - canonical byte encoding of a fingerprint
//
// Varint64(tag) followed by Varint64(cost) and the length-prefixed digest
func (fingerprint Fingerprint) Pack() Packed {
	message := util.ToVarint64(uint64(fingerprint.Type))
	message = append(message, util.ToVarint64(fingerprint.Cost)...)
	message = appendBytes(message, fingerprint.Digest[:])
	return message
}

// FingerprintFromBytes - unpack a fingerprint from the start of a buffer
//
// also returns the number of bytes used
func FingerprintFromBytes(buffer []byte) (Fingerprint, int, error) {
	fingerprint := Fingerprint{}

	tag, n := util.FromVarint64(buffer)
	if 0 == n {
		return fingerprint, 0, fault.ErrNotFingerprintPack
	}
	if SimpleTag != TagType(tag) && ThresholdTag != TagType(tag) {
		return fingerprint, 0, fault.ErrUnknownConditionType
	}

	cost, costLength := util.FromVarint64(buffer[n:])
	if 0 == costLength {
		return fingerprint, 0, fault.ErrNotFingerprintPack
	}
	n += costLength

	digestLength, digestOffset := util.ClippedVarint64(buffer[n:], digest.Length, digest.Length+1)
	if digest.Length != digestLength {
		return fingerprint, 0, fault.ErrNotFingerprintPack
	}
	n += digestOffset
	if len(buffer) < n+digestLength {
		return fingerprint, 0, fault.ErrNotFingerprintPack
	}

	fingerprint.Type = TagType(tag)
	fingerprint.Cost = cost
	copy(fingerprint.Digest[:], buffer[n:n+digestLength])
	n += digestLength

	return fingerprint, n, nil
}

// UnpackFingerprint - decode a packed fingerprint
//
// the whole buffer must be consumed
func UnpackFingerprint(buffer []byte) (Fingerprint, error) {
	fingerprint, n, err := FingerprintFromBytes(buffer)
	if nil != err {
		return Fingerprint{}, err
	}
	if n != len(buffer) {
		return Fingerprint{}, fault.ErrNotFingerprintPack
	}
	return fingerprint, nil
}

// String - Base58 encoding of the packed fingerprint
func (fingerprint Fingerprint) String() string {
	return util.ToBase58(fingerprint.Pack())
}

// typeName - stable name of the condition type for the URI form
func (tag TagType) typeName() string {
	switch tag {
	case SimpleTag:
		return "ed25519-sha3-256"
	case ThresholdTag:
		return "threshold-sha3-256"
	default:
		return "invalid"
	}
}

// URI - RFC style condition URI
//
// e.g. ni:///sha3-256;47DEQpj8…?fpt=ed25519-sha3-256&cost=131072
func (fingerprint Fingerprint) URI() string {
	encoded := base64.RawURLEncoding.EncodeToString(fingerprint.Digest[:])
	return fmt.Sprintf("ni:///sha3-256;%s?fpt=%s&cost=%d",
		encoded, fingerprint.Type.typeName(), fingerprint.Cost)
}

// MarshalText - convert a fingerprint to its Base58 JSON form
func (fingerprint Fingerprint) MarshalText() ([]byte, error) {
	return []byte(fingerprint.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to a fingerprint
func (fingerprint *Fingerprint) UnmarshalText(s []byte) error {
	f, err := FingerprintFromBase58(string(s))
	if nil != err {
		return err
	}
	*fingerprint = f
	return nil
}

// FingerprintFromBase58 - decode the Base58 text form
func FingerprintFromBase58(fingerprintBase58Encoded string) (Fingerprint, error) {
	decoded := util.FromBase58(fingerprintBase58Encoded)
	if 0 == len(decoded) {
		return Fingerprint{}, fault.ErrNotFingerprintPack
	}
	return UnpackFingerprint(decoded)
}
