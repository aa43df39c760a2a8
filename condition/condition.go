// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package condition - cryptographic spending conditions and their proofs
//
// A condition is a predicate describing who may spend an output:
// either a single ed25519 key or an M-of-N threshold over further
// conditions, recursively. Outputs store only a condition fingerprint;
// the full tree reappears when the owner presents a fulfillment.
//
// Fingerprints are derived solely from the canonical encoding of the
// condition structure, so two independent implementations that agree
// on the structure agree on every fingerprint byte.
package condition

import (
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
)

// TagType - type code for conditions and fulfillments
type TagType uint64

// enumerate the possible condition types
// this is encoded as a Varint64 at the start of "Packed"
const (
	// null marks beginning of list - not used as a condition type
	NullTag = TagType(iota)

	// valid condition types
	SimpleTag    = TagType(iota) // single ed25519 signature
	ThresholdTag = TagType(iota) // M-of-N over subconditions

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed conditions and fulfillments are just a byte slice
type Packed []byte

// declared cost values, matching the crypto-conditions accounting used
// by other implementations of this protocol
const (
	SimpleCost        = 131072 // one ed25519 verification
	thresholdCostUnit = 1024   // per subcondition overhead
)

// limits for packed structures
const (
	maxSubconditions = 1024
)

// Condition - a spending condition, one of the closed set of variants
type Condition interface {
	Type() TagType
	Cost() uint64
	Fingerprint() Fingerprint
}

// Simple - satisfied by one valid signature under PublicKey
type Simple struct {
	PublicKey keypair.PublicKey `json:"public_key"`
}

// Threshold - satisfied when at least Threshold of the subconditions
// are independently satisfied
type Threshold struct {
	Threshold     uint64      `json:"threshold"`
	Subconditions []Condition `json:"subconditions"`
}

// NewSimple - create a single-key condition
func NewSimple(publicKey keypair.PublicKey) (*Simple, error) {
	if keypair.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidPublicKeyLength
	}
	return &Simple{PublicKey: publicKey}, nil
}

// NewThreshold - create an M-of-N condition
//
// subconditions may themselves be threshold conditions; the tree is
// owned by the caller and treated as immutable after construction
func NewThreshold(threshold uint64, subconditions []Condition) (*Threshold, error) {
	if 0 == len(subconditions) {
		return nil, fault.ErrEmptySubconditions
	}
	if len(subconditions) > maxSubconditions {
		return nil, fault.ErrInvalidCount
	}
	if 0 == threshold || threshold > uint64(len(subconditions)) {
		return nil, fault.ErrInvalidThreshold
	}
	return &Threshold{
		Threshold:     threshold,
		Subconditions: append([]Condition{}, subconditions...),
	}, nil
}

// FromOwners - the implicit condition for a set of owners
//
// a single owner yields a simple condition, multiple owners an
// N-of-N threshold over simple conditions
func FromOwners(owners []keypair.PublicKey) (Condition, error) {
	switch len(owners) {
	case 0:
		return nil, fault.ErrMissingOwners
	case 1:
		return NewSimple(owners[0])
	default:
		subconditions := make([]Condition, len(owners))
		for i, owner := range owners {
			simple, err := NewSimple(owner)
			if nil != err {
				return nil, err
			}
			subconditions[i] = simple
		}
		return NewThreshold(uint64(len(owners)), subconditions)
	}
}

// Type - the condition type code
func (*Simple) Type() TagType { return SimpleTag }

// Cost - declared verification cost
func (*Simple) Cost() uint64 { return SimpleCost }

// Fingerprint - digest over the canonical structure encoding
func (condition *Simple) Fingerprint() Fingerprint {
	return simpleFingerprint(condition.PublicKey)
}

// Type - the condition type code
func (*Threshold) Type() TagType { return ThresholdTag }

// Cost - declared verification cost: the threshold largest
// subcondition costs plus a per-subcondition overhead
func (condition *Threshold) Cost() uint64 {
	subs := make([]Fingerprint, len(condition.Subconditions))
	for i, sub := range condition.Subconditions {
		subs[i] = sub.Fingerprint()
	}
	return thresholdCost(condition.Threshold, subs)
}

// Fingerprint - digest over threshold and the sorted subcondition
// fingerprints, independent of construction order
func (condition *Threshold) Fingerprint() Fingerprint {
	subs := make([]Fingerprint, len(condition.Subconditions))
	for i, sub := range condition.Subconditions {
		subs[i] = sub.Fingerprint()
	}
	return thresholdFingerprint(condition.Threshold, subs)
}
