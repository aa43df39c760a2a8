// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
)

// Fulfillment - a proof term mirroring a condition's shape
//
// Fingerprint returns the condition the fulfillment collapses to;
// a fulfillment is only accepted when that fingerprint reproduces the
// claimed condition exactly
type Fulfillment interface {
	Type() TagType
	Fingerprint() Fingerprint
	Pack() Packed
	Verify(message []byte) error
}

// SimpleFulfillment - a single signature under PublicKey
type SimpleFulfillment struct {
	PublicKey keypair.PublicKey `json:"public_key"`
	Signature keypair.Signature `json:"signature"`
}

// Subfulfillment - one branch of a threshold fulfillment
//
// either a live fulfillment or, for an unexercised branch, just the
// bare fingerprint of the subcondition it stands in for
type Subfulfillment struct {
	Fulfillment Fulfillment `json:"fulfillment"` // nil for a placeholder
	Condition   Fingerprint `json:"condition"`   // used when Fulfillment is nil
}

// ThresholdFulfillment - at least Threshold of the subfulfillments
// must carry valid proofs; the rest are fingerprint placeholders
type ThresholdFulfillment struct {
	Threshold       uint64           `json:"threshold"`
	Subfulfillments []Subfulfillment `json:"subfulfillments"`
}

// Type - the fulfillment type code
func (*SimpleFulfillment) Type() TagType { return SimpleTag }

// Fingerprint - the condition induced by this fulfillment
func (fulfillment *SimpleFulfillment) Fingerprint() Fingerprint {
	return simpleFingerprint(fulfillment.PublicKey)
}

// Verify - check the signature over the message
func (fulfillment *SimpleFulfillment) Verify(message []byte) error {
	return fulfillment.PublicKey.CheckSignature(message, fulfillment.Signature)
}

// Fingerprint - the fingerprint this branch contributes to the
// threshold reconstruction
func (sub Subfulfillment) Fingerprint() Fingerprint {
	if nil != sub.Fulfillment {
		return sub.Fulfillment.Fingerprint()
	}
	return sub.Condition
}

// Type - the fulfillment type code
func (*ThresholdFulfillment) Type() TagType { return ThresholdTag }

// Fingerprint - the condition induced by this fulfillment
//
// fulfilled branches contribute their induced fingerprints,
// placeholders their bare ones; the multiset must reproduce the
// original subcondition fingerprints for the claim to hold
func (fulfillment *ThresholdFulfillment) Fingerprint() Fingerprint {
	subs := make([]Fingerprint, len(fulfillment.Subfulfillments))
	for i, sub := range fulfillment.Subfulfillments {
		subs[i] = sub.Fingerprint()
	}
	return thresholdFingerprint(fulfillment.Threshold, subs)
}

// Verify - check that enough branches carry valid proofs
//
// every live subfulfillment must verify; the validator accepts any
// declared subset of size at least the threshold, never a canonical one
func (fulfillment *ThresholdFulfillment) Verify(message []byte) error {
	signed := uint64(0)
	for _, sub := range fulfillment.Subfulfillments {
		if nil == sub.Fulfillment {
			continue
		}
		err := sub.Fulfillment.Verify(message)
		if nil != err {
			return err
		}
		signed += 1
	}
	if signed < fulfillment.Threshold {
		return fault.ErrTooFewSignatures
	}
	return nil
}

// Verify - check a fulfillment against the condition it claims to satisfy
//
// structural check first: the fulfillment must collapse to exactly the
// claimed fingerprint; only then are the signatures checked, since a
// proof for a different condition is meaningless whatever it signs
func Verify(claimed Fingerprint, fulfillment Fulfillment, message []byte) error {
	if nil == fulfillment {
		return fault.ErrMissingFulfillment
	}
	if claimed != fulfillment.Fingerprint() {
		return fault.ErrFulfillmentMismatch
	}
	return fulfillment.Verify(message)
}

// Matches - boolean form of Verify for callers that do not need the cause
func Matches(cond Condition, fulfillment Fulfillment, message []byte) bool {
	if nil == cond {
		return false
	}
	return nil == Verify(cond.Fingerprint(), fulfillment, message)
}
