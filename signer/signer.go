// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signer - attach fulfillments to a transaction draft
//
// Keys flow in as explicit parameters and are matched to conditions
// by public key; nothing here keeps key state between calls.
package signer

import (
	"github.com/bigchaindb/bigchaindb-common/condition"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/transaction"
)

// Sign - produce a signed copy of a draft
//
// for each input in sequence order the condition it must satisfy is
// taken from its details and a fulfillment is built over the input's
// signable message; the draft is never modified and the returned
// transaction keeps the draft's id
func Sign(draft *transaction.Transaction, keys []*keypair.KeyPair) (*transaction.Transaction, error) {
	if nil == draft {
		return nil, fault.ErrNotTransactionPack
	}
	err := draft.CheckStructure()
	if nil != err {
		return nil, err
	}

	// private keys keyed by their public keys
	keyPairs := make(map[string]*keypair.KeyPair, len(keys))
	for _, key := range keys {
		if nil == key {
			continue
		}
		keyPairs[string(key.PublicKey)] = key
	}

	tx := draft.Copy()
	for i := range tx.Inputs {
		details := tx.Inputs[i].Details
		if nil == details {
			return nil, fault.ErrMissingConditionDetails
		}

		message, err := tx.SignableMessage(i)
		if nil != err {
			return nil, err
		}

		fulfillment, err := signCondition(details, message, keyPairs)
		if nil != err {
			return nil, err
		}
		tx.Inputs[i].Fulfillment = fulfillment
	}

	return tx, nil
}

// build a fulfillment for one condition
//
// a threshold signs as many subconditions as the supplied keys allow,
// stopping at the threshold; the remaining branches stay as bare
// fingerprints so the fulfillment still collapses to the original
// condition
func signCondition(cond condition.Condition, message []byte, keyPairs map[string]*keypair.KeyPair) (condition.Fulfillment, error) {

	switch c := cond.(type) {

	case *condition.Simple:
		key, ok := keyPairs[string(c.PublicKey)]
		if !ok {
			return nil, fault.ErrKeyNotFound
		}
		return &condition.SimpleFulfillment{
			PublicKey: c.PublicKey,
			Signature: key.Sign(message),
		}, nil

	case *condition.Threshold:
		subs := make([]condition.Subfulfillment, len(c.Subconditions))
		signed := uint64(0)
		for i, sub := range c.Subconditions {
			if signed < c.Threshold {
				fulfillment, err := signCondition(sub, message, keyPairs)
				if nil == err {
					subs[i] = condition.Subfulfillment{Fulfillment: fulfillment}
					signed += 1
					continue
				}
				if !fault.IsErrMissingKey(err) && !fault.IsErrInsufficientKeys(err) {
					return nil, err
				}
			}
			subs[i] = condition.Subfulfillment{Condition: sub.Fingerprint()}
		}
		if signed < c.Threshold {
			return nil, fault.ErrInsufficientKeys
		}
		return &condition.ThresholdFulfillment{
			Threshold:       c.Threshold,
			Subfulfillments: subs,
		}, nil

	default:
		return nil, fault.ErrUnknownConditionType
	}
}
