// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validate - structural and cryptographic transaction checks
//
// Validation is a pure read-only function over an immutable value: it
// never mutates the transaction and is safe to run concurrently and
// repeatedly. Checks short-circuit in order: structure, identity,
// fulfillments, then spent-output linkage - the first failure wins.
//
// Resolution of spent outputs is delegated to an OutputResolver
// capability; its NotFound/Unavailable errors propagate unchanged and
// are never retried here.
package validate

import (
	"github.com/bitmark-inc/logger"

	"github.com/bigchaindb/bigchaindb-common/condition"
	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/transaction"
)

// OutputResolver - lookup capability supplied by the storage collaborator
//
// used only while validating TRANSFER inputs
type OutputResolver interface {
	Lookup(txId digest.Digest, outputIndex uint64) (*transaction.Output, error)
}

// Validator - checks transactions against a resolver
type Validator struct {
	resolver OutputResolver
	log      *logger.L
}

// New - create a validator using the given lookup capability
//
// resolver may be nil for a validator that only ever sees CREATE
// transactions; a TRANSFER then fails with a store unavailable error
func New(resolver OutputResolver) *Validator {
	return &Validator{
		resolver: resolver,
		log:      logger.New("validate"),
	}
}

// Validate - accept or reject a fully formed transaction
//
// all of: structural shape per operation, id recomputation, every
// input's fulfillment against its declared condition, and for
// TRANSFER the linkage to the spent outputs
func (v *Validator) Validate(tx *transaction.Transaction) error {
	if nil == tx {
		return fault.ErrNotTransactionPack
	}

	err := tx.CheckStructure()
	if nil != err {
		v.log.Debugf("structure rejected: %s", err)
		return err
	}

	id, err := tx.ComputeId()
	if nil != err {
		return err
	}
	if id != tx.Id {
		v.log.Warnf("id mismatch: stored: %v  computed: %v", tx.Id, id)
		return fault.ErrTransactionIdMismatch
	}

	for i, input := range tx.Inputs {

		message, err := tx.SignableMessage(i)
		if nil != err {
			return err
		}

		// the sole CREATE input must satisfy the implicit condition
		// derived from its own owners
		if transaction.CreateTag == tx.Operation {
			implicit, err := condition.FromOwners(input.Owners)
			if nil != err {
				return err
			}
			if implicit.Fingerprint() != input.Condition {
				v.log.Warnf("input %d: condition is not the implicit owner condition", i)
				return fault.ErrConditionMismatch
			}
		}

		err = condition.Verify(input.Condition, input.Fulfillment, message)
		if nil != err {
			v.log.Debugf("input %d: fulfillment rejected: %s", i, err)
			return err
		}
	}

	if transaction.TransferTag == tx.Operation {
		err = v.checkSpentOutputs(tx)
		if nil != err {
			return err
		}
	}

	v.log.Debugf("accepted: %v", tx.Id)
	return nil
}

// confirm every fulfils reference resolves and matches
func (v *Validator) checkSpentOutputs(tx *transaction.Transaction) error {
	if nil == v.resolver {
		return fault.ErrStoreUnavailable
	}

	for i, input := range tx.Inputs {

		output, err := v.resolver.Lookup(input.Fulfills.TxId, input.Fulfills.OutputIndex)
		if nil != err {
			v.log.Debugf("input %d: lookup %v failed: %s", i, input.Fulfills, err)
			return err
		}

		if len(output.Owners) != len(input.Owners) {
			return fault.ErrOwnershipMismatch
		}
		for j, owner := range output.Owners {
			if !owner.Equal(input.Owners[j]) {
				v.log.Warnf("input %d: owner %d does not match the spent output", i, j)
				return fault.ErrOwnershipMismatch
			}
		}

		if output.Condition != input.Condition {
			v.log.Warnf("input %d: condition does not match the spent output", i)
			return fault.ErrConditionMismatch
		}
	}
	return nil
}
