// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - the transaction model and its canonical encoding
//
// A transaction either originates an asset (CREATE) or moves ownership
// of previously created outputs (TRANSFER). Its identifier is the
// digest of the canonical encoding with every fulfillment replaced by
// the condition fingerprint it undertakes to satisfy, so the id is
// fixed before signing and signatures can never alter it.
package transaction

import (
	"github.com/bigchaindb/bigchaindb-common/condition"
	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
)

// TagType - type code for transactions
type TagType uint64

// enumerate the possible operations
// this is encoded as a Varint64 at the start of "Packed"
const (
	// null marks beginning of list - not used as an operation
	NullTag = TagType(iota)

	// valid operations
	CreateTag   = TagType(iota) // originate an asset
	TransferTag = TagType(iota) // move ownership of existing outputs

	// this item must be last
	InvalidTag = TagType(iota)
)

// Version - current transaction format version
const Version = 1

// byte sizes and limits for various fields
const (
	maxInputs         = 1024
	maxOutputs        = 1024
	maxOwners         = 1024
	maxPayloadLength  = 65535
	maxMetadataLength = 65535
)

// Packed - packed records are just a byte slice
type Packed []byte

// Output - an amount gated behind a condition
//
// Owners are the keys entitled to produce a satisfying fulfillment;
// only the condition fingerprint is stored, never the tree
type Output struct {
	Condition condition.Fingerprint `json:"condition"`
	Amount    uint64                `json:"amount,string"`
	Owners    []keypair.PublicKey   `json:"owners"`
}

// Input - consumes a previous output, or originates for CREATE
//
// Details carries the full condition tree while the transaction is a
// draft so that the signer knows what to satisfy; it never travels in
// the canonical encoding, the fingerprint does
type Input struct {
	Fulfills    *Link                 `json:"fulfills"`
	Owners      []keypair.PublicKey   `json:"owners"`
	Condition   condition.Fingerprint `json:"condition"`
	Details     condition.Condition   `json:"-"`
	Fulfillment condition.Fulfillment `json:"fulfillment"`
}

// Asset - what is being transacted
//
// CREATE carries an opaque caller-defined payload; TRANSFER instead
// references the id of the transaction that originated the asset
type Asset struct {
	Payload []byte         `json:"payload,omitempty"`
	Origin  *digest.Digest `json:"origin,omitempty"`
}

// Transaction - the unit of value transfer
//
// immutable once built; any change requires constructing a new one
type Transaction struct {
	Id        digest.Digest `json:"id"`
	Operation TagType       `json:"operation"`
	Version   uint64        `json:"version"`
	Inputs    []Input       `json:"inputs"`
	Outputs   []Output      `json:"outputs"`
	Asset     Asset         `json:"asset"`
	Metadata  []byte        `json:"metadata,omitempty"`
}

// String - operation name for use by the fmt package (for %s)
func (tag TagType) String() string {
	switch tag {
	case CreateTag:
		return "CREATE"
	case TransferTag:
		return "TRANSFER"
	default:
		return "*unknown*"
	}
}

// MarshalText - operation name for JSON
func (tag TagType) MarshalText() ([]byte, error) {
	return []byte(tag.String()), nil
}

// UnmarshalText - operation name from JSON
func (tag *TagType) UnmarshalText(s []byte) error {
	switch string(s) {
	case "CREATE":
		*tag = CreateTag
	case "TRANSFER":
		*tag = TransferTag
	default:
		return fault.ErrInvalidOperation
	}
	return nil
}

// NewOutput - an output locking amount behind cond for owners
func NewOutput(cond condition.Condition, amount uint64, owners []keypair.PublicKey) (Output, error) {
	if nil == cond {
		return Output{}, fault.ErrUnknownConditionType
	}
	if 0 == len(owners) {
		return Output{}, fault.ErrMissingOwners
	}
	return Output{
		Condition: cond.Fingerprint(),
		Amount:    amount,
		Owners:    append([]keypair.PublicKey{}, owners...),
	}, nil
}

// NewCreateInput - the sole input of a CREATE transaction
//
// it fulfils the implicit condition derived from its owners rather
// than any previous output
func NewCreateInput(owners []keypair.PublicKey) (Input, error) {
	cond, err := condition.FromOwners(owners)
	if nil != err {
		return Input{}, err
	}
	return Input{
		Owners:    append([]keypair.PublicKey{}, owners...),
		Condition: cond.Fingerprint(),
		Details:   cond,
	}, nil
}

// NewTransferInput - an input spending a previous output
//
// details is the condition tree of the spent output; the caller that
// owns the output knows it, the chain stores only its fingerprint
func NewTransferInput(fulfills Link, owners []keypair.PublicKey, details condition.Condition) (Input, error) {
	if 0 == len(owners) {
		return Input{}, fault.ErrMissingOwners
	}
	if nil == details {
		return Input{}, fault.ErrMissingConditionDetails
	}
	return Input{
		Fulfills:  &fulfills,
		Owners:    append([]keypair.PublicKey{}, owners...),
		Condition: details.Fingerprint(),
		Details:   details,
	}, nil
}

// NewCreate - build a CREATE draft
//
// exactly one input with no fulfils reference; the asset payload is
// opaque to this layer and may be empty
func NewCreate(inputs []Input, outputs []Output, payload []byte, metadata []byte) (*Transaction, error) {
	tx := &Transaction{
		Operation: CreateTag,
		Version:   Version,
		Inputs:    append([]Input{}, inputs...),
		Outputs:   append([]Output{}, outputs...),
		Asset:     Asset{Payload: append([]byte{}, payload...)},
		Metadata:  append([]byte{}, metadata...),
	}
	return finishDraft(tx)
}

// NewTransfer - build a TRANSFER draft
//
// every input must reference a previous output; the asset references
// the origin transaction id instead of restating the payload
func NewTransfer(inputs []Input, outputs []Output, origin digest.Digest, metadata []byte) (*Transaction, error) {
	tx := &Transaction{
		Operation: TransferTag,
		Version:   Version,
		Inputs:    append([]Input{}, inputs...),
		Outputs:   append([]Output{}, outputs...),
		Asset:     Asset{Origin: &origin},
		Metadata:  append([]byte{}, metadata...),
	}
	return finishDraft(tx)
}

// validate shape and fix the id
func finishDraft(tx *Transaction) (*Transaction, error) {
	err := tx.CheckStructure()
	if nil != err {
		return nil, err
	}
	id, err := tx.ComputeId()
	if nil != err {
		return nil, err
	}
	tx.Id = id
	return tx, nil
}

// CheckStructure - structural invariants per operation kind
//
// first failing check wins; cryptographic checks are pointless on a
// malformed structure so validation short-circuits here
func (tx *Transaction) CheckStructure() error {

	switch tx.Operation {

	case CreateTag:
		if 1 != len(tx.Inputs) {
			return fault.ErrCreateMustHaveOneInput
		}
		if nil != tx.Inputs[0].Fulfills {
			return fault.ErrCreateInputHasFulfills
		}
		if nil != tx.Asset.Origin {
			return fault.ErrCreateMustNotHaveOrigin
		}

	case TransferTag:
		if 0 == len(tx.Inputs) {
			return fault.ErrTransferNeedsInputs
		}
		if len(tx.Inputs) > maxInputs {
			return fault.ErrInvalidCount
		}
		for _, input := range tx.Inputs {
			if nil == input.Fulfills {
				return fault.ErrTransferInputNeedsFulfills
			}
		}
		if nil == tx.Asset.Origin {
			return fault.ErrTransferNeedsOrigin
		}

	default:
		return fault.ErrInvalidOperation
	}

	for _, input := range tx.Inputs {
		if 0 == len(input.Owners) || len(input.Owners) > maxOwners {
			return fault.ErrMissingOwners
		}
		if condition.SimpleTag != input.Condition.Type && condition.ThresholdTag != input.Condition.Type {
			return fault.ErrUnknownConditionType
		}
	}

	if 0 == len(tx.Outputs) {
		return fault.ErrMissingOutputs
	}
	if len(tx.Outputs) > maxOutputs {
		return fault.ErrInvalidCount
	}
	for _, output := range tx.Outputs {
		if 0 == len(output.Owners) || len(output.Owners) > maxOwners {
			return fault.ErrMissingOwners
		}
		if condition.SimpleTag != output.Condition.Type && condition.ThresholdTag != output.Condition.Type {
			return fault.ErrUnknownConditionType
		}
	}

	if len(tx.Asset.Payload) > maxPayloadLength {
		return fault.ErrInvalidCount
	}
	if len(tx.Metadata) > maxMetadataLength {
		return fault.ErrInvalidCount
	}

	return nil
}

// Copy - deep copy of the modifiable parts
//
// condition trees and fulfillments are shared; both are treated as
// immutable values throughout the module
func (tx *Transaction) Copy() *Transaction {
	inputs := make([]Input, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputs[i] = Input{
			Owners:      append([]keypair.PublicKey{}, input.Owners...),
			Condition:   input.Condition,
			Details:     input.Details,
			Fulfillment: input.Fulfillment,
		}
		if nil != input.Fulfills {
			fulfills := *input.Fulfills
			inputs[i].Fulfills = &fulfills
		}
	}

	outputs := make([]Output, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputs[i] = Output{
			Condition: output.Condition,
			Amount:    output.Amount,
			Owners:    append([]keypair.PublicKey{}, output.Owners...),
		}
	}

	asset := Asset{Payload: append([]byte{}, tx.Asset.Payload...)}
	if nil != tx.Asset.Origin {
		origin := *tx.Asset.Origin
		asset.Origin = &origin
	}

	return &Transaction{
		Id:        tx.Id,
		Operation: tx.Operation,
		Version:   tx.Version,
		Inputs:    inputs,
		Outputs:   outputs,
		Asset:     asset,
		Metadata:  append([]byte{}, tx.Metadata...),
	}
}
