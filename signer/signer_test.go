// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigchaindb/bigchaindb-common/condition"
	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/signer"
	"github.com/bigchaindb/bigchaindb-common/transaction"
)

// deterministic key pair for table tests
func testKeyPair(t *testing.T, fill byte) *keypair.KeyPair {
	t.Helper()
	seed := make([]byte, keypair.SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	keyPair, err := keypair.FromSeed(seed)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	return keyPair
}

// a CREATE draft originated and owned by alice
func makeDraft(t *testing.T, alice *keypair.KeyPair, bob *keypair.KeyPair) *transaction.Transaction {
	t.Helper()

	input, err := transaction.NewCreateInput([]keypair.PublicKey{alice.PublicKey})
	if nil != err {
		t.Fatalf("create input error: %s", err)
	}
	cond, err := condition.NewSimple(bob.PublicKey)
	if nil != err {
		t.Fatalf("condition error: %s", err)
	}
	output, err := transaction.NewOutput(cond, 1, []keypair.PublicKey{bob.PublicKey})
	if nil != err {
		t.Fatalf("output error: %s", err)
	}
	tx, err := transaction.NewCreate([]transaction.Input{input}, []transaction.Output{output}, []byte("asset"), nil)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	return tx
}

func TestSignCreate(t *testing.T) {

	alice := testKeyPair(t, 0xa1)
	bob := testKeyPair(t, 0xb2)

	draft := makeDraft(t, alice, bob)
	signed, err := signer.Sign(draft, []*keypair.KeyPair{alice})
	assert.Nil(t, err)

	// the draft itself is untouched and the id survives signing
	assert.Nil(t, draft.Inputs[0].Fulfillment, "draft was modified")
	assert.Equal(t, draft.Id, signed.Id)

	// the attached fulfillment satisfies the input's condition
	message, err := signed.SignableMessage(0)
	assert.Nil(t, err)
	err = condition.Verify(signed.Inputs[0].Condition, signed.Inputs[0].Fulfillment, message)
	assert.Nil(t, err, "fulfillment does not satisfy the input condition")
}

func TestSignWithoutMatchingKey(t *testing.T) {

	alice := testKeyPair(t, 0xa1)
	bob := testKeyPair(t, 0xb2)

	draft := makeDraft(t, alice, bob)

	// bob's key cannot satisfy alice's condition
	_, err := signer.Sign(draft, []*keypair.KeyPair{bob})
	assert.Equal(t, fault.ErrKeyNotFound, err)

	_, err = signer.Sign(draft, nil)
	assert.Equal(t, fault.ErrKeyNotFound, err)
}

func TestSignThreshold(t *testing.T) {

	alice := testKeyPair(t, 0xa1)
	bob := testKeyPair(t, 0xb2)
	carol := testKeyPair(t, 0xc3)

	owners := []keypair.PublicKey{alice.PublicKey, bob.PublicKey, carol.PublicKey}
	details, err := condition.FromOwners(owners)
	assert.Nil(t, err)
	shared, ok := details.(*condition.Threshold)
	assert.True(t, ok)

	// 2-of-3 over the three owners
	spendable, err := condition.NewThreshold(2, shared.Subconditions)
	assert.Nil(t, err)

	origin := digest.NewDigest([]byte("origin"))
	link := transaction.Link{TxId: origin, OutputIndex: 0}
	input, err := transaction.NewTransferInput(link, owners, spendable)
	assert.Nil(t, err)

	cond, _ := condition.NewSimple(carol.PublicKey)
	output, _ := transaction.NewOutput(cond, 1, []keypair.PublicKey{carol.PublicKey})
	draft, err := transaction.NewTransfer([]transaction.Input{input}, []transaction.Output{output}, origin, nil)
	assert.Nil(t, err)

	// alice and carol are enough for 2-of-3
	signed, err := signer.Sign(draft, []*keypair.KeyPair{alice, carol})
	assert.Nil(t, err)

	fulfillment, ok := signed.Inputs[0].Fulfillment.(*condition.ThresholdFulfillment)
	assert.True(t, ok, "expected a threshold fulfillment")

	live := 0
	for _, sub := range fulfillment.Subfulfillments {
		if nil != sub.Fulfillment {
			live += 1
		}
	}
	assert.Equal(t, 2, live, "exactly the threshold count of branches must be signed")

	message, err := signed.SignableMessage(0)
	assert.Nil(t, err)
	err = condition.Verify(signed.Inputs[0].Condition, signed.Inputs[0].Fulfillment, message)
	assert.Nil(t, err, "fulfillment does not satisfy the threshold condition")

	// one key is not enough
	_, err = signer.Sign(draft, []*keypair.KeyPair{bob})
	assert.Equal(t, fault.ErrInsufficientKeys, err)
}

func TestSignMissingDetails(t *testing.T) {

	alice := testKeyPair(t, 0xa1)
	bob := testKeyPair(t, 0xb2)

	draft := makeDraft(t, alice, bob)
	draft.Inputs[0].Details = nil

	_, err := signer.Sign(draft, []*keypair.KeyPair{alice})
	assert.Equal(t, fault.ErrMissingConditionDetails, err)
}

func TestSignNil(t *testing.T) {
	_, err := signer.Sign(nil, nil)
	assert.NotNil(t, err)
}
