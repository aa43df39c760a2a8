// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bigchaindb/bigchaindb-common/condition"
	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/store"
	"github.com/bigchaindb/bigchaindb-common/transaction"
)

const loggerFile = "test.log"

func TestMain(m *testing.M) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      loggerFile,
		Size:      50000,
		Count:     10,
	})
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(loggerFile)
	os.Exit(rc)
}

// a CREATE with two outputs to distinct owners
func makeCreate(t *testing.T) (*transaction.Transaction, []*keypair.KeyPair) {
	t.Helper()

	keys := make([]*keypair.KeyPair, 3)
	for i := range keys {
		seed := make([]byte, keypair.SeedSize)
		for j := range seed {
			seed[j] = byte(0xd0 + i)
		}
		keyPair, err := keypair.FromSeed(seed)
		if nil != err {
			t.Fatalf("key pair %d error: %s", i, err)
		}
		keys[i] = keyPair
	}

	input, err := transaction.NewCreateInput([]keypair.PublicKey{keys[0].PublicKey})
	if nil != err {
		t.Fatalf("create input error: %s", err)
	}

	outputs := make([]transaction.Output, 2)
	for i := range outputs {
		cond, err := condition.NewSimple(keys[i+1].PublicKey)
		if nil != err {
			t.Fatalf("condition error: %s", err)
		}
		outputs[i], err = transaction.NewOutput(cond, uint64(i+1), []keypair.PublicKey{keys[i+1].PublicKey})
		if nil != err {
			t.Fatalf("output error: %s", err)
		}
	}

	tx, err := transaction.NewCreate([]transaction.Input{input}, outputs, []byte("stored asset"), nil)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	return tx, keys
}

func TestAddAndLookup(t *testing.T) {

	tx, _ := makeCreate(t)

	m := store.NewMemory()
	err := m.Add(tx)
	assert.Nil(t, err)

	for i := range tx.Outputs {
		output, err := m.Lookup(tx.Id, uint64(i))
		assert.Nil(t, err)
		assert.Equal(t, tx.Outputs[i], *output)
	}
}

func TestLookupMisses(t *testing.T) {

	tx, _ := makeCreate(t)

	m := store.NewMemory()
	err := m.Add(tx)
	assert.Nil(t, err)

	// index past the end
	_, err = m.Lookup(tx.Id, uint64(len(tx.Outputs)))
	assert.Equal(t, fault.ErrOutputNotFound, err)

	// unknown transaction
	_, err = m.Lookup(digest.NewDigest([]byte("never added")), 0)
	assert.Equal(t, fault.ErrOutputNotFound, err)
}

func TestStoredOutputsAreCopies(t *testing.T) {

	tx, keys := makeCreate(t)

	m := store.NewMemory()
	err := m.Add(tx)
	assert.Nil(t, err)

	// mutating the transaction after indexing must not change the store
	tx.Outputs[0].Owners[0] = keys[0].PublicKey

	output, err := m.Lookup(tx.Id, 0)
	assert.Nil(t, err)
	assert.True(t, output.Owners[0].Equal(keys[1].PublicKey), "stored output was aliased")
}

func TestLookupReturnsCopies(t *testing.T) {

	tx, keys := makeCreate(t)

	m := store.NewMemory()
	err := m.Add(tx)
	assert.Nil(t, err)

	// mutating a lookup result must not poison later lookups
	first, err := m.Lookup(tx.Id, 0)
	assert.Nil(t, err)
	first.Amount = 999
	first.Owners[0] = keys[0].PublicKey

	second, err := m.Lookup(tx.Id, 0)
	assert.Nil(t, err)
	assert.Equal(t, tx.Outputs[0].Amount, second.Amount)
	assert.True(t, second.Owners[0].Equal(keys[1].PublicKey), "stored output was aliased")
}

func TestAddRejectsBadStructure(t *testing.T) {

	m := store.NewMemory()

	err := m.Add(nil)
	assert.NotNil(t, err)

	err = m.Add(&transaction.Transaction{})
	assert.True(t, fault.IsErrStructure(err), "empty transaction -> %v", err)
}
