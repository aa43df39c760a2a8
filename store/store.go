// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - in-memory reference implementation of the output
// lookup capability
//
// Real deployments resolve spent outputs from whatever persistence
// layer sits above this module; this store exists so that TRANSFER
// validation has a working resolver in tests and small tools.
package store

import (
	"fmt"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/transaction"
)

// Memory - output index keyed by transaction id and output position
type Memory struct {
	outputs *cache.Cache
	log     *logger.L
}

// NewMemory - create an empty output index
func NewMemory() *Memory {
	return &Memory{
		outputs: cache.New(cache.NoExpiration, 0),
		log:     logger.New("store"),
	}
}

// index key for one output
func outputKey(txId digest.Digest, outputIndex uint64) string {
	return fmt.Sprintf("%s:%d", txId, outputIndex)
}

// Add - index every output of a transaction
//
// the transaction is expected to be validated by the caller; outputs
// are stored as copies so later lookups see immutable values
func (m *Memory) Add(tx *transaction.Transaction) error {
	if nil == tx {
		return fault.ErrNotTransactionPack
	}
	err := tx.CheckStructure()
	if nil != err {
		return err
	}
	for i, output := range tx.Outputs {
		o := output
		o.Owners = append([]keypair.PublicKey{}, output.Owners...)
		m.outputs.Set(outputKey(tx.Id, uint64(i)), &o, cache.NoExpiration)
	}
	m.log.Debugf("indexed %d outputs of %v", len(tx.Outputs), tx.Id)
	return nil
}

// Lookup - resolve one output
//
// implements the validate.OutputResolver capability; the result is a
// copy, the caller cannot reach the indexed value through it
func (m *Memory) Lookup(txId digest.Digest, outputIndex uint64) (*transaction.Output, error) {
	item, found := m.outputs.Get(outputKey(txId, outputIndex))
	if !found {
		return nil, fault.ErrOutputNotFound
	}
	stored := item.(*transaction.Output)
	output := *stored
	output.Owners = append([]keypair.PublicKey{}, stored.Owners...)
	return &output, nil
}
