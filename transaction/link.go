// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
)

// Link - reference to one output of a previous transaction
type Link struct {
	TxId        digest.Digest `json:"txid"`
	OutputIndex uint64        `json:"output"`
}

// String - convert a link to "txid:index" for use by the fmt package (for %s)
func (link Link) String() string {
	return fmt.Sprintf("%s:%d", link.TxId, link.OutputIndex)
}

// GoString - convert a link for use by the fmt package (for %#v)
func (link Link) GoString() string {
	return fmt.Sprintf("<link:%s:%d>", link.TxId, link.OutputIndex)
}

// MarshalJSON - JSON object with txid and output index
func (link Link) MarshalJSON() ([]byte, error) {
	item := struct {
		TxId        digest.Digest `json:"txid"`
		OutputIndex uint64        `json:"output"`
	}{
		TxId:        link.TxId,
		OutputIndex: link.OutputIndex,
	}
	return json.Marshal(item)
}

// UnmarshalJSON - reverse of MarshalJSON
func (link *Link) UnmarshalJSON(s []byte) error {
	item := struct {
		TxId        *digest.Digest `json:"txid"`
		OutputIndex *uint64       `json:"output"`
	}{}
	err := json.Unmarshal(s, &item)
	if nil != err {
		return err
	}
	if nil == item.TxId || nil == item.OutputIndex {
		return fault.ErrNotLink
	}
	link.TxId = *item.TxId
	link.OutputIndex = *item.OutputIndex
	return nil
}
