// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"encoding/json"
	"testing"

	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/transaction"
)

func TestLinkJSON(t *testing.T) {

	link := transaction.Link{
		TxId:        digest.NewDigest([]byte("abc")),
		OutputIndex: 7,
	}

	buffer, err := json.Marshal(link)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}
	expected := `{"txid":"3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532","output":7}`
	if expected != string(buffer) {
		t.Errorf("json: %s  expected: %s", buffer, expected)
	}

	var restored transaction.Link
	err = json.Unmarshal(buffer, &restored)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if restored != link {
		t.Errorf("restored: %#v  expected: %#v", restored, link)
	}
}

func TestLinkJSONMissingFields(t *testing.T) {

	var link transaction.Link

	err := json.Unmarshal([]byte(`{"output":7}`), &link)
	if fault.ErrNotLink != err {
		t.Errorf("missing txid -> %v  expected: %v", err, fault.ErrNotLink)
	}

	err = json.Unmarshal([]byte(`{"txid":"3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"}`), &link)
	if fault.ErrNotLink != err {
		t.Errorf("missing output -> %v  expected: %v", err, fault.ErrNotLink)
	}
}

func TestLinkString(t *testing.T) {

	link := transaction.Link{
		TxId:        digest.NewDigest([]byte("abc")),
		OutputIndex: 2,
	}
	expected := "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532:2"
	if expected != link.String() {
		t.Errorf("string: %s  expected: %s", link, expected)
	}
}
