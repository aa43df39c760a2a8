// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"fmt"
	"testing"

	"github.com/bigchaindb/bigchaindb-common/digest"
	"github.com/bigchaindb/bigchaindb-common/fault"
)

// known SHA3-256 values
var digestTests = []struct {
	in  string
	out string
}{
	{"", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
	{"abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	{"hello world", "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"},
}

func TestDigest(t *testing.T) {

	for i, item := range digestTests {
		d := digest.NewDigest([]byte(item.in))
		if d.String() != item.out {
			t.Errorf("%d: digest(%q) -> %s  expected: %s", i, item.in, d, item.out)
		}
	}
}

func TestDigestTextMarshalling(t *testing.T) {

	d := digest.NewDigest([]byte("hello world"))

	text, err := d.MarshalText()
	if nil != err {
		t.Fatalf("marshal text error: %s", err)
	}

	var restored digest.Digest
	err = restored.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal text error: %s", err)
	}
	if restored != d {
		t.Errorf("restored: %v  expected: %v", restored, d)
	}

	err = restored.UnmarshalText([]byte("00ff"))
	if !fault.IsErrEncoding(err) {
		t.Errorf("short text -> %v  expected encoding error", err)
	}
}

func TestDigestScan(t *testing.T) {

	expected := digest.NewDigest([]byte("abc"))

	var d digest.Digest
	n, err := fmt.Sscan("3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", &d)
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	if 1 != n {
		t.Fatalf("scanned: %d items  expected: 1", n)
	}
	if d != expected {
		t.Errorf("scanned: %v  expected: %v", d, expected)
	}
}

func TestDigestGoString(t *testing.T) {

	d := digest.NewDigest([]byte("abc"))
	expected := "<SHA3-256:3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532>"
	if s := fmt.Sprintf("%#v", d); s != expected {
		t.Errorf("%%#v -> %s  expected: %s", s, expected)
	}
}
