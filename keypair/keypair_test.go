// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair_test

import (
	"bytes"
	"testing"

	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/keypair"
	"github.com/bigchaindb/bigchaindb-common/util"
)

func makeSeed(fill byte) []byte {
	seed := make([]byte, keypair.SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	return seed
}

func TestFromSeed(t *testing.T) {

	one, err := keypair.FromSeed(makeSeed(0x11))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}
	two, err := keypair.FromSeed(makeSeed(0x11))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}

	// the same seed must yield the same keys
	if !one.PublicKey.Equal(two.PublicKey) {
		t.Errorf("public keys differ: %x and %x", one.PublicKey, two.PublicKey)
	}
	if !bytes.Equal(one.PrivateKey, two.PrivateKey) {
		t.Error("private keys differ for the same seed")
	}

	other, err := keypair.FromSeed(makeSeed(0x22))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}
	if one.PublicKey.Equal(other.PublicKey) {
		t.Error("different seeds yield the same public key")
	}

	_, err = keypair.FromSeed([]byte{0x11, 0x22})
	if fault.ErrInvalidSeedLength != err {
		t.Errorf("short seed -> %v  expected: %v", err, fault.ErrInvalidSeedLength)
	}
}

func TestFromPrivateKey(t *testing.T) {

	original, err := keypair.FromSeed(makeSeed(0x33))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}

	restored, err := keypair.FromPrivateKey(original.PrivateKey)
	if nil != err {
		t.Fatalf("from private key error: %s", err)
	}
	if !restored.PublicKey.Equal(original.PublicKey) {
		t.Errorf("restored public key: %x  expected: %x", restored.PublicKey, original.PublicKey)
	}

	_, err = keypair.FromPrivateKey(original.PrivateKey[:keypair.PublicKeySize])
	if fault.ErrInvalidPrivateKeyLength != err {
		t.Errorf("short private key -> %v  expected: %v", err, fault.ErrInvalidPrivateKeyLength)
	}
}

func TestSignAndCheck(t *testing.T) {

	keyPair, err := keypair.FromSeed(makeSeed(0x44))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}

	message := []byte("a test message")
	signature := keyPair.Sign(message)
	if keypair.SignatureSize != len(signature) {
		t.Fatalf("signature length: %d  expected: %d", len(signature), keypair.SignatureSize)
	}

	err = keyPair.PublicKey.CheckSignature(message, signature)
	if nil != err {
		t.Fatalf("check signature error: %s", err)
	}

	// a single flipped bit must invalidate the signature
	tampered := append(keypair.Signature{}, signature...)
	tampered[0] ^= 0x01
	err = keyPair.PublicKey.CheckSignature(message, tampered)
	if !fault.IsErrFulfillmentInvalid(err) {
		t.Errorf("tampered signature -> %v  expected invalid signature", err)
	}

	err = keyPair.PublicKey.CheckSignature([]byte("another message"), signature)
	if !fault.IsErrFulfillmentInvalid(err) {
		t.Errorf("wrong message -> %v  expected invalid signature", err)
	}

	err = keyPair.PublicKey.CheckSignature(message, signature[:10])
	if !fault.IsErrFulfillmentInvalid(err) {
		t.Errorf("short signature -> %v  expected invalid signature", err)
	}
}

func TestPublicKeyBase58(t *testing.T) {

	keyPair, err := keypair.FromSeed(makeSeed(0x55))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}

	encoded := keyPair.PublicKey.String()
	decoded, err := keypair.PublicKeyFromBase58(encoded)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}
	if !decoded.Equal(keyPair.PublicKey) {
		t.Errorf("decoded: %x  expected: %x", decoded, keyPair.PublicKey)
	}

	// corrupt the checksum
	raw := util.FromBase58(encoded)
	raw[len(raw)-1] ^= 0xff
	_, err = keypair.PublicKeyFromBase58(util.ToBase58(raw))
	if fault.ErrChecksumMismatch != err {
		t.Errorf("corrupted checksum -> %v  expected: %v", err, fault.ErrChecksumMismatch)
	}

	_, err = keypair.PublicKeyFromBase58("not!valid!base58")
	if fault.ErrCannotDecodeAccount != err {
		t.Errorf("invalid text -> %v  expected: %v", err, fault.ErrCannotDecodeAccount)
	}
}

func TestPublicKeyTextMarshalling(t *testing.T) {

	keyPair, err := keypair.FromSeed(makeSeed(0x66))
	if nil != err {
		t.Fatalf("from seed error: %s", err)
	}

	text, err := keyPair.PublicKey.MarshalText()
	if nil != err {
		t.Fatalf("marshal text error: %s", err)
	}

	var restored keypair.PublicKey
	err = restored.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal text error: %s", err)
	}
	if !restored.Equal(keyPair.PublicKey) {
		t.Errorf("restored: %x  expected: %x", restored, keyPair.PublicKey)
	}
}
