// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keypair - ed25519 key pairs
//
// Wraps the raw signing primitives used by the rest of the module.
// Keys are supplied and held by the caller; nothing here stores or
// derives keys beyond the sign/verify operations.
package keypair

import (
	"bytes"
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bigchaindb/bigchaindb-common/fault"
	"github.com/bigchaindb/bigchaindb-common/util"
)

// key sizes
const (
	PublicKeySize  = ed25519.PublicKeySize
	PrivateKeySize = ed25519.PrivateKeySize
	SeedSize       = ed25519.SeedSize
	SignatureSize  = ed25519.SignatureSize

	checksumLength = 4
)

// PublicKey - raw ed25519 verification key
type PublicKey []byte

// KeyPair - structure to hold public and private keys
type KeyPair struct {
	PublicKey  PublicKey
	PrivateKey []byte
}

// New - create a key pair from secure random data
func New() (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  PublicKey(publicKey),
		PrivateKey: privateKey,
	}, nil
}

// FromSeed - deterministic key pair from a 32 byte seed
func FromSeed(seed []byte) (*KeyPair, error) {
	if SeedSize != len(seed) {
		return nil, fault.ErrInvalidSeedLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return FromPrivateKey(privateKey)
}

// FromPrivateKey - rebuild a key pair from raw private key bytes
func FromPrivateKey(privateKey []byte) (*KeyPair, error) {
	if PrivateKeySize != len(privateKey) {
		return nil, fault.ErrInvalidPrivateKeyLength
	}
	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, privateKey[PrivateKeySize-PublicKeySize:])
	return &KeyPair{
		PublicKey:  PublicKey(publicKey),
		PrivateKey: append([]byte{}, privateKey...),
	}, nil
}

// Sign - raw ed25519 signature over a message
func (keyPair *KeyPair) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(keyPair.PrivateKey, message))
}

// CheckSignature - check the signature of a message
func (publicKey PublicKey) CheckSignature(message []byte, signature Signature) error {
	if PublicKeySize != len(publicKey) {
		return fault.ErrInvalidPublicKeyLength
	}
	if SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Equal - compare two public keys
func (publicKey PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(publicKey, other)
}

// String - base58 encoding of the key with a checksum suffix
func (publicKey PublicKey) String() string {
	checksum := sha3.Sum256(publicKey)
	buffer := append([]byte{}, publicKey...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// MarshalText - convert a public key to its Base58 JSON form
func (publicKey PublicKey) MarshalText() ([]byte, error) {
	return []byte(publicKey.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to a public key
func (publicKey *PublicKey) UnmarshalText(s []byte) error {
	k, err := PublicKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	*publicKey = k
	return nil
}

// PublicKeyFromBase58 - decode and checksum-verify a Base58 public key
func PublicKeyFromBase58(publicKeyBase58Encoded string) (PublicKey, error) {
	decoded := util.FromBase58(publicKeyBase58Encoded)
	if 0 == len(decoded) {
		return nil, fault.ErrCannotDecodeAccount
	}
	if PublicKeySize+checksumLength != len(decoded) {
		return nil, fault.ErrInvalidPublicKeyLength
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return PublicKey(decoded[:checksumStart]), nil
}
