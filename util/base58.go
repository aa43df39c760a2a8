// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// ToBase58 - encode a byte slice as a Base58 string
func ToBase58(buffer []byte) string {
	return base58.Encode(buffer)
}

// FromBase58 - decode a Base58 string to a byte slice
//
// returns an empty slice if the string is not valid Base58
func FromBase58(encoded string) []byte {
	buffer, err := base58.Decode(encoded)
	if nil != err {
		return []byte{}
	}
	return buffer
}
