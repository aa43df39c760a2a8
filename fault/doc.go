// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error to allow easy comparison
// without having to resort to partial string matches.
//
// Each error belongs to exactly one class; callers branch on the
// class with the IsErr… predicates to distinguish a bad request
// (structural) from an unauthorised one (cryptographic) from a
// dependency failure (lookup).
package fault
