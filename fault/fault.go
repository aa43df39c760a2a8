// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 BigchainDB Contributors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type (
	MalformedConditionError  GenericError
	FulfillmentMismatchError GenericError
	FulfillmentInvalidError  GenericError
	EncodingError            GenericError
	StructureError           GenericError
	MissingKeyError          GenericError
	InsufficientKeysError    GenericError
	IdMismatchError          GenericError
	OwnershipMismatchError   GenericError
	NotFoundError            GenericError
	UnavailableError         GenericError
)

// common errors - keep in alphabetic order within each class
var (
	// malformed conditions
	ErrEmptySubconditions     = MalformedConditionError("subcondition set is empty")
	ErrInvalidPublicKeyLength = MalformedConditionError("public key length is invalid")
	ErrInvalidThreshold       = MalformedConditionError("threshold is out of range")
	ErrUnknownConditionType   = MalformedConditionError("unknown condition type")

	// fulfillment does not reduce to the claimed condition
	ErrFulfillmentMismatch = FulfillmentMismatchError("fulfillment does not match condition")

	// fulfillment shape is right but the proof fails
	ErrInvalidSignature   = FulfillmentInvalidError("invalid signature")
	ErrMissingFulfillment = FulfillmentInvalidError("fulfillment is missing")
	ErrTooFewSignatures   = FulfillmentInvalidError("too few subfulfillments are signed")

	// canonical encoding
	ErrCannotDecodeAccount     = EncodingError("cannot decode account")
	ErrChecksumMismatch        = EncodingError("checksum mismatch")
	ErrInvalidCount            = EncodingError("count is out of range")
	ErrInvalidPrivateKeyLength = EncodingError("private key length is invalid")
	ErrInvalidSeedLength       = EncodingError("seed length is invalid")
	ErrNotConditionPack        = EncodingError("not a packed condition")
	ErrNotDigest               = EncodingError("not a digest")
	ErrNotFingerprintPack      = EncodingError("not a packed fingerprint")
	ErrNotFulfillmentPack      = EncodingError("not a packed fulfillment")
	ErrNotLink                 = EncodingError("not a link")
	ErrNotTransactionPack      = EncodingError("not a packed transaction")
	ErrUnsupportedVersion      = EncodingError("transaction version is not supported")

	// transaction structure
	ErrCreateMustHaveOneInput     = StructureError("create must have exactly one input")
	ErrCreateInputHasFulfills     = StructureError("create input must not fulfil a previous output")
	ErrTransferInputNeedsFulfills = StructureError("transfer input must fulfil a previous output")
	ErrTransferNeedsInputs        = StructureError("transfer must have at least one input")
	ErrTransferNeedsOrigin        = StructureError("transfer asset must reference its origin transaction")
	ErrCreateMustNotHaveOrigin    = StructureError("create asset must not reference an origin transaction")
	ErrMissingConditionDetails    = StructureError("input is missing its condition details")
	ErrMissingOutputs             = StructureError("transaction must have at least one output")
	ErrMissingOwners              = StructureError("owner set is empty")
	ErrInputOutOfRange            = StructureError("input index is out of range")
	ErrInvalidOperation           = StructureError("operation must be create or transfer")

	// signing
	ErrKeyNotFound      = MissingKeyError("no private key matches the public key")
	ErrInsufficientKeys = InsufficientKeysError("not enough keys to satisfy the threshold")

	// identity
	ErrTransactionIdMismatch = IdMismatchError("transaction id mismatch")

	// spent output linkage
	ErrConditionMismatch = OwnershipMismatchError("condition does not match the referenced output")
	ErrOwnershipMismatch = OwnershipMismatchError("owners do not match the referenced output")

	// lookup capability
	ErrOutputNotFound      = NotFoundError("output not found")
	ErrTransactionNotFound = NotFoundError("transaction not found")
	ErrStoreUnavailable    = UnavailableError("output store is unavailable")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e MalformedConditionError) Error() string  { return string(e) }
func (e FulfillmentMismatchError) Error() string { return string(e) }
func (e FulfillmentInvalidError) Error() string  { return string(e) }
func (e EncodingError) Error() string            { return string(e) }
func (e StructureError) Error() string           { return string(e) }
func (e MissingKeyError) Error() string          { return string(e) }
func (e InsufficientKeysError) Error() string    { return string(e) }
func (e IdMismatchError) Error() string          { return string(e) }
func (e OwnershipMismatchError) Error() string   { return string(e) }
func (e NotFoundError) Error() string            { return string(e) }
func (e UnavailableError) Error() string         { return string(e) }

// determine the class of an error
func IsErrMalformedCondition(e error) bool {
	_, ok := e.(MalformedConditionError)
	return ok
}
func IsErrFulfillmentMismatch(e error) bool {
	_, ok := e.(FulfillmentMismatchError)
	return ok
}
func IsErrFulfillmentInvalid(e error) bool {
	_, ok := e.(FulfillmentInvalidError)
	return ok
}
func IsErrEncoding(e error) bool {
	_, ok := e.(EncodingError)
	return ok
}
func IsErrStructure(e error) bool {
	_, ok := e.(StructureError)
	return ok
}
func IsErrMissingKey(e error) bool {
	_, ok := e.(MissingKeyError)
	return ok
}
func IsErrInsufficientKeys(e error) bool {
	_, ok := e.(InsufficientKeysError)
	return ok
}
func IsErrIdMismatch(e error) bool {
	_, ok := e.(IdMismatchError)
	return ok
}
func IsErrOwnershipMismatch(e error) bool {
	_, ok := e.(OwnershipMismatchError)
	return ok
}
func IsErrNotFound(e error) bool {
	_, ok := e.(NotFoundError)
	return ok
}
func IsErrUnavailable(e error) bool {
	_, ok := e.(UnavailableError)
	return ok
}
