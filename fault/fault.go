// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - things that already exist
	ExistsError GenericError
	// InvalidError - invalid arguments or payments
	InvalidError GenericError
	// NotFoundError - referenced items that are absent
	NotFoundError GenericError
	// AuthorizationError - caller lacks required ownership or stake
	AuthorizationError GenericError
	// ProcessError - processing failures
	ProcessError GenericError
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e AuthorizationError) Error() string { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrUnauthorized - determine the class of an error
func IsErrUnauthorized(e error) bool { _, ok := e.(AuthorizationError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ExistsError("already initialised")
	CannotDecodeAccount       = InvalidError("cannot decode account")
	CertificateFileExists     = ExistsError("certificate file already exists")
	ConfigOwnerRequired       = InvalidError("config owner is required")
	DataInconsistent          = ProcessError("data inconsistent")
	InvalidBlacklistAddress   = InvalidError("invalid blacklist address")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidDenomination       = InvalidError("invalid denomination")
	InvalidFeeAmount          = InvalidError("invalid fee amount")
	InvalidFunds              = InvalidError("attached funds do not match the required payment")
	InvalidIpAddress          = InvalidError("invalid IP Address")
	InvalidLoggerChannel      = InvalidError("invalid logger channel")
	InvalidStakeAmount        = InvalidError("invalid stake amount")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	InsufficientBalance       = InvalidError("insufficient balance")
	InsufficientFunds         = InvalidError("insufficient funds")
	InsufficientRecurringFee  = InvalidError("insufficient recurring fee")
	KeyFileExists             = ExistsError("key file already exists")
	MissingParameters         = InvalidError("missing parameters")
	NotAnExecutor             = AuthorizationError("caller holds no live stake")
	NotAvailable              = ProcessError("not available during startup")
	NotInitialised            = NotFoundError("not initialised")
	NotOwnerProposed          = AuthorizationError("ownership was not proposed to caller")
	NotRegistryOwner          = AuthorizationError("caller is not the registry owner")
	NotSwapPayload            = InvalidError("payload is not a swap message")
	NotYourRequest            = AuthorizationError("request is owned by another account")
	OwnerImmutableParameter   = InvalidError("stake denomination and amount cannot be updated")
	RateLimiting              = ProcessError("rate limiting")
	RecurringWithInputAsset   = InvalidError("recurring requests cannot carry an input asset")
	RequestAlreadyExecuting   = ProcessError("request is already being executed")
	RequestNotFound           = NotFoundError("request not found")
	SlippageExceeded          = ProcessError("swap output is outside the requested bounds")
	StakeIndexNotOwned        = AuthorizationError("stake index is owned by another account")
	StakeIndexOutOfRange      = NotFoundError("stake index is out of range")
	TargetBlacklisted         = InvalidError("target address is blacklisted")
	TargetCallFailed          = ProcessError("forwarded call to target failed")
	TooManyItemsToProcess     = InvalidError("too many items to process")
	TransactionInUse          = ProcessError("transaction is already in use")
	UnknownSwapPool           = NotFoundError("swap pool not found")
	UnknownTarget             = NotFoundError("target is not a callable contract")
	WrongNetworkForPrivateKey = InvalidError("wrong network for private key")
)
