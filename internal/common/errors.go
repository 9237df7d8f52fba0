// Package common defines shared constants and sentinel errors used across
// the spxp client layers. Callers should use errors.Is to match these values;
// every specific error also matches the category it belongs to.
package common

import (
	"errors"
	"fmt"
)

// Error categories.
var (
	// ErrPrecondition covers operator mistakes detected before any state is
	// touched: missing arguments or files, identity (not) bound, duplicates.
	ErrPrecondition = errors.New("precondition failed")

	// ErrRemoteValidation is returned when a referenced profile URI does not
	// resolve to a well-formed profile document.
	ErrRemoteValidation = errors.New("remote validation failed")

	// ErrTransport wraps any failed network call or unexpected response shape.
	ErrTransport = errors.New("transport error")

	// ErrLocalIO wraps failures reading or writing identity files.
	ErrLocalIO = errors.New("local io error")

	// ErrSigning is returned when the signing facility fails.
	ErrSigning = errors.New("signing failed")
)

// Identity store errors.
var (
	ErrIdentityExists   = fmt.Errorf("%w: identity already exists", ErrPrecondition)
	ErrIdentityNotFound = fmt.Errorf("%w: identity not found", ErrPrecondition)
)

// Binding errors.
var (
	ErrAlreadyBound = fmt.Errorf("%w: identity is already bound", ErrPrecondition)
	ErrNotBound     = fmt.Errorf("%w: identity is not bound to a service", ErrPrecondition)

	// ErrBindingInProgress rejects new binding arguments while an earlier
	// handshake is only partially recorded.
	ErrBindingInProgress = fmt.Errorf("%w: an interrupted binding must be resumed first", ErrPrecondition)

	// ErrDiscoveryFailed is deliberately coarse: any discovery problem is
	// reported with this one message.
	ErrDiscoveryFailed = fmt.Errorf("%w: domain does not provide the SPXP-SPE extension", ErrTransport)
)

// Argument errors.
var (
	ErrMissingArgument     = fmt.Errorf("%w: missing required argument", ErrPrecondition)
	ErrFileNotFound        = fmt.Errorf("%w: file not found", ErrPrecondition)
	ErrUnknownField        = fmt.Errorf("%w: unknown profile field", ErrPrecondition)
	ErrUnsupportedPostType = fmt.Errorf("%w: unsupported post type", ErrPrecondition)
	ErrRequiredField       = fmt.Errorf("%w: field cannot be removed", ErrPrecondition)
)

// Remote profile errors.
var (
	ErrInvalidProfile     = fmt.Errorf("%w: not a valid profile document", ErrRemoteValidation)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported protocol version", ErrRemoteValidation)
)

// Local document errors.
var (
	ErrInvalidDocument = fmt.Errorf("%w: invalid local document", ErrLocalIO)
)
