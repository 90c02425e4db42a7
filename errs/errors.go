// Package errs defines the sentinel errors shared across tokenstream packages.
//
// Errors come in two families matching the transcode failure taxonomy:
//
//   - Write failures: the sink rejected or closed during token delivery.
//     Every error in this family matches ErrWriteFailure via errors.Is.
//   - Source failures: the decoder driving the transcode reported an error
//     walking its input. Wrapped errors match ErrSourceFailure.
//
// The remaining sentinels cover API misuse (compound scope discipline,
// invalid lengths and ranges) and wire format corruption.
package errs

import (
	"errors"
	"fmt"
)

// Write-failure family. A transcode that returns one of these delivered an
// unknown number of tokens before failing; the stream is incomplete.
var (
	// ErrWriteFailure is the root of the write-failure family. Callers
	// should match with errors.Is(err, ErrWriteFailure).
	ErrWriteFailure = errors.New("token write failure")

	// ErrSinkRejected indicates the sink applied backpressure and refused
	// the token. The core has no buffering, so this aborts the transcode.
	ErrSinkRejected = fmt.Errorf("%w: sink rejected token", ErrWriteFailure)

	// ErrSinkClosed indicates the consumer has gone away.
	ErrSinkClosed = fmt.Errorf("%w: sink closed", ErrWriteFailure)
)

// ErrSourceFailure is the root of the source-failure family: the decoder
// reported an error walking the input, distinct from any sink problem.
var ErrSourceFailure = errors.New("source failure")

// Emitter and compound scope misuse errors.
var (
	// ErrScopeEnded is returned by any Scope method called after End.
	ErrScopeEnded = errors.New("compound scope already ended")

	// ErrScopeMisuse is returned when a Scope method does not match the
	// scope's kind, e.g. Field on a sequence scope.
	ErrScopeMisuse = errors.New("method does not match compound scope kind")

	// ErrInvalidLength is returned when a tuple or struct header is opened
	// with a negative length; those lengths are exact, never unknown.
	ErrInvalidLength = errors.New("invalid length")

	// ErrValueOutOfRange is returned when a 128-bit integer payload does
	// not fit the declared signed or unsigned 128-bit range.
	ErrValueOutOfRange = errors.New("value out of 128-bit range")

	// ErrNilValue is returned when a nil Value is handed to a header or
	// compound method that must serialize a wrapped value.
	ErrNilValue = errors.New("nil value")
)

// Wire format errors.
var (
	// ErrInvalidMagicNumber indicates the frame does not start with the
	// token frame magic bytes.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion indicates a frame version this package cannot read.
	ErrUnsupportedVersion = errors.New("unsupported frame version")

	// ErrInvalidHeaderSize indicates a frame shorter than the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidCompression indicates an unknown compression type flag.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrChecksumMismatch indicates the payload digest does not match the
	// frame footer.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrInvalidTokenKind indicates a token record with an unknown kind byte.
	ErrInvalidTokenKind = errors.New("invalid token kind")

	// ErrTruncatedPayload indicates a token record extending past the end
	// of the payload.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrWriterFinished is returned when tokens are written to a wire
	// writer after Finish.
	ErrWriterFinished = errors.New("writer already finished")
)

// Token stream well-formedness errors, reported by material.Validator.
var (
	// ErrUnbalancedEnd indicates an end token with no matching open begin
	// token, or an end token that does not close the innermost open scope.
	ErrUnbalancedEnd = errors.New("unbalanced end token")

	// ErrUnclosedScope indicates a stream that finished with begin tokens
	// still open.
	ErrUnclosedScope = errors.New("unclosed scope")

	// ErrDanglingHeader indicates a stream that finished immediately after
	// a Some or newtype header, with no wrapped value following.
	ErrDanglingHeader = errors.New("dangling header token")

	// ErrUnexpectedToken indicates a token that cannot appear at the
	// current position, e.g. a value where a map key is required.
	ErrUnexpectedToken = errors.New("unexpected token")
)
