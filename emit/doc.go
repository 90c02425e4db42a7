// Package emit implements the token emitter: the visitor that a
// structured-data decoder drives, converting decode events into a flat
// token stream delivered through a sink.
//
// The Emitter exposes one callback per scalar kind plus structural
// callbacks that open a Scope for each compound form. Every successful
// callback delivers exactly one token to the sink before returning; header
// callbacks (Some, newtype) deliver their header token and then recurse
// into the wrapped value against the same emitter. Control flow is
// synchronous and single-threaded: a token is either fully accepted or the
// whole transcode aborts with a write failure.
//
// Transcode is the single entry point wiring a Source (any component that
// can walk a document and invoke emitter callbacks in document order) to a
// sink:
//
//	var collected sink.Collect
//	err := emit.Transcode(source.NewJSONSource(r), &collected)
//
// # Payload ownership
//
// By default the emitter detaches byte payloads from the decoder's buffers
// by copying, so produced tokens are safe to retain. WithBorrowedPayloads
// disables the copy; Str and Bytes tokens then alias decoder-owned memory
// and are valid only for the duration of the transcode call. The contract
// is explicit: the caller guarantees the input buffer outlives the whole
// transcode, and nothing makes the tokens outlive it.
package emit
