// Package tokenstream converts a push-style structured-data decoder's
// events into a flat, strictly ordered token stream delivered through a
// backpressure-aware sink.
//
// The token stream is linear: compound values are bracketed by explicit
// begin/end markers (Seq/SeqEnd, Map/MapEnd, ...) and scalars appear as
// single tokens, so a document of any nesting depth flows through with
// O(depth) state and no intermediate tree.
//
// # Core Features
//
//   - Closed token vocabulary mirroring a full structured-data model:
//     fixed-width integers up to 128 bits, floats, char, string, bytes,
//     optionals, unit forms, newtypes, sequences, tuples, maps, structs
//     and enum variants
//   - Synchronous, non-buffering delivery: a sink answers Accepted,
//     Rejected or Closed per token, and the first non-Accepted answer
//     aborts the transcode
//   - Concrete decoder drivers for JSON, YAML and arbitrary Go values
//   - Binary frame format with optional compression (None, Zstd, S2, LZ4)
//     and xxHash64 integrity checking
//   - Stream validation and value materialization for round-trip checks
//
// # Basic Usage
//
// Transcoding a JSON document into a token slice:
//
//	import "github.com/arloliu/tokenstream"
//
//	tokens, err := tokenstream.TokensFromJSON(strings.NewReader(`[1, "hello", 3]`))
//	// tokens: Seq{len:?} U64(1) Str("hello") U64(3) SeqEnd
//
// Streaming into a bounded channel with backpressure:
//
//	snk := sink.NewChan(64)
//	go consume(snk.Tokens())
//	err := tokenstream.TranscodeJSON(r, snk)
//
// Writing a frame to disk:
//
//	fw, _ := wire.NewWriter(f, wire.WithCompression(compress.TypeZstd))
//	_ = tokenstream.TranscodeJSON(r, fw)
//	_ = fw.Finish()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the emit,
// source, sink, wire and material packages, simplifying the most common
// use cases. For fine-grained control, use those packages directly.
package tokenstream

import (
	"io"

	"github.com/arloliu/tokenstream/emit"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/source"
	"github.com/arloliu/tokenstream/token"
)

// Transcode runs src against snk through a fresh emitter. It is a direct
// alias for emit.Transcode.
func Transcode(src emit.Source, snk sink.Sink, opts ...emit.Option) error {
	return emit.Transcode(src, snk, opts...)
}

// TranscodeJSON tokenizes one JSON document read from r into snk.
func TranscodeJSON(r io.Reader, snk sink.Sink, opts ...emit.Option) error {
	return emit.Transcode(source.NewJSONSource(r), snk, opts...)
}

// TranscodeYAML tokenizes one YAML document into snk.
func TranscodeYAML(data []byte, snk sink.Sink, opts ...emit.Option) error {
	return emit.Transcode(source.NewYAMLSource(data), snk, opts...)
}

// TranscodeValue tokenizes an arbitrary Go value into snk by reflection.
func TranscodeValue(v any, snk sink.Sink, opts ...emit.Option) error {
	return emit.Transcode(source.NewValueSource(v), snk, opts...)
}

// Tokens collects src's complete token stream into a slice.
func Tokens(src emit.Source, opts ...emit.Option) ([]token.Token, error) {
	snk := sink.NewCollect()
	if err := emit.Transcode(src, snk, opts...); err != nil {
		return nil, err
	}

	return snk.Tokens(), nil
}

// TokensFromJSON collects the token stream of one JSON document.
func TokensFromJSON(r io.Reader) ([]token.Token, error) {
	return Tokens(source.NewJSONSource(r))
}

// TokensFromYAML collects the token stream of one YAML document.
func TokensFromYAML(data []byte) ([]token.Token, error) {
	return Tokens(source.NewYAMLSource(data))
}

// TokensFromValue collects the token stream of an arbitrary Go value.
func TokensFromValue(v any) ([]token.Token, error) {
	return Tokens(source.NewValueSource(v))
}
