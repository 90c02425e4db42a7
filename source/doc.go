// Package source provides concrete decoder drivers for the transcode
// entry point: components that walk a document in its native encoding and
// invoke emitter callbacks in document order.
//
// Three drivers are included:
//
//   - JSONSource streams a JSON document with encoding/json, one value at
//     a time, never materializing the whole document.
//   - YAMLSource walks a parsed YAML document.
//   - ValueSource walks an arbitrary Go value with reflection, the
//     equivalent of driving the emitter from an in-memory tree.
//
// Any type implementing emit.Source plugs into the same entry point; these
// drivers are conveniences, not the contract.
package source
