// Package compress provides the payload codecs for the token wire format.
//
// A wire frame's token payload is compressed as a whole, after encoding
// and before the integrity footer is computed. Four codecs are available:
//
//	Type     Library                   Profile
//	────────────────────────────────────────────────────────────
//	None     -                         pass-through
//	Zstd     gozstd (cgo) /            best ratio, archival and
//	         klauspost (pure Go)       network transfer
//	S2       klauspost/compress/s2     fastest, hot paths
//	LZ4      pierrec/lz4               fast with decent ratio
//
// The Zstd codec uses the cgo-backed gozstd implementation when cgo is
// available and falls back to the pure-Go klauspost implementation
// otherwise; both produce interoperable Zstandard frames.
//
// All codecs are stateless and safe for concurrent use.
package compress
