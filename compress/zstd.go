package compress

// ZstdCompressor backs TypeZstd. Two implementations exist behind build
// tags: a cgo binding to libzstd when cgo is enabled, and a pure Go
// fallback otherwise. Both produce interchangeable zstd frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd frame codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
