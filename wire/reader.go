package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/tokenstream/compress"
	"github.com/arloliu/tokenstream/endian"
	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/token"
)

// Reader decodes a token frame. The header, length accounting and payload
// digest are validated up front by NewReader; tokens are then decoded
// lazily by ReadToken.
type Reader struct {
	cursor      payloadCursor
	engine      endian.EndianEngine
	compression compress.Type
	count       int
	read        int
}

// NewReader reads one complete frame from r and validates it.
func NewReader(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Decode validates a frame held in memory. Decoded Bytes tokens may alias
// data's memory when the frame is uncompressed.
func Decode(data []byte) (*Reader, error) {
	if len(data) < headerSize+footerSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	if binary.BigEndian.Uint32(data[0:4]) != MagicNumber {
		return nil, errs.ErrInvalidMagicNumber
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, data[4])
	}

	flags := data[5]
	engine := endian.GetLittleEndianEngine()
	if flags&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	compression := compress.Type(flags & flagCompressionMask)
	if !compression.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, flags&flagCompressionMask)
	}

	count := engine.Uint32(data[8:12])
	payloadLen := engine.Uint32(data[12:16])

	if len(data) != headerSize+int(payloadLen)+footerSize {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, frame has %d",
			errs.ErrTruncatedPayload, payloadLen, len(data)-headerSize-footerSize)
	}

	payload := data[headerSize : headerSize+int(payloadLen)]
	digest := engine.Uint64(data[headerSize+int(payloadLen):])
	if xxhash.Sum64(payload) != digest {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	decoded, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("decompress frame payload: %w", err)
	}

	return &Reader{
		cursor:      payloadCursor{data: decoded},
		engine:      engine,
		compression: compression,
		count:       int(count),
	}, nil
}

// Count returns the token count declared by the frame header.
func (fr *Reader) Count() int {
	return fr.count
}

// Compression returns the frame's compression type.
func (fr *Reader) Compression() compress.Type {
	return fr.compression
}

// ReadToken decodes the next token. It returns io.EOF once the declared
// token count has been read, and ErrTruncatedPayload when the payload ends
// mid-record or carries trailing garbage.
func (fr *Reader) ReadToken() (token.Token, error) {
	if fr.read == fr.count {
		if fr.cursor.remaining() != 0 {
			return token.Token{}, fmt.Errorf("%w: %d trailing bytes",
				errs.ErrTruncatedPayload, fr.cursor.remaining())
		}

		return token.Token{}, io.EOF
	}

	tok, err := readToken(&fr.cursor, fr.engine)
	if err != nil {
		return token.Token{}, err
	}
	fr.read++

	return tok, nil
}

// Tokens decodes all remaining tokens.
func (fr *Reader) Tokens() ([]token.Token, error) {
	toks := make([]token.Token, 0, fr.count-fr.read)
	for {
		tok, err := fr.ReadToken()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// Replay feeds the remaining tokens to a sink, honoring the standard
// delivery contract: the first Rejected or Closed status aborts with the
// matching write-failure error.
func (fr *Reader) Replay(snk sink.Sink) error {
	for {
		tok, err := fr.ReadToken()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch snk.TryAccept(tok) {
		case sink.Accepted:
		case sink.Rejected:
			return fmt.Errorf("%w: %s", errs.ErrSinkRejected, tok.Kind)
		case sink.Closed:
			return fmt.Errorf("%w: %s", errs.ErrSinkClosed, tok.Kind)
		}
	}
}
