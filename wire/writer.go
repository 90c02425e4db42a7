package wire

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/tokenstream/compress"
	"github.com/arloliu/tokenstream/endian"
	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/internal/options"
	"github.com/arloliu/tokenstream/internal/pool"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/token"
)

const (
	// MagicNumber marks the start of a token frame ("TKN1").
	MagicNumber uint32 = 0x544B4E31

	// Version is the frame format version this package writes.
	Version uint8 = 1

	headerSize = 16
	footerSize = 8

	flagCompressionMask = 0x0F
	flagBigEndian       = 0x80
)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression selects the payload compression type. The default is
// TypeNone.
func WithCompression(typ compress.Type) WriterOption {
	return options.New(func(w *Writer) error {
		if !typ.Valid() {
			return fmt.Errorf("invalid frame compression: %d", uint8(typ))
		}
		w.compression = typ

		return nil
	})
}

// WithLittleEndian selects little-endian byte order, the default.
func WithLittleEndian() WriterOption {
	return options.NoError(func(w *Writer) {
		w.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian selects big-endian byte order.
func WithBigEndian() WriterOption {
	return options.NoError(func(w *Writer) {
		w.engine = endian.GetBigEndianEngine()
	})
}

// WithNativeEndian selects the host's byte order, avoiding byte swapping
// when frames stay on one machine.
func WithNativeEndian() WriterOption {
	return options.NoError(func(w *Writer) {
		if endian.IsNativeLittleEndian() {
			w.engine = endian.GetLittleEndianEngine()
		} else {
			w.engine = endian.GetBigEndianEngine()
		}
	})
}

// Writer encodes a token stream into a frame. It implements sink.Sink, so
// it can terminate a transcode directly; tokens are buffered as encoded
// records and the frame is assembled and written on Finish.
//
// A Writer is single-use and not safe for concurrent use, matching the
// synchronous delivery contract of the stream core.
type Writer struct {
	w           io.Writer
	buf         *pool.ByteBuffer
	engine      endian.EndianEngine
	compression compress.Type
	count       uint32
	finished    bool
	err         error
}

var _ sink.Sink = (*Writer)(nil)

// NewWriter creates a frame writer targeting w.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	fw := &Writer{
		w:           w,
		buf:         pool.GetFrameBuffer(),
		engine:      endian.GetLittleEndianEngine(),
		compression: compress.TypeNone,
	}

	if err := options.Apply(fw, opts...); err != nil {
		pool.PutFrameBuffer(fw.buf)
		return nil, err
	}

	return fw, nil
}

// TryAccept encodes the token into the pending frame. It reports Closed
// after Finish and Rejected when the token cannot be encoded; Err returns
// the encoding error in the latter case.
func (fw *Writer) TryAccept(tok token.Token) sink.Status {
	if fw.finished {
		return sink.Closed
	}

	encoded, err := appendToken(fw.buf.B, fw.engine, tok)
	if err != nil {
		fw.err = err
		return sink.Rejected
	}

	fw.buf.B = encoded
	fw.count++

	return sink.Accepted
}

// Err returns the first encoding or write error, if any.
func (fw *Writer) Err() error {
	return fw.err
}

// Count returns the number of tokens accepted so far.
func (fw *Writer) Count() int {
	return int(fw.count)
}

// Finish compresses the buffered records, assembles the frame and writes
// it to the underlying writer. The Writer accepts no tokens afterwards.
func (fw *Writer) Finish() error {
	if fw.finished {
		return errs.ErrWriterFinished
	}
	fw.finished = true

	defer func() {
		pool.PutFrameBuffer(fw.buf)
		fw.buf = nil
	}()

	if fw.err != nil {
		return fw.err
	}

	codec, err := compress.CreateCodec(fw.compression, "frame")
	if err != nil {
		fw.err = err
		return err
	}

	payload, err := codec.Compress(fw.buf.B)
	if err != nil {
		fw.err = err
		return err
	}

	frame := make([]byte, 0, headerSize+len(payload)+footerSize)
	frame = fw.appendHeader(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	frame = fw.engine.AppendUint64(frame, xxhash.Sum64(payload))

	if _, err := fw.w.Write(frame); err != nil {
		fw.err = err
		return err
	}

	return nil
}

func (fw *Writer) appendHeader(dst []byte, payloadLen uint32) []byte {
	dst = append(dst, 'T', 'K', 'N', '1', Version)

	flags := uint8(fw.compression) & flagCompressionMask
	if fw.engine == endian.GetBigEndianEngine() {
		flags |= flagBigEndian
	}
	dst = append(dst, flags, 0, 0)

	dst = fw.engine.AppendUint32(dst, fw.count)
	dst = fw.engine.AppendUint32(dst, payloadLen)

	return dst
}
