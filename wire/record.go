package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/arloliu/tokenstream/endian"
	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/token"
)

// twoPow128 converts between *big.Int values and 16-byte two's complement.
var twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)

// appendToken encodes one token record onto dst: the kind byte, then the
// kind-specific payload.
func appendToken(dst []byte, engine endian.EndianEngine, tok token.Token) ([]byte, error) {
	dst = append(dst, byte(tok.Kind))

	switch tok.Kind {
	case token.KindBool:
		if tok.Bool {
			return append(dst, 1), nil
		}

		return append(dst, 0), nil

	case token.KindInt8:
		return append(dst, byte(int8(tok.Int))), nil
	case token.KindInt16:
		return engine.AppendUint16(dst, uint16(int16(tok.Int))), nil
	case token.KindInt32:
		return engine.AppendUint32(dst, uint32(int32(tok.Int))), nil
	case token.KindInt64:
		return engine.AppendUint64(dst, uint64(tok.Int)), nil

	case token.KindUint8:
		return append(dst, byte(tok.Uint)), nil
	case token.KindUint16:
		return engine.AppendUint16(dst, uint16(tok.Uint)), nil
	case token.KindUint32:
		return engine.AppendUint32(dst, uint32(tok.Uint)), nil
	case token.KindUint64:
		return engine.AppendUint64(dst, tok.Uint), nil

	case token.KindInt128, token.KindUint128:
		return append128(dst, tok.Big)

	case token.KindFloat32:
		return engine.AppendUint32(dst, math.Float32bits(float32(tok.Float))), nil
	case token.KindFloat64:
		return engine.AppendUint64(dst, math.Float64bits(tok.Float)), nil

	case token.KindChar:
		return engine.AppendUint32(dst, uint32(tok.Char)), nil

	case token.KindStr, token.KindString:
		return appendString(dst, tok.Str), nil
	case token.KindBytes, token.KindByteBuf:
		dst = binary.AppendUvarint(dst, uint64(len(tok.Bytes)))
		return append(dst, tok.Bytes...), nil

	case token.KindNone, token.KindSome, token.KindUnit,
		token.KindSeqEnd, token.KindTupleEnd, token.KindTupleStructEnd,
		token.KindTupleVariantEnd, token.KindMapEnd, token.KindStructEnd,
		token.KindStructVariantEnd:
		return dst, nil

	case token.KindUnitStruct, token.KindNewtypeStruct, token.KindEnum:
		return appendString(dst, tok.Name), nil

	case token.KindUnitVariant, token.KindNewtypeVariant:
		dst = appendString(dst, tok.Name)
		return appendString(dst, tok.Variant), nil

	case token.KindSeq, token.KindTuple, token.KindMap:
		return binary.AppendVarint(dst, int64(tok.Len)), nil

	case token.KindTupleStruct, token.KindStruct:
		dst = appendString(dst, tok.Name)
		return binary.AppendVarint(dst, int64(tok.Len)), nil

	case token.KindTupleVariant, token.KindStructVariant:
		dst = appendString(dst, tok.Name)
		dst = appendString(dst, tok.Variant)
		return binary.AppendVarint(dst, int64(tok.Len)), nil

	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidTokenKind, uint8(tok.Kind))
	}
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// append128 encodes v as 16 big-endian two's complement bytes. Negative
// values are offset by 2^128 before filling.
func append128(dst []byte, v *big.Int) ([]byte, error) {
	if v == nil {
		return nil, errs.ErrNilValue
	}

	u := v
	if v.Sign() < 0 {
		u = new(big.Int).Add(v, twoPow128)
	}

	var word [16]byte
	u.FillBytes(word[:])

	return append(dst, word[:]...), nil
}

// payloadCursor walks a decoded payload, reporting truncation instead of
// panicking on short input.
type payloadCursor struct {
	data []byte
	off  int
}

func (c *payloadCursor) remaining() int {
	return len(c.data) - c.off
}

func (c *payloadCursor) take(n int) ([]byte, error) {
	// n comes from attacker-controlled varints; a huge uvarint converted
	// to int goes negative, so both bounds need checking before slicing.
	if n < 0 || n > c.remaining() {
		return nil, errs.ErrTruncatedPayload
	}

	b := c.data[c.off : c.off+n]
	c.off += n

	return b, nil
}

func (c *payloadCursor) byte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (c *payloadCursor) uvarint() (uint64, error) {
	v, n := binary.Uvarint(c.data[c.off:])
	if n <= 0 {
		return 0, errs.ErrTruncatedPayload
	}
	c.off += n

	return v, nil
}

func (c *payloadCursor) varint() (int64, error) {
	v, n := binary.Varint(c.data[c.off:])
	if n <= 0 {
		return 0, errs.ErrTruncatedPayload
	}
	c.off += n

	return v, nil
}

func (c *payloadCursor) str() (string, error) {
	n, err := c.uvarint()
	if err != nil {
		return "", err
	}
	if n > uint64(c.remaining()) {
		return "", errs.ErrTruncatedPayload
	}

	b, err := c.take(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// readToken decodes one token record at the cursor. Byte payloads for
// KindBytes alias the cursor's backing buffer; KindByteBuf payloads are
// copied.
func readToken(c *payloadCursor, engine endian.EndianEngine) (token.Token, error) {
	kindByte, err := c.byte()
	if err != nil {
		return token.Token{}, err
	}

	kind := token.Kind(kindByte)
	tok := token.Token{Kind: kind}

	switch kind {
	case token.KindBool:
		b, err := c.byte()
		if err != nil {
			return token.Token{}, err
		}
		tok.Bool = b != 0

	case token.KindInt8:
		b, err := c.byte()
		if err != nil {
			return token.Token{}, err
		}
		tok.Int = int64(int8(b))
	case token.KindInt16:
		b, err := c.take(2)
		if err != nil {
			return token.Token{}, err
		}
		tok.Int = int64(int16(engine.Uint16(b)))
	case token.KindInt32:
		b, err := c.take(4)
		if err != nil {
			return token.Token{}, err
		}
		tok.Int = int64(int32(engine.Uint32(b)))
	case token.KindInt64:
		b, err := c.take(8)
		if err != nil {
			return token.Token{}, err
		}
		tok.Int = int64(engine.Uint64(b))

	case token.KindUint8:
		b, err := c.byte()
		if err != nil {
			return token.Token{}, err
		}
		tok.Uint = uint64(b)
	case token.KindUint16:
		b, err := c.take(2)
		if err != nil {
			return token.Token{}, err
		}
		tok.Uint = uint64(engine.Uint16(b))
	case token.KindUint32:
		b, err := c.take(4)
		if err != nil {
			return token.Token{}, err
		}
		tok.Uint = uint64(engine.Uint32(b))
	case token.KindUint64:
		b, err := c.take(8)
		if err != nil {
			return token.Token{}, err
		}
		tok.Uint = engine.Uint64(b)

	case token.KindInt128, token.KindUint128:
		b, err := c.take(16)
		if err != nil {
			return token.Token{}, err
		}
		tok.Big = read128(b, kind == token.KindInt128)

	case token.KindFloat32:
		b, err := c.take(4)
		if err != nil {
			return token.Token{}, err
		}
		tok.Float = float64(math.Float32frombits(engine.Uint32(b)))
	case token.KindFloat64:
		b, err := c.take(8)
		if err != nil {
			return token.Token{}, err
		}
		tok.Float = math.Float64frombits(engine.Uint64(b))

	case token.KindChar:
		b, err := c.take(4)
		if err != nil {
			return token.Token{}, err
		}
		tok.Char = rune(engine.Uint32(b))

	case token.KindStr, token.KindString:
		s, err := c.str()
		if err != nil {
			return token.Token{}, err
		}
		tok.Str = s

	case token.KindBytes, token.KindByteBuf:
		n, err := c.uvarint()
		if err != nil {
			return token.Token{}, err
		}
		if n > uint64(c.remaining()) {
			return token.Token{}, errs.ErrTruncatedPayload
		}
		b, err := c.take(int(n))
		if err != nil {
			return token.Token{}, err
		}
		if kind == token.KindByteBuf {
			tok.Bytes = append([]byte(nil), b...)
		} else {
			tok.Bytes = b
		}

	case token.KindNone, token.KindSome, token.KindUnit,
		token.KindSeqEnd, token.KindTupleEnd, token.KindTupleStructEnd,
		token.KindTupleVariantEnd, token.KindMapEnd, token.KindStructEnd,
		token.KindStructVariantEnd:
		// Kind byte only.

	case token.KindUnitStruct, token.KindNewtypeStruct, token.KindEnum:
		name, err := c.str()
		if err != nil {
			return token.Token{}, err
		}
		tok.Name = name

	case token.KindUnitVariant, token.KindNewtypeVariant:
		if tok.Name, err = c.str(); err != nil {
			return token.Token{}, err
		}
		if tok.Variant, err = c.str(); err != nil {
			return token.Token{}, err
		}

	case token.KindSeq, token.KindTuple, token.KindMap:
		n, err := c.varint()
		if err != nil {
			return token.Token{}, err
		}
		tok.Len = int(n)

	case token.KindTupleStruct, token.KindStruct:
		if tok.Name, err = c.str(); err != nil {
			return token.Token{}, err
		}
		n, err := c.varint()
		if err != nil {
			return token.Token{}, err
		}
		tok.Len = int(n)

	case token.KindTupleVariant, token.KindStructVariant:
		if tok.Name, err = c.str(); err != nil {
			return token.Token{}, err
		}
		if tok.Variant, err = c.str(); err != nil {
			return token.Token{}, err
		}
		n, err := c.varint()
		if err != nil {
			return token.Token{}, err
		}
		tok.Len = int(n)

	default:
		return token.Token{}, fmt.Errorf("%w: %d", errs.ErrInvalidTokenKind, kindByte)
	}

	return tok, nil
}

// read128 decodes 16 big-endian bytes, interpreting the high bit as the
// sign when signed is set.
func read128(b []byte, signed bool) *big.Int {
	u := new(big.Int).SetBytes(b)
	if signed && u.Bit(127) == 1 {
		u.Sub(u, twoPow128)
	}

	return u
}
