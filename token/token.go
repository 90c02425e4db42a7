// Package token defines the flat token vocabulary of a transcoded document.
//
// A token is one atomic unit of the linear event stream that a transcode
// produces: one variant per scalar type plus explicit begin/end markers for
// each structural form (sequences, tuples, maps, structs, enum variants).
// Read left to right, with every end token closing the nearest unclosed
// begin token, a token stream reconstructs the original document exactly.
//
// Tokens are plain data. They carry no behavior beyond structural equality
// and debug formatting; producing them is the emit package's job and
// consuming them is whatever sits behind the sink.
//
// # Payload ownership
//
// KindStr and KindBytes payloads may alias memory owned by the upstream
// decoder when the emitter was configured with borrowed payloads. Such
// tokens are valid only for the duration of the transcode call that
// produced them. Own converts them to the owning kinds (KindString,
// KindByteBuf) for retention beyond that window.
package token

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
)

// LenUnknown marks a sequence or map header whose element count was not
// known up front. Tuple and struct headers always carry exact lengths.
const LenUnknown = -1

// Token is one event of the linear structural/scalar stream. Only the
// fields relevant to Kind are set; all others hold zero values.
type Token struct {
	Kind Kind

	Bool  bool
	Int   int64    // KindInt8..KindInt64
	Uint  uint64   // KindUint8..KindUint64
	Big   *big.Int // KindInt128, KindUint128
	Float float64  // KindFloat32 (exactly representable), KindFloat64
	Char  rune

	Str   string // KindStr, KindString
	Bytes []byte // KindBytes, KindByteBuf

	Name    string // struct/variant/enum name
	Variant string // enum variant name

	// Len is the declared element count for structural headers.
	// LenUnknown for Seq and Map headers without a hint; exact otherwise.
	Len int
}

// Scalar constructors.

func Bool(v bool) Token     { return Token{Kind: KindBool, Bool: v} }
func Int8(v int8) Token     { return Token{Kind: KindInt8, Int: int64(v)} }
func Int16(v int16) Token   { return Token{Kind: KindInt16, Int: int64(v)} }
func Int32(v int32) Token   { return Token{Kind: KindInt32, Int: int64(v)} }
func Int64(v int64) Token   { return Token{Kind: KindInt64, Int: v} }
func Uint8(v uint8) Token   { return Token{Kind: KindUint8, Uint: uint64(v)} }
func Uint16(v uint16) Token { return Token{Kind: KindUint16, Uint: uint64(v)} }
func Uint32(v uint32) Token { return Token{Kind: KindUint32, Uint: uint64(v)} }
func Uint64(v uint64) Token { return Token{Kind: KindUint64, Uint: v} }

// Int128 creates a signed 128-bit integer token. The payload is copied.
// Range validation is the emitter's job; the constructor stores v as given.
func Int128(v *big.Int) Token {
	return Token{Kind: KindInt128, Big: new(big.Int).Set(v)}
}

// Uint128 creates an unsigned 128-bit integer token. The payload is copied.
func Uint128(v *big.Int) Token {
	return Token{Kind: KindUint128, Big: new(big.Int).Set(v)}
}

// Float32 creates an F32 token. The value is stored as float64; the
// conversion is exact, so round-tripping through the wire format preserves
// the original float32 bit pattern.
func Float32(v float32) Token { return Token{Kind: KindFloat32, Float: float64(v)} }

func Float64(v float64) Token { return Token{Kind: KindFloat64, Float: v} }

func Char(v rune) Token { return Token{Kind: KindChar, Char: v} }

// Str creates a borrowed text token. The string is stored as given; Go
// strings are immutable so no copy is needed, but a string produced by an
// unsafe zero-copy conversion from a decoder buffer is only valid while
// that buffer is.
func Str(v string) Token { return Token{Kind: KindStr, Str: v} }

// OwnedString creates an owning text token.
func OwnedString(v string) Token { return Token{Kind: KindString, Str: v} }

// BytesView creates a borrowed binary token aliasing v. The token is valid
// only while v is, and only until the producer reuses the buffer.
func BytesView(v []byte) Token { return Token{Kind: KindBytes, Bytes: v} }

// ByteBuf creates an owning binary token, copying v.
func ByteBuf(v []byte) Token {
	return Token{Kind: KindByteBuf, Bytes: append([]byte(nil), v...)}
}

// Optional, unit-like and newtype constructors.

func None() Token { return Token{Kind: KindNone} }
func Some() Token { return Token{Kind: KindSome} }
func Unit() Token { return Token{Kind: KindUnit} }

func UnitStruct(name string) Token {
	return Token{Kind: KindUnitStruct, Name: name}
}

func UnitVariant(name, variant string) Token {
	return Token{Kind: KindUnitVariant, Name: name, Variant: variant}
}

func NewtypeStruct(name string) Token {
	return Token{Kind: KindNewtypeStruct, Name: name}
}

func NewtypeVariant(name, variant string) Token {
	return Token{Kind: KindNewtypeVariant, Name: name, Variant: variant}
}

// Structural constructors.

func Seq(length int) Token   { return Token{Kind: KindSeq, Len: length} }
func SeqEnd() Token          { return Token{Kind: KindSeqEnd} }
func Tuple(length int) Token { return Token{Kind: KindTuple, Len: length} }
func TupleEnd() Token        { return Token{Kind: KindTupleEnd} }
func Map(length int) Token   { return Token{Kind: KindMap, Len: length} }
func MapEnd() Token          { return Token{Kind: KindMapEnd} }

func TupleStruct(name string, length int) Token {
	return Token{Kind: KindTupleStruct, Name: name, Len: length}
}

func TupleStructEnd() Token { return Token{Kind: KindTupleStructEnd} }

func TupleVariant(name, variant string, length int) Token {
	return Token{Kind: KindTupleVariant, Name: name, Variant: variant, Len: length}
}

func TupleVariantEnd() Token { return Token{Kind: KindTupleVariantEnd} }

func Struct(name string, length int) Token {
	return Token{Kind: KindStruct, Name: name, Len: length}
}

func StructEnd() Token { return Token{Kind: KindStructEnd} }

func StructVariant(name, variant string, length int) Token {
	return Token{Kind: KindStructVariant, Name: name, Variant: variant, Len: length}
}

func StructVariantEnd() Token { return Token{Kind: KindStructVariantEnd} }

func Enum(name string) Token { return Token{Kind: KindEnum, Name: name} }

// IsBegin reports whether the token opens a structural scope.
func (t Token) IsBegin() bool { return t.Kind.IsBegin() }

// IsEnd reports whether the token closes a structural scope.
func (t Token) IsEnd() bool { return t.Kind.IsEnd() }

// Equal compares two tokens structurally: kind tag plus every payload field
// relevant to that kind.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}

	switch t.Kind {
	case KindBool:
		return t.Bool == o.Bool
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return t.Int == o.Int
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return t.Uint == o.Uint
	case KindInt128, KindUint128:
		if t.Big == nil || o.Big == nil {
			return t.Big == o.Big
		}
		return t.Big.Cmp(o.Big) == 0
	case KindFloat32, KindFloat64:
		return t.Float == o.Float
	case KindChar:
		return t.Char == o.Char
	case KindStr, KindString:
		return t.Str == o.Str
	case KindBytes, KindByteBuf:
		return bytes.Equal(t.Bytes, o.Bytes)
	case KindUnitStruct, KindNewtypeStruct, KindEnum:
		return t.Name == o.Name
	case KindUnitVariant, KindNewtypeVariant:
		return t.Name == o.Name && t.Variant == o.Variant
	case KindSeq, KindTuple, KindMap:
		return t.Len == o.Len
	case KindTupleStruct, KindStruct:
		return t.Name == o.Name && t.Len == o.Len
	case KindTupleVariant, KindStructVariant:
		return t.Name == o.Name && t.Variant == o.Variant && t.Len == o.Len
	default:
		// End markers, None, Some, Unit: kind equality suffices.
		return true
	}
}

// Own returns a token safe to retain past the transcode call that produced
// it. Borrowed kinds are promoted: Str becomes String and Bytes becomes
// ByteBuf with a copied payload. All other kinds are returned unchanged.
func (t Token) Own() Token {
	switch t.Kind {
	case KindStr:
		t.Kind = KindString
	case KindBytes:
		t.Kind = KindByteBuf
		t.Bytes = append([]byte(nil), t.Bytes...)
	}

	return t
}

// String renders the token for debugging, e.g. `Str("hello")` or
// `Seq{len:?}`.
func (t Token) String() string {
	switch t.Kind {
	case KindBool:
		return fmt.Sprintf("Bool(%t)", t.Bool)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Uint)
	case KindInt128, KindUint128:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Big)
	case KindFloat32, KindFloat64:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Float, 'g', -1, 64))
	case KindChar:
		return fmt.Sprintf("Char(%q)", t.Char)
	case KindStr, KindString:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Str)
	case KindBytes, KindByteBuf:
		return fmt.Sprintf("%s(%d bytes)", t.Kind, len(t.Bytes))
	case KindUnitStruct, KindNewtypeStruct, KindEnum:
		return fmt.Sprintf("%s{name:%s}", t.Kind, t.Name)
	case KindUnitVariant, KindNewtypeVariant:
		return fmt.Sprintf("%s{name:%s, variant:%s}", t.Kind, t.Name, t.Variant)
	case KindSeq, KindMap:
		if t.Len == LenUnknown {
			return fmt.Sprintf("%s{len:?}", t.Kind)
		}
		return fmt.Sprintf("%s{len:%d}", t.Kind, t.Len)
	case KindTuple:
		return fmt.Sprintf("Tuple{len:%d}", t.Len)
	case KindTupleStruct, KindStruct:
		return fmt.Sprintf("%s{name:%s, len:%d}", t.Kind, t.Name, t.Len)
	case KindTupleVariant, KindStructVariant:
		return fmt.Sprintf("%s{name:%s, variant:%s, len:%d}", t.Kind, t.Name, t.Variant, t.Len)
	default:
		return t.Kind.String()
	}
}
