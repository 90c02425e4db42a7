package emit

import (
	"math/big"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/internal/options"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/token"
)

// Emitter receives decode events and writes the corresponding tokens to a
// sink. It owns no data beyond the sink handle and its configuration; all
// recursion state lives on the call stack.
//
// The Emitter is not safe for concurrent use. It matches the decoder's
// single-threaded walk: one callback at a time, each confirmed by the sink
// before the next may begin.
type Emitter struct {
	sink   sink.Sink
	borrow bool
}

// Option configures an Emitter.
type Option = options.Option[*Emitter]

// WithBorrowedPayloads disables the defensive copy of byte payloads handed
// to Bytes. The resulting tokens alias decoder-owned memory and are valid
// only until the transcode call returns.
func WithBorrowedPayloads() Option {
	return options.NoError(func(e *Emitter) {
		e.borrow = true
	})
}

// New creates an Emitter writing to snk.
func New(snk sink.Sink, opts ...Option) (*Emitter, error) {
	e := &Emitter{sink: snk}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// write delivers one token and translates the sink's answer into the
// write-failure taxonomy. Any non-Accepted answer aborts the transcode.
func (e *Emitter) write(tok token.Token) error {
	switch e.sink.TryAccept(tok) {
	case sink.Accepted:
		return nil
	case sink.Rejected:
		return errs.ErrSinkRejected
	case sink.Closed:
		return errs.ErrSinkClosed
	default:
		return errs.ErrWriteFailure
	}
}

// Scalar callbacks. Each delivers exactly one token.

func (e *Emitter) Bool(v bool) error {
	return e.write(token.Bool(v))
}

func (e *Emitter) Int8(v int8) error {
	return e.write(token.Int8(v))
}

func (e *Emitter) Int16(v int16) error {
	return e.write(token.Int16(v))
}

func (e *Emitter) Int32(v int32) error {
	return e.write(token.Int32(v))
}

func (e *Emitter) Int64(v int64) error {
	return e.write(token.Int64(v))
}

// Int128 emits a signed 128-bit integer. Values outside [-2^127, 2^127)
// are rejected with errs.ErrValueOutOfRange.
func (e *Emitter) Int128(v *big.Int) error {
	if !fitsSigned128(v) {
		return errs.ErrValueOutOfRange
	}

	return e.write(token.Int128(v))
}

func (e *Emitter) Uint8(v uint8) error {
	return e.write(token.Uint8(v))
}

func (e *Emitter) Uint16(v uint16) error {
	return e.write(token.Uint16(v))
}

func (e *Emitter) Uint32(v uint32) error {
	return e.write(token.Uint32(v))
}

func (e *Emitter) Uint64(v uint64) error {
	return e.write(token.Uint64(v))
}

// Uint128 emits an unsigned 128-bit integer. Negative values and values of
// 129 bits or more are rejected with errs.ErrValueOutOfRange.
func (e *Emitter) Uint128(v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.BitLen() > 128 {
		return errs.ErrValueOutOfRange
	}

	return e.write(token.Uint128(v))
}

func (e *Emitter) Float32(v float32) error {
	return e.write(token.Float32(v))
}

func (e *Emitter) Float64(v float64) error {
	return e.write(token.Float64(v))
}

func (e *Emitter) Char(v rune) error {
	return e.write(token.Char(v))
}

// Str emits a text token. A token is always emitted, even for the empty
// string; silent omission would break the round-trip contract.
func (e *Emitter) Str(v string) error {
	return e.write(token.Str(v))
}

// Bytes emits a binary token. Unless the emitter was built with
// WithBorrowedPayloads, the payload is copied so the token does not alias
// the decoder's buffer.
func (e *Emitter) Bytes(v []byte) error {
	if e.borrow {
		return e.write(token.BytesView(v))
	}

	return e.write(token.BytesView(append([]byte(nil), v...)))
}

func (e *Emitter) Unit() error {
	return e.write(token.Unit())
}

func (e *Emitter) UnitStruct(name string) error {
	return e.write(token.UnitStruct(name))
}

func (e *Emitter) UnitVariant(name, variant string) error {
	return e.write(token.UnitVariant(name, variant))
}

// None emits a None token. The policy is deliberate: an absent optional is
// represented in the stream rather than silently skipped, so a consumer
// can distinguish "optional with no value" from "nothing was here".
func (e *Emitter) None() error {
	return e.write(token.None())
}

// Some emits the Some header and then serializes the wrapped value against
// this same emitter.
func (e *Emitter) Some(v Value) error {
	if v == nil {
		return errs.ErrNilValue
	}
	if err := e.write(token.Some()); err != nil {
		return err
	}

	return v.EmitTo(e)
}

// NewtypeStruct emits the header and then the wrapped value.
func (e *Emitter) NewtypeStruct(name string, v Value) error {
	if v == nil {
		return errs.ErrNilValue
	}
	if err := e.write(token.NewtypeStruct(name)); err != nil {
		return err
	}

	return v.EmitTo(e)
}

// NewtypeVariant emits the header and then the wrapped value.
func (e *Emitter) NewtypeVariant(name, variant string, v Value) error {
	if v == nil {
		return errs.ErrNilValue
	}
	if err := e.write(token.NewtypeVariant(name, variant)); err != nil {
		return err
	}

	return v.EmitTo(e)
}

// Enum emits a standalone enum header. Variant headers normally fold the
// enum name into the UnitVariant/NewtypeVariant/TupleVariant/StructVariant
// callbacks instead.
func (e *Emitter) Enum(name string) error {
	return e.write(token.Enum(name))
}

// Structural callbacks. Each emits the begin token and returns a Scope
// bound to this emitter that knows the matching end token.

// Seq opens a sequence. Pass token.LenUnknown when the element count is
// not known up front.
func (e *Emitter) Seq(length int) (*Scope, error) {
	return e.openScope(token.Seq(length), scopeSeq)
}

// Tuple opens a tuple; length is exact.
func (e *Emitter) Tuple(length int) (*Scope, error) {
	if length < 0 {
		return nil, errs.ErrInvalidLength
	}

	return e.openScope(token.Tuple(length), scopeTuple)
}

// TupleStruct opens a named tuple struct; length is exact.
func (e *Emitter) TupleStruct(name string, length int) (*Scope, error) {
	if length < 0 {
		return nil, errs.ErrInvalidLength
	}

	return e.openScope(token.TupleStruct(name, length), scopeTuple)
}

// TupleVariant opens a tuple variant of an enum; length is exact.
func (e *Emitter) TupleVariant(name, variant string, length int) (*Scope, error) {
	if length < 0 {
		return nil, errs.ErrInvalidLength
	}

	return e.openScope(token.TupleVariant(name, variant, length), scopeTuple)
}

// Map opens a map. Pass token.LenUnknown when the entry count is not known
// up front.
func (e *Emitter) Map(length int) (*Scope, error) {
	return e.openScope(token.Map(length), scopeMap)
}

// Struct opens a named struct; length is the exact field count.
func (e *Emitter) Struct(name string, length int) (*Scope, error) {
	if length < 0 {
		return nil, errs.ErrInvalidLength
	}

	return e.openScope(token.Struct(name, length), scopeStruct)
}

// StructVariant opens a struct variant of an enum; length is the exact
// field count.
func (e *Emitter) StructVariant(name, variant string, length int) (*Scope, error) {
	if length < 0 {
		return nil, errs.ErrInvalidLength
	}

	return e.openScope(token.StructVariant(name, variant, length), scopeStruct)
}

func (e *Emitter) openScope(begin token.Token, kind scopeKind) (*Scope, error) {
	if err := e.write(begin); err != nil {
		return nil, err
	}

	return &Scope{e: e, end: token.Token{Kind: begin.Kind.End()}, kind: kind}, nil
}

// fitsSigned128 reports whether v fits a two's complement 128-bit integer.
func fitsSigned128(v *big.Int) bool {
	if v == nil {
		return false
	}
	if v.Sign() >= 0 {
		return v.BitLen() <= 127
	}

	// BitLen ignores the sign; -2^127 itself has BitLen 128 and fits.
	if v.BitLen() < 128 {
		return true
	}

	return v.BitLen() == 128 && v.TrailingZeroBits() == 127
}
