package emit

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/token"
)

func newTestEmitter(t *testing.T) (*Emitter, *sink.Collect) {
	t.Helper()

	snk := sink.NewCollect()
	e, err := New(snk)
	require.NoError(t, err)

	return e, snk
}

func TestScalarEmission(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	require.NoError(e.Bool(true))
	require.NoError(e.Int32(-5))
	require.NoError(e.Uint64(1 << 50))
	require.NoError(e.Float64(2.5))
	require.NoError(e.Char('x'))
	require.NoError(e.Str("hello"))
	require.NoError(e.Unit())
	require.NoError(e.None())

	want := []token.Token{
		token.Bool(true),
		token.Int32(-5),
		token.Uint64(1 << 50),
		token.Float64(2.5),
		token.Char('x'),
		token.Str("hello"),
		token.Unit(),
		token.None(),
	}
	requireTokens(t, want, snk.Tokens())
}

func TestEmptyStrStillEmits(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	require.NoError(e.Str(""))
	require.NoError(e.Bytes(nil))

	require.Len(snk.Tokens(), 2)
	require.Equal(token.KindStr, snk.Tokens()[0].Kind)
	require.Equal(token.KindBytes, snk.Tokens()[1].Kind)
}

func TestInt128Range(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	min128 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

	require.NoError(e.Int128(min128))
	require.NoError(e.Int128(max128))
	require.NoError(e.Int128(big.NewInt(0)))

	over := new(big.Int).Lsh(big.NewInt(1), 127)
	require.ErrorIs(e.Int128(over), errs.ErrValueOutOfRange)

	under := new(big.Int).Sub(min128, big.NewInt(1))
	require.ErrorIs(e.Int128(under), errs.ErrValueOutOfRange)
	require.ErrorIs(e.Int128(nil), errs.ErrValueOutOfRange)

	require.Len(snk.Tokens(), 3, "rejected values must not reach the sink")
}

func TestUint128Range(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	require.NoError(e.Uint128(big.NewInt(0)))
	require.NoError(e.Uint128(max128))

	require.ErrorIs(e.Uint128(big.NewInt(-1)), errs.ErrValueOutOfRange)
	require.ErrorIs(e.Uint128(new(big.Int).Lsh(big.NewInt(1), 128)), errs.ErrValueOutOfRange)
	require.ErrorIs(e.Uint128(nil), errs.ErrValueOutOfRange)

	require.Len(snk.Tokens(), 2)
}

func TestBytesCopiedByDefault(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	buf := []byte("abc")
	require.NoError(e.Bytes(buf))
	buf[0] = 'X'

	require.Equal(byte('a'), snk.Tokens()[0].Bytes[0])
}

func TestBorrowedPayloadsAlias(t *testing.T) {
	require := require.New(t)

	snk := sink.NewCollect()
	e, err := New(snk, WithBorrowedPayloads())
	require.NoError(err)

	buf := []byte("abc")
	require.NoError(e.Bytes(buf))
	buf[0] = 'X'

	require.Equal(byte('X'), snk.Tokens()[0].Bytes[0])
}

func TestHeadersWrapValues(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	require.NoError(e.Some(StrValue("inner")))
	require.NoError(e.NewtypeStruct("Meters", ValueFunc(func(e *Emitter) error {
		return e.Uint64(5)
	})))
	require.NoError(e.NewtypeVariant("Msg", "Text", StrValue("hi")))

	want := []token.Token{
		token.Some(),
		token.Str("inner"),
		token.NewtypeStruct("Meters"),
		token.Uint64(5),
		token.NewtypeVariant("Msg", "Text"),
		token.Str("hi"),
	}
	requireTokens(t, want, snk.Tokens())

	require.ErrorIs(e.Some(nil), errs.ErrNilValue)
	require.ErrorIs(e.NewtypeStruct("X", nil), errs.ErrNilValue)
}

func TestUnitForms(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	require.NoError(e.UnitStruct("Marker"))
	require.NoError(e.UnitVariant("Color", "Red"))
	require.NoError(e.Enum("Color"))

	want := []token.Token{
		token.UnitStruct("Marker"),
		token.UnitVariant("Color", "Red"),
		token.Enum("Color"),
	}
	requireTokens(t, want, snk.Tokens())
}

func TestExactLengthsRejectNegative(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	_, err := e.Tuple(-1)
	require.ErrorIs(err, errs.ErrInvalidLength)
	_, err = e.TupleStruct("Pair", token.LenUnknown)
	require.ErrorIs(err, errs.ErrInvalidLength)
	_, err = e.TupleVariant("E", "V", -2)
	require.ErrorIs(err, errs.ErrInvalidLength)
	_, err = e.Struct("S", token.LenUnknown)
	require.ErrorIs(err, errs.ErrInvalidLength)
	_, err = e.StructVariant("E", "V", -1)
	require.ErrorIs(err, errs.ErrInvalidLength)

	require.Empty(snk.Tokens())

	// Seq and Map accept unknown lengths.
	_, err = e.Seq(token.LenUnknown)
	require.NoError(err)
	_, err = e.Map(token.LenUnknown)
	require.NoError(err)
}

func TestWriteFailureTaxonomy(t *testing.T) {
	require := require.New(t)

	rejecting, err := New(sink.Func(func(token.Token) sink.Status { return sink.Rejected }))
	require.NoError(err)
	err = rejecting.Bool(true)
	require.ErrorIs(err, errs.ErrSinkRejected)
	require.ErrorIs(err, errs.ErrWriteFailure)

	closed, err := New(sink.Func(func(token.Token) sink.Status { return sink.Closed }))
	require.NoError(err)
	err = closed.Bool(true)
	require.ErrorIs(err, errs.ErrSinkClosed)
	require.ErrorIs(err, errs.ErrWriteFailure)
}

func TestStructuralFailurePropagatesFromBegin(t *testing.T) {
	require := require.New(t)

	closed, err := New(sink.Func(func(token.Token) sink.Status { return sink.Closed }))
	require.NoError(err)

	sc, err := closed.Seq(token.LenUnknown)
	require.Nil(sc)
	require.ErrorIs(err, errs.ErrWriteFailure)
}

func requireTokens(t *testing.T, want, got []token.Token) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.Truef(t, want[i].Equal(got[i]), "token %d: want %s, got %s", i, want[i], got[i])
	}
}
