package material

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/token"
)

func TestFromTokensScalars(t *testing.T) {
	require := require.New(t)

	cases := map[string]struct {
		tok  token.Token
		want any
	}{
		"bool":   {token.Bool(true), true},
		"int":    {token.Int16(-4), int64(-4)},
		"uint":   {token.Uint8(9), uint64(9)},
		"f32":    {token.Float32(1.5), float32(1.5)},
		"f64":    {token.Float64(2.5), 2.5},
		"char":   {token.Char('z'), 'z'},
		"str":    {token.Str("s"), "s"},
		"none":   {token.None(), nil},
		"unit":   {token.Unit(), nil},
		"marker": {token.UnitStruct("Marker"), nil},
		"uvar":   {token.UnitVariant("Color", "Red"), "Red"},
	}

	for name, tc := range cases {
		got, err := FromTokens([]token.Token{tc.tok})
		require.NoError(err, name)
		require.Equal(tc.want, got, name)
	}

	got, err := FromTokens([]token.Token{token.Int128(big.NewInt(5))})
	require.NoError(err)
	require.Zero(got.(*big.Int).Cmp(big.NewInt(5)))
}

func TestFromTokensDocument(t *testing.T) {
	require := require.New(t)

	stream := []token.Token{
		token.Map(token.LenUnknown),
		token.Str("name"),
		token.Str("John Doe"),
		token.Str("age"),
		token.Uint64(43),
		token.Str("phones"),
		token.Seq(token.LenUnknown),
		token.Str("+44 1"),
		token.Str("+44 2"),
		token.SeqEnd(),
		token.MapEnd(),
	}

	got, err := FromTokens(stream)
	require.NoError(err)
	require.Equal(map[string]any{
		"name":   "John Doe",
		"age":    uint64(43),
		"phones": []any{"+44 1", "+44 2"},
	}, got)
}

func TestFromTokensHeadersUnwrap(t *testing.T) {
	require := require.New(t)

	got, err := FromTokens([]token.Token{token.Some(), token.Uint64(5)})
	require.NoError(err)
	require.Equal(uint64(5), got)

	got, err = FromTokens([]token.Token{token.NewtypeStruct("Meters"), token.Float64(1.5)})
	require.NoError(err)
	require.Equal(1.5, got)

	got, err = FromTokens([]token.Token{token.NewtypeVariant("Msg", "Text"), token.Str("hi")})
	require.NoError(err)
	require.Equal(map[string]any{"Text": "hi"}, got)
}

func TestFromTokensVariantForms(t *testing.T) {
	require := require.New(t)

	got, err := FromTokens([]token.Token{
		token.TupleVariant("Shape", "Point", 2),
		token.Float64(1),
		token.Float64(2),
		token.TupleVariantEnd(),
	})
	require.NoError(err)
	require.Equal(map[string]any{"Point": []any{1.0, 2.0}}, got)

	got, err = FromTokens([]token.Token{
		token.StructVariant("Shape", "Circle", 1),
		token.Str("radius"),
		token.Float64(3),
		token.StructVariantEnd(),
	})
	require.NoError(err)
	require.Equal(map[string]any{"Circle": map[string]any{"radius": 3.0}}, got)
}

func TestFromTokensStructBecomesMap(t *testing.T) {
	require := require.New(t)

	got, err := FromTokens([]token.Token{
		token.Struct("Point", 2),
		token.Str("x"), token.Int32(1),
		token.Str("y"), token.Int32(2),
		token.StructEnd(),
	})
	require.NoError(err)
	require.Equal(map[string]any{"x": int64(1), "y": int64(2)}, got)
}

func TestFromTokensNonStringKeysStringified(t *testing.T) {
	require := require.New(t)

	got, err := FromTokens([]token.Token{
		token.Map(1),
		token.Uint64(7), token.Str("seven"),
		token.MapEnd(),
	})
	require.NoError(err)
	require.Equal(map[string]any{"7": "seven"}, got)
}

func TestFromTokensMalformedStreams(t *testing.T) {
	require := require.New(t)

	_, err := FromTokens(nil)
	require.ErrorIs(err, errs.ErrUnexpectedToken)

	_, err = FromTokens([]token.Token{token.Some()})
	require.ErrorIs(err, errs.ErrDanglingHeader)

	_, err = FromTokens([]token.Token{token.Seq(1), token.Uint64(1)})
	require.ErrorIs(err, errs.ErrUnclosedScope)

	_, err = FromTokens([]token.Token{token.Seq(1), token.MapEnd()})
	require.ErrorIs(err, errs.ErrUnbalancedEnd)

	_, err = FromTokens([]token.Token{token.Uint64(1), token.Uint64(2)})
	require.ErrorIs(err, errs.ErrUnexpectedToken)
}

func TestBuilderRoundTrip(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	stream := []token.Token{
		token.Seq(token.LenUnknown),
		token.Uint64(1),
		token.Str("hello"),
		token.Uint64(3),
		token.SeqEnd(),
	}
	for _, tok := range stream {
		require.Equal(sink.Accepted, b.TryAccept(tok))
	}

	got, err := b.Value()
	require.NoError(err)
	require.Equal([]any{uint64(1), "hello", uint64(3)}, got)
	require.Len(b.Tokens(), 5)
}

func TestBuilderDetachesBorrowedPayloads(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	buf := []byte{1, 2, 3}
	require.Equal(sink.Accepted, b.TryAccept(token.BytesView(buf)))
	buf[0] = 9

	toks := b.Tokens()
	require.Equal(token.KindByteBuf, toks[0].Kind)
	require.Equal(byte(1), toks[0].Bytes[0])
}

func TestBuilderRejectsMalformedStream(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	b.TryAccept(token.Seq(token.LenUnknown))
	b.TryAccept(token.Uint64(1))

	_, err := b.Value()
	require.ErrorIs(err, errs.ErrUnclosedScope)
}
