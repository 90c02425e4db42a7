package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarConstructors(t *testing.T) {
	require := require.New(t)

	require.Equal(Token{Kind: KindBool, Bool: true}, Bool(true))
	require.Equal(Token{Kind: KindInt8, Int: -7}, Int8(-7))
	require.Equal(Token{Kind: KindInt64, Int: -1 << 40}, Int64(-1<<40))
	require.Equal(Token{Kind: KindUint16, Uint: 65535}, Uint16(65535))
	require.Equal(Token{Kind: KindUint64, Uint: 1 << 60}, Uint64(1<<60))
	require.Equal(Token{Kind: KindChar, Char: '語'}, Char('語'))
	require.Equal(Token{Kind: KindFloat64, Float: 3.5}, Float64(3.5))

	// Float32 payloads stay exactly representable in the float64 field.
	f32 := Float32(1.25)
	require.Equal(KindFloat32, f32.Kind)
	require.Equal(float64(1.25), f32.Float)
}

func TestBigIntConstructorsCopy(t *testing.T) {
	require := require.New(t)

	v := big.NewInt(42)
	tok := Int128(v)
	v.SetInt64(99)

	require.Equal(KindInt128, tok.Kind)
	require.Zero(tok.Big.Cmp(big.NewInt(42)), "payload must not alias the caller's big.Int")

	u := new(big.Int).Lsh(big.NewInt(1), 100)
	tok = Uint128(u)
	require.Equal(KindUint128, tok.Kind)
	require.Zero(tok.Big.Cmp(new(big.Int).Lsh(big.NewInt(1), 100)))
}

func TestTextAndBinaryOwnership(t *testing.T) {
	require := require.New(t)

	src := []byte("payload")

	view := BytesView(src)
	require.Equal(KindBytes, view.Kind)
	src[0] = 'X'
	require.Equal(byte('X'), view.Bytes[0], "BytesView must alias the input")

	src[0] = 'p'
	owned := ByteBuf(src)
	src[0] = 'X'
	require.Equal(byte('p'), owned.Bytes[0], "ByteBuf must copy the input")
}

func TestOwnPromotesBorrowedKinds(t *testing.T) {
	require := require.New(t)

	str := Str("hello").Own()
	require.Equal(KindString, str.Kind)
	require.Equal("hello", str.Str)

	src := []byte{1, 2, 3}
	owned := BytesView(src).Own()
	require.Equal(KindByteBuf, owned.Kind)
	src[0] = 9
	require.Equal(byte(1), owned.Bytes[0])

	// Non-borrowed kinds pass through untouched.
	require.Equal(Uint64(7), Uint64(7).Own())
	require.Equal(SeqEnd(), SeqEnd().Own())
}

func TestEqual(t *testing.T) {
	require := require.New(t)

	require.True(Str("a").Equal(Str("a")))
	require.False(Str("a").Equal(Str("b")))
	require.False(Str("a").Equal(OwnedString("a")), "kind is part of identity")

	require.True(Int128(big.NewInt(5)).Equal(Int128(big.NewInt(5))))
	require.False(Int128(big.NewInt(5)).Equal(Int128(big.NewInt(6))))

	require.True(ByteBuf([]byte{1}).Equal(ByteBuf([]byte{1})))
	require.True(Seq(LenUnknown).Equal(Seq(LenUnknown)))
	require.False(Seq(LenUnknown).Equal(Seq(3)))
	require.True(StructVariant("E", "V", 2).Equal(StructVariant("E", "V", 2)))
	require.False(StructVariant("E", "V", 2).Equal(StructVariant("E", "W", 2)))
	require.True(MapEnd().Equal(MapEnd()))
}

func TestKindStructuralHelpers(t *testing.T) {
	require := require.New(t)

	begins := []Kind{KindSeq, KindTuple, KindTupleStruct, KindTupleVariant, KindMap, KindStruct, KindStructVariant}
	for _, k := range begins {
		require.True(k.IsBegin(), k.String())
		require.False(k.IsEnd(), k.String())

		end := k.End()
		require.True(end.IsEnd(), k.String())
		require.False(end.IsBegin(), k.String())
	}

	require.Equal(KindSeqEnd, KindSeq.End())
	require.Equal(KindStructVariantEnd, KindStructVariant.End())
	require.Equal(KindInvalid, KindBool.End())

	require.True(KindSome.IsHeader())
	require.True(KindNewtypeVariant.IsHeader())
	require.False(KindNone.IsHeader())
}

func TestKindTextRoundTrip(t *testing.T) {
	require := require.New(t)

	for k := KindBool; k <= KindEnum; k++ {
		text, err := k.MarshalText()
		require.NoError(err)

		var back Kind
		require.NoError(back.UnmarshalText(text))
		require.Equal(k, back)
	}

	var k Kind
	require.Error(k.UnmarshalText([]byte("NoSuchKind")))
}

func TestStringFormat(t *testing.T) {
	require := require.New(t)

	require.Equal(`Str("hello")`, Str("hello").String())
	require.Equal("U64(1)", Uint64(1).String())
	require.Equal("Seq{len:?}", Seq(LenUnknown).String())
	require.Equal("Map{len:3}", Map(3).String())
	require.Equal("Bool(false)", Bool(false).String())
}
