package emit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/token"
)

func TestSeqScope(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	sc, err := e.Seq(token.LenUnknown)
	require.NoError(err)
	require.NoError(sc.Element(StrValue("a")))
	require.NoError(sc.Element(ValueFunc(func(e *Emitter) error { return e.Uint64(2) })))
	require.NoError(sc.End())

	want := []token.Token{
		token.Seq(token.LenUnknown),
		token.Str("a"),
		token.Uint64(2),
		token.SeqEnd(),
	}
	requireTokens(t, want, snk.Tokens())
}

func TestEmptySeqScope(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	sc, err := e.Seq(token.LenUnknown)
	require.NoError(err)
	require.NoError(sc.End())

	requireTokens(t, []token.Token{token.Seq(token.LenUnknown), token.SeqEnd()}, snk.Tokens())
}

func TestMapScopeAlternation(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	sc, err := e.Map(1)
	require.NoError(err)

	// Value before any key, double key, and End with a value owed are all
	// misuse.
	require.ErrorIs(sc.Value(StrValue("v")), errs.ErrScopeMisuse)
	require.NoError(sc.Key(StrValue("k")))
	require.ErrorIs(sc.Key(StrValue("k2")), errs.ErrScopeMisuse)
	require.ErrorIs(sc.End(), errs.ErrScopeMisuse)
	require.NoError(sc.Value(StrValue("v")))
	require.NoError(sc.End())

	want := []token.Token{
		token.Map(1),
		token.Str("k"),
		token.Str("v"),
		token.MapEnd(),
	}
	requireTokens(t, want, snk.Tokens())
}

func TestStructScopeFields(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	sc, err := e.Struct("Point", 2)
	require.NoError(err)
	require.NoError(sc.Field("x", ValueFunc(func(e *Emitter) error { return e.Int32(1) })))
	require.NoError(sc.Field("y", ValueFunc(func(e *Emitter) error { return e.Int32(2) })))
	require.NoError(sc.End())

	want := []token.Token{
		token.Struct("Point", 2),
		token.Str("x"),
		token.Int32(1),
		token.Str("y"),
		token.Int32(2),
		token.StructEnd(),
	}
	requireTokens(t, want, snk.Tokens())
}

func TestVariantScopes(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	tv, err := e.TupleVariant("Shape", "Point", 2)
	require.NoError(err)
	require.NoError(tv.Element(ValueFunc(func(e *Emitter) error { return e.Float64(1) })))
	require.NoError(tv.Element(ValueFunc(func(e *Emitter) error { return e.Float64(2) })))
	require.NoError(tv.End())

	sv, err := e.StructVariant("Shape", "Circle", 1)
	require.NoError(err)
	require.NoError(sv.Field("radius", ValueFunc(func(e *Emitter) error { return e.Float64(3) })))
	require.NoError(sv.End())

	want := []token.Token{
		token.TupleVariant("Shape", "Point", 2),
		token.Float64(1),
		token.Float64(2),
		token.TupleVariantEnd(),
		token.StructVariant("Shape", "Circle", 1),
		token.Str("radius"),
		token.Float64(3),
		token.StructVariantEnd(),
	}
	requireTokens(t, want, snk.Tokens())
}

func TestScopeKindMisuse(t *testing.T) {
	require := require.New(t)
	e, _ := newTestEmitter(t)

	seq, err := e.Seq(token.LenUnknown)
	require.NoError(err)
	require.ErrorIs(seq.Key(StrValue("k")), errs.ErrScopeMisuse)
	require.ErrorIs(seq.Field("f", StrValue("v")), errs.ErrScopeMisuse)
	require.NoError(seq.End())

	m, err := e.Map(token.LenUnknown)
	require.NoError(err)
	require.ErrorIs(m.Element(StrValue("e")), errs.ErrScopeMisuse)
	require.NoError(m.End())

	st, err := e.Struct("S", 0)
	require.NoError(err)
	require.ErrorIs(st.Element(StrValue("e")), errs.ErrScopeMisuse)
	require.ErrorIs(st.Key(StrValue("k")), errs.ErrScopeMisuse)
	require.NoError(st.End())
}

func TestScopeEnded(t *testing.T) {
	require := require.New(t)
	e, _ := newTestEmitter(t)

	sc, err := e.Seq(token.LenUnknown)
	require.NoError(err)
	require.NoError(sc.End())

	require.ErrorIs(sc.Element(StrValue("late")), errs.ErrScopeEnded)
	require.ErrorIs(sc.End(), errs.ErrScopeEnded)
}

func TestScopeNilValue(t *testing.T) {
	require := require.New(t)
	e, _ := newTestEmitter(t)

	sc, err := e.Seq(token.LenUnknown)
	require.NoError(err)
	require.ErrorIs(sc.Element(nil), errs.ErrNilValue)
	require.NoError(sc.End())
}

func TestNestedScopes(t *testing.T) {
	require := require.New(t)
	e, snk := newTestEmitter(t)

	outer, err := e.Seq(token.LenUnknown)
	require.NoError(err)
	require.NoError(outer.Element(ValueFunc(func(e *Emitter) error {
		inner, err := e.Tuple(2)
		if err != nil {
			return err
		}
		if err := inner.Element(ValueFunc(func(e *Emitter) error { return e.Bool(true) })); err != nil {
			return err
		}
		if err := inner.Element(StrValue("x")); err != nil {
			return err
		}

		return inner.End()
	})))
	require.NoError(outer.End())

	want := []token.Token{
		token.Seq(token.LenUnknown),
		token.Tuple(2),
		token.Bool(true),
		token.Str("x"),
		token.TupleEnd(),
		token.SeqEnd(),
	}
	requireTokens(t, want, snk.Tokens())
}
