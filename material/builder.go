package material

import (
	"fmt"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/sink"
	"github.com/arloliu/tokenstream/token"
)

// FromTokens reconstructs a Go value from a well-formed token stream.
//
// Mapping: Map and Struct forms become map[string]any (struct field names
// as keys, non-string map keys stringified with their debug form), Seq and
// Tuple forms become []any, Some and newtype headers unwrap to the wrapped
// value, variant forms become the single-entry
// map[string]any{variant: value} (a bare variant name string for unit
// variants), None/Unit/UnitStruct become nil. Scalars keep their width:
// signed integers become int64, unsigned uint64, 128-bit *big.Int, F32
// float32, F64 float64.
//
// The reconstruction is the round-trip contract's other half: for a
// document D, FromTokens(tokens(D)) reproduces D's values, field names,
// nesting and ordering.
func FromTokens(tokens []token.Token) (any, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty stream", errs.ErrUnexpectedToken)
	}

	val, next, err := value(tokens, 0)
	if err != nil {
		return nil, err
	}
	if next != len(tokens) {
		return nil, fmt.Errorf("%w: %s after document end", errs.ErrUnexpectedToken, tokens[next])
	}

	return val, nil
}

// value parses one complete value starting at i and returns it along with
// the index of the first token past it.
func value(tokens []token.Token, i int) (any, int, error) {
	if i >= len(tokens) {
		return nil, i, errs.ErrDanglingHeader
	}

	tok := tokens[i]
	switch tok.Kind {
	case token.KindBool:
		return tok.Bool, i + 1, nil
	case token.KindInt8, token.KindInt16, token.KindInt32, token.KindInt64:
		return tok.Int, i + 1, nil
	case token.KindUint8, token.KindUint16, token.KindUint32, token.KindUint64:
		return tok.Uint, i + 1, nil
	case token.KindInt128, token.KindUint128:
		return tok.Big, i + 1, nil
	case token.KindFloat32:
		return float32(tok.Float), i + 1, nil
	case token.KindFloat64:
		return tok.Float, i + 1, nil
	case token.KindChar:
		return tok.Char, i + 1, nil
	case token.KindStr, token.KindString:
		return tok.Str, i + 1, nil
	case token.KindBytes, token.KindByteBuf:
		return tok.Bytes, i + 1, nil
	case token.KindNone, token.KindUnit, token.KindUnitStruct:
		return nil, i + 1, nil
	case token.KindUnitVariant:
		return tok.Variant, i + 1, nil
	case token.KindEnum:
		return tok.Name, i + 1, nil

	case token.KindSome, token.KindNewtypeStruct:
		return value(tokens, i+1)

	case token.KindNewtypeVariant:
		inner, next, err := value(tokens, i+1)
		if err != nil {
			return nil, next, err
		}
		return map[string]any{tok.Variant: inner}, next, nil

	case token.KindSeq, token.KindTuple, token.KindTupleStruct:
		return seqValue(tokens, i)

	case token.KindTupleVariant:
		inner, next, err := seqValue(tokens, i)
		if err != nil {
			return nil, next, err
		}
		return map[string]any{tok.Variant: inner}, next, nil

	case token.KindMap, token.KindStruct:
		return mapValue(tokens, i)

	case token.KindStructVariant:
		inner, next, err := mapValue(tokens, i)
		if err != nil {
			return nil, next, err
		}
		return map[string]any{tok.Variant: inner}, next, nil

	default:
		return nil, i, fmt.Errorf("%w: %s", errs.ErrUnexpectedToken, tok)
	}
}

func seqValue(tokens []token.Token, i int) ([]any, int, error) {
	end := tokens[i].Kind.End()

	elems := []any{}
	i++
	for {
		if i >= len(tokens) {
			return nil, i, fmt.Errorf("%w: missing %s", errs.ErrUnclosedScope, end)
		}
		if tokens[i].Kind == end {
			return elems, i + 1, nil
		}
		if tokens[i].Kind.IsEnd() {
			return nil, i, fmt.Errorf("%w: got %s, want %s", errs.ErrUnbalancedEnd, tokens[i].Kind, end)
		}

		elem, next, err := value(tokens, i)
		if err != nil {
			return nil, next, err
		}
		elems = append(elems, elem)
		i = next
	}
}

func mapValue(tokens []token.Token, i int) (map[string]any, int, error) {
	end := tokens[i].Kind.End()

	entries := map[string]any{}
	i++
	for {
		if i >= len(tokens) {
			return nil, i, fmt.Errorf("%w: missing %s", errs.ErrUnclosedScope, end)
		}
		if tokens[i].Kind == end {
			return entries, i + 1, nil
		}
		if tokens[i].Kind.IsEnd() {
			return nil, i, fmt.Errorf("%w: got %s, want %s", errs.ErrUnbalancedEnd, tokens[i].Kind, end)
		}

		key, next, err := value(tokens, i)
		if err != nil {
			return nil, next, err
		}
		val, next, err := value(tokens, next)
		if err != nil {
			return nil, next, err
		}

		name, ok := key.(string)
		if !ok {
			name = fmt.Sprint(key)
		}
		entries[name] = val
		i = next
	}
}

// Builder is a sink that collects a token stream and materializes it on
// demand, for consumers that want the reconstructed document rather than
// the raw tokens.
type Builder struct {
	collect sink.Collect
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// TryAccept implements sink.Sink.
func (b *Builder) TryAccept(tok token.Token) sink.Status {
	// Tokens may carry borrowed payloads; detach them, since the builder
	// retains tokens past the transcode call.
	return b.collect.TryAccept(tok.Own())
}

// Value validates the collected stream and reconstructs the document.
func (b *Builder) Value() (any, error) {
	if err := Validate(b.collect.Tokens()); err != nil {
		return nil, err
	}

	return FromTokens(b.collect.Tokens())
}

// Tokens returns the collected tokens.
func (b *Builder) Tokens() []token.Token {
	return b.collect.Tokens()
}
