package source

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/tokenstream/emit"
	"github.com/arloliu/tokenstream/token"
)

// JSONSource drives an emitter from a JSON document, streaming through
// encoding/json's tokenizer so the document is never materialized.
//
// Event mapping:
//
//	object   -> Map{len:?} ... MapEnd, keys as Str tokens
//	array    -> Seq{len:?} ... SeqEnd
//	string   -> Str
//	number   -> Uint64 when a non-negative integer, Int64 when a negative
//	            integer, Float64 otherwise
//	bool     -> Bool
//	null     -> Unit
//
// JSON carries no length information up front, so Map and Seq headers
// always use token.LenUnknown.
type JSONSource struct {
	dec *json.Decoder
}

// NewJSONSource creates a driver reading one JSON value from r.
func NewJSONSource(r io.Reader) *JSONSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	return &JSONSource{dec: dec}
}

// Emit walks the document, invoking e's callbacks in document order.
func (s *JSONSource) Emit(e *emit.Emitter) error {
	tok, err := s.dec.Token()
	if err != nil {
		return fmt.Errorf("read json value: %w", err)
	}

	return s.value(e, tok)
}

func (s *JSONSource) value(e *emit.Emitter, tok json.Token) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			return s.seq(e)
		case '{':
			return s.object(e)
		default:
			return fmt.Errorf("unexpected delimiter %q", v.String())
		}
	case bool:
		return e.Bool(v)
	case json.Number:
		return s.number(e, v)
	case string:
		return e.Str(v)
	case nil:
		return e.Unit()
	default:
		return fmt.Errorf("unexpected json token %v", tok)
	}
}

// number maps integer literals that fit to Uint64 or Int64 depending on
// sign; everything else becomes Float64.
func (s *JSONSource) number(e *emit.Emitter, n json.Number) error {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		if strings.HasPrefix(lit, "-") {
			if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
				return e.Int64(i)
			}
		} else if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return e.Uint64(u)
		}
	}

	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", lit, err)
	}

	return e.Float64(f)
}

func (s *JSONSource) seq(e *emit.Emitter) error {
	sc, err := e.Seq(token.LenUnknown)
	if err != nil {
		return err
	}

	for s.dec.More() {
		tok, err := s.dec.Token()
		if err != nil {
			return fmt.Errorf("read array element: %w", err)
		}
		elem := emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, tok)
		})
		if err := sc.Element(elem); err != nil {
			return err
		}
	}

	// Consume the closing bracket.
	if _, err := s.dec.Token(); err != nil {
		return fmt.Errorf("read array end: %w", err)
	}

	return sc.End()
}

func (s *JSONSource) object(e *emit.Emitter) error {
	sc, err := e.Map(token.LenUnknown)
	if err != nil {
		return err
	}

	for s.dec.More() {
		keyTok, err := s.dec.Token()
		if err != nil {
			return fmt.Errorf("read object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("object key is not a string: %v", keyTok)
		}
		if err := sc.Key(emit.StrValue(key)); err != nil {
			return err
		}

		valTok, err := s.dec.Token()
		if err != nil {
			return fmt.Errorf("read object value: %w", err)
		}
		val := emit.ValueFunc(func(e *emit.Emitter) error {
			return s.value(e, valTok)
		})
		if err := sc.Value(val); err != nil {
			return err
		}
	}

	// Consume the closing brace.
	if _, err := s.dec.Token(); err != nil {
		return fmt.Errorf("read object end: %w", err)
	}

	return sc.End()
}
