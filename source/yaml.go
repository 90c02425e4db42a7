package source

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/arloliu/tokenstream/emit"
)

// YAMLSource drives an emitter from a YAML document. Unlike JSONSource it
// walks a parsed AST, so mapping and sequence headers carry exact length
// hints.
//
// Event mapping:
//
//	mapping   -> Map{len:n} ... MapEnd, keys walked like any value
//	sequence  -> Seq{len:n} ... SeqEnd
//	string    -> Str
//	integer   -> Uint64 or Int64 (sign-dependent)
//	float     -> Float64
//	bool      -> Bool
//	null      -> Unit
//
// Anchors are recorded and aliases re-walk the anchored node, so aliased
// values appear expanded in the token stream.
type YAMLSource struct {
	data    []byte
	anchors map[string]ast.Node
}

// NewYAMLSource creates a driver for one YAML document.
func NewYAMLSource(data []byte) *YAMLSource {
	return &YAMLSource{data: data, anchors: make(map[string]ast.Node)}
}

// Emit parses and walks the document, invoking e's callbacks in document
// order.
func (s *YAMLSource) Emit(e *emit.Emitter) error {
	file, err := parser.ParseBytes(s.data, 0)
	if err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return e.Unit()
	}
	if len(file.Docs) > 1 {
		return fmt.Errorf("expected a single yaml document, got %d", len(file.Docs))
	}

	return s.node(e, file.Docs[0].Body)
}

func (s *YAMLSource) node(e *emit.Emitter, n ast.Node) error {
	switch v := n.(type) {
	case *ast.NullNode:
		return e.Unit()
	case *ast.BoolNode:
		return e.Bool(v.Value)
	case *ast.IntegerNode:
		switch num := v.Value.(type) {
		case uint64:
			return e.Uint64(num)
		case int64:
			// Non-negative integers map to Uint64 regardless of how the
			// parser sized them, matching the JSON driver.
			if num >= 0 {
				return e.Uint64(uint64(num))
			}
			return e.Int64(num)
		default:
			return fmt.Errorf("unexpected integer payload %T", v.Value)
		}
	case *ast.FloatNode:
		return e.Float64(v.Value)
	case *ast.InfinityNode:
		return e.Float64(v.Value)
	case *ast.NanNode:
		return e.Float64(math.NaN())
	case *ast.StringNode:
		return e.Str(v.Value)
	case *ast.LiteralNode:
		return e.Str(v.Value.Value)
	case *ast.SequenceNode:
		return s.sequence(e, v)
	case *ast.MappingNode:
		return s.mapping(e, v.Values)
	case *ast.MappingValueNode:
		// A single-pair mapping parses to the pair node directly.
		return s.mapping(e, []*ast.MappingValueNode{v})
	case *ast.TagNode:
		return s.node(e, v.Value)
	case *ast.AnchorNode:
		s.anchors[v.Name.String()] = v.Value
		return s.node(e, v.Value)
	case *ast.AliasNode:
		target, ok := s.anchors[v.Value.String()]
		if !ok {
			return fmt.Errorf("unknown anchor %q", v.Value.String())
		}
		return s.node(e, target)
	default:
		return fmt.Errorf("unsupported yaml node %T", n)
	}
}

func (s *YAMLSource) sequence(e *emit.Emitter, n *ast.SequenceNode) error {
	sc, err := e.Seq(len(n.Values))
	if err != nil {
		return err
	}

	for _, item := range n.Values {
		elem := emit.ValueFunc(func(e *emit.Emitter) error {
			return s.node(e, item)
		})
		if err := sc.Element(elem); err != nil {
			return err
		}
	}

	return sc.End()
}

func (s *YAMLSource) mapping(e *emit.Emitter, pairs []*ast.MappingValueNode) error {
	sc, err := e.Map(len(pairs))
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		key := emit.ValueFunc(func(e *emit.Emitter) error {
			return s.node(e, pair.Key)
		})
		if err := sc.Key(key); err != nil {
			return err
		}
		val := emit.ValueFunc(func(e *emit.Emitter) error {
			return s.node(e, pair.Value)
		})
		if err := sc.Value(val); err != nil {
			return err
		}
	}

	return sc.End()
}
