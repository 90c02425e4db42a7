// Package material consumes token streams: it validates their structural
// well-formedness and materializes them back into Go values, closing the
// round-trip that the emit package opens.
package material

import (
	"fmt"

	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/token"
)

// Validator is a stack-based well-formedness checker for token streams.
// Feed it every token in order and call Finish at the end of the stream.
//
// It verifies the structural invariants a stream must satisfy:
//
//   - every end token closes the innermost open begin token of its kind;
//   - Some and newtype headers are followed by exactly one value;
//   - the stream encodes exactly one complete document, no more, no less.
type Validator struct {
	stack   []frame
	root    bool // the top-level value completed
	started bool
}

type frame struct {
	end     token.Kind
	headers int // unresolved Some/newtype headers at this depth
}

// NewValidator creates a validator for one token stream.
func NewValidator() *Validator {
	// Depth 0 frame anchors header tracking for the root value.
	return &Validator{stack: []frame{{}}}
}

func (v *Validator) top() *frame {
	return &v.stack[len(v.stack)-1]
}

// ProcessToken checks one token against the current structural state.
func (v *Validator) ProcessToken(tok token.Token) error {
	if v.root {
		return fmt.Errorf("%w: %s after document end", errs.ErrUnexpectedToken, tok)
	}
	v.started = true

	switch {
	case tok.Kind == token.KindInvalid:
		return fmt.Errorf("%w: invalid kind", errs.ErrUnexpectedToken)

	case tok.Kind.IsBegin():
		v.stack = append(v.stack, frame{end: tok.Kind.End()})

	case tok.Kind.IsEnd():
		if len(v.stack) == 1 {
			return fmt.Errorf("%w: %s with no open scope", errs.ErrUnbalancedEnd, tok)
		}
		cur := v.top()
		if cur.headers > 0 {
			return fmt.Errorf("%w: scope closed with a wrapped value owed", errs.ErrDanglingHeader)
		}
		if cur.end != tok.Kind {
			return fmt.Errorf("%w: got %s, want %s", errs.ErrUnbalancedEnd, tok.Kind, cur.end)
		}
		v.stack = v.stack[:len(v.stack)-1]
		v.completeValue()

	case tok.Kind.IsHeader():
		v.top().headers++

	default:
		// Scalar, text, binary, unit-like, None, Enum: a complete value.
		v.completeValue()
	}

	return nil
}

// completeValue resolves any headers waiting at the current depth and, at
// the root, marks the document finished.
func (v *Validator) completeValue() {
	cur := v.top()
	cur.headers = 0

	if len(v.stack) == 1 {
		v.root = true
	}
}

// Finish verifies the stream ended in a complete state.
func (v *Validator) Finish() error {
	if len(v.stack) > 1 {
		return fmt.Errorf("%w: %d scope(s) still open", errs.ErrUnclosedScope, len(v.stack)-1)
	}
	if v.top().headers > 0 {
		return errs.ErrDanglingHeader
	}
	if v.started && !v.root {
		return errs.ErrDanglingHeader
	}

	return nil
}

// Validate checks a whole token stream at once.
func Validate(tokens []token.Token) error {
	v := NewValidator()
	for _, tok := range tokens {
		if err := v.ProcessToken(tok); err != nil {
			return err
		}
	}

	return v.Finish()
}
