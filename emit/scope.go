package emit

import (
	"github.com/arloliu/tokenstream/errs"
	"github.com/arloliu/tokenstream/token"
)

// scopeKind gates which Scope methods are valid for a given begin token.
type scopeKind uint8

const (
	scopeSeq    scopeKind = iota // Seq: Element
	scopeTuple                   // Tuple, TupleStruct, TupleVariant: Element
	scopeMap                     // Map: Key/Value alternation
	scopeStruct                  // Struct, StructVariant: Field
)

// Scope mediates one structural scope's elements or fields between its
// begin and end tokens. A Scope buffers nothing: every Element, Key, Value
// and Field call serializes immediately against the owning emitter.
//
// A Scope is single-use. After End, every method answers
// errs.ErrScopeEnded.
type Scope struct {
	e    *Emitter
	end  token.Token
	kind scopeKind

	done       bool
	pendingVal bool // map scope: a key was written, its value is owed
}

// Element serializes one sequence or tuple element against the owning
// emitter.
func (s *Scope) Element(v Value) error {
	if err := s.check(scopeSeq, scopeTuple); err != nil {
		return err
	}
	if v == nil {
		return errs.ErrNilValue
	}

	return v.EmitTo(s.e)
}

// Key serializes one map key. The matching Value call must follow before
// the next Key or End.
func (s *Scope) Key(v Value) error {
	if err := s.check(scopeMap); err != nil {
		return err
	}
	if s.pendingVal {
		return errs.ErrScopeMisuse
	}
	if v == nil {
		return errs.ErrNilValue
	}
	if err := v.EmitTo(s.e); err != nil {
		return err
	}
	s.pendingVal = true

	return nil
}

// Value serializes the value for the most recent Key.
func (s *Scope) Value(v Value) error {
	if err := s.check(scopeMap); err != nil {
		return err
	}
	if !s.pendingVal {
		return errs.ErrScopeMisuse
	}
	if v == nil {
		return errs.ErrNilValue
	}
	if err := v.EmitTo(s.e); err != nil {
		return err
	}
	s.pendingVal = false

	return nil
}

// Field serializes one struct field. The field name is serialized first as
// a Str token, establishing the same alternating key/value token pattern
// maps use.
func (s *Scope) Field(name string, v Value) error {
	if err := s.check(scopeStruct); err != nil {
		return err
	}
	if v == nil {
		return errs.ErrNilValue
	}
	if err := s.e.Str(name); err != nil {
		return err
	}

	return v.EmitTo(s.e)
}

// End emits the end token matching this scope's begin token and consumes
// the scope.
func (s *Scope) End() error {
	if s.done {
		return errs.ErrScopeEnded
	}
	if s.pendingVal {
		return errs.ErrScopeMisuse
	}
	s.done = true

	return s.e.write(s.end)
}

func (s *Scope) check(allowed ...scopeKind) error {
	if s.done {
		return errs.ErrScopeEnded
	}
	for _, k := range allowed {
		if s.kind == k {
			return nil
		}
	}

	return errs.ErrScopeMisuse
}
