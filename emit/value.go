package emit

// Value is anything that can serialize itself against an Emitter. It is
// the re-entry contract used by header callbacks (Some, newtype) and by
// compound scopes: nested values recurse into the same emitter instance,
// so recursion depth is bounded by input nesting, not by this package.
type Value interface {
	EmitTo(e *Emitter) error
}

// ValueFunc adapts a function to the Value interface, the way
// http.HandlerFunc adapts handlers.
type ValueFunc func(e *Emitter) error

func (f ValueFunc) EmitTo(e *Emitter) error {
	return f(e)
}

// StrValue returns a Value emitting a single Str token. Map keys and other
// bare strings are common enough to warrant the shorthand.
func StrValue(s string) Value {
	return ValueFunc(func(e *Emitter) error {
		return e.Str(s)
	})
}
